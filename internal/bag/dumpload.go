// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package bag

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/laszlokorte/damasc/internal/canon"
	"github.com/laszlokorte/damasc/internal/errs"
	"github.com/laszlokorte/damasc/internal/value"
)

// Dump writes b's journal to dir/name, one canonical value per line. The
// file handle is opened and closed within this call, per the resource
// model of spec.md section 5: no long-held handles.
func Dump(b *Bag, dir, name string) error {
	if err := validateBagName(name); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return errs.BagError("dump: " + err.Error())
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, v := range b.journal {
		if _, err := w.WriteString(value.Format(v) + "\n"); err != nil {
			return errs.BagError("dump: " + err.Error())
		}
	}
	if err := w.Flush(); err != nil {
		return errs.BagError("dump: " + err.Error())
	}
	return nil
}

// Load appends every value found in dir/name to b. Loading always
// appends, bypassing any schema the bag carries; duplicates are
// permitted, per spec.md section 4.4.
func Load(b *Bag, dir, name string) (int, error) {
	if err := validateBagName(name); err != nil {
		return 0, err
	}
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return 0, errs.BagError("load: " + err.Error())
	}
	defer f.Close()

	var values []value.Value
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		v, err := canon.Parse(line)
		if err != nil {
			return 0, err
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return 0, errs.BagError("load: " + err.Error())
	}
	b.appendRaw(values)
	return len(values), nil
}
