// Copyright (c) 2026 NBEConnect Team
// NBEConnect - NBE boiler integration setup
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"
	"strings"
)

var (
	// ErrDuplicate is returned when inserting an entry whose (domain, unique_id)
	// is already taken.
	ErrDuplicate = errors.New("duplicate record")
	// ErrNotFound is returned when updating or deleting a missing entry.
	ErrNotFound = errors.New("record not found")
	// ErrUnsupportedType is returned for a database type without a driver.
	ErrUnsupportedType = errors.New("unsupported database type")
)

// MapDBError maps driver-specific constraint violations to ErrDuplicate.
// The match is string based so this file does not import the drivers.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	le := strings.ToLower(err.Error())
	// MySQL duplicate entry (1062), Postgres unique violation (23505), SQLite unique constraint
	if strings.Contains(le, "duplicate") || strings.Contains(le, "unique") || strings.Contains(le, "23505") || strings.Contains(le, "1062") {
		return ErrDuplicate
	}
	return err
}
