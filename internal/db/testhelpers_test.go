// Copyright (c) 2026 NBEConnect Team
// NBEConnect - NBE boiler integration setup
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/svj/nbeconnect/internal/model"
	"github.com/svj/nbeconnect/internal/security"
)

// newTestStore opens a fresh in-memory sqlite store that is closed and
// removed from the package default when the test ends.
func newTestStore(t *testing.T) *BunStore {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared"
	prev := store
	s, err := New("sqlite", dsn)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	bs, ok := s.(*BunStore)
	if !ok {
		t.Fatalf("store is not *BunStore: %T", s)
	}
	t.Cleanup(func() {
		_ = bs.Close()
		store = prev
	})
	return bs
}

func testEntry(serial, password, ip string) *model.Entry {
	return &model.Entry{
		ID:       uuid.NewString(),
		Domain:   model.Domain,
		Title:    model.EntryTitle,
		UniqueID: serial,
		Version:  model.EntryVersion,
		Data: model.EntryData{
			Serial:    serial,
			Password:  security.FromString(password),
			IPAddress: ip,
		},
		CreatedAt: time.Now().UTC(),
	}
}
