// Copyright (c) 2026 NBEConnect Team
// NBEConnect - NBE boiler integration setup
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os/user"
	"time"

	"github.com/svj/nbeconnect/internal/model"
	"github.com/svj/nbeconnect/internal/security"
	"github.com/uptrace/bun"
)

// EntryModel maps the config_entries table.
type EntryModel struct {
	bun.BaseModel `bun:"table:config_entries"`
	ID            string          `bun:"id,pk"`
	Domain        string          `bun:"domain"`
	Title         string          `bun:"title"`
	UniqueID      string          `bun:"unique_id"`
	Version       int             `bun:"version"`
	Serial        string          `bun:"serial"`
	Password      security.Secret `bun:"password"`
	IPAddress     string          `bun:"ip_address"`
	CreatedAt     time.Time       `bun:"created_at"`
	UpdatedAt     time.Time       `bun:"updated_at"`
}

// AuditLogModel maps the audit_log table.
type AuditLogModel struct {
	bun.BaseModel `bun:"table:audit_log"`
	ID            int       `bun:"id,pk,autoincrement"`
	Timestamp     time.Time `bun:"timestamp"`
	Username      string    `bun:"username"`
	Action        string    `bun:"action"`
	Details       string    `bun:"details"`
}

func entryToModel(e EntryModel) model.Entry {
	return model.Entry{
		ID:       e.ID,
		Domain:   e.Domain,
		Title:    e.Title,
		UniqueID: e.UniqueID,
		Version:  e.Version,
		Data: model.EntryData{
			Serial:    e.Serial,
			Password:  e.Password,
			IPAddress: e.IPAddress,
		},
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func entryFromModel(e *model.Entry) *EntryModel {
	return &EntryModel{
		ID:        e.ID,
		Domain:    e.Domain,
		Title:     e.Title,
		UniqueID:  e.UniqueID,
		Version:   e.Version,
		Serial:    e.Data.Serial,
		Password:  e.Data.Password,
		IPAddress: e.Data.IPAddress,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// BunStore implements Store for every supported dialect.
type BunStore struct {
	bun *bun.DB
}

// BunDB exposes the underlying *bun.DB for tests and maintenance.
func (s *BunStore) BunDB() *bun.DB { return s.bun }

// Close closes the underlying database.
func (s *BunStore) Close() error { return s.bun.Close() }

// AddEntry inserts e. A taken (domain, unique_id) yields ErrDuplicate.
// Zero timestamps are set to now.
func (s *BunStore) AddEntry(ctx context.Context, e *model.Entry) error {
	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = e.CreatedAt
	}
	if _, err := s.bun.NewInsert().Model(entryFromModel(e)).Exec(ctx); err != nil {
		return MapDBError(err)
	}
	_ = s.LogAction(ctx, "ADD_ENTRY", fmt.Sprintf("entry: %s, serial: %s", e.ID, e.Data.Serial))
	return nil
}

// GetEntry returns the entry with the given ID, or nil if there is none.
func (s *BunStore) GetEntry(ctx context.Context, id string) (*model.Entry, error) {
	return getEntryWhere(ctx, s.bun, "id = ?", id)
}

// GetEntryByUniqueID returns the entry of domain registered under uniqueID,
// or nil if there is none.
func (s *BunStore) GetEntryByUniqueID(ctx context.Context, domain, uniqueID string) (*model.Entry, error) {
	return getEntryWhere(ctx, s.bun, "domain = ? AND unique_id = ?", domain, uniqueID)
}

func getEntryWhere(ctx context.Context, db bun.IDB, where string, args ...any) (*model.Entry, error) {
	var m EntryModel
	err := db.NewSelect().Model(&m).Where(where, args...).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	e := entryToModel(m)
	return &e, nil
}

// GetAllEntries returns all entries, oldest first.
func (s *BunStore) GetAllEntries(ctx context.Context) ([]model.Entry, error) {
	var ms []EntryModel
	if err := s.bun.NewSelect().Model(&ms).Order("created_at ASC", "id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.Entry, 0, len(ms))
	for _, m := range ms {
		out = append(out, entryToModel(m))
	}
	return out, nil
}

// UpdateEntryData replaces the whole data record of entry id.
func (s *BunStore) UpdateEntryData(ctx context.Context, id string, data model.EntryData) error {
	existing, err := s.GetEntry(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	m := &EntryModel{
		Serial:    data.Serial,
		Password:  data.Password,
		IPAddress: data.IPAddress,
		UpdatedAt: time.Now().UTC(),
	}
	_, err = s.bun.NewUpdate().
		Model(m).
		Column("serial", "password", "ip_address", "updated_at").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return MapDBError(err)
	}
	_ = s.LogAction(ctx, "UPDATE_ENTRY", fmt.Sprintf("entry: %s, serial: %s", id, data.Serial))
	return nil
}

// DeleteEntry removes entry id.
func (s *BunStore) DeleteEntry(ctx context.Context, id string) error {
	res, err := s.bun.NewDelete().Model((*EntryModel)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	_ = s.LogAction(ctx, "DELETE_ENTRY", fmt.Sprintf("entry: %s", id))
	return nil
}

// ImportEntries writes entries in one transaction. With replace set, all
// existing entries are removed first; otherwise entries whose ID or
// (domain, unique_id) already exists are skipped. It returns the number of
// inserted entries.
func (s *BunStore) ImportEntries(ctx context.Context, entries []model.Entry, replace bool) (int, error) {
	inserted := 0
	err := s.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if replace {
			if _, err := ExecRaw(ctx, tx, "DELETE FROM config_entries"); err != nil {
				return fmt.Errorf("failed to clear entries: %w", err)
			}
		}
		for i := range entries {
			e := entries[i]
			if !replace {
				byID, err := getEntryWhere(ctx, tx, "id = ?", e.ID)
				if err != nil {
					return err
				}
				byUnique, err := getEntryWhere(ctx, tx, "domain = ? AND unique_id = ?", e.Domain, e.UniqueID)
				if err != nil {
					return err
				}
				if byID != nil || byUnique != nil {
					continue
				}
			}
			if _, err := tx.NewInsert().Model(entryFromModel(&e)).Exec(ctx); err != nil {
				return fmt.Errorf("failed to import entry %s: %w", e.ID, MapDBError(err))
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	_ = s.LogAction(ctx, "IMPORT_ENTRIES", fmt.Sprintf("count: %d, replace: %t", inserted, replace))
	return inserted, nil
}

// LogAction records an audit trail event for the current OS user.
func (s *BunStore) LogAction(ctx context.Context, action, details string) error {
	username := "unknown"
	if u, err := user.Current(); err == nil {
		username = u.Username
	}
	_, err := s.bun.NewInsert().Model(&AuditLogModel{
		Timestamp: time.Now().UTC(),
		Username:  username,
		Action:    action,
		Details:   details,
	}).Exec(ctx)
	if err != nil {
		dbLogf("db: audit log write failed: %v", err)
	}
	return err
}

// GetAllAuditLogEntries returns the audit log, most recent first.
func (s *BunStore) GetAllAuditLogEntries(ctx context.Context) ([]model.AuditLogEntry, error) {
	var ms []AuditLogModel
	if err := s.bun.NewSelect().Model(&ms).Order("timestamp DESC", "id DESC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.AuditLogEntry, 0, len(ms))
	for _, m := range ms {
		out = append(out, model.AuditLogEntry{
			ID:        m.ID,
			Timestamp: m.Timestamp.Format(time.RFC3339),
			Username:  m.Username,
			Action:    m.Action,
			Details:   m.Details,
		})
	}
	return out, nil
}

var _ Store = (*BunStore)(nil)
