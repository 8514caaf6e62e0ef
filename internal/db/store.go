// Copyright (c) 2026 NBEConnect Team
// NBEConnect - NBE boiler integration setup
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"

	"github.com/svj/nbeconnect/internal/model"
)

// Store defines all database operations used by the flow manager and the CLI.
type Store interface {
	// Entry methods
	AddEntry(ctx context.Context, e *model.Entry) error
	GetEntry(ctx context.Context, id string) (*model.Entry, error)
	GetEntryByUniqueID(ctx context.Context, domain, uniqueID string) (*model.Entry, error)
	GetAllEntries(ctx context.Context) ([]model.Entry, error)
	UpdateEntryData(ctx context.Context, id string, data model.EntryData) error
	DeleteEntry(ctx context.Context, id string) error
	ImportEntries(ctx context.Context, entries []model.Entry, replace bool) (int, error)

	// Audit log methods
	LogAction(ctx context.Context, action, details string) error
	GetAllAuditLogEntries(ctx context.Context) ([]model.AuditLogEntry, error)

	Close() error
}
