// Copyright (c) 2026 NBEConnect Team
// NBEConnect - NBE boiler integration setup
// This source code is licensed under the MIT license found in the LICENSE file.

// Package backup writes and reads zstd-compressed JSON archives of all
// configuration entries.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/svj/nbeconnect/internal/model"
	"github.com/svj/nbeconnect/internal/security"
)

// FormatVersion is the archive layout version written by Write.
const FormatVersion = 1

// Archive is the JSON document inside a backup file.
type Archive struct {
	FormatVersion int           `json:"format_version"`
	CreatedAt     time.Time     `json:"created_at"`
	Entries       []EntryRecord `json:"entries"`
}

// EntryRecord is one entry with its password in plaintext. Archives must be
// stored as carefully as the database itself.
type EntryRecord struct {
	ID        string    `json:"id"`
	Domain    string    `json:"domain"`
	Title     string    `json:"title"`
	UniqueID  string    `json:"unique_id"`
	Version   int       `json:"version"`
	Serial    string    `json:"serial"`
	Password  string    `json:"password"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Source lists the entries to back up.
type Source interface {
	GetAllEntries(ctx context.Context) ([]model.Entry, error)
}

// Sink receives restored entries.
type Sink interface {
	ImportEntries(ctx context.Context, entries []model.Entry, replace bool) (int, error)
}

func recordFromEntry(e model.Entry) EntryRecord {
	return EntryRecord{
		ID:        e.ID,
		Domain:    e.Domain,
		Title:     e.Title,
		UniqueID:  e.UniqueID,
		Version:   e.Version,
		Serial:    e.Data.Serial,
		Password:  e.Data.Password.Reveal(),
		IPAddress: e.Data.IPAddress,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (r EntryRecord) entry() model.Entry {
	return model.Entry{
		ID:       r.ID,
		Domain:   r.Domain,
		Title:    r.Title,
		UniqueID: r.UniqueID,
		Version:  r.Version,
		Data: model.EntryData{
			Serial:    r.Serial,
			Password:  security.FromString(r.Password),
			IPAddress: r.IPAddress,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Write encodes entries as a compressed archive to w.
func Write(w io.Writer, entries []model.Entry) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("could not create zstd writer: %w", err)
	}

	a := Archive{FormatVersion: FormatVersion, CreatedAt: time.Now().UTC(), Entries: make([]EntryRecord, 0, len(entries))}
	for _, e := range entries {
		a.Entries = append(a.Entries, recordFromEntry(e))
	}

	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		_ = zw.Close()
		return fmt.Errorf("could not encode json to zstd writer: %w", err)
	}
	return zw.Close()
}

// Read decodes a compressed archive from r.
func Read(r io.Reader) ([]model.Entry, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zr.Close()

	var a Archive
	if err := json.NewDecoder(zr).Decode(&a); err != nil {
		return nil, fmt.Errorf("could not decode json from zstd reader: %w", err)
	}
	if a.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("unsupported backup format version %d", a.FormatVersion)
	}

	out := make([]model.Entry, 0, len(a.Entries))
	for _, rec := range a.Entries {
		out = append(out, rec.entry())
	}
	return out, nil
}

// Export writes every entry of src to w and returns how many were written.
func Export(ctx context.Context, src Source, w io.Writer) (int, error) {
	entries, err := src.GetAllEntries(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not list entries: %w", err)
	}
	if err := Write(w, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Import reads an archive from r into dst. With replace set, existing
// entries are wiped first; otherwise entries already present are skipped.
func Import(ctx context.Context, dst Sink, r io.Reader, replace bool) (int, error) {
	entries, err := Read(r)
	if err != nil {
		return 0, err
	}
	n, err := dst.ImportEntries(ctx, entries, replace)
	if err != nil {
		return 0, fmt.Errorf("could not import entries: %w", err)
	}
	return n, nil
}
