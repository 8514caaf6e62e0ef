package backup

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/svj/nbeconnect/internal/db"
	"github.com/svj/nbeconnect/internal/model"
	"github.com/svj/nbeconnect/internal/security"
)

func sampleEntries() []model.Entry {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return []model.Entry{
		{ID: "e1", Domain: model.Domain, Title: model.EntryTitle, UniqueID: "SN1", Version: 1,
			Data: model.EntryData{Serial: "SN1", Password: security.FromString("pw1")}, CreatedAt: now, UpdatedAt: now},
		{ID: "e2", Domain: model.Domain, Title: model.EntryTitle, UniqueID: "SN2", Version: 1,
			Data: model.EntryData{Serial: "SN2", Password: security.FromString("pw2"), IPAddress: "10.0.0.2"}, CreatedAt: now, UpdatedAt: now},
	}
}

func TestWriteRead_KeepsPasswords(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleEntries()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Data.Password.Reveal() != "pw1" || got[1].Data.IPAddress != "10.0.0.2" {
		t.Fatalf("unexpected entries: %+v / %+v", got[0].Data.Values(), got[1].Data.Values())
	}
	if got[1].UniqueID != "SN2" || got[1].Title != model.EntryTitle {
		t.Fatalf("envelope not preserved: %+v", got[1])
	}
}

func TestRead_RejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	zw, _ := zstd.NewWriter(&buf)
	_, _ = zw.Write([]byte(`{"format_version": 99, "entries": []}`))
	_ = zw.Close()

	if _, err := Read(&buf); err == nil || !strings.Contains(err.Error(), "format version") {
		t.Fatalf("expected format version error, got %v", err)
	}
}

func TestRead_RejectsGarbage(t *testing.T) {
	if _, err := Read(strings.NewReader("not zstd")); err == nil {
		t.Fatalf("expected error for non-zstd input")
	}
}

func TestExportImport_BetweenStores(t *testing.T) {
	ctx := context.Background()
	src, err := db.NewStoreFromDSN("sqlite", "file:backup_src?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open src: %v", err)
	}
	defer func() { _ = src.Close() }()
	dst, err := db.NewStoreFromDSN("sqlite", "file:backup_dst?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open dst: %v", err)
	}
	defer func() { _ = dst.Close() }()

	for _, e := range sampleEntries() {
		e := e
		if err := src.AddEntry(ctx, &e); err != nil {
			t.Fatalf("AddEntry: %v", err)
		}
	}

	var buf bytes.Buffer
	n, err := Export(ctx, src, &buf)
	if err != nil || n != 2 {
		t.Fatalf("Export = %d, %v", n, err)
	}

	n, err = Import(ctx, dst, bytes.NewReader(buf.Bytes()), false)
	if err != nil || n != 2 {
		t.Fatalf("Import = %d, %v", n, err)
	}
	// A second merge import adds nothing.
	n, err = Import(ctx, dst, bytes.NewReader(buf.Bytes()), false)
	if err != nil || n != 0 {
		t.Fatalf("second Import = %d, %v", n, err)
	}

	e, err := dst.GetEntryByUniqueID(ctx, model.Domain, "SN1")
	if err != nil || e == nil || e.Data.Password.Reveal() != "pw1" {
		t.Fatalf("restored entry wrong: %v, %v", e, err)
	}
}
