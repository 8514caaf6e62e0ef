// Package db persists configuration entries and the audit log.
//
// A single bun-backed implementation (BunStore) serves SQLite, PostgreSQL and
// MySQL; the dialect is picked from the database type passed to New. Schema
// changes live in embedded SQL migrations under migrations/<type> and are
// applied on open, tracked in the schema_migrations table.
//
// Testing notes
//   - Prefer New("sqlite", "file:<name>?mode=memory&cache=shared") in tests
//     that need real DB semantics and migrations.
//   - Flow tests that do not need SQL use an in-memory fake of the
//     flow.EntryStore interface instead.
package db
