// Copyright (c) 2026 NBEConnect Team
// NBEConnect - NBE boiler integration setup
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the records shared by the flows, the store and the UI.
package model

import (
	"fmt"
	"time"

	"github.com/svj/nbeconnect/internal/security"
)

const (
	// Domain identifies entries created by this integration.
	Domain = "nbeconnect"
	// EntryTitle is the title given to entries created by the setup flow.
	EntryTitle = "NBEConnect by svj"
	// EntryVersion is the schema version of EntryData.
	EntryVersion = 1
)

// Field keys of a submitted form and of EntryData.
const (
	KeySerial    = "serial"
	KeyPassword  = "password"
	KeyIPAddress = "ip_address"
)

// EntryData is the configuration record collected by the flows.
type EntryData struct {
	Serial    string
	Password  security.Secret
	IPAddress string
}

// EntryDataFromInput builds EntryData from a submitted form. Absent keys
// become empty strings.
func EntryDataFromInput(input map[string]string) EntryData {
	return EntryData{
		Serial:    input[KeySerial],
		Password:  security.FromString(input[KeyPassword]),
		IPAddress: input[KeyIPAddress],
	}
}

// Values returns the record as form values, password in plaintext.
func (d EntryData) Values() map[string]string {
	return map[string]string{
		KeySerial:    d.Serial,
		KeyPassword:  d.Password.Reveal(),
		KeyIPAddress: d.IPAddress,
	}
}

// Entry is a persisted configuration entry for one boiler.
type Entry struct {
	ID        string
	Domain    string
	Title     string
	UniqueID  string
	Version   int
	Data      EntryData
	CreatedAt time.Time
	UpdatedAt time.Time
}

// String returns a short, password-free description.
func (e Entry) String() string {
	if e.Data.IPAddress == "" {
		return fmt.Sprintf("%s (serial %s)", e.Title, e.Data.Serial)
	}
	return fmt.Sprintf("%s (serial %s, ip %s)", e.Title, e.Data.Serial, e.Data.IPAddress)
}

// AuditLogEntry is one row of the audit trail.
type AuditLogEntry struct {
	ID        int
	Timestamp string
	Username  string
	Action    string
	Details   string
}
