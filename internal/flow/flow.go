// Copyright (c) 2026 NBEConnect Team
// NBEConnect - NBE boiler integration setup
// This source code is licensed under the MIT license found in the LICENSE file.

// Package flow implements the setup and options flows of the NBEConnect
// integration and the manager that drives them step by step.
//
// A flow step takes the submitted form values (nil on first invocation) and
// returns a Result: either a form to show (possibly carrying errors), a
// create-entry result, or an abort. Validation problems never surface as Go
// errors; a returned error always means the entry store failed.
package flow

import (
	"context"
	"errors"

	"github.com/svj/nbeconnect/internal/model"
)

// ResultType tells the renderer what to do with a Result.
type ResultType string

const (
	ResultForm        ResultType = "form"
	ResultCreateEntry ResultType = "create_entry"
	ResultAbort       ResultType = "abort"
)

// Step IDs.
const (
	StepUser = "user"
	StepInit = "init"
)

// Error and abort codes. Errors are reported under ErrorKeyBase.
const (
	ErrorKeyBase            = "base"
	ErrMissingSerial        = "missing_serial"
	ErrMissingPassword      = "missing_password"
	ReasonAlreadyConfigured = "already_configured"
)

var (
	// ErrUnknownFlow is returned for a flow ID that is not in progress.
	ErrUnknownFlow = errors.New("unknown flow")
	// ErrUnknownEntry is returned when an options flow targets a missing entry.
	ErrUnknownEntry = errors.New("unknown config entry")
	// ErrUnknownStep is returned when a flow is asked to run a step it does not have.
	ErrUnknownStep = errors.New("unknown flow step")
)

// Result is the outcome of one flow step.
type Result struct {
	Type    ResultType
	FlowID  string
	Handler string
	StepID  string
	Schema  Schema
	Errors  map[string]string

	Title    string
	Data     model.EntryData
	UniqueID string
	Reason   string

	// Entry is the created or updated entry, set once the host has
	// persisted the result.
	Entry *model.Entry
}

// BaseError returns the form-level error code, or "".
func (r Result) BaseError() string {
	return r.Errors[ErrorKeyBase]
}

// Terminal reports whether the flow ends with this result.
func (r Result) Terminal() bool {
	return r.Type == ResultCreateEntry || r.Type == ResultAbort
}

// EntryStore is the part of the host entry storage the flows consume.
// GetEntry and GetEntryByUniqueID return nil, nil when nothing matches.
type EntryStore interface {
	GetEntry(ctx context.Context, id string) (*model.Entry, error)
	GetEntryByUniqueID(ctx context.Context, domain, uniqueID string) (*model.Entry, error)
	AddEntry(ctx context.Context, e *model.Entry) error
	UpdateEntryData(ctx context.Context, id string, data model.EntryData) error
}

// stepper is implemented by every flow the Manager can drive.
type stepper interface {
	initialStep() string
	step(ctx context.Context, stepID string, input map[string]string) (Result, error)
}
