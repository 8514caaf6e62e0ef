// Copyright (c) 2026 NBEConnect Team
// NBEConnect - NBE boiler integration setup
// This source code is licensed under the MIT license found in the LICENSE file.

package flow

import (
	"context"
	"fmt"

	"github.com/svj/nbeconnect/internal/model"
)

// ConfigFlow is the setup flow that creates a new entry.
type ConfigFlow struct {
	store    EntryStore
	uniqueID string
}

// NewConfigFlow returns a setup flow checking uniqueness against store.
func NewConfigFlow(store EntryStore) *ConfigFlow {
	return &ConfigFlow{store: store}
}

// UniqueID returns the identity registered by the last valid submission.
func (f *ConfigFlow) UniqueID() string { return f.uniqueID }

// StepUser handles the initial setup step. A nil input shows the empty form.
func (f *ConfigFlow) StepUser(ctx context.Context, input map[string]string) (Result, error) {
	errs := map[string]string{}

	if input != nil {
		errs = validateInput(input)
		if len(errs) == 0 {
			serial := input[model.KeySerial]
			configured, err := f.setUniqueID(ctx, serial)
			if err != nil {
				return Result{}, err
			}
			if configured {
				return Result{Type: ResultAbort, Reason: ReasonAlreadyConfigured}, nil
			}
			return Result{
				Type:     ResultCreateEntry,
				Title:    model.EntryTitle,
				Data:     model.EntryDataFromInput(input),
				UniqueID: f.uniqueID,
			}, nil
		}
	}

	return Result{
		Type:   ResultForm,
		StepID: StepUser,
		Schema: userSchema(),
		Errors: errs,
	}, nil
}

// setUniqueID registers id as this flow's identity and reports whether an
// entry already claims it.
func (f *ConfigFlow) setUniqueID(ctx context.Context, id string) (bool, error) {
	f.uniqueID = id
	existing, err := f.store.GetEntryByUniqueID(ctx, model.Domain, id)
	if err != nil {
		return false, fmt.Errorf("failed to look up unique id: %w", err)
	}
	return existing != nil, nil
}

func (f *ConfigFlow) initialStep() string { return StepUser }

func (f *ConfigFlow) step(ctx context.Context, stepID string, input map[string]string) (Result, error) {
	if stepID != StepUser {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownStep, stepID)
	}
	return f.StepUser(ctx, input)
}
