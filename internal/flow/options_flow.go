// Copyright (c) 2026 NBEConnect Team
// NBEConnect - NBE boiler integration setup
// This source code is licensed under the MIT license found in the LICENSE file.

package flow

import (
	"context"
	"fmt"

	"github.com/svj/nbeconnect/internal/model"
)

// OptionsFlow edits the data of an existing entry.
type OptionsFlow struct {
	store EntryStore
	entry *model.Entry
}

// NewOptionsFlow returns an options flow for entry.
func NewOptionsFlow(store EntryStore, entry *model.Entry) *OptionsFlow {
	return &OptionsFlow{store: store, entry: entry}
}

// Entry returns the entry being edited.
func (f *OptionsFlow) Entry() *model.Entry { return f.entry }

// StepInit shows the form pre-filled with the entry's current data and, on
// a valid submission, replaces that data wholesale. The entry's unique ID
// and title are left alone.
func (f *OptionsFlow) StepInit(ctx context.Context, input map[string]string) (Result, error) {
	errs := map[string]string{}

	if input != nil {
		errs = validateInput(input)
		if len(errs) == 0 {
			data := model.EntryDataFromInput(input)
			if err := f.store.UpdateEntryData(ctx, f.entry.ID, data); err != nil {
				return Result{}, fmt.Errorf("failed to update entry %s: %w", f.entry.ID, err)
			}
			f.entry.Data = data
			return Result{
				Type:  ResultCreateEntry,
				Title: "",
				Data:  data,
				Entry: f.entry,
			}, nil
		}
	}

	return Result{
		Type:   ResultForm,
		StepID: StepInit,
		Schema: optionsSchema(f.entry.Data),
		Errors: errs,
	}, nil
}

func (f *OptionsFlow) initialStep() string { return StepInit }

func (f *OptionsFlow) step(ctx context.Context, stepID string, input map[string]string) (Result, error) {
	if stepID != StepInit {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownStep, stepID)
	}
	return f.StepInit(ctx, input)
}
