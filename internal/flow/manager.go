// Copyright (c) 2026 NBEConnect Team
// NBEConnect - NBE boiler integration setup
// This source code is licensed under the MIT license found in the LICENSE file.

package flow

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/svj/nbeconnect/internal/db"
	"github.com/svj/nbeconnect/internal/logging"
	"github.com/svj/nbeconnect/internal/model"
)

type flowKind int

const (
	kindConfig flowKind = iota
	kindOptions
)

// progress is one in-progress flow. mu serializes submissions to it.
type progress struct {
	mu      sync.Mutex
	kind    flowKind
	handler string
	stepID  string
	flow    stepper
}

// Manager starts flows, routes submissions to their current step and
// persists the entries produced by setup flows.
type Manager struct {
	mu    sync.Mutex
	store EntryStore
	flows map[string]*progress
	newID func() string
	now   func() time.Time
}

// NewManager returns a Manager backed by store.
func NewManager(store EntryStore) *Manager {
	return &Manager{
		store: store,
		flows: make(map[string]*progress),
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// StartConfig starts a setup flow and returns its first form.
func (m *Manager) StartConfig(ctx context.Context) (Result, error) {
	return m.start(ctx, &progress{kind: kindConfig, handler: model.Domain, flow: NewConfigFlow(m.store)})
}

// StartOptions starts an options flow for entry entryID and returns the
// pre-filled form.
func (m *Manager) StartOptions(ctx context.Context, entryID string) (Result, error) {
	entry, err := m.store.GetEntry(ctx, entryID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load entry %s: %w", entryID, err)
	}
	if entry == nil {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownEntry, entryID)
	}
	return m.start(ctx, &progress{kind: kindOptions, handler: entryID, flow: NewOptionsFlow(m.store, entry)})
}

func (m *Manager) start(ctx context.Context, p *progress) (Result, error) {
	flowID := m.newID()
	p.stepID = p.flow.initialStep()

	res, err := p.flow.step(ctx, p.stepID, nil)
	if err != nil {
		return Result{}, err
	}

	m.mu.Lock()
	m.flows[flowID] = p
	m.mu.Unlock()
	logging.Debugf("flow %s: started (handler %s, step %s)", flowID, p.handler, p.stepID)

	return m.finish(ctx, flowID, p, res)
}

// Configure submits input to the current step of flow flowID.
func (m *Manager) Configure(ctx context.Context, flowID string, input map[string]string) (Result, error) {
	m.mu.Lock()
	p, ok := m.flows[flowID]
	m.mu.Unlock()
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownFlow, flowID)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// The flow may have finished while we waited for p.mu.
	m.mu.Lock()
	_, ok = m.flows[flowID]
	m.mu.Unlock()
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownFlow, flowID)
	}

	if input == nil {
		input = map[string]string{}
	}
	res, err := p.flow.step(ctx, p.stepID, input)
	if err != nil {
		return Result{}, err
	}
	return m.finish(ctx, flowID, p, res)
}

// finish stamps res with the flow identity, persists setup results and
// drops terminated flows.
func (m *Manager) finish(ctx context.Context, flowID string, p *progress, res Result) (Result, error) {
	res.FlowID = flowID
	res.Handler = p.handler

	switch res.Type {
	case ResultForm:
		p.stepID = res.StepID
		if code := res.BaseError(); code != "" {
			logging.Debugf("flow %s: step %s rejected input: %s", flowID, res.StepID, code)
		}
		return res, nil

	case ResultCreateEntry:
		if p.kind == kindConfig {
			entry, err := m.createEntry(ctx, res)
			switch {
			case errors.Is(err, db.ErrDuplicate):
				// Another flow registered the same serial after our check.
				logging.Infof("flow %s: aborted, serial %s already configured", flowID, res.UniqueID)
				res = Result{Type: ResultAbort, FlowID: flowID, Handler: p.handler, Reason: ReasonAlreadyConfigured}
			case err != nil:
				return Result{}, err
			default:
				res.Entry = entry
				logging.Infof("flow %s: created entry %s for serial %s", flowID, entry.ID, entry.Data.Serial)
			}
		} else {
			logging.Infof("flow %s: updated entry %s", flowID, p.handler)
		}

	case ResultAbort:
		logging.Infof("flow %s: aborted (%s)", flowID, res.Reason)
	}

	m.remove(flowID)
	return res, nil
}

func (m *Manager) createEntry(ctx context.Context, res Result) (*model.Entry, error) {
	now := m.now()
	entry := &model.Entry{
		ID:        m.newID(),
		Domain:    model.Domain,
		Title:     res.Title,
		UniqueID:  res.UniqueID,
		Version:   model.EntryVersion,
		Data:      res.Data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.AddEntry(ctx, entry); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}
	return entry, nil
}

// Abort discards an in-progress flow. It reports whether the flow existed.
func (m *Manager) Abort(flowID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.flows[flowID]; !ok {
		return false
	}
	delete(m.flows, flowID)
	logging.Debugf("flow %s: aborted by user", flowID)
	return true
}

// InProgress lists the IDs of all in-progress flows.
func (m *Manager) InProgress() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.flows))
	for id := range m.flows {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (m *Manager) remove(flowID string) {
	m.mu.Lock()
	delete(m.flows, flowID)
	m.mu.Unlock()
}
