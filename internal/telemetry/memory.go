// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"context"
	"errors"
	"sync"
)

// MemoryStore keeps records in process. Used by tests and the TUI when no
// log file is configured.
type MemoryStore struct {
	mu      sync.Mutex
	records []DecisionRecord
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append implements Recorder.
func (m *MemoryStore) Append(ctx context.Context, rec DecisionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.records = append(m.records, rec)
	m.mu.Unlock()
	return nil
}

// Records implements Reader. The returned slice is a copy.
func (m *MemoryStore) Records(ctx context.Context) ([]DecisionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]DecisionRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

// Len returns the number of records held.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// Multi fans every record out to several recorders. All recorders are tried;
// failures are joined. Records are read from the first Reader among them.
type Multi []Recorder

// Append implements Recorder.
func (m Multi) Append(ctx context.Context, rec DecisionRecord) error {
	var errs []error
	for _, r := range m {
		if err := r.Append(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Records implements Reader.
func (m Multi) Records(ctx context.Context) ([]DecisionRecord, error) {
	for _, r := range m {
		if reader, ok := r.(Reader); ok {
			return reader.Records(ctx)
		}
	}
	return nil, nil
}
