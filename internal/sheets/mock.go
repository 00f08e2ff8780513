package sheets

import (
	"context"
	"sync"
)

// MockWriter is a mock implementation of ReportWriter for testing.
type MockWriter struct {
	WriteFunc  func(ctx context.Context, snap Snapshot) error
	WriteCalls []Snapshot
	mu         sync.Mutex
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write implements ReportWriter.
func (m *MockWriter) Write(ctx context.Context, snap Snapshot) error {
	m.mu.Lock()
	m.WriteCalls = append(m.WriteCalls, snap)
	fn := m.WriteFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, snap)
	}
	return nil
}

// Calls returns a copy of the snapshots written so far.
func (m *MockWriter) Calls() []Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Snapshot, len(m.WriteCalls))
	copy(out, m.WriteCalls)
	return out
}

var _ ReportWriter = (*MockWriter)(nil)
