package testutil

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"a2t/internal/app/model"
)

// MockTranscriber is a testify mock of api.Transcriber. Every call is also
// recorded in Calls so tests can inspect the units that were uploaded.
type MockTranscriber struct {
	mock.Mock

	mu    sync.Mutex
	Calls []model.AudioUnit
}

func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

func (m *MockTranscriber) Transcribe(ctx context.Context, unit model.AudioUnit) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, unit)
	m.mu.Unlock()

	args := m.Called(ctx, unit)
	return args.String(0), args.Error(1)
}

// OnIndex expects a call for the unit with the given index.
func (m *MockTranscriber) OnIndex(index int) *mock.Call {
	return m.On("Transcribe", mock.Anything, mock.MatchedBy(func(u model.AudioUnit) bool {
		return u.Index == index
	}))
}

// Recorded returns a copy of the recorded units.
func (m *MockTranscriber) Recorded() []model.AudioUnit {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.AudioUnit(nil), m.Calls...)
}
