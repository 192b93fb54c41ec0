package ai

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// mockChatter implements Chatter for tests.
type mockChatter struct {
	mock.Mock
}

func (m *mockChatter) ChatJSON(ctx context.Context, system, user string) (string, Usage, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Get(1).(Usage), args.Error(2)
}
