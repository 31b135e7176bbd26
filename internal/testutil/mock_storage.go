//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/truco/internal/types"
)

// MockRoomStore 房间目录 mock
type MockRoomStore struct {
	mock.Mock
}

func (m *MockRoomStore) SaveRoom(ctx context.Context, summary *types.RoomSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *MockRoomStore) DeleteRoom(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

// MockResultRecorder 对局结果记录 mock
type MockResultRecorder struct {
	mock.Mock
}

func (m *MockResultRecorder) RecordMatch(ctx context.Context, result *types.MatchResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}
