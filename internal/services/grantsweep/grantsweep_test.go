package grantsweep

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-catalog/internal/cache"
	"github.com/magabrotheeeer/course-catalog/internal/config"
	"github.com/magabrotheeeer/course-catalog/internal/models"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) InvalidateMatch(ctx context.Context, pattern string) (int, error) {
	args := m.Called(ctx, pattern)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func eventBody(t *testing.T, eventType, courseID string) []byte {
	t.Helper()
	body, err := json.Marshal(models.CourseEvent{Type: eventType, CourseID: courseID})
	require.NoError(t, err)
	return body
}

func TestSweeper_Handle(t *testing.T) {
	tests := []struct {
		name      string
		body      func(t *testing.T) []byte
		setupMock func(*MockCache)
		wantErr   bool
	}{
		{
			name: "удаление курса",
			body: func(t *testing.T) []byte { return eventBody(t, models.EventCourseDeleted, "c1") },
			setupMock: func(m *MockCache) {
				m.On("InvalidateMatch", mock.Anything, "entitlement:*:c1:*").Return(3, nil)
			},
		},
		{
			name:      "создание курса игнорируется",
			body:      func(t *testing.T) []byte { return eventBody(t, models.EventCourseCreated, "c1") },
			setupMock: func(_ *MockCache) {},
		},
		{
			name:      "битое сообщение подтверждается",
			body:      func(_ *testing.T) []byte { return []byte("{not json") },
			setupMock: func(_ *MockCache) {},
		},
		{
			name: "ошибка кэша",
			body: func(t *testing.T) []byte { return eventBody(t, models.EventCourseDeleted, "c1") },
			setupMock: func(m *MockCache) {
				m.On("InvalidateMatch", mock.Anything, "entitlement:*:c1:*").Return(0, errors.New("redis down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockCache)
			tt.setupMock(m)

			err := New(m, newNoopLogger()).Handle(tt.body(t))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			m.AssertExpectations(t)
		})
	}
}

func TestSweeper_WithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := cache.InitServer(context.Background(), config.RedisConnection{
		AddressRedis: mr.Addr(),
		TimeoutRedis: time.Second,
		DialTimeout:  time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "entitlement:u1:gone:premium", true, time.Minute))
	require.NoError(t, c.Set(ctx, "entitlement:u1:kept:premium", true, time.Minute))

	require.NoError(t, New(c, newNoopLogger()).Handle(eventBody(t, models.EventCourseDeleted, "gone")))

	assert.False(t, mr.Exists("entitlement:u1:gone:premium"))
	assert.True(t, mr.Exists("entitlement:u1:kept:premium"))
}
