package create

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/course-catalog/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-catalog/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, viewer models.Viewer, draft models.CourseDraft) (*models.Course, models.Destination, error) {
	args := m.Called(ctx, viewer, draft)
	if res := args.Get(0); res != nil {
		return res.(*models.Course), args.Get(1).(models.Destination), args.Error(2)
	}
	return nil, args.Get(1).(models.Destination), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateHandler(t *testing.T) {
	admin := models.Viewer{UserID: "admin-1", Role: models.RoleAdmin}
	draft := models.CourseDraft{Title: "Rust", Price: 10, AccessType: models.AccessPremium}
	created := &models.Course{ID: "new-id", Title: "Rust", Price: 10, AccessType: models.AccessPremium}

	tests := []struct {
		name           string
		body           string
		viewer         models.Viewer
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "успешное создание",
			body:   `{"title":"Rust","price":10,"accessType":"premium"}`,
			viewer: admin,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, admin, draft).
					Return(created, models.CoursePage("new-id"), nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"path":"/course/new-id"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"title":`,
			viewer:         admin,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "нет названия",
			body:           `{"price":10}`,
			viewer:         admin,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Title is a required field`,
		},
		{
			name:           "неизвестный тип доступа",
			body:           `{"title":"Rust","accessType":"vip"}`,
			viewer:         admin,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field AccessType must be one of: free premium subscription`,
		},
		{
			name:   "не администратор",
			body:   `{"title":"Rust","price":10,"accessType":"premium"}`,
			viewer: models.Viewer{UserID: "u1", Role: "user"},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, models.Viewer{UserID: "u1", Role: "user"}, draft).
					Return(nil, models.Destination{}, nil)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"admin role required"}`,
		},
		{
			name:   "ошибка сохранения",
			body:   `{"title":"Rust","price":10,"accessType":"premium"}`,
			viewer: admin,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, admin, draft).
					Return(created, models.CoursePage("new-id"), errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not save course"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(newNoopLogger(), mockService)
			req := httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(middlewarectx.WithViewer(req.Context(), tt.viewer))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
