package edit

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/course-catalog/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-catalog/internal/models"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Get(id string) (models.Course, bool) {
	args := m.Called(id)
	return args.Get(0).(models.Course), args.Bool(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) Edit(viewer models.Viewer, id string) models.Destination {
	args := m.Called(viewer, id)
	return args.Get(0).(models.Destination)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEditHandler(t *testing.T) {
	admin := models.Viewer{UserID: "a1", Role: models.RoleAdmin}
	user := models.Viewer{UserID: "u1", Role: "user"}

	tests := []struct {
		name           string
		id             string
		viewer         models.Viewer
		setupMocks     func(*MockCatalog, *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "переход в редактор",
			id:     "c1",
			viewer: admin,
			setupMocks: func(c *MockCatalog, s *MockService) {
				c.On("Get", "c1").Return(models.Course{ID: "c1"}, true)
				s.On("Edit", admin, "c1").Return(models.CourseEditorPage("c1"))
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"path":"/course-editor/c1"`,
		},
		{
			name:   "курс не найден",
			id:     "nope",
			viewer: admin,
			setupMocks: func(c *MockCatalog, _ *MockService) {
				c.On("Get", "nope").Return(models.Course{}, false)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"course not found"}`,
		},
		{
			name:   "не администратор",
			id:     "c1",
			viewer: user,
			setupMocks: func(c *MockCatalog, s *MockService) {
				c.On("Get", "c1").Return(models.Course{ID: "c1"}, true)
				s.On("Edit", user, "c1").Return(models.Destination{})
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"admin role required"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := new(MockCatalog)
			svc := new(MockService)
			tt.setupMocks(cat, svc)

			handler := New(newNoopLogger(), cat, svc)
			req := httptest.NewRequest(http.MethodGet, "/courses/"+tt.id+"/edit", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			req = req.WithContext(middlewarectx.WithViewer(ctx, tt.viewer))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			cat.AssertExpectations(t)
			svc.AssertExpectations(t)
		})
	}
}
