package list

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-catalog/internal/catalog"
	"github.com/magabrotheeeer/course-catalog/internal/models"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Status() (catalog.Status, error) {
	args := m.Called()
	return args.Get(0).(catalog.Status), args.Error(1)
}

func (m *MockService) Query(term string, page int) catalog.View {
	args := m.Called(term, page)
	return args.Get(0).(catalog.View)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestListHandler(t *testing.T) {
	course := models.Course{
		ID:        "c1",
		Title:     "Go Basics",
		Thumbnail: "",
		ImageURL:  "https://img/c1.png",
		Level:     models.LevelBeginner,
		CreatedAt: "2024-01-01T00:00:00.000Z",
	}

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "каталог ещё загружается",
			url:  "/courses",
			setupMock: func(m *MockService) {
				m.On("Status").Return(catalog.StatusLoading, nil)
				m.On("Query", "", 1).Return(catalog.View{Page: 1, TotalPages: 0})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"state":"loading"`,
		},
		{
			name: "страница с поиском",
			url:  "/courses?search=go&page=2",
			setupMock: func(m *MockService) {
				m.On("Status").Return(catalog.StatusReady, nil)
				m.On("Query", "go", 2).Return(catalog.View{
					Courses:    []models.Course{course},
					SearchTerm: "go",
					Page:       2,
					TotalPages: 2,
					Total:      16,
				})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"image":"https://img/c1.png"`,
		},
		{
			name:           "некорректный номер страницы",
			url:            "/courses?page=abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid page"}`,
		},
		{
			name:           "нулевая страница",
			url:            "/courses?page=0",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid page"}`,
		},
		{
			name:           "отрицательная страница",
			url:            "/courses?page=-3",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid page"}`,
		},
		{
			name: "огромная страница",
			url:  "/courses?page=4611686018427387904",
			setupMock: func(m *MockService) {
				m.On("Status").Return(catalog.StatusReady, nil)
				m.On("Query", "", 4611686018427387904).Return(catalog.View{Page: 4611686018427387904, TotalPages: 1})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"courses":[]`,
		},
		{
			name: "подписка упала",
			url:  "/courses",
			setupMock: func(m *MockService) {
				m.On("Status").Return(catalog.StatusFailed, errors.New("connection lost"))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"status":"Error","error":"failed to load courses"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(newNoopLogger(), mockService)
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}

func TestListHandler_PageShape(t *testing.T) {
	mockService := new(MockService)
	mockService.On("Status").Return(catalog.StatusReady, nil)
	mockService.On("Query", "", 1).Return(catalog.View{
		Courses: []models.Course{
			{ID: "a", Title: "A", Thumbnail: "thumb.png", ImageURL: "cover.png"},
		},
		Page:       1,
		TotalPages: 1,
		Total:      1,
	})

	handler := New(newNoopLogger(), mockService)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string `json:"status"`
		Data   Page   `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "OK", body.Status)
	assert.Equal(t, "ready", body.Data.State)
	require.Len(t, body.Data.Courses, 1)
	assert.Equal(t, "thumb.png", body.Data.Courses[0].Image)
	assert.Equal(t, 1, body.Data.TotalPages)
}
