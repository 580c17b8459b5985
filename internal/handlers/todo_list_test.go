package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/todo-api/internal/jwt"
	"github.com/sbilibin2017/todo-api/internal/middlewares"
	"github.com/sbilibin2017/todo-api/internal/models"
	"github.com/stretchr/testify/assert"
)

// withClaims injects authenticated claims the way AuthMiddleware does.
func withClaims(req *http.Request, userID int64) *http.Request {
	ctx := middlewares.SetClaimsToContext(req.Context(), &jwt.Claims{UserID: userID, Username: "tester"})
	return req.WithContext(ctx)
}

// withURLParam injects a chi route parameter for handlers served outside a router.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestTodoListHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := int64(42)
	todos := []models.TodoDB{
		{ID: 1, Title: "Buy milk", UserID: userID, CreatedAt: time.Now().UTC()},
		{ID: 2, Title: "Walk the dog", IsCompleted: true, UserID: userID, CreatedAt: time.Now().UTC()},
	}

	tests := []struct {
		name         string
		authed       bool
		mockSetup    func(m *MockTodoLister)
		expectedCode int
	}{
		{
			name:   "success",
			authed: true,
			mockSetup: func(m *MockTodoLister) {
				m.EXPECT().List(gomock.Any(), userID).Return(todos, nil)
			},
			expectedCode: 200,
		},
		{
			name:   "empty list",
			authed: true,
			mockSetup: func(m *MockTodoLister) {
				m.EXPECT().List(gomock.Any(), userID).Return([]models.TodoDB{}, nil)
			},
			expectedCode: 200,
		},
		{
			name:         "no claims in context",
			authed:       false,
			expectedCode: 401,
		},
		{
			name:   "internal server error",
			authed: true,
			mockSetup: func(m *MockTodoLister) {
				m.EXPECT().List(gomock.Any(), userID).Return(nil, errors.New("db error"))
			},
			expectedCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockTodoLister(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewTodoListHandler(mockSvc)

			req := httptest.NewRequest(http.MethodGet, "/api/todo", nil)
			if tt.authed {
				req = withClaims(req, userID)
			}

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == 200 {
				var got []models.TodoDB
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			} else {
				var resp TodoErrorResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp.Error)
			}
		})
	}
}

// An empty list must serialize as [] rather than null.
func TestTodoListHandler_EmptyListBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockTodoLister(ctrl)
	mockSvc.EXPECT().List(gomock.Any(), int64(42)).Return([]models.TodoDB{}, nil)

	handler := NewTodoListHandler(mockSvc)

	req := withClaims(httptest.NewRequest(http.MethodGet, "/api/todo", nil), 42)
	rr := httptest.NewRecorder()
	handler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}
