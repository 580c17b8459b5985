package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/todo-api/internal/models"
	"github.com/sbilibin2017/todo-api/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestTodoUpdateHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := int64(42)
	now := time.Now().UTC()
	updated := &models.TodoDB{
		ID:          7,
		Title:       "Buy bread",
		Description: "rye",
		IsCompleted: true,
		UserID:      userID,
		UpdatedAt:   &now,
	}

	tests := []struct {
		name          string
		authed        bool
		idParam       string
		body          any
		rawBody       string
		mockSetup     func(m *MockTodoUpdater)
		expectedCode  int
		expectedError string
	}{
		{
			name:    "success",
			authed:  true,
			idParam: "7",
			body:    UpdateTodoRequest{Title: "Buy bread", Description: "rye", IsCompleted: true},
			mockSetup: func(m *MockTodoUpdater) {
				m.EXPECT().
					Update(gomock.Any(), int64(7), userID, "Buy bread", "rye", true).
					Return(updated, nil)
			},
			expectedCode: 200,
		},
		{
			name:    "not found",
			authed:  true,
			idParam: "99",
			body:    UpdateTodoRequest{Title: "Buy bread"},
			mockSetup: func(m *MockTodoUpdater) {
				m.EXPECT().
					Update(gomock.Any(), int64(99), userID, "Buy bread", "", false).
					Return(nil, services.ErrTodoNotFound)
			},
			expectedCode:  404,
			expectedError: "Todo item not found",
		},
		{
			name:          "non-numeric id",
			authed:        true,
			idParam:       "abc",
			body:          UpdateTodoRequest{Title: "Buy bread"},
			expectedCode:  404,
			expectedError: "Todo item not found",
		},
		{
			name:          "invalid json",
			authed:        true,
			idParam:       "7",
			rawBody:       "{invalid json}",
			expectedCode:  400,
			expectedError: "Invalid request body",
		},
		{
			name:          "no claims in context",
			authed:        false,
			idParam:       "7",
			body:          UpdateTodoRequest{Title: "Buy bread"},
			expectedCode:  401,
			expectedError: "Unauthorized",
		},
		{
			name:    "internal server error",
			authed:  true,
			idParam: "7",
			body:    UpdateTodoRequest{Title: "Buy bread"},
			mockSetup: func(m *MockTodoUpdater) {
				m.EXPECT().
					Update(gomock.Any(), int64(7), userID, "Buy bread", "", false).
					Return(nil, errors.New("db error"))
			},
			expectedCode:  500,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockTodoUpdater(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewTodoUpdateHandler(mockSvc)

			var body *bytes.Buffer
			if tt.rawBody != "" {
				body = bytes.NewBufferString(tt.rawBody)
			} else {
				bodyBytes, _ := json.Marshal(tt.body)
				body = bytes.NewBuffer(bodyBytes)
			}

			req := httptest.NewRequest(http.MethodPut, "/api/todo/"+tt.idParam, body)
			req = withURLParam(req, "id", tt.idParam)
			if tt.authed {
				req = withClaims(req, userID)
			}

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == 200 {
				var got models.TodoDB
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
				assert.Equal(t, updated.ID, got.ID)
				assert.Equal(t, updated.Title, got.Title)
				assert.True(t, got.IsCompleted)
				assert.NotNil(t, got.UpdatedAt)
			} else {
				var resp TodoErrorResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp.Error)
			}
		})
	}
}
