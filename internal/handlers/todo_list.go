package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/todo-api/internal/logger"
	"github.com/sbilibin2017/todo-api/internal/middlewares"
	"github.com/sbilibin2017/todo-api/internal/models"
)

// TodoLister defines the interface that the service must implement.
type TodoLister interface {
	List(ctx context.Context, userID int64) ([]models.TodoDB, error)
}

// TodoErrorResponse represents an error response for todo endpoints
// swagger:model TodoErrorResponse
type TodoErrorResponse struct {
	// Error message
	// example: Todo item not found
	Error string `json:"error"`
}

// NewTodoListHandler returns an HTTP handler listing the caller's todos.
// @Summary List todos
// @Description Returns all todo items owned by the authenticated user
// @Tags todo
// @Produce json
// @Success 200 {array} models.TodoDB "Todos of the authenticated user"
// @Failure 401 {object} handlers.TodoErrorResponse "Unauthorized"
// @Router /api/todo [get]
// @Security BearerAuth
func NewTodoListHandler(svc TodoLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		claims := middlewares.GetClaimsFromContext(ctx)
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TodoErrorResponse{Error: "Unauthorized"})
			return
		}

		todos, err := svc.List(ctx, claims.UserID)
		if err != nil {
			logger.Log.Errorw("failed to list todos", "userID", claims.UserID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(TodoErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(todos)
	}
}
