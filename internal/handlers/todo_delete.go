package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/todo-api/internal/logger"
	"github.com/sbilibin2017/todo-api/internal/middlewares"
	"github.com/sbilibin2017/todo-api/internal/services"
)

// TodoDeleter defines the interface that the service must implement.
type TodoDeleter interface {
	Delete(ctx context.Context, id, userID int64) error
}

// DeleteTodoResponse represents a successful deletion response
// swagger:model DeleteTodoResponse
type DeleteTodoResponse struct {
	// Success message
	// example: Todo item deleted successfully
	Message string `json:"message"`
}

// NewTodoDeleteHandler returns an HTTP handler deleting a todo permanently.
// @Summary Delete todo
// @Description Permanently removes a todo item owned by the authenticated user
// @Tags todo
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} handlers.DeleteTodoResponse "Todo deleted"
// @Failure 401 {object} handlers.TodoErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.TodoErrorResponse "Todo item not found"
// @Router /api/todo/{id} [delete]
// @Security BearerAuth
func NewTodoDeleteHandler(svc TodoDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		claims := middlewares.GetClaimsFromContext(ctx)
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TodoErrorResponse{Error: "Unauthorized"})
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(TodoErrorResponse{Error: "Todo item not found"})
			return
		}

		if err := svc.Delete(ctx, id, claims.UserID); err != nil {
			switch {
			case errors.Is(err, services.ErrTodoNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(TodoErrorResponse{Error: "Todo item not found"})
			default:
				logger.Log.Errorw("failed to delete todo", "id", id, "userID", claims.UserID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(TodoErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(DeleteTodoResponse{
			Message: "Todo item deleted successfully",
		})
	}
}
