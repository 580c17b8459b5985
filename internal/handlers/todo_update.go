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
	"github.com/sbilibin2017/todo-api/internal/models"
	"github.com/sbilibin2017/todo-api/internal/services"
)

// TodoUpdater defines the interface that the service must implement.
type TodoUpdater interface {
	Update(ctx context.Context, id, userID int64, title, description string, isCompleted bool) (*models.TodoDB, error)
}

// UpdateTodoRequest represents the JSON body for updating a todo
// swagger:model UpdateTodoRequest
type UpdateTodoRequest struct {
	// Title of the todo item
	// example: Buy milk
	Title string `json:"title"`

	// Detailed description
	// example: Two liters, lactose free
	Description string `json:"description"`

	// Completion flag
	// example: true
	IsCompleted bool `json:"isCompleted"`
}

// NewTodoUpdateHandler returns an HTTP handler overwriting a todo's fields.
// @Summary Update todo
// @Description Overwrites title, description and completion flag of a todo owned by the authenticated user
// @Tags todo
// @Accept json
// @Produce json
// @Param id path int true "Todo ID"
// @Param updateTodoRequest body handlers.UpdateTodoRequest true "New todo fields"
// @Success 200 {object} models.TodoDB "Updated todo item"
// @Failure 400 {object} handlers.TodoErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.TodoErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.TodoErrorResponse "Todo item not found"
// @Router /api/todo/{id} [put]
// @Security BearerAuth
func NewTodoUpdateHandler(svc TodoUpdater) http.HandlerFunc {
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

		var req UpdateTodoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TodoErrorResponse{Error: "Invalid request body"})
			return
		}

		todo, err := svc.Update(ctx, id, claims.UserID, req.Title, req.Description, req.IsCompleted)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTodoNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(TodoErrorResponse{Error: "Todo item not found"})
			default:
				logger.Log.Errorw("failed to update todo", "id", id, "userID", claims.UserID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(TodoErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(todo)
	}
}
