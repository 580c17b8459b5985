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

// TodoGetter defines the interface that the service must implement.
type TodoGetter interface {
	GetByID(ctx context.Context, id, userID int64) (*models.TodoDB, error)
}

// NewTodoGetHandler returns an HTTP handler fetching one todo by id.
// An id owned by another user is indistinguishable from a missing one.
// @Summary Get todo by id
// @Description Returns a single todo item owned by the authenticated user
// @Tags todo
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} models.TodoDB "Todo item"
// @Failure 401 {object} handlers.TodoErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.TodoErrorResponse "Todo item not found"
// @Router /api/todo/{id} [get]
// @Security BearerAuth
func NewTodoGetHandler(svc TodoGetter) http.HandlerFunc {
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

		todo, err := svc.GetByID(ctx, id, claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTodoNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(TodoErrorResponse{Error: "Todo item not found"})
			default:
				logger.Log.Errorw("failed to get todo", "id", id, "userID", claims.UserID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(TodoErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(todo)
	}
}
