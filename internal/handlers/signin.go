package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/todo-api/internal/logger"
	"github.com/sbilibin2017/todo-api/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// SigninRequest represents the JSON body for user login
// swagger:model SigninRequest
type SigninRequest struct {
	// Username
	// required: true
	// example: john_doe
	Username string `json:"username" validate:"required"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password" validate:"required"`
}

// SigninResponse represents a successful login response
// swagger:model SigninResponse
type SigninResponse struct {
	// JWT token
	// example: JWT_TOKEN
	Token string `json:"token"`
}

// SigninErrorResponse represents an error response for login
// swagger:model SigninErrorResponse
type SigninErrorResponse struct {
	// Error message
	// example: Invalid username or password
	Error string `json:"error"`

	// Field-level validation messages
	Details map[string]string `json:"details,omitempty"`
}

// NewSigninHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate user and return JWT token with the user's id and username as claims
// @Tags auth
// @Accept json
// @Produce json
// @Param signinRequest body handlers.SigninRequest true "Login Request"
// @Success 200 {object} handlers.SigninResponse "JWT token returned"
// @Failure 400 {object} handlers.SigninErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.SigninErrorResponse "Invalid username or password"
// @Router /api/auth/signin [post]
func NewSigninHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req SigninRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(SigninErrorResponse{
				Error: "Invalid request body",
			})
			return
		}

		if err := validate.Struct(req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(SigninErrorResponse{
				Error:   "Validation failed",
				Details: validationDetails(err),
			})
			return
		}

		token, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials),
				errors.Is(err, services.ErrUserDoesNotExist):
				// Identical body for unknown user and wrong password.
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(SigninErrorResponse{
					Error: "Invalid username or password",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(SigninErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(SigninResponse{
			Token: token,
		})
	}
}
