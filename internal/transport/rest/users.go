package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bookstore-orm/backend/internal/domain"
	"github.com/bookstore-orm/backend/internal/service/directory"
)

type directoryService interface {
	AddUser(ctx context.Context, input directory.AddUserInput) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// UserHandler serves the user directory endpoints.
type UserHandler struct {
	directory directoryService
	log       *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(directory directoryService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		directory: directory,
		log:       logger.With("handler", "users"),
	}
}

type userRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	user, err := h.directory.AddUser(r.Context(), directory.AddUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.directory.ListUsers(r.Context())
	if err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	user, err := h.directory.GetUser(r.Context(), id)
	if err != nil {
		writeDomainError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
