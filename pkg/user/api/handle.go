package api

import (
	"errors"
	"net/http"

	userpkg "github.com/adminkit/useradmin/pkg/user"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"golang.org/x/exp/slog"
)

type Handle struct {
	userService *userpkg.UserService
}

func NewHandle(userService *userpkg.UserService) *Handle {
	return &Handle{
		userService: userService,
	}
}

// RegisterRoutes registers the user management routes
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.ListUsers)
	r.Post("/users", h.CreateUser)
	r.Put("/users", h.UpdateUser)
	r.Get("/users/{id}", h.GetUser)
	r.Delete("/users/{id}", h.DeleteUser)
}

// UserRequest is the create/update payload. Update carries the target id in
// the body; an empty password on update keeps the stored one.
type UserRequest struct {
	ID       string      `json:"id,omitempty"`
	Username string      `json:"username"`
	LastName string      `json:"lastName"`
	Age      int32       `json:"age"`
	Email    string      `json:"email"`
	Password string      `json:"password,omitempty"`
	RoleIds  []uuid.UUID `json:"roleIds"`
}

// CreateUser handles POST /users
func (h *Handle) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	params := userpkg.CreateUserParams{}
	if err := copier.Copy(&params, req); err != nil {
		slog.Error("Failed to copy request params", "err", err)
		renderError(w, r, http.StatusInternalServerError, "failed to process request")
		return
	}

	created, err := h.userService.CreateUser(r.Context(), params, req.RoleIds)
	if err != nil {
		renderUserError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, h.userService.ToUserView(&created))
}

// UpdateUser handles PUT /users
func (h *Handle) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid user id")
		return
	}

	params := userpkg.UpdateUserParams{}
	if err := copier.Copy(&params, req); err != nil {
		slog.Error("Failed to copy request params", "err", err)
		renderError(w, r, http.StatusInternalServerError, "failed to process request")
		return
	}

	updated, err := h.userService.UpdateUser(r.Context(), id, params, req.RoleIds)
	if err != nil {
		renderUserError(w, r, err)
		return
	}

	render.JSON(w, r, h.userService.ToUserView(&updated))
}

// GetUser handles GET /users/{id}
func (h *Handle) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		renderUserError(w, r, err)
		return
	}

	render.JSON(w, r, h.userService.ToUserView(&u))
}

// DeleteUser handles DELETE /users/{id}
func (h *Handle) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		renderUserError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListUsers handles GET /users
func (h *Handle) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.FindUsers(r.Context())
	if err != nil {
		slog.Error("Failed to find users", "err", err)
		renderError(w, r, http.StatusInternalServerError, "failed to find users")
		return
	}

	views := make([]*userpkg.UserView, len(users))
	for i := range users {
		views[i] = h.userService.ToUserView(&users[i])
	}

	render.JSON(w, r, views)
}

// renderUserError maps service errors to HTTP status codes. Absence is a
// 404; validation and duplicate errors are 400 with the service message;
// anything else is a 500 that does not leak internals.
func renderUserError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		usernameTaken userpkg.ErrUsernameAlreadyExists
		emailTaken    userpkg.ErrEmailAlreadyExists
		unknownRole   userpkg.ErrUnknownRole
	)

	switch {
	case errors.Is(err, userpkg.ErrUserNotFound):
		renderError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, userpkg.ErrRolesRequired),
		errors.Is(err, userpkg.ErrPasswordRequired),
		errors.As(err, &usernameTaken),
		errors.As(err, &emailTaken),
		errors.As(err, &unknownRole):
		renderError(w, r, http.StatusBadRequest, err.Error())
	default:
		slog.Error("User operation failed", "err", err)
		renderError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": msg})
}
