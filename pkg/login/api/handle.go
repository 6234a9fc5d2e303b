package api

import (
	"errors"
	"net/http"

	"github.com/adminkit/useradmin/pkg/auth"
	"github.com/adminkit/useradmin/pkg/client"
	loginpkg "github.com/adminkit/useradmin/pkg/login"
	userpkg "github.com/adminkit/useradmin/pkg/user"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/exp/slog"
)

type Handle struct {
	loginService *loginpkg.LoginService
	userService  *userpkg.UserService
	jwtService   *auth.Jwt
}

func NewHandle(loginService *loginpkg.LoginService, userService *userpkg.UserService, jwtService *auth.Jwt) *Handle {
	return &Handle{
		loginService: loginService,
		userService:  userService,
		jwtService:   jwtService,
	}
}

// RegisterRoutes registers the unauthenticated login route
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.Login)
}

// RegisterAuthRoutes registers the routes that require a valid token
func (h *Handle) RegisterAuthRoutes(r chi.Router) {
	r.Post("/logout", h.Logout)
	r.Get("/current-user", h.CurrentUser)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Status  string             `json:"status"`
	User    *loginpkg.AuthUser `json:"user,omitempty"`
	Message string             `json:"message,omitempty"`
}

// Login handles POST /login. On success the token pair is set as cookies
// and the authenticated principal is returned.
func (h *Handle) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, LoginResponse{Status: "failed", Message: "invalid request body"})
		return
	}

	authUser, err := h.loginService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, loginpkg.ErrInvalidCredentials) {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, LoginResponse{Status: "failed", Message: err.Error()})
			return
		}
		slog.Error("Login failed", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, LoginResponse{Status: "failed", Message: "internal server error"})
		return
	}

	extraClaims := client.ExtraClaims{
		Username: authUser.Username,
		Roles:    authUser.Roles,
	}
	tokens, err := h.jwtService.CreateTokens(authUser.UserID, extraClaims)
	if err != nil {
		slog.Error("Failed to create tokens", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, LoginResponse{Status: "failed", Message: "internal server error"})
		return
	}

	h.jwtService.SetTokenCookies(w, tokens)

	slog.Info("User logged in", "user", authUser)
	render.JSON(w, r, LoginResponse{Status: "success", User: &authUser})
}

// Logout handles POST /logout by expiring the token cookies
func (h *Handle) Logout(w http.ResponseWriter, r *http.Request) {
	h.jwtService.ClearTokenCookies(w)
	render.JSON(w, r, map[string]string{"status": "success"})
}

// CurrentUser handles GET /current-user, returning the full view of the
// authenticated caller.
func (h *Handle) CurrentUser(w http.ResponseWriter, r *http.Request) {
	authUser, ok := client.AuthUserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	u, err := h.userService.FindUserByUsername(r.Context(), authUser.ExtraClaims.Username)
	if err != nil {
		if errors.Is(err, userpkg.ErrUserNotFound) {
			// Token outlived the account
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, map[string]string{"error": "user no longer exists"})
			return
		}
		slog.Error("Failed to load current user", "err", err, "username", authUser.ExtraClaims.Username)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": "internal server error"})
		return
	}

	render.JSON(w, r, h.userService.ToUserView(&u))
}
