package api

import (
	"net/http"

	rolepkg "github.com/adminkit/useradmin/pkg/role"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/exp/slog"
)

type Handle struct {
	roleService *rolepkg.RoleService
}

func NewHandle(roleService *rolepkg.RoleService) *Handle {
	return &Handle{
		roleService: roleService,
	}
}

// RegisterRoutes registers the role routes
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Get("/roles", h.ListRoles)
}

type RoleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListRoles handles GET /roles
func (h *Handle) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.FindRoles(r.Context())
	if err != nil {
		slog.Error("Failed to find roles", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": "failed to find roles"})
		return
	}

	apiRoles := make([]RoleResponse, len(roles))
	for i, role := range roles {
		apiRoles[i] = RoleResponse{
			ID:   role.ID.String(),
			Name: role.Name,
		}
	}

	render.JSON(w, r, apiRoles)
}
