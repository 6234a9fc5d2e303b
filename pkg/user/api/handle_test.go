package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adminkit/useradmin/pkg/login"
	"github.com/adminkit/useradmin/pkg/role"
	userpkg "github.com/adminkit/useradmin/pkg/user"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router      chi.Router
	userService *userpkg.UserService
	adminRole   role.Role
	userRole    role.Role
}

func setupHandle(t *testing.T) *testEnv {
	t.Helper()

	roleRepo := role.NewInMemoryRoleRepository()
	roleService := role.NewRoleService(roleRepo)
	userService := userpkg.NewUserService(
		userpkg.NewInMemoryUserRepository(), roleRepo, login.NewBcryptHasher())

	ctx := context.Background()
	adminRole, err := roleService.EnsureRole(ctx, role.RoleAdmin)
	require.NoError(t, err)
	userRole, err := roleService.EnsureRole(ctx, role.RoleUser)
	require.NoError(t, err)

	r := chi.NewRouter()
	NewHandle(userService).RegisterRoutes(r)

	return &testEnv{
		router:      r,
		userService: userService,
		adminRole:   adminRole,
		userRole:    userRole,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) mustCreate(t *testing.T, username, email string, roleIDs ...uuid.UUID) userpkg.User {
	t.Helper()

	created, err := e.userService.CreateUser(context.Background(), userpkg.CreateUserParams{
		Username: username,
		Email:    email,
		Password: "pw",
	}, roleIDs)
	require.NoError(t, err)
	return created
}

func TestCreateUserEndpoint(t *testing.T) {
	env := setupHandle(t)

	rec := env.do(t, http.MethodPost, "/users", UserRequest{
		Username: "alice",
		LastName: "Smith",
		Age:      30,
		Email:    "alice@mail.com",
		Password: "secret",
		RoleIds:  []uuid.UUID{env.adminRole.ID},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var view userpkg.UserView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "alice", view.Username)
	assert.Equal(t, "Smith", view.LastName)
	require.Len(t, view.Roles, 1)
	assert.Equal(t, role.RoleAdmin, view.Roles[0].Name)

	assert.NotContains(t, rec.Body.String(), "password",
		"response must not carry any password material")
}

func TestCreateUserEndpointDuplicateUsername(t *testing.T) {
	env := setupHandle(t)
	env.mustCreate(t, "bob", "bob@mail.com", env.userRole.ID)

	rec := env.do(t, http.MethodPost, "/users", UserRequest{
		Username: "bob",
		Email:    "other@mail.com",
		Password: "pw",
		RoleIds:  []uuid.UUID{env.userRole.ID},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "username already exists")
}

func TestCreateUserEndpointNoRoles(t *testing.T) {
	env := setupHandle(t)

	rec := env.do(t, http.MethodPost, "/users", UserRequest{
		Username: "carol",
		Email:    "carol@mail.com",
		Password: "pw",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "roles are required")
}

func TestUpdateUserEndpoint(t *testing.T) {
	env := setupHandle(t)
	created := env.mustCreate(t, "dave", "dave@mail.com", env.userRole.ID)

	rec := env.do(t, http.MethodPut, "/users", UserRequest{
		ID:       created.ID.String(),
		Username: "dave",
		LastName: "Brown",
		Age:      33,
		Email:    "dave@mail.com",
		RoleIds:  []uuid.UUID{env.adminRole.ID},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var view userpkg.UserView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "Brown", view.LastName)
	assert.Equal(t, int32(33), view.Age)
	require.Len(t, view.Roles, 1)
	assert.Equal(t, role.RoleAdmin, view.Roles[0].Name)
}

func TestUpdateUserEndpointUnknownRole(t *testing.T) {
	env := setupHandle(t)
	created := env.mustCreate(t, "erin", "erin@mail.com", env.userRole.ID)

	rec := env.do(t, http.MethodPut, "/users", UserRequest{
		ID:       created.ID.String(),
		Username: "erin",
		Email:    "erin@mail.com",
		RoleIds:  []uuid.UUID{uuid.New()},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "role not found")
}

func TestUpdateUserEndpointBadID(t *testing.T) {
	env := setupHandle(t)

	rec := env.do(t, http.MethodPut, "/users", UserRequest{
		ID:       "not-a-uuid",
		Username: "x",
		Email:    "x@mail.com",
		RoleIds:  []uuid.UUID{env.userRole.ID},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUserEndpoint(t *testing.T) {
	env := setupHandle(t)
	created := env.mustCreate(t, "frank", "frank@mail.com", env.userRole.ID)

	rec := env.do(t, http.MethodGet, "/users/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view userpkg.UserView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, created.ID, view.ID)
	assert.Equal(t, "frank", view.Username)
}

func TestGetUserEndpointNotFound(t *testing.T) {
	env := setupHandle(t)

	rec := env.do(t, http.MethodGet, "/users/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteUserEndpoint(t *testing.T) {
	env := setupHandle(t)
	created := env.mustCreate(t, "grace", "grace@mail.com", env.userRole.ID)

	rec := env.do(t, http.MethodDelete, "/users/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/users/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteUserEndpointNotFound(t *testing.T) {
	env := setupHandle(t)

	rec := env.do(t, http.MethodDelete, "/users/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListUsersEndpoint(t *testing.T) {
	env := setupHandle(t)
	env.mustCreate(t, "zoe", "zoe@mail.com", env.userRole.ID)
	env.mustCreate(t, "adam", "adam@mail.com", env.adminRole.ID)

	rec := env.do(t, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var views []userpkg.UserView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 2)
	assert.Equal(t, "adam", views[0].Username)
	assert.Equal(t, "zoe", views[1].Username)
}

func TestUserResponseFieldNames(t *testing.T) {
	env := setupHandle(t)
	created := env.mustCreate(t, "heidi", "heidi@mail.com", env.userRole.ID)

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/users/%s", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Contains(t, raw, "lastName")
	assert.Contains(t, raw, "roles")
	assert.NotContains(t, raw, "passwordHash")
}
