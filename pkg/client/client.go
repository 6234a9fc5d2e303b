package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

// ExtraClaims carries the application claims embedded in the JWT
type ExtraClaims struct {
	Username string   `json:"username,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// AuthUser is the authenticated caller extracted from the verified token
type AuthUser struct {
	UserID      string `json:"user_id,omitempty"`
	UserUUID    uuid.UUID
	ExtraClaims ExtraClaims `json:"extra_claims,omitempty"`
}

func (u AuthUser) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("user", u.UserID),
		slog.Any("extra_claims", u.ExtraClaims),
	)
}

// HasRole reports whether the caller carries the given role
func (u *AuthUser) HasRole(name string) bool {
	for _, r := range u.ExtraClaims.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// contextKey is a value for use with context.WithValue. It's used as
// a pointer so it fits in an interface{} without allocation.
type contextKey struct {
	name string
}

func (k *contextKey) String() string {
	return "auth context value " + k.name
}

var (
	AuthUserKey = &contextKey{"AuthUser"}
)

// AuthUserFromContext returns the authenticated caller, if any
func AuthUserFromContext(ctx context.Context) (*AuthUser, bool) {
	authUser, ok := ctx.Value(AuthUserKey).(*AuthUser)
	return authUser, ok
}

func LoadFromMap[T any](m map[string]interface{}, c *T) error {
	data, err := json.Marshal(m)
	if err == nil {
		err = json.Unmarshal(data, c)
	}
	return err
}

// AuthUserMiddleware extracts the AuthUser from verified JWT claims and puts
// it on the request context. Must run after the jwtauth verifier.
func AuthUserMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			em := fmt.Errorf("missing jwt: %w", err)
			http.Error(w, em.Error(), http.StatusUnauthorized)
			return
		}

		authUser := new(AuthUser)

		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			http.Error(w, "missing token subject", http.StatusUnauthorized)
			return
		}
		authUser.UserID = sub
		authUser.UserUUID, err = uuid.Parse(sub)
		if err != nil {
			slog.Error("Failed to parse user id from token", "err", err)
			http.Error(w, "invalid token subject", http.StatusUnauthorized)
			return
		}

		extraClaims, ok := claims["extra_claims"].(map[string]interface{})
		if !ok {
			http.Error(w, "missing extra claims", http.StatusUnauthorized)
			return
		}
		if err := LoadFromMap(extraClaims, &authUser.ExtraClaims); err != nil {
			em := fmt.Errorf("invalid claims: %w", err)
			http.Error(w, em.Error(), http.StatusUnauthorized)
			return
		}

		slog.Debug("Authenticated user", "userId", authUser.UserID, "roles", authUser.ExtraClaims.Roles)

		ctx := context.WithValue(r.Context(), AuthUserKey, authUser)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Verifier accepts the token from the Authorization header or the
// access_token cookie.
func Verifier(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return jwtauth.Verify(ja, jwtauth.TokenFromHeader, TokenFromCookie)(next)
	}
}

// TokenFromCookie reads the access token cookie
func TokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie("access_token")
	if err != nil {
		return ""
	}
	return cookie.Value
}
