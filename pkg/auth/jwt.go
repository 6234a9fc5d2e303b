package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Cookie names the token pair is stored under
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// Default token expiry durations
const (
	AccessTokenExpiry  = 5 * time.Minute
	RefreshTokenExpiry = 15 * time.Minute
)

// Jwt issues and parses HS256 tokens and manages their cookies
type Jwt struct {
	Secret         string
	CookieHttpOnly bool
	CookieSecure   bool
}

type Option func(*Jwt)

func WithCookieHttpOnly(httpOnly bool) Option {
	return func(j *Jwt) {
		j.CookieHttpOnly = httpOnly
	}
}

func WithCookieSecure(secure bool) Option {
	return func(j *Jwt) {
		j.CookieSecure = secure
	}
}

func NewJwtServiceOptions(secret string, opts ...Option) *Jwt {
	jwtSvc := &Jwt{Secret: secret}

	for _, opt := range opts {
		opt(jwtSvc)
	}

	return jwtSvc
}

// Claims carries the registered claim set plus application claims under
// extra_claims, which is what the auth middleware reads back out.
type Claims struct {
	ExtraClaims interface{} `json:"extra_claims,omitempty"`
	jwt.RegisteredClaims
}

// AuthToken is a signed token string with its expiry
type AuthToken struct {
	Token  string
	Expiry time.Time
}

// Token is the access/refresh pair issued on login
type Token struct {
	AccessToken  AuthToken
	RefreshToken AuthToken
}

func (j Jwt) CreateTokenStr(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(j.Secret))
	if err != nil {
		slog.Error("Failed to sign JWT claims", "err", err)
		return "", err
	}
	return ss, nil
}

func (j Jwt) createToken(subject string, extraClaims interface{}, expiry time.Duration) (AuthToken, error) {
	claims := Claims{
		extraClaims,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			NotBefore: jwt.NewNumericDate(time.Now().UTC().Add(-5 * time.Minute)),
			Issuer:    "useradmin",
			Subject:   subject,
			ID:        uuid.New().String(),
			Audience:  []string{"public"},
		},
	}
	tokenStr, err := j.CreateTokenStr(claims)
	return AuthToken{Token: tokenStr, Expiry: claims.ExpiresAt.Time}, err
}

// CreateAccessToken creates a short-lived access token for the subject
func (j Jwt) CreateAccessToken(subject string, extraClaims interface{}) (AuthToken, error) {
	return j.createToken(subject, extraClaims, AccessTokenExpiry)
}

// CreateRefreshToken creates a refresh token for the subject
func (j Jwt) CreateRefreshToken(subject string, extraClaims interface{}) (AuthToken, error) {
	return j.createToken(subject, extraClaims, RefreshTokenExpiry)
}

// CreateTokens creates the access/refresh pair issued on login
func (j Jwt) CreateTokens(subject string, extraClaims interface{}) (Token, error) {
	accessToken, err := j.CreateAccessToken(subject, extraClaims)
	if err != nil {
		slog.Error("Failed to create access token", "err", err)
		return Token{}, err
	}
	refreshToken, err := j.CreateRefreshToken(subject, extraClaims)
	if err != nil {
		slog.Error("Failed to create refresh token", "err", err)
		return Token{}, err
	}
	return Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// SetTokenCookies stores the token pair on the response
func (j Jwt) SetTokenCookies(w http.ResponseWriter, tokens Token) {
	j.setCookie(w, AccessTokenCookie, tokens.AccessToken.Token, tokens.AccessToken.Expiry)
	j.setCookie(w, RefreshTokenCookie, tokens.RefreshToken.Token, tokens.RefreshToken.Expiry)
}

// ClearTokenCookies expires both token cookies, logging the caller out
func (j Jwt) ClearTokenCookies(w http.ResponseWriter) {
	expired := time.Now().UTC().Add(-time.Hour)
	j.setCookie(w, AccessTokenCookie, "", expired)
	j.setCookie(w, RefreshTokenCookie, "", expired)
}

func (j Jwt) setCookie(w http.ResponseWriter, name, value string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Path:     "/",
		Value:    value,
		Expires:  expiry,
		HttpOnly: j.CookieHttpOnly,
		Secure:   j.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
