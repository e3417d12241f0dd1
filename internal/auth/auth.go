// Package auth resolves the caller of a request to an identity issued by the
// external identity provider.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"food-journal/internal/config"
	"food-journal/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// ErrInvalidToken is returned when a bearer token is present but unusable.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated caller.
type Identity struct {
	ID    string
	Email string
}

// Resolver maps a request to an identity. A request without credentials
// resolves to (nil, nil).
type Resolver interface {
	Resolve(r *http.Request) (*Identity, error)
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns the identity stored by the middleware, or nil.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}

// OwnerID returns the caller's user id, or "" when anonymous.
func OwnerID(ctx context.Context) string {
	if id := FromContext(ctx); id != nil {
		return id.ID
	}
	return ""
}

// JWTResolver verifies HS256 bearer tokens locally with a shared secret.
type JWTResolver struct {
	secret   []byte
	issuer   string
	audience string
}

// NewJWTResolver creates a resolver from configuration.
func NewJWTResolver(cfg config.AuthConfig) *JWTResolver {
	return &JWTResolver{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}
}

// Resolve reads the Authorization header. No header means anonymous.
func (j *JWTResolver) Resolve(r *http.Request) (*Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, nil
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return nil, fmt.Errorf("%w: malformed authorization header", ErrInvalidToken)
	}

	return j.parse(strings.TrimSpace(parts[1]))
}

func (j *JWTResolver) parse(raw string) (*Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}
	if j.audience != "" {
		opts = append(opts, jwt.WithAudience(j.audience))
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: subject claim missing", ErrInvalidToken)
	}
	email, _ := claims["email"].(string)

	return &Identity{ID: sub, Email: email}, nil
}

// Middleware resolves the identity once per request and stores it in the
// request context. Anonymous requests pass through; bad tokens get 401.
func Middleware(resolver Resolver, logger zerolog.Logger) func(http.Handler) http.Handler {
	logger = logger.With().Str("component", "auth").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := resolver.Resolve(r)
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("rejected credentials")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(model.ErrorResponse{
					Error:   model.ErrCodeUnauthorised,
					Message: "Invalid or expired token",
				})
				return
			}

			if id != nil {
				r = r.WithContext(WithIdentity(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}
