package mdlwr

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"hackathon-manager/internal/domain/models"
)

type actorKey struct{}

// Claims carries the identity flags asserted by the authentication
// subsystem. The subject is the user id.
type Claims struct {
	Superuser       bool `json:"superuser"`
	ProfileComplete bool `json:"profile_complete"`
	jwt.RegisteredClaims
}

// Actor resolves the request's actor from a bearer token. A missing header
// yields an anonymous actor; a present but invalid token is rejected with
// 401 instead of being downgraded to anonymous.
func Actor(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r.WithContext(withActor(r.Context(), models.Anonymous())))
				return
			}

			raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))

			var claims Claims
			token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid || claims.Subject == "" {
				writeUnauthorized(w)
				return
			}

			actor := models.Actor{
				UserID:          claims.Subject,
				Authenticated:   true,
				Superuser:       claims.Superuser,
				ProfileComplete: claims.ProfileComplete,
			}

			next.ServeHTTP(w, r.WithContext(withActor(r.Context(), actor)))
		})
	}
}

func withActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor placed by the middleware, or an
// anonymous actor when the middleware never ran (as in handler tests).
func ActorFromContext(ctx context.Context) models.Actor {
	actor, ok := ctx.Value(actorKey{}).(models.Actor)
	if !ok {
		return models.Anonymous()
	}
	return actor
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    "INVALID_TOKEN",
			"message": "invalid or expired token",
		},
	})
}
