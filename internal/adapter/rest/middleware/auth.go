package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/renthaven/listing-service/internal/platform/logger"
)

type contextKey string

const landlordIDKey contextKey = "landlord_id"

// LandlordIDFrom extracts the authenticated landlord id set by JWTAuth.
func LandlordIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(landlordIDKey).(string)
	return id, ok && id != ""
}

// Claims is the token shape issued by the account service.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTAuth validates a Bearer token and puts the landlord id on the request
// context. The pipeline itself never checks roles or ownership; it only
// needs an identity to attach to the created listing.
func JWTAuth(jwtSecret string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Warn("JWTAuth: missing or malformed Authorization header", "path", r.URL.Path)
				http.Error(w, "authorization token is not provided", http.StatusUnauthorized)
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				log.Warn("JWTAuth: token rejected", "path", r.URL.Path, "error", errString(err))
				http.Error(w, "token is invalid", http.StatusUnauthorized)
				return
			}

			if claims.UserID == "" {
				log.Warn("JWTAuth: token has no user id", "path", r.URL.Path)
				http.Error(w, "token is invalid", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), landlordIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func errString(err error) string {
	if err == nil {
		return "claims validation failed"
	}
	return err.Error()
}
