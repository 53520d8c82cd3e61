package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const SessionIDKey contextKey = "session_id"

var ErrInvalidToken = errors.New("invalid session token")

// SessionAuth issues and checks the bearer tokens that bind a browser to the
// chat widget it mounted.
type SessionAuth struct {
	Secret []byte
	TTL    time.Duration
}

func NewSessionAuth(secret string, ttl time.Duration) *SessionAuth {
	return &SessionAuth{Secret: []byte(secret), TTL: ttl}
}

// Issue creates a JWT for sessionID that expires with the session TTL.
func (s *SessionAuth) Issue(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"exp":        now.Add(s.TTL).Unix(),
		"iat":        now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// Verify returns the session id carried by tokenStr.
func (s *SessionAuth) Verify(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.Secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		return "", ErrInvalidToken
	}
	return sessionID, nil
}

// Middleware requires a token for the session named by the {id} URL
// parameter. The token is read from the Authorization header, or from the
// token query parameter for websocket upgrades.
func (s *SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing session token", r)
			return
		}

		sessionID, err := s.Verify(tokenStr)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				writeError(w, http.StatusUnauthorized, "TOKEN_EXPIRED", "Session has expired", r)
			} else {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid session token", r)
			}
			return
		}

		if id := chi.URLParam(r, "id"); id != "" && id != sessionID {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Token does not match this session", r)
			return
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if tok := r.URL.Query().Get("token"); tok != "" {
		return tok, true
	}
	return "", false
}

// GetSessionID extracts the verified session id from request context
func GetSessionID(ctx context.Context) string {
	id, _ := ctx.Value(SessionIDKey).(string)
	return id
}
