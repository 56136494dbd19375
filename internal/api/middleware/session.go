package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/geopressci/pressing-gateway/internal/api/handlers"
	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
	"github.com/geopressci/pressing-gateway/internal/session"
)

// HeaderClientID идентификатор браузера анонимного клиента
const HeaderClientID = "X-Client-ID"

const (
	msgInvalidToken    = "Jeton d'authentification invalide."
	msgAuthRequired    = "Authentification requise."
	msgOwnerRequired   = "En-tête X-Client-ID ou jeton d'authentification requis."
	msgClientIDTooLong = "En-tête X-Client-ID trop long."
)

// MaxOwnerLength совпадает с размером колонки owner в kv_store
const MaxOwnerLength = 128

var validSigningMethods = []string{"HS256", "HS384", "HS512"}

var errNoSigningKey = errors.New("jwt secret is not configured")

// clientOwnerPrefix отделяет анонимных владельцев от sub токена
const clientOwnerPrefix = "client:"

// Session определяет владельца данных и токен для API маркетплейса.
// Bearer-токен проверяется HMAC-секретом, общим с API маркетплейса:
// владелец = sub. Пустой секрет отключает прием bearer-токенов.
// Без токена владелец берется из X-Client-ID,
// а токен - из сохраненной на шлюзе сессии этого клиента.
func Session(secret []byte, tokens TokenSource, logger Logger) func(http.Handler) http.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods(validSigningMethods))
	keyFunc := func(*jwt.Token) (interface{}, error) {
		if len(secret) == 0 {
			return nil, errNoSigningKey
		}
		return secret, nil
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if raw, ok := bearerToken(r); ok {
				claims := jwt.RegisteredClaims{}
				_, err := parser.ParseWithClaims(raw, &claims, keyFunc)
				if errors.Is(err, jwt.ErrTokenExpired) {
					logger.Warn("%s %s - Expired bearer token: sub=%s", r.Method, r.URL.Path, claims.Subject)
					handlers.RespondSessionExpired(w)
					return
				}
				if err != nil || claims.Subject == "" || len(claims.Subject) > MaxOwnerLength {
					logger.Warn("%s %s - Invalid bearer token: %v", r.Method, r.URL.Path, err)
					handlers.RespondUnauthorized(w, msgInvalidToken)
					return
				}

				ctx = session.WithOwner(ctx, claims.Subject, false)
				ctx = pressingapi.WithToken(ctx, raw)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if clientID := strings.TrimSpace(r.Header.Get(HeaderClientID)); clientID != "" {
				owner := clientOwnerPrefix + clientID
				if len(owner) > MaxOwnerLength {
					logger.Warn("%s %s - Client ID too long: length=%d", r.Method, r.URL.Path, len(clientID))
					handlers.RespondBadRequest(w, msgClientIDTooLong)
					return
				}

				token, err := tokens.Token(ctx, owner)
				if err != nil {
					logger.Error("%s %s - Failed to load session: owner=%s, error=%v", r.Method, r.URL.Path, owner, err)
					handlers.RespondInternalError(w)
					return
				}

				ctx = session.WithOwner(ctx, owner, token == "")
				if token != "" {
					ctx = pressingapi.WithToken(ctx, token)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) < len("Bearer ") || !strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(header[len("Bearer "):])
	return token, token != ""
}

// RequireOwner отклоняет запросы без владельца данных
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session.OwnerFromContext(r.Context()) == "" {
			handlers.RespondBadRequest(w, msgOwnerRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth отклоняет запросы без токена; клиент перенаправляется на вход
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if pressingapi.TokenFromContext(r.Context()) == "" {
			w.Header().Set("Location", handlers.LoginPath)
			handlers.RespondUnauthorized(w, msgAuthRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
