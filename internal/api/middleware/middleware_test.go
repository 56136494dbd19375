package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geopressci/pressing-gateway/internal/api/handlers"
	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
	"github.com/geopressci/pressing-gateway/internal/session"
	"github.com/geopressci/pressing-gateway/pkg/logger"
)

type stubTokens struct {
	tokens map[string]string
	err    error
}

func (s stubTokens) Token(ctx context.Context, owner string) (string, error) {
	return s.tokens[owner], s.err
}

type observed struct {
	method, route string
	status        int
}

type stubMetrics struct {
	calls []observed
}

func (m *stubMetrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.calls = append(m.calls, observed{method, route, status})
}

var testSecret = []byte("upstream-secret")

func signedToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	return signedWith(t, testSecret, sub, exp)
}

func signedWith(t *testing.T, key []byte, sub string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

// captured обработчик, запоминающий контекст
type captured struct {
	owner     string
	anonymous bool
	token     string
	called    bool
}

func (c *captured) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.called = true
		c.owner = session.OwnerFromContext(r.Context())
		c.anonymous = session.IsAnonymous(r.Context())
		c.token = pressingapi.TokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestSession_BearerToken(t *testing.T) {
	c := &captured{}
	h := Session(testSecret, stubTokens{}, logger.Discard())(c.handler())

	token := signedToken(t, "user-42", time.Now().Add(time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", c.owner)
	assert.False(t, c.anonymous)
	assert.Equal(t, token, c.token)
}

func TestSession_ExpiredBearerRedirectsToLogin(t *testing.T) {
	c := &captured{}
	h := Session(testSecret, stubTokens{}, logger.Discard())(c.handler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "user-42", time.Now().Add(-time.Minute)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, handlers.LoginPath, rec.Header().Get("Location"))
	assert.False(t, c.called)
}

func TestSession_MalformedBearer(t *testing.T) {
	c := &captured{}
	h := Session(testSecret, stubTokens{}, logger.Discard())(c.handler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, c.called)
}

func TestSession_RejectsForeignSignature(t *testing.T) {
	c := &captured{}
	h := Session(testSecret, stubTokens{}, logger.Discard())(c.handler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/booking-drafts/d1", nil)
	req.Header.Set("Authorization", "Bearer "+signedWith(t, []byte("other-key"), "victim-user-id", time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, c.called)
	assert.Empty(t, c.owner)
}

func TestSession_RejectsUnsignedAlgorithm(t *testing.T) {
	c := &captured{}
	h := Session(testSecret, stubTokens{}, logger.Discard())(c.handler())

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "victim-user-id"})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, c.called)
}

func TestSession_NoSecretRejectsBearer(t *testing.T) {
	c := &captured{}
	h := Session(nil, stubTokens{}, logger.Discard())(c.handler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "user-42", time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, c.called)
}

func TestSession_ClientIDTooLong(t *testing.T) {
	c := &captured{}
	h := Session(testSecret, stubTokens{}, logger.Discard())(c.handler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderClientID, strings.Repeat("a", MaxOwnerLength))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, c.called)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderClientID, strings.Repeat("a", MaxOwnerLength-len(clientOwnerPrefix)))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSession_ClientIDWithStoredToken(t *testing.T) {
	c := &captured{}
	tokens := stubTokens{tokens: map[string]string{"client:browser-1": "stored-token"}}
	h := Session(testSecret, tokens, logger.Discard())(c.handler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderClientID, "browser-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "client:browser-1", c.owner)
	assert.False(t, c.anonymous)
	assert.Equal(t, "stored-token", c.token)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderClientID, "browser-2")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "client:browser-2", c.owner)
	assert.True(t, c.anonymous)
	assert.Empty(t, c.token)
}

func TestSession_StoreFailure(t *testing.T) {
	c := &captured{}
	h := Session(testSecret, stubTokens{err: errors.New("db down")}, logger.Discard())(c.handler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderClientID, "browser-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, c.called)
}

func TestRequireAuthAndOwner(t *testing.T) {
	c := &captured{}

	rec := httptest.NewRecorder()
	RequireAuth(c.handler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, handlers.LoginPath, rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	RequireOwner(c.handler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, c.called)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(pressingapi.WithToken(session.WithOwner(req.Context(), "user-1", false), "t"))
	rec = httptest.NewRecorder()
	RequireAuth(RequireOwner(c.handler())).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &stubMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/pressings/{pressingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pressings/p1", nil))

	require.Len(t, m.calls, 1)
	assert.Equal(t, observed{http.MethodGet, "/pressings/{pressingId}", http.StatusTeapot}, m.calls[0])
}
