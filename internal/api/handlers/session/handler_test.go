package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
	prefsStore "github.com/geopressci/pressing-gateway/internal/infra/storage/preferences"
	"github.com/geopressci/pressing-gateway/internal/service/preferences"
	ctxsession "github.com/geopressci/pressing-gateway/internal/session"
	"github.com/geopressci/pressing-gateway/pkg/logger"
)

func newStore(t *testing.T) (*preferences.SessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return preferences.NewSessionStore(prefsStore.NewRedisStore(client), logger.Discard()), mr
}

func request(method, owner, body string) *http.Request {
	req := httptest.NewRequest(method, "/session", strings.NewReader(body))
	if owner != "" {
		req = req.WithContext(ctxsession.WithOwner(req.Context(), owner, true))
	}
	return req
}

func TestSaveAndDelete(t *testing.T) {
	store, mr := newStore(t)
	h := NewHandler(store, logger.Discard())

	rec := httptest.NewRecorder()
	h.Save(rec, request(http.MethodPut, "client:abc", `{"token":" jwt-token "}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated":true}`, rec.Body.String())

	token, err := store.Token(context.Background(), "client:abc")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
	assert.NotEmpty(t, mr.Keys())

	rec = httptest.NewRecorder()
	h.Delete(rec, request(http.MethodDelete, "client:abc", ""))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	token, err = store.Token(context.Background(), "client:abc")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSave_Validation(t *testing.T) {
	store, _ := newStore(t)
	h := NewHandler(store, logger.Discard())

	tests := []struct {
		name  string
		owner string
		body  string
		msg   string
	}{
		{"empty token", "client:abc", `{"token":"  "}`, msgTokenRequired},
		{"no owner", "", `{"token":"jwt"}`, msgOwnerRequired},
		{"bad json", "client:abc", `{"token":`, msgInvalidRequestBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Save(rec, request(http.MethodPut, tt.owner, tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.msg)
		})
	}
}

func TestSave_StoreDown(t *testing.T) {
	store, mr := newStore(t)
	mr.Close()
	h := NewHandler(store, logger.Discard())

	rec := httptest.NewRecorder()
	h.Save(rec, request(http.MethodPut, "client:abc", `{"token":"jwt"}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGet(t *testing.T) {
	h := NewHandler(nil, logger.Discard())

	rec := httptest.NewRecorder()
	h.Get(rec, request(http.MethodGet, "client:abc", ""))
	assert.JSONEq(t, `{"authenticated":false}`, rec.Body.String())

	req := request(http.MethodGet, "client:abc", "")
	req = req.WithContext(pressingapi.WithToken(req.Context(), "jwt"))
	rec = httptest.NewRecorder()
	h.Get(rec, req)
	assert.JSONEq(t, `{"authenticated":true}`, rec.Body.String())
}

func TestStoredUnderBothKeys(t *testing.T) {
	store, mr := newStore(t)
	h := NewHandler(store, logger.Discard())

	rec := httptest.NewRecorder()
	h.Save(rec, request(http.MethodPut, "client:abc", `{"token":"jwt"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	for _, key := range []string{domain.AccessTokenKey, domain.LegacyTokenKey} {
		value, err := mr.Get("prefs:client:abc:" + key)
		require.NoError(t, err)
		assert.Equal(t, "jwt", value)
	}
}
