package preferences

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/geopressci/pressing-gateway/internal/domain"
	prefsStore "github.com/geopressci/pressing-gateway/internal/infra/storage/preferences"
	"github.com/geopressci/pressing-gateway/internal/session"
)

// SessionStore токен доступа клиента, сохраненный на стороне шлюза.
// Пишется под обоими ключами: текущим и устаревшим authToken.
type SessionStore struct {
	store  KVStore
	logger Logger
}

func NewSessionStore(store KVStore, logger Logger) *SessionStore {
	return &SessionStore{store: store, logger: logger}
}

// Save сохраняет токен владельца
func (s *SessionStore) Save(ctx context.Context, owner, token string) error {
	if owner == "" {
		return ErrNoOwner
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	for _, key := range []string{domain.AccessTokenKey, domain.LegacyTokenKey} {
		if err := s.store.Set(ctx, owner, key, token); err != nil {
			s.logger.Error("SessionStore.Save: owner=%s, key=%s: %v", owner, key, err)
			return fmt.Errorf("%w: save session: %v", ErrInternal, err)
		}
	}
	return nil
}

// Token токен владельца; "" если сессии нет. Устаревший ключ читается вторым.
func (s *SessionStore) Token(ctx context.Context, owner string) (string, error) {
	if owner == "" {
		return "", ErrNoOwner
	}

	for _, key := range []string{domain.AccessTokenKey, domain.LegacyTokenKey} {
		token, err := s.store.Get(ctx, owner, key)
		if err == nil && token != "" {
			return token, nil
		}
		if err != nil && !errors.Is(err, prefsStore.ErrKeyNotFound) {
			s.logger.Error("SessionStore.Token: owner=%s, key=%s: %v", owner, key, err)
			return "", fmt.Errorf("%w: read session: %v", ErrInternal, err)
		}
	}
	return "", nil
}

// Clear удаляет оба ключа сессии
func (s *SessionStore) Clear(ctx context.Context, owner string) error {
	if owner == "" {
		return ErrNoOwner
	}

	var errs []error
	for _, key := range []string{domain.AccessTokenKey, domain.LegacyTokenKey} {
		if err := s.store.Delete(ctx, owner, key); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		s.logger.Error("SessionStore.Clear: owner=%s: %v", owner, errors.Join(errs...))
		return fmt.Errorf("%w: clear session: %v", ErrInternal, errors.Join(errs...))
	}

	s.logger.Info("SessionStore.Clear: session cleared for owner=%s", owner)
	return nil
}

// OnUnauthorized вызывается клиентом API маркетплейса на 401 по закрытому пути
func (s *SessionStore) OnUnauthorized(ctx context.Context) {
	owner := session.OwnerFromContext(ctx)
	if owner == "" {
		return
	}
	if err := s.Clear(ctx, owner); err != nil {
		s.logger.Warn("SessionStore.OnUnauthorized: failed to clear session for owner=%s: %v", owner, err)
	}
}
