package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/geopressci/pressing-gateway/internal/domain"
	prefsStore "github.com/geopressci/pressing-gateway/internal/infra/storage/preferences"
)

// ownerLockStripes число мьютексов для чтения-изменения-записи списков
const ownerLockStripes = 64

// Service избранные pressing и история поиска.
// Изменения списков одного владельца сериализуются внутри процесса.
type Service struct {
	store     KVStore
	maxRecent int
	logger    Logger

	locks [ownerLockStripes]sync.Mutex
}

// NewService создает сервис; maxRecent <= 0 означает значение по умолчанию
func NewService(store KVStore, maxRecent int, logger Logger) *Service {
	if maxRecent <= 0 {
		maxRecent = domain.MaxRecentSearches
	}
	return &Service{
		store:     store,
		maxRecent: maxRecent,
		logger:    logger,
	}
}

// lockOwner блокирует полосу владельца, возвращает функцию разблокировки
func (s *Service) lockOwner(owner string) func() {
	h := fnv.New32a()
	h.Write([]byte(owner))
	m := &s.locks[h.Sum32()%ownerLockStripes]
	m.Lock()
	return m.Unlock
}

// Favorites ID избранных pressing в порядке добавления
func (s *Service) Favorites(ctx context.Context, owner string) ([]string, error) {
	if owner == "" {
		return nil, ErrNoOwner
	}
	return s.loadList(ctx, owner, domain.FavoritesKey)
}

// IsFavorite pressing в избранном
func (s *Service) IsFavorite(ctx context.Context, owner, pressingID string) (bool, error) {
	favorites, err := s.Favorites(ctx, owner)
	if err != nil {
		return false, err
	}
	return indexOf(favorites, pressingID) >= 0, nil
}

// ToggleFavorite добавляет или убирает pressing из избранного, возвращает новое состояние
func (s *Service) ToggleFavorite(ctx context.Context, owner, pressingID string) (bool, error) {
	if owner == "" {
		return false, ErrNoOwner
	}
	pressingID = strings.TrimSpace(pressingID)
	if pressingID == "" {
		return false, fmt.Errorf("%w: pressing id is required", ErrInvalidInput)
	}

	defer s.lockOwner(owner)()

	favorites, err := s.loadList(ctx, owner, domain.FavoritesKey)
	if err != nil {
		return false, err
	}

	isFavorite := true
	if i := indexOf(favorites, pressingID); i >= 0 {
		favorites = append(favorites[:i], favorites[i+1:]...)
		isFavorite = false
	} else {
		favorites = append(favorites, pressingID)
	}

	if err := s.saveList(ctx, owner, domain.FavoritesKey, favorites); err != nil {
		return false, err
	}

	s.logger.Info("ToggleFavorite: owner=%s, pressing=%s, favorite=%t", owner, pressingID, isFavorite)
	return isFavorite, nil
}

// RecentSearches последние запросы, самый свежий первым
func (s *Service) RecentSearches(ctx context.Context, owner string) ([]string, error) {
	if owner == "" {
		return nil, ErrNoOwner
	}
	return s.loadList(ctx, owner, domain.RecentSearchesKey)
}

// AddRecentSearch поднимает запрос в начало истории.
// Пустые запросы игнорируются, дубликаты сравниваются без учета регистра.
func (s *Service) AddRecentSearch(ctx context.Context, owner, query string) error {
	if owner == "" {
		return ErrNoOwner
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	defer s.lockOwner(owner)()

	searches, err := s.loadList(ctx, owner, domain.RecentSearchesKey)
	if err != nil {
		return err
	}

	updated := make([]string, 0, len(searches)+1)
	updated = append(updated, query)
	for _, q := range searches {
		if strings.EqualFold(q, query) {
			continue
		}
		updated = append(updated, q)
	}
	if len(updated) > s.maxRecent {
		updated = updated[:s.maxRecent]
	}

	return s.saveList(ctx, owner, domain.RecentSearchesKey, updated)
}

// ClearRecentSearches очищает историю поиска
func (s *Service) ClearRecentSearches(ctx context.Context, owner string) error {
	if owner == "" {
		return ErrNoOwner
	}
	if err := s.store.Delete(ctx, owner, domain.RecentSearchesKey); err != nil {
		s.logger.Error("ClearRecentSearches: owner=%s: %v", owner, err)
		return fmt.Errorf("%w: ClearRecentSearches: %v", ErrInternal, err)
	}
	return nil
}

// loadList читает JSON-массив строк; поврежденное значение считается пустым
func (s *Service) loadList(ctx context.Context, owner, key string) ([]string, error) {
	raw, err := s.store.Get(ctx, owner, key)
	if errors.Is(err, prefsStore.ErrKeyNotFound) {
		return []string{}, nil
	}
	if err != nil {
		s.logger.Error("preferences: failed to read key=%s for owner=%s: %v", key, owner, err)
		return nil, fmt.Errorf("%w: read %s: %v", ErrInternal, key, err)
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.logger.Warn("preferences: corrupted value for key=%s, owner=%s, resetting: %v", key, owner, err)
		return []string{}, nil
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

func (s *Service) saveList(ctx context.Context, owner, key string, list []string) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrInternal, key, err)
	}
	if err := s.store.Set(ctx, owner, key, string(raw)); err != nil {
		s.logger.Error("preferences: failed to write key=%s for owner=%s: %v", key, owner, err)
		return fmt.Errorf("%w: write %s: %v", ErrInternal, key, err)
	}
	return nil
}

func indexOf(list []string, value string) int {
	for i, v := range list {
		if v == value {
			return i
		}
	}
	return -1
}
