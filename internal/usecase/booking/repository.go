package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/geopressci/pressing-gateway/internal/domain"
	prefsStore "github.com/geopressci/pressing-gateway/internal/infra/storage/preferences"
)

// DraftRepository черновики мастера в KV-хранилище, в JSON.
// Признак отправки живет только в памяти процесса: сохраненное значение
// submitting игнорируется, черновик не может зависнуть после сбоя.
type DraftRepository struct {
	store KVStore

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewDraftRepository(store KVStore) *DraftRepository {
	return &DraftRepository{
		store:    store,
		inFlight: make(map[string]struct{}),
	}
}

func draftKey(id string) string {
	return domain.BookingDraftKey + ":" + id
}

// Get загружает черновик владельца
func (r *DraftRepository) Get(ctx context.Context, owner, id string) (*Draft, error) {
	raw, err := r.store.Get(ctx, owner, draftKey(id))
	if err != nil {
		if errors.Is(err, prefsStore.ErrKeyNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("%w: load draft %s: %v", ErrInternal, id, err)
	}

	var draft Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, fmt.Errorf("%w: decode draft %s: %v", ErrInternal, id, err)
	}
	draft.Submitting = r.submitting(owner, id)
	return &draft, nil
}

// Save сохраняет черновик владельца
func (r *DraftRepository) Save(ctx context.Context, owner string, draft *Draft) error {
	stored := *draft
	stored.Submitting = false
	raw, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("%w: encode draft %s: %v", ErrInternal, draft.ID, err)
	}
	if err := r.store.Set(ctx, owner, draftKey(draft.ID), string(raw)); err != nil {
		return fmt.Errorf("%w: save draft %s: %v", ErrInternal, draft.ID, err)
	}
	return nil
}

// Delete удаляет черновик владельца
func (r *DraftRepository) Delete(ctx context.Context, owner, id string) error {
	if err := r.store.Delete(ctx, owner, draftKey(id)); err != nil {
		return fmt.Errorf("%w: delete draft %s: %v", ErrInternal, id, err)
	}
	return nil
}

func inFlightKey(owner, id string) string {
	return owner + "/" + id
}

// acquire помечает черновик отправляемым; false, если отправка уже идет
func (r *DraftRepository) acquire(owner, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := inFlightKey(owner, id)
	if _, busy := r.inFlight[key]; busy {
		return false
	}
	r.inFlight[key] = struct{}{}
	return true
}

func (r *DraftRepository) release(owner, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inFlight, inFlightKey(owner, id))
}

func (r *DraftRepository) submitting(owner, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, busy := r.inFlight[inFlightKey(owner, id)]
	return busy
}
