package booking_drafts

import (
	"context"

	"github.com/geopressci/pressing-gateway/internal/usecase/booking"
)

type DraftService interface {
	Create(ctx context.Context, owner string, input booking.CreateDraftInput) (*booking.Draft, error)
	Get(ctx context.Context, owner, id string) (*booking.Draft, error)
	SelectSlot(ctx context.Context, owner, id string, input booking.SelectSlotInput) (*booking.Draft, error)
	SetAddress(ctx context.Context, owner, id string, input booking.AddressInput) (*booking.Draft, error)
	Move(ctx context.Context, owner, id string, direction booking.Direction) (*booking.Draft, error)
	Delete(ctx context.Context, owner, id string) error
	Options() booking.Options
}

type DraftSubmitter interface {
	Submit(ctx context.Context, owner, draftID string) (*booking.Draft, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
