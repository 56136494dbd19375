package load_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/pkg/logger"
	"github.com/geopressci/pressing-gateway/pkg/types"
)

type mockSlotsClient struct {
	mock.Mock
}

func (m *mockSlotsClient) GetAvailableSlots(ctx context.Context, pressingID string, date time.Time) ([]*domain.TimeSlot, error) {
	args := m.Called(ctx, pressingID, date)
	slots, _ := args.Get(0).([]*domain.TimeSlot)
	return slots, args.Error(1)
}

type fallbackCounter struct {
	reasons []string
}

func (c *fallbackCounter) IncSlotFallback(reason string) {
	c.reasons = append(c.reasons, reason)
}

var day = time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

func slot(id, start string, capacity, bookings int) *domain.TimeSlot {
	return &domain.TimeSlot{
		ID:              id,
		PressingID:      "p1",
		Date:            day,
		StartTime:       types.TimeString(start),
		MaxCapacity:     capacity,
		CurrentBookings: bookings,
		AvailableSpots:  capacity - bookings,
		Status:          domain.SlotAvailable,
		SlotType:        domain.SlotRegular,
	}
}

func TestExecute_UpstreamErrorUsesDefaultSlots(t *testing.T) {
	client := &mockSlotsClient{}
	client.On("GetAvailableSlots", mock.Anything, "p1", day).Return(nil, errors.New("connection refused"))
	counter := &fallbackCounter{}

	uc := NewUseCase(client, counter, logger.Discard())
	resp, err := uc.Execute(context.Background(), &Request{PressingID: "p1", Date: day.Add(15 * time.Hour)})
	require.NoError(t, err)

	assert.Equal(t, SourceFallback, resp.Source)
	assert.Equal(t, NoticeUpstreamUnavailable, resp.Notice)
	assert.False(t, resp.NoSlots)
	require.Len(t, resp.Slots, 4)

	first := resp.Slots[0]
	assert.Equal(t, "default-2025-03-12-0900", first.ID)
	assert.Equal(t, "09:00", first.StartTime.String())
	assert.Equal(t, "10:00", first.EndTime.String())
	assert.Equal(t, domain.DefaultSlotCapacity, first.AvailableSpots)
	assert.True(t, first.IsBookable())
	assert.True(t, IsDefaultSlotID(first.ID))

	var starts []string
	for _, s := range resp.Slots {
		starts = append(starts, s.StartTime.String())
	}
	assert.Equal(t, []string{"09:00", "10:00", "14:00", "15:00"}, starts)
	assert.Equal(t, []string{FallbackUpstreamError}, counter.reasons)
	client.AssertExpectations(t)
}

func TestExecute_EmptyListUsesDefaultSlots(t *testing.T) {
	client := &mockSlotsClient{}
	client.On("GetAvailableSlots", mock.Anything, "p1", day).Return([]*domain.TimeSlot{}, nil)
	counter := &fallbackCounter{}

	resp, err := NewUseCase(client, counter, logger.Discard()).
		Execute(context.Background(), &Request{PressingID: "p1", Date: day})
	require.NoError(t, err)

	assert.Equal(t, SourceFallback, resp.Source)
	assert.Equal(t, NoticeNothingPublished, resp.Notice)
	assert.Len(t, resp.Slots, 4)
	assert.Equal(t, []string{FallbackEmpty}, counter.reasons)
}

func TestExecute_FiltersAndSortsBookableSlots(t *testing.T) {
	full := slot("s-full", "11:00", 2, 2)
	blocked := slot("s-blocked", "08:00", 3, 0)
	blocked.IsBlocked = true
	otherDay := slot("s-other", "07:00", 3, 0)
	otherDay.Date = day.AddDate(0, 0, 1)
	late := slot("s-late", "16:00", 4, 1)
	early := slot("s-early", "09:30", 4, 0)

	client := &mockSlotsClient{}
	client.On("GetAvailableSlots", mock.Anything, "p1", day).
		Return([]*domain.TimeSlot{late, full, blocked, otherDay, early}, nil)

	resp, err := NewUseCase(client, nil, logger.Discard()).
		Execute(context.Background(), &Request{PressingID: "p1", Date: day})
	require.NoError(t, err)

	assert.Equal(t, SourceAPI, resp.Source)
	assert.False(t, resp.NoSlots)
	assert.Empty(t, resp.Notice)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "s-early", resp.Slots[0].ID)
	assert.Equal(t, "s-late", resp.Slots[1].ID)
}

func TestExecute_RecomputesInconsistentSpots(t *testing.T) {
	stale := slot("s1", "10:00", 4, 4)
	stale.AvailableSpots = 2 // сервер не обновил счетчик

	client := &mockSlotsClient{}
	client.On("GetAvailableSlots", mock.Anything, "p1", day).Return([]*domain.TimeSlot{stale}, nil)

	resp, err := NewUseCase(client, nil, logger.Discard()).
		Execute(context.Background(), &Request{PressingID: "p1", Date: day})
	require.NoError(t, err)

	assert.True(t, resp.NoSlots)
	assert.Equal(t, NoticeNoSlots, resp.Notice)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 0, stale.AvailableSpots)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&mockSlotsClient{}, nil, logger.Discard())

	_, err := uc.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{PressingID: " ", Date: day})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{PressingID: "p1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
