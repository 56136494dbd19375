package plan_bulk_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
	"github.com/geopressci/pressing-gateway/pkg/logger"
	"github.com/geopressci/pressing-gateway/pkg/types"
)

type mockBulkClient struct {
	mock.Mock
}

func (m *mockBulkClient) CreateBulkTimeSlots(ctx context.Context, pressingID string, input pressingapi.BulkTimeSlotsInput) (*pressingapi.BulkTimeSlotsResult, error) {
	args := m.Called(ctx, pressingID, input)
	result, _ := args.Get(0).(*pressingapi.BulkTimeSlotsResult)
	return result, args.Error(1)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

// понедельник
var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func newUseCase(client BulkSlotsClient) *UseCase {
	uc := NewUseCase(client, logger.Discard())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func baseRequest() *Request {
	return &Request{
		PressingID:   "p1",
		StartDate:    now,
		EndDate:      now.AddDate(0, 0, 6),
		DaysOfWeek:   []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		OpenTime:     "08:00",
		CloseTime:    "12:00",
		SlotDuration: 90,
		MaxCapacity:  3,
		DryRun:       true,
	}
}

func TestGenerateDayGrid(t *testing.T) {
	tests := []struct {
		name     string
		open     types.TimeString
		close    types.TimeString
		duration int
		expected []types.TimeString
	}{
		{"exact fit", "09:00", "12:00", 60, []types.TimeString{"09:00", "10:00", "11:00"}},
		{"last slot would overflow", "08:00", "12:00", 90, []types.TimeString{"08:00", "09:30"}},
		{"duration longer than day", "09:00", "10:00", 120, []types.TimeString{}},
		{"until midnight", "22:00", "23:59", 60, []types.TimeString{"22:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, generateDayGrid(tt.open, tt.close, tt.duration))
		})
	}
}

func TestExecute_DryRunPreview(t *testing.T) {
	client := &mockBulkClient{}
	req := baseRequest()
	req.ExcludeDates = []time.Time{now.AddDate(0, 0, 2)} // среда

	resp, err := newUseCase(client).Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Days, 2)
	assert.Equal(t, time.Monday, resp.Days[0].Date.Weekday())
	assert.Equal(t, time.Friday, resp.Days[1].Date.Weekday())
	assert.Equal(t, []types.TimeString{"08:00", "09:30"}, resp.Days[0].Starts)
	assert.Equal(t, 4, resp.TotalSlots)
	assert.False(t, resp.Submitted)
	client.AssertNotCalled(t, "CreateBulkTimeSlots", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_AllWeekdaysWhenEmpty(t *testing.T) {
	req := baseRequest()
	req.DaysOfWeek = nil

	resp, err := newUseCase(&mockBulkClient{}).Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Days, 7)
	assert.Equal(t, 14, resp.TotalSlots)
}

func TestExecute_Submit(t *testing.T) {
	client := &mockBulkClient{}
	req := baseRequest()
	req.DryRun = false
	req.SlotType = domain.SlotExpress

	expected := pressingapi.BulkTimeSlotsInput{
		StartDate:    "2025-03-10",
		EndDate:      "2025-03-16",
		DaysOfWeek:   []int{1, 3, 5},
		StartTime:    "08:00",
		EndTime:      "12:00",
		SlotDuration: 90,
		MaxCapacity:  3,
		SlotType:     domain.SlotExpress,
		ExcludeDates: []string{},
	}
	client.On("CreateBulkTimeSlots", mock.Anything, "p1", expected).
		Return(&pressingapi.BulkTimeSlotsResult{Created: 5, Skipped: 1}, nil)

	resp, err := newUseCase(client).Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Submitted)
	assert.Equal(t, 5, resp.Created)
	assert.Equal(t, 1, resp.Skipped)
	assert.Equal(t, 6, resp.TotalSlots)
	client.AssertExpectations(t)
}

func TestExecute_UpstreamErrorIsPropagated(t *testing.T) {
	client := &mockBulkClient{}
	req := baseRequest()
	req.DryRun = false
	client.On("CreateBulkTimeSlots", mock.Anything, "p1", mock.Anything).
		Return(nil, &pressingapi.APIError{StatusCode: 409, Message: "Créneaux déjà existants"})

	_, err := newUseCase(client).Execute(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, pressingapi.ErrConflict)
	assert.Equal(t, "Créneaux déjà existants", pressingapi.UserMessage(err, ""))
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(r *Request)
		expected error
	}{
		{"no pressing", func(r *Request) { r.PressingID = "" }, ErrInvalidInput},
		{"end before start", func(r *Request) { r.EndDate = r.StartDate.AddDate(0, 0, -1) }, ErrInvalidDateRange},
		{"start in the past", func(r *Request) { r.StartDate = now.AddDate(0, 0, -1) }, ErrInvalidDateRange},
		{"range too long", func(r *Request) { r.EndDate = r.StartDate.AddDate(0, 0, MaxRangeDays) }, ErrInvalidDateRange},
		{"bad weekday", func(r *Request) { r.DaysOfWeek = []time.Weekday{7} }, ErrInvalidInput},
		{"open after close", func(r *Request) { r.OpenTime, r.CloseTime = "18:00", "08:00" }, ErrInvalidHours},
		{"malformed time", func(r *Request) { r.OpenTime = "8h" }, ErrInvalidHours},
		{"duration too short", func(r *Request) { r.SlotDuration = 5 }, ErrInvalidInput},
		{"capacity zero", func(r *Request) { r.MaxCapacity = 0 }, ErrInvalidInput},
		{"unknown type", func(r *Request) { r.SlotType = "vip" }, ErrInvalidInput},
		{"empty plan", func(r *Request) { r.SlotDuration = 240; r.CloseTime = "09:00" }, ErrEmptyPlan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(req)
			_, err := newUseCase(&mockBulkClient{}).Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
