package handlers

import (
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
)

// TimeSlotResponse créneau в ответах API шлюза
type TimeSlotResponse struct {
	ID              string   `json:"id"`
	PressingID      string   `json:"pressingId,omitempty"`
	Date            string   `json:"date"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	MaxCapacity     int      `json:"maxCapacity"`
	CurrentBookings int      `json:"currentBookings"`
	AvailableSpots  int      `json:"availableSpots"`
	Status          string   `json:"status"`
	SlotType        string   `json:"slotType,omitempty"`
	SpecialPrice    *float64 `json:"specialPrice,omitempty"`
	Discount        *float64 `json:"discount,omitempty"`
	IsBlocked       bool     `json:"isBlocked"`
	BlockReason     *string  `json:"blockReason,omitempty"`
	OccupancyRate   float64  `json:"occupancyRate"`
}

// FromTimeSlot конвертирует доменный créneau в модель ответа
func FromTimeSlot(s *domain.TimeSlot) TimeSlotResponse {
	return TimeSlotResponse{
		ID:              s.ID,
		PressingID:      s.PressingID,
		Date:            s.Date.Format(domain.DateFormat),
		StartTime:       s.StartTime.String(),
		EndTime:         s.EndTime.String(),
		MaxCapacity:     s.MaxCapacity,
		CurrentBookings: s.CurrentBookings,
		AvailableSpots:  s.AvailableSpots,
		Status:          string(s.Status),
		SlotType:        string(s.SlotType),
		SpecialPrice:    s.SpecialPrice,
		Discount:        s.Discount,
		IsBlocked:       s.IsBlocked,
		BlockReason:     s.BlockReason,
		OccupancyRate:   s.OccupancyRate(),
	}
}

// FromTimeSlots конвертирует список; nil дает пустой массив
func FromTimeSlots(slots []*domain.TimeSlot) []TimeSlotResponse {
	out := make([]TimeSlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, FromTimeSlot(s))
	}
	return out
}

// OpeningHoursResponse часы работы на день
type OpeningHoursResponse struct {
	Day    string `json:"day"`
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed"`
}

// PressingResponse pressing в ответах API шлюза
type PressingResponse struct {
	ID             string                   `json:"id"`
	Name           string                   `json:"name"`
	Address        string                   `json:"address,omitempty"`
	Neighborhood   string                   `json:"neighborhood,omitempty"`
	Location       *domain.Coordinates      `json:"location,omitempty"`
	Rating         float64                  `json:"rating"`
	ReviewCount    int                      `json:"reviewCount"`
	Services       []domain.PressingService `json:"services"`
	Phone          string                   `json:"phone,omitempty"`
	OpeningHours   []OpeningHoursResponse   `json:"openingHours,omitempty"`
	IsOpen         bool                     `json:"isOpen"`
	AveragePrice   float64                  `json:"averagePrice"`
	OffersDelivery bool                     `json:"offersDelivery"`
	OffersPickup   bool                     `json:"offersPickup"`
	DistanceKm     *float64                 `json:"distanceKm,omitempty"`
	IsFavorite     bool                     `json:"isFavorite"`
}

// FromPressing конвертирует pressing; IsOpen вычисляется на момент now
func FromPressing(p *domain.Pressing, now time.Time) PressingResponse {
	resp := PressingResponse{
		ID:             p.ID,
		Name:           p.Name,
		Address:        p.Address,
		Neighborhood:   p.Neighborhood,
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,
		Services:       p.Services,
		Phone:          p.Phone,
		IsOpen:         p.OpenAt(now),
		AveragePrice:   p.AveragePrice(),
		OffersDelivery: p.OffersDelivery(),
		OffersPickup:   p.OffersPickup(),
	}
	if resp.Services == nil {
		resp.Services = []domain.PressingService{}
	}
	if p.HasLocation {
		location := p.Location
		distance := p.Distance
		resp.Location = &location
		resp.DistanceKm = &distance
	}
	for _, h := range p.OpeningHours {
		resp.OpeningHours = append(resp.OpeningHours, OpeningHoursResponse{
			Day:    h.Day.String(),
			Open:   h.Open,
			Close:  h.Close,
			Closed: h.Closed,
		})
	}
	return resp
}
