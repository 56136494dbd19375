package domain

import (
	"strings"
	"time"
)

// Подстроки в названиях услуг, по которым определяется доставка и забор
var (
	deliveryKeywords = []string{"livraison", "delivery", "domicile"}
	pickupKeywords   = []string{"collecte", "ramassage", "pickup", "récupération"}
)

// PressingService услуга pressing
type PressingService struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// Pressing каноническое представление pressing после нормализации ответа API
type Pressing struct {
	ID           string
	Name         string
	Address      string
	Neighborhood string
	Location     Coordinates
	HasLocation  bool
	Rating       float64
	ReviewCount  int
	Services     []PressingService
	Phone        string
	OpeningHours []OpeningHours
	IsOpen       bool
	CreatedAt    time.Time

	// Distance до точки поиска в км, заполняется конвейером поиска
	Distance float64
}

// OpeningHours часы работы на день недели
type OpeningHours struct {
	Day    time.Weekday
	Open   string // HH:MM
	Close  string // HH:MM
	Closed bool
}

// OpenAt открыт ли pressing в момент t.
// Без расписания используется флаг IsOpen из ответа API.
func (p *Pressing) OpenAt(t time.Time) bool {
	if len(p.OpeningHours) == 0 {
		return p.IsOpen
	}

	current := t.Format(TimeFormat)
	for _, h := range p.OpeningHours {
		if h.Day != t.Weekday() {
			continue
		}
		if h.Closed || h.Open == "" || h.Close == "" {
			return false
		}
		return current >= h.Open && current < h.Close
	}
	return false
}

// AveragePrice средняя цена услуг, 0 если услуг нет
func (p *Pressing) AveragePrice() float64 {
	if len(p.Services) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range p.Services {
		total += s.Price
	}
	return total / float64(len(p.Services))
}

// OffersDelivery есть ли услуга доставки
func (p *Pressing) OffersDelivery() bool {
	return p.hasServiceMatching(deliveryKeywords)
}

// OffersPickup есть ли услуга забора белья
func (p *Pressing) OffersPickup() bool {
	return p.hasServiceMatching(pickupKeywords)
}

// FindService ищет услугу по ID
func (p *Pressing) FindService(id string) (PressingService, bool) {
	for _, s := range p.Services {
		if s.ID == id {
			return s, true
		}
	}
	return PressingService{}, false
}

func (p *Pressing) hasServiceMatching(keywords []string) bool {
	for _, s := range p.Services {
		name := strings.ToLower(s.Name)
		for _, kw := range keywords {
			if strings.Contains(name, kw) {
				return true
			}
		}
	}
	return false
}
