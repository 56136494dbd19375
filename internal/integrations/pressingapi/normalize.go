package pressingapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
)

var weekdays = map[string]time.Weekday{
	"dimanche": time.Sunday, "sunday": time.Sunday,
	"lundi": time.Monday, "monday": time.Monday,
	"mardi": time.Tuesday, "tuesday": time.Tuesday,
	"mercredi": time.Wednesday, "wednesday": time.Wednesday,
	"jeudi": time.Thursday, "thursday": time.Thursday,
	"vendredi": time.Friday, "friday": time.Friday,
	"samedi": time.Saturday, "saturday": time.Saturday,
}

// NormalizePressing приводит ответ API с французскими или английскими
// именами полей к domain.Pressing. Отсутствующие числа равны 0,
// отсутствующие координаты оставляют HasLocation = false.
func NormalizePressing(raw map[string]interface{}) domain.Pressing {
	p := domain.Pressing{
		ID:           firstString(raw, "_id", "id"),
		Name:         firstString(raw, "nom", "name", "businessName"),
		Neighborhood: firstString(raw, "quartier", "neighborhood", "commune"),
		Rating:       firstFloat(raw, "rating", "note", "averageRating"),
		ReviewCount:  int(firstFloat(raw, "reviewCount", "nombreAvis", "totalReviews")),
		Phone:        firstString(raw, "telephone", "phone"),
	}

	switch addr := firstValue(raw, "adresse", "address").(type) {
	case string:
		p.Address = addr
	case map[string]interface{}:
		p.Address = firstString(addr, "street", "rue", "formatted")
		if p.Neighborhood == "" {
			p.Neighborhood = firstString(addr, "quartier", "neighborhood", "commune")
		}
		if coords, ok := coordinatesOf(addr); ok {
			p.Location, p.HasLocation = coords, true
		}
	}

	if coords, ok := coordinatesOf(raw); ok {
		p.Location, p.HasLocation = coords, true
	}

	if list, ok := firstValue(raw, "services").([]interface{}); ok {
		p.Services = make([]domain.PressingService, 0, len(list))
		for _, item := range list {
			svc, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			p.Services = append(p.Services, domain.PressingService{
				ID:       firstString(svc, "_id", "id"),
				Name:     firstString(svc, "nom", "name"),
				Category: firstString(svc, "categorie", "category"),
				Price:    firstFloat(svc, "prix", "price"),
			})
		}
	}

	if list, ok := firstValue(raw, "horaires", "openingHours").([]interface{}); ok {
		for _, item := range list {
			h, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			day, ok := weekdays[strings.ToLower(firstString(h, "jour", "day"))]
			if !ok {
				continue
			}
			p.OpeningHours = append(p.OpeningHours, domain.OpeningHours{
				Day:    day,
				Open:   firstString(h, "ouverture", "open"),
				Close:  firstString(h, "fermeture", "close"),
				Closed: firstBool(h, "ferme", "closed"),
			})
		}
	}

	p.IsOpen = firstBool(raw, "isOpen", "ouvert")

	if created := firstString(raw, "createdAt"); created != "" {
		if t, err := parseTime(created); err == nil {
			p.CreatedAt = t
		}
	}

	return p
}

// coordinatesOf ищет координаты в GeoJSON location.coordinates [lng, lat],
// в парах latitude/longitude и lat/lng, в объекте coordinates
func coordinatesOf(m map[string]interface{}) (domain.Coordinates, bool) {
	if loc, ok := m["location"].(map[string]interface{}); ok {
		if pair, ok := loc["coordinates"].([]interface{}); ok && len(pair) == 2 {
			lng, okLng := toFloat(pair[0])
			lat, okLat := toFloat(pair[1])
			if okLng && okLat {
				return domain.Coordinates{Latitude: lat, Longitude: lng}, true
			}
		}
		if c, ok := latLng(loc); ok {
			return c, true
		}
	}
	if obj, ok := m["coordinates"].(map[string]interface{}); ok {
		if c, ok := latLng(obj); ok {
			return c, true
		}
	}
	return latLng(m)
}

func latLng(m map[string]interface{}) (domain.Coordinates, bool) {
	lat, okLat := toFloat(firstValue(m, "latitude", "lat"))
	lng, okLng := toFloat(firstValue(m, "longitude", "lng", "lon"))
	if !okLat || !okLng {
		return domain.Coordinates{}, false
	}
	return domain.Coordinates{Latitude: lat, Longitude: lng}, true
}

func firstValue(m map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func firstFloat(m map[string]interface{}, keys ...string) float64 {
	for _, k := range keys {
		if f, ok := toFloat(m[k]); ok {
			return f
		}
	}
	return 0
}

func firstBool(m map[string]interface{}, keys ...string) bool {
	for _, k := range keys {
		if b, ok := m[k].(bool); ok {
			return b
		}
	}
	return false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}
