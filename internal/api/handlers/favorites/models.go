package favorites

// FavoritesResponse список избранных pressings
type FavoritesResponse struct {
	PressingIDs []string `json:"pressingIds"`
}

// ToggleResponse состояние после переключения
type ToggleResponse struct {
	PressingID string `json:"pressingId"`
	IsFavorite bool   `json:"isFavorite"`
}
