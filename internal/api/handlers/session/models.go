package session

// SaveSessionRequest HTTP request model
type SaveSessionRequest struct {
	Token string `json:"token"`
}

// SessionResponse состояние сессии владельца
type SessionResponse struct {
	Authenticated bool `json:"authenticated"`
}
