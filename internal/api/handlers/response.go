package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
)

// LoginPath куда клиент перенаправляется при истекшей сессии
const LoginPath = "/login"

const (
	msgInternalError  = "Une erreur interne est survenue."
	msgSessionExpired = "Votre session a expiré. Veuillez vous reconnecter."
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON пишет data как JSON; при nil тело пустое
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError пишет ErrorResponse с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondSessionExpired 401 с Location на страницу входа
func RespondSessionExpired(w http.ResponseWriter) {
	w.Header().Set("Location", LoginPath)
	RespondError(w, http.StatusUnauthorized, msgSessionExpired)
}

// RespondUpstreamError переводит ошибку API маркетплейса в HTTP-ответ.
// Сообщение сервера сохраняется, иначе используется fallback.
func RespondUpstreamError(w http.ResponseWriter, err error, fallback string) {
	message := pressingapi.UserMessage(err, fallback)

	switch {
	case errors.Is(err, pressingapi.ErrSessionExpired):
		RespondSessionExpired(w)
	case errors.Is(err, pressingapi.ErrUnauthorized):
		RespondUnauthorized(w, message)
	case errors.Is(err, pressingapi.ErrForbidden):
		RespondForbidden(w, message)
	case errors.Is(err, pressingapi.ErrNotFound):
		RespondNotFound(w, message)
	case errors.Is(err, pressingapi.ErrConflict):
		RespondConflict(w, message)
	case errors.Is(err, pressingapi.ErrBadRequest):
		RespondBadRequest(w, message)
	default:
		RespondError(w, http.StatusBadGateway, message)
	}
}

// DecodeJSON декодирует тело запроса; пустое тело не считается ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
