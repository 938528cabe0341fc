package user

import (
	dto "bank_backend/internal/api/dto/user"
	"bank_backend/internal/converter"
	"bank_backend/internal/model"
	"bank_backend/internal/service"
	"bank_backend/pkg/req"
	"bank_backend/pkg/resp"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Serv service.InteractionService
}

type Handler struct {
	serv service.InteractionService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// bearerToken - токен из заголовка Authorization либо из query параметра
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return r.URL.Query().Get("token")
}

func pathID(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

// Balance возвращает баланс владельца токена
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	balance, err := h.serv.GetBalance(r.Context(), userID, bearerToken(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBalanceResponse(balance))
}

// UID - публичный поиск ID по имени пользователя
func (h *Handler) UID(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if len(username) == 0 {
		http.Error(w, "username required", http.StatusBadRequest)
		return
	}

	id, err := h.serv.GetUID(r.Context(), username)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToUIDResponse(id))
}

// EditUsername меняет имя владельца токена
func (h *Handler) EditUsername(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	requestBody, err := req.Decode[dto.EditUsernameRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	err = h.serv.EditUsername(r.Context(), userID, requestBody.NewUsername, bearerToken(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete удаляет аккаунт владельца токена
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	err = h.serv.DeleteUser(r.Context(), userID, bearerToken(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Transfer - перевод денег со счета владельца токена
func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	fromUserID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	requestBody, err := req.Decode[dto.TransferRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	err = h.serv.SendMoney(r.Context(), fromUserID, requestBody.Amount, requestBody.ToUserID, bearerToken(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AdminBalance - просмотр чужого баланса администратором
func (h *Handler) AdminBalance(w http.ResponseWriter, r *http.Request) {
	callerID, err := pathID(r, "caller_id")
	if err != nil {
		http.Error(w, "invalid caller id", http.StatusBadRequest)
		return
	}
	targetID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	balance, err := h.serv.AdminGetBalance(r.Context(), callerID, targetID, bearerToken(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBalanceResponse(balance))
}

// AdminSetBalance - административная коррекция баланса
func (h *Handler) AdminSetBalance(w http.ResponseWriter, r *http.Request) {
	callerID, err := pathID(r, "caller_id")
	if err != nil {
		http.Error(w, "invalid caller id", http.StatusBadRequest)
		return
	}
	targetID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	requestBody, err := req.Decode[dto.SetBalanceRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	err = h.serv.AdminSetBalance(r.Context(), callerID, targetID, requestBody.Balance, bearerToken(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AdminDelete - удаление чужого аккаунта администратором
func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	callerID, err := pathID(r, "caller_id")
	if err != nil {
		http.Error(w, "invalid caller id", http.StatusBadRequest)
		return
	}
	targetID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	err = h.serv.AdminDeleteUser(r.Context(), callerID, targetID, bearerToken(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeError - единое соответствие ошибок ядра статусам HTTP.
// Кривой, истекший и чужой токен снаружи неразличимы
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidCredential):
		http.Error(w, "invalid token", http.StatusBadRequest)
	case errors.Is(err, model.ErrNoAccess):
		http.Error(w, "no access", http.StatusForbidden)
	case errors.Is(err, model.ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, model.ErrInsufficientFunds):
		http.Error(w, "insufficient funds", http.StatusPaymentRequired)
	case errors.Is(err, model.ErrInvalidAmount):
		http.Error(w, "invalid amount", http.StatusUnprocessableEntity)
	case errors.Is(err, model.ErrUserAlreadyExists):
		http.Error(w, "username already taken", http.StatusConflict)
	default:
		log.Println("internal error:", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
