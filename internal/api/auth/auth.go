package auth

import (
	dto "bank_backend/internal/api/dto/auth"
	"bank_backend/internal/converter"
	"bank_backend/internal/model"
	"bank_backend/internal/service"
	"bank_backend/pkg/req"
	"bank_backend/pkg/resp"
	"errors"
	"log"
	"net/http"
)

type HandlerDeps struct {
	Serv service.InteractionService
	Auth service.AuthService
}

type Handler struct {
	serv service.InteractionService
	auth service.AuthService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, auth: deps.Auth}
}

// Register создает пользователя и возвращает его ID
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.RegisterRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	id, err := h.serv.RegisterUser(r.Context(), requestBody.Username, requestBody.Password)
	if err != nil {
		if errors.Is(err, model.ErrUserAlreadyExists) {
			http.Error(w, "user already exists", http.StatusConflict)
			return
		}
		log.Println("Register error:", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToRegisterResponse(id))
}

// Token выдает токен по ID пользователя и паролю
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.TokenRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	token, err := h.auth.IssueCredential(r.Context(), requestBody.UserID, requestBody.Password)
	if err != nil {
		if errors.Is(err, model.ErrWrongPassword) {
			http.Error(w, "wrong password", http.StatusUnauthorized)
			return
		}
		log.Println("Token error:", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToTokenResponse(token))
}
