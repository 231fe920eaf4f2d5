package handler

import (
	"encoding/json"
	"net/http"

	"stackit/internal/api/middleware"
	"stackit/internal/app/service"
	"stackit/internal/common"
	"stackit/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/register", h.register)
	r.Post("/logout", h.logout)

	r.Group(func(authenticated chi.Router) {
		authenticated.Use(middleware.Authenticator)
		authenticated.Get("/me", h.me)
	})
}

// setAuthCookie attaches the token as the http-only strict-same-site cookie.
// Secure is off only in development so local HTTP still works.
func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(config.AppConfig.JWTExp.Seconds()),
		HttpOnly: true,
		Secure:   config.AppConfig.Env != "development",
		SameSite: http.SameSiteStrictMode,
	})
}

func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   config.AppConfig.Env != "development",
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}

	setAuthCookie(w, result.Token)
	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    result.User,
	})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}

	setAuthCookie(w, result.Token)
	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Registration successful",
		"user":    result.User,
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, _ *http.Request) {
	clearAuthCookie(w)
	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Logged out",
	})
}

// me reports the identity carried by the verified token. Claims are the
// snapshot; no store lookup happens here.
func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	email, _ := middleware.GetEmailFromContext(r.Context())
	username, _ := middleware.GetUsernameFromContext(r.Context())

	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"user": map[string]any{
			"id":       userID,
			"email":    email,
			"username": username,
		},
	})
}
