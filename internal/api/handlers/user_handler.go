package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/migillett/TranscodeTycoonGame/internal/api/middleware"
	"github.com/migillett/TranscodeTycoonGame/internal/models"
)

type UserService interface {
	CreateUser() *models.RegisterResponse
	GetUser(userID string) (*models.User, error)
	GetPublicUser(userID string) (*models.PublicUser, error)
	UpdateUser(userID string, patch models.UserPatch) (*models.User, error)
	Leaderboard(start, items int) *models.Leaderboard
}

type UserHandler struct {
	service UserService
}

func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register creates a fresh account. The response carries the secret token
// exactly once; it cannot be recovered later.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, h.service.CreateUser())
}

// GetMe returns the caller's own account, settled up to now.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(middleware.UserID(r))
	if err != nil {
		writeGameError(w, err, http.StatusNotAcceptable)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// PatchMe applies a partial update; absent fields are left unchanged.
func (h *UserHandler) PatchMe(w http.ResponseWriter, r *http.Request) {
	var patch models.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.service.UpdateUser(middleware.UserID(r), patch)
	if err != nil {
		writeGameError(w, err, http.StatusNotAcceptable)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// GetPublic returns another player's public record by id.
func (h *UserHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	user, err := h.service.GetPublicUser(userID)
	if err != nil {
		writeGameError(w, err, http.StatusNotAcceptable)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Leaderboard ranks players by funds descending, paginated by start/items.
func (h *UserHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	start := queryInt(r, "start", 0)
	items := queryInt(r, "items", 10)
	writeJSON(w, http.StatusOK, h.service.Leaderboard(start, items))
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
