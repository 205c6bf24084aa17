package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/migillett/TranscodeTycoonGame/internal/api/middleware"
	"github.com/migillett/TranscodeTycoonGame/internal/models"
)

type UpgradeService interface {
	GetUser(userID string) (*models.User, error)
	PurchaseUpgrade(userID string, upgradeType models.HardwareType) (*models.User, error)
}

type UpgradeHandler struct {
	service UpgradeService
}

func NewUpgradeHandler(service UpgradeService) *UpgradeHandler {
	return &UpgradeHandler{service: service}
}

type purchaseRequest struct {
	UpgradeType string `json:"upgrade_type"`
}

// Purchase debits the caller and upgrades one hardware stat. Insufficient
// funds are 402; an exhausted level cap is 409.
func (h *UpgradeHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	upgradeType, err := models.ParseHardwareType(req.UpgradeType)
	if err != nil {
		writeGameError(w, err, http.StatusPaymentRequired)
		return
	}

	user, err := h.service.PurchaseUpgrade(middleware.UserID(r), upgradeType)
	if err != nil {
		writeGameError(w, err, http.StatusPaymentRequired)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// List returns the caller's current hardware map.
func (h *UpgradeHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(middleware.UserID(r))
	if err != nil {
		writeGameError(w, err, http.StatusPaymentRequired)
		return
	}
	writeJSON(w, http.StatusOK, user.Computer.Hardware)
}
