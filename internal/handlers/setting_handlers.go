package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoirulmuhlisin/unitproduksi/internal/models"
	"github.com/khoirulmuhlisin/unitproduksi/internal/store"
	"github.com/khoirulmuhlisin/unitproduksi/pkg/utils"
)

// SettingHandler reads and writes the singleton shop settings record.
// Thin enough that it talks to the record store directly.
type SettingHandler struct {
	store store.RecordStore
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(st store.RecordStore) *SettingHandler {
	return &SettingHandler{store: st}
}

// GetSettings retrieves the shop identity settings.
func (h *SettingHandler) GetSettings(c *gin.Context) {
	settings, err := h.store.Settings(c.Request.Context())
	if err != nil {
		respondStorageOrInternal(c, err, "GetSettings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings replaces the shop identity settings.
func (h *SettingHandler) UpdateSettings(c *gin.Context) {
	var settings models.ShopSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	if err := h.store.SaveSettings(c.Request.Context(), settings); err != nil {
		respondStorageOrInternal(c, err, "UpdateSettings")
		return
	}
	c.JSON(http.StatusOK, settings)
}
