package controllers

import (
	"github.com/gin-gonic/gin"

	"simplifytour/internal/models/request_models"
	"simplifytour/internal/services"
	"simplifytour/pkg/utils"
)

type SettingController struct {
	settings services.SettingService
}

func NewSettingController(settings services.SettingService) *SettingController {
	return &SettingController{settings: settings}
}

// List godoc
// @Summary List editable settings with their current values
// @Tags Admin Settings
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /admin/settings [get]
func (s *SettingController) List(c *gin.Context) {
	settings, err := s.settings.List(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, settings, "Settings fetched successfully")
}

// Set godoc
// @Summary Store a value for an editable setting
// @Tags Admin Settings
// @Accept json
// @Produce json
// @Param name path string true "Setting name"
// @Param request body request_models.SettingRequest true "Value"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /admin/settings/{name} [put]
func (s *SettingController) Set(c *gin.Context) {
	var req request_models.SettingRequest
	if !bindJSON(c, &req) {
		return
	}
	setting, err := s.settings.Set(c.Request.Context(), c.Param("name"), req.Value)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, setting, "Setting updated successfully")
}

// Reset drops the stored value so the configured default applies again.
func (s *SettingController) Reset(c *gin.Context) {
	if err := s.settings.Reset(c.Request.Context(), c.Param("name")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Setting reset successfully")
}
