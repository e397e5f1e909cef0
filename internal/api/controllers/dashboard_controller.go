package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"simplifytour/internal/services"
	"simplifytour/pkg/middleware"
	"simplifytour/pkg/utils"
)

type DashboardController struct {
	dashboard services.DashboardService
	links     services.LinksService
}

func NewDashboardController(dashboard services.DashboardService, links services.LinksService) *DashboardController {
	return &DashboardController{dashboard: dashboard, links: links}
}

// Dashboard godoc
// @Summary Content and user counts for the admin landing page
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /admin/dashboard [get]
func (d *DashboardController) Dashboard(c *gin.Context) {
	report, err := d.dashboard.BuildDashboard(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, report, "Dashboard fetched successfully")
}

// DisplayableLinks godoc
// @Summary Link list for the rich text editor
// @Description Plain JSON array of {title, value}, the format the editor's link plugin loads.
// @Tags Admin
// @Produce json
// @Success 200 {array} response_models.DisplayableLink
// @Router /admin/displayable_links.js [get]
func (d *DashboardController) DisplayableLinks(c *gin.Context) {
	links, err := d.links.DisplayableLinks(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}
