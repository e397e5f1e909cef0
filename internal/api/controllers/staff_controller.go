package controllers

import (
	"github.com/gin-gonic/gin"

	"simplifytour/internal/models/request_models"
	resp "simplifytour/internal/models/response_models"
	"simplifytour/internal/services"
	"simplifytour/pkg/utils"
)

// StaffController manages porters and guides that packages can be staffed with.
type StaffController struct {
	staff services.StaffService
}

func NewStaffController(staff services.StaffService) *StaffController {
	return &StaffController{staff: staff}
}

// ListPorters godoc
// @Summary List porters
// @Tags Admin Staff
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /admin/porters [get]
func (s *StaffController) ListPorters(c *gin.Context) {
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	porters, total, err := s.staff.ListPorters(c.Request.Context(), page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	out := make([]*resp.PorterResponse, 0, len(porters))
	for i := range porters {
		out = append(out, resp.NewPorterResponse(&porters[i]))
	}
	utils.RespondSuccess(c, paged(out, total, page), "Porters fetched successfully")
}

func (s *StaffController) CreatePorter(c *gin.Context) {
	var req request_models.PorterRequest
	if !bindJSON(c, &req) {
		return
	}
	porter, err := s.staff.CreatePorter(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, resp.NewPorterResponse(porter), "Porter created successfully")
}

func (s *StaffController) GetPorter(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	porter, err := s.staff.GetPorter(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.NewPorterResponse(porter), "Porter fetched successfully")
}

func (s *StaffController) UpdatePorter(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req request_models.PorterRequest
	if !bindJSON(c, &req) {
		return
	}
	porter, err := s.staff.UpdatePorter(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.NewPorterResponse(porter), "Porter updated successfully")
}

func (s *StaffController) DeletePorter(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := s.staff.DeletePorter(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Porter deleted successfully")
}

// ListGuides godoc
// @Summary List guides
// @Tags Admin Staff
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /admin/guides [get]
func (s *StaffController) ListGuides(c *gin.Context) {
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	guides, total, err := s.staff.ListGuides(c.Request.Context(), page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	out := make([]*resp.GuideResponse, 0, len(guides))
	for i := range guides {
		out = append(out, resp.NewGuideResponse(&guides[i]))
	}
	utils.RespondSuccess(c, paged(out, total, page), "Guides fetched successfully")
}

func (s *StaffController) CreateGuide(c *gin.Context) {
	var req request_models.GuideRequest
	if !bindJSON(c, &req) {
		return
	}
	guide, err := s.staff.CreateGuide(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, resp.NewGuideResponse(guide), "Guide created successfully")
}

func (s *StaffController) GetGuide(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	guide, err := s.staff.GetGuide(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.NewGuideResponse(guide), "Guide fetched successfully")
}

func (s *StaffController) UpdateGuide(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req request_models.GuideRequest
	if !bindJSON(c, &req) {
		return
	}
	guide, err := s.staff.UpdateGuide(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.NewGuideResponse(guide), "Guide updated successfully")
}

func (s *StaffController) DeleteGuide(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := s.staff.DeleteGuide(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Guide deleted successfully")
}
