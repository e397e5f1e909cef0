package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"simplifytour/internal/models/request_models"
	resp "simplifytour/internal/models/response_models"
	"simplifytour/internal/services"
	"simplifytour/pkg/middleware"
	"simplifytour/pkg/utils"
)

type RatingController struct {
	ratings services.RatingService
}

func NewRatingController(ratings services.RatingService) *RatingController {
	return &RatingController{ratings: ratings}
}

func (r *RatingController) rate(c *gin.Context, target services.RatingTarget) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req request_models.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.ErrInvalidRating.Error())
		return
	}

	var userID *uuid.UUID
	if user := middleware.CurrentUser(c); user != nil {
		userID = &user.ID
	}
	summary, err := r.ratings.Rate(c.Request.Context(), target, id, req.Value, userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.RatingResponse{
		Count:   summary.RatingCount,
		Sum:     summary.RatingSum,
		Average: summary.RatingAverage,
	}, "Rating saved successfully")
}

// RatePackage godoc
// @Summary Rate a package from 1 to 5
// @Tags Ratings
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Param request body request_models.RatingRequest true "Rating"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /ratings/packages/{id} [post]
func (r *RatingController) RatePackage(c *gin.Context) {
	r.rate(c, services.RatePackage)
}

// RateArticle godoc
// @Summary Rate an article from 1 to 5
// @Tags Ratings
// @Accept json
// @Produce json
// @Param id path string true "Article ID"
// @Param request body request_models.RatingRequest true "Rating"
// @Success 200 {object} utils.APIResponse
// @Router /ratings/articles/{id} [post]
func (r *RatingController) RateArticle(c *gin.Context) {
	r.rate(c, services.RateArticle)
}
