package controllers

import (
	"github.com/gin-gonic/gin"

	"simplifytour/internal/models/db_models"
	"simplifytour/internal/models/request_models"
	resp "simplifytour/internal/models/response_models"
	"simplifytour/internal/services"
	"simplifytour/pkg/utils"
)

type PriceController struct {
	prices   services.PriceService
	packages services.PackageService
}

func NewPriceController(prices services.PriceService, packages services.PackageService) *PriceController {
	return &PriceController{prices: prices, packages: packages}
}

func priceResponses(prices []db_models.Price) []resp.PriceResponse {
	out := make([]resp.PriceResponse, 0, len(prices))
	for i := range prices {
		out = append(out, resp.NewPriceResponse(&prices[i]))
	}
	return out
}

// ListByPackage godoc
// @Summary List the prices of a package
// @Tags Admin Prices
// @Produce json
// @Param kind path string true "Content model"
// @Param id path string true "Package ID"
// @Param archived query bool false "Include archived prices"
// @Success 200 {object} utils.APIResponse
// @Router /admin/packages/{kind}/{id}/prices [get]
func (pc *PriceController) ListByPackage(c *gin.Context) {
	pkg, ok := packageFromPath(c, pc.packages)
	if !ok {
		return
	}
	archived := optionalBoolQuery(c, "archived")
	prices, err := pc.prices.ListByPackage(c.Request.Context(), pkg.ID, archived != nil && *archived)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, priceResponses(prices), "Prices fetched successfully")
}

// Create godoc
// @Summary Add a price to a package
// @Tags Admin Prices
// @Accept json
// @Produce json
// @Param kind path string true "Content model"
// @Param id path string true "Package ID"
// @Param request body request_models.PriceRequest true "Price"
// @Success 201 {object} utils.APIResponse
// @Router /admin/packages/{kind}/{id}/prices [post]
func (pc *PriceController) Create(c *gin.Context) {
	var req request_models.PriceRequest
	if !bindJSON(c, &req) {
		return
	}
	pkg, ok := packageFromPath(c, pc.packages)
	if !ok {
		return
	}
	price, err := pc.prices.Create(c.Request.Context(), pkg.ID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, resp.NewPriceResponse(price), "Price created successfully")
}

func (pc *PriceController) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	price, err := pc.prices.Get(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.NewPriceResponse(price), "Price fetched successfully")
}

func (pc *PriceController) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req request_models.PriceRequest
	if !bindJSON(c, &req) {
		return
	}
	price, err := pc.prices.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.NewPriceResponse(price), "Price updated successfully")
}

func (pc *PriceController) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := pc.prices.Delete(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Price deleted successfully")
}

// AddStartingDate godoc
// @Summary Add a departure date (YYYY-MM-DD) to a price
// @Tags Admin Prices
// @Accept json
// @Produce json
// @Param id path string true "Price ID"
// @Param request body request_models.StartingDateRequest true "Date"
// @Success 200 {object} utils.APIResponse
// @Router /admin/prices/{id}/starting_dates [post]
func (pc *PriceController) AddStartingDate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req request_models.StartingDateRequest
	if !bindJSON(c, &req) {
		return
	}
	price, err := pc.prices.AddStartingDate(c.Request.Context(), id, req.Date)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.NewPriceResponse(price), "Starting date added successfully")
}

// RemoveStartingDate godoc
// @Summary Remove a departure date from a price
// @Tags Admin Prices
// @Param id path string true "Price ID"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} utils.APIResponse
// @Router /admin/prices/{id}/starting_dates/{date} [delete]
func (pc *PriceController) RemoveStartingDate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	price, err := pc.prices.RemoveStartingDate(c.Request.Context(), id, c.Param("date"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.NewPriceResponse(price), "Starting date removed successfully")
}
