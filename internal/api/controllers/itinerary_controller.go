package controllers

import (
	"github.com/gin-gonic/gin"

	"simplifytour/internal/models/db_models"
	"simplifytour/internal/models/request_models"
	resp "simplifytour/internal/models/response_models"
	"simplifytour/internal/services"
	"simplifytour/pkg/middleware"
	"simplifytour/pkg/utils"
)

type ItineraryController struct {
	itinerary services.ItineraryService
	packages  services.PackageService
}

func NewItineraryController(itinerary services.ItineraryService, packages services.PackageService) *ItineraryController {
	return &ItineraryController{itinerary: itinerary, packages: packages}
}

func entryResponse(e *db_models.PackageItinerary) resp.ItineraryEntryResponse {
	return resp.ItineraryEntryResponse{ID: e.ID, Order: e.OrderValue(), Item: resp.NewItineraryItemResponse(e.Item)}
}

// ListPlaces godoc
// @Summary List places
// @Tags Admin Itinerary
// @Produce json
// @Param q query string false "Name filter"
// @Success 200 {object} utils.APIResponse
// @Router /admin/places [get]
func (it *ItineraryController) ListPlaces(c *gin.Context) {
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	places, total, err := it.itinerary.ListPlaces(c.Request.Context(), c.Query("q"), page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	items := make([]*resp.PlaceResponse, 0, len(places))
	for i := range places {
		items = append(items, resp.NewPlaceResponse(&places[i]))
	}
	utils.RespondSuccess(c, paged(items, total, page), "Places fetched successfully")
}

// CreatePlace godoc
// @Summary Create a place
// @Tags Admin Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.PlaceRequest true "Place"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /admin/places [post]
func (it *ItineraryController) CreatePlace(c *gin.Context) {
	var req request_models.PlaceRequest
	if !bindJSON(c, &req) {
		return
	}
	place, err := it.itinerary.CreatePlace(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, resp.NewPlaceResponse(place), "Place created successfully")
}

func (it *ItineraryController) GetPlace(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	place, err := it.itinerary.GetPlace(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.NewPlaceResponse(place), "Place fetched successfully")
}

func (it *ItineraryController) UpdatePlace(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req request_models.PlaceRequest
	if !bindJSON(c, &req) {
		return
	}
	place, err := it.itinerary.UpdatePlace(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.NewPlaceResponse(place), "Place updated successfully")
}

// DeletePlace godoc
// @Summary Delete a place; items referencing it lose the reference
// @Tags Admin Itinerary
// @Param id path string true "Place ID"
// @Success 200 {object} utils.APIResponse
// @Router /admin/places/{id} [delete]
func (it *ItineraryController) DeletePlace(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := it.itinerary.DeletePlace(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Place deleted successfully")
}

// ListItems godoc
// @Summary List itinerary items
// @Tags Admin Itinerary
// @Produce json
// @Param q query string false "Title filter"
// @Success 200 {object} utils.APIResponse
// @Router /admin/itinerary_items [get]
func (it *ItineraryController) ListItems(c *gin.Context) {
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	items, total, err := it.itinerary.ListItems(c.Request.Context(), c.Query("q"), page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	out := make([]*resp.ItineraryItemResponse, 0, len(items))
	for i := range items {
		out = append(out, resp.NewItineraryItemResponse(&items[i]))
	}
	utils.RespondSuccess(c, paged(out, total, page), "Itinerary items fetched successfully")
}

// CreateItem godoc
// @Summary Create an itinerary item
// @Tags Admin Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.ItineraryItemRequest true "Item"
// @Success 201 {object} utils.APIResponse
// @Router /admin/itinerary_items [post]
func (it *ItineraryController) CreateItem(c *gin.Context) {
	var req request_models.ItineraryItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := it.itinerary.CreateItem(c.Request.Context(), req, middleware.CurrentUser(c).ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, resp.NewItineraryItemResponse(item), "Itinerary item created successfully")
}

func (it *ItineraryController) GetItem(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	item, err := it.itinerary.GetItem(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.NewItineraryItemResponse(item), "Itinerary item fetched successfully")
}

func (it *ItineraryController) UpdateItem(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req request_models.ItineraryItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := it.itinerary.UpdateItem(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.NewItineraryItemResponse(item), "Itinerary item updated successfully")
}

func (it *ItineraryController) DeleteItem(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := it.itinerary.DeleteItem(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Itinerary item deleted successfully")
}

// ListEntries godoc
// @Summary List the ordered itinerary of a package
// @Tags Admin Itinerary
// @Produce json
// @Param kind path string true "Content model"
// @Param id path string true "Package ID"
// @Success 200 {object} utils.APIResponse
// @Router /admin/packages/{kind}/{id}/itinerary [get]
func (it *ItineraryController) ListEntries(c *gin.Context) {
	pkg, ok := packageFromPath(c, it.packages)
	if !ok {
		return
	}
	entries, err := it.itinerary.ListEntries(c.Request.Context(), pkg.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	out := make([]resp.ItineraryEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, entryResponse(&entries[i]))
	}
	utils.RespondSuccess(c, out, "Itinerary fetched successfully")
}

// AddEntry godoc
// @Summary Append an item to a package itinerary
// @Tags Admin Itinerary
// @Accept json
// @Produce json
// @Param kind path string true "Content model"
// @Param id path string true "Package ID"
// @Param request body request_models.ItineraryEntryRequest true "Entry"
// @Success 201 {object} utils.APIResponse
// @Router /admin/packages/{kind}/{id}/itinerary [post]
func (it *ItineraryController) AddEntry(c *gin.Context) {
	var req request_models.ItineraryEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	pkg, ok := packageFromPath(c, it.packages)
	if !ok {
		return
	}
	entry, err := it.itinerary.AddEntry(c.Request.Context(), pkg.ID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, entryResponse(entry), "Itinerary entry added successfully")
}

// UpdateEntry godoc
// @Summary Reorder an entry or edit its item through it
// @Tags Admin Itinerary
// @Accept json
// @Produce json
// @Param entryId path string true "Entry ID"
// @Param request body request_models.ItineraryEntryUpdateRequest true "Entry"
// @Success 200 {object} utils.APIResponse
// @Router /admin/itinerary/{entryId} [put]
func (it *ItineraryController) UpdateEntry(c *gin.Context) {
	id, ok := uuidParam(c, "entryId")
	if !ok {
		return
	}
	var req request_models.ItineraryEntryUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := it.itinerary.UpdateEntry(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, entryResponse(entry), "Itinerary entry updated successfully")
}

func (it *ItineraryController) RemoveEntry(c *gin.Context) {
	id, ok := uuidParam(c, "entryId")
	if !ok {
		return
	}
	if err := it.itinerary.RemoveEntry(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Itinerary entry removed successfully")
}

// ListAddons godoc
// @Summary List optional addons of a package
// @Tags Admin Itinerary
// @Produce json
// @Param kind path string true "Content model"
// @Param id path string true "Package ID"
// @Success 200 {object} utils.APIResponse
// @Router /admin/packages/{kind}/{id}/addons [get]
func (it *ItineraryController) ListAddons(c *gin.Context) {
	pkg, ok := packageFromPath(c, it.packages)
	if !ok {
		return
	}
	addons, err := it.itinerary.ListAddons(c.Request.Context(), pkg.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	out := make([]*resp.ItineraryItemResponse, 0, len(addons))
	for _, a := range addons {
		if a.Item != nil {
			out = append(out, resp.NewItineraryItemResponse(a.Item))
		}
	}
	utils.RespondSuccess(c, out, "Addons fetched successfully")
}

func (it *ItineraryController) AddAddon(c *gin.Context) {
	var req request_models.AddonRequest
	if !bindJSON(c, &req) {
		return
	}
	pkg, ok := packageFromPath(c, it.packages)
	if !ok {
		return
	}
	addon, err := it.itinerary.AddAddon(c.Request.Context(), pkg.ID, req.ItemID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, gin.H{"id": addon.ID, "item_id": addon.ItemID, "item": resp.NewItineraryItemResponse(addon.Item)}, "Addon added successfully")
}

func (it *ItineraryController) RemoveAddon(c *gin.Context) {
	pkg, ok := packageFromPath(c, it.packages)
	if !ok {
		return
	}
	itemID, ok := uuidParam(c, "itemId")
	if !ok {
		return
	}
	if err := it.itinerary.RemoveAddon(c.Request.Context(), pkg.ID, itemID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Addon removed successfully")
}
