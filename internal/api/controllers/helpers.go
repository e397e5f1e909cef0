package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	resp "simplifytour/internal/models/response_models"
	"simplifytour/pkg/utils"
)

const invalidRequest = "Invalid request format"

// uuidParam parses a path parameter, answering 400 itself on failure.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func optionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return nil, false
	}
	return &id, true
}

func optionalBoolQuery(c *gin.Context, name string) *bool {
	switch c.Query(name) {
	case "1", "true", "True":
		v := true
		return &v
	case "0", "false", "False":
		v := false
		return &v
	}
	return nil
}

func pageFromQuery(c *gin.Context) (utils.Page, bool) {
	page, err := utils.PageFromQuery(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return utils.Page{}, false
	}
	return page, true
}

func paged(items interface{}, total int64, page utils.Page) resp.PagedResponse {
	return resp.PagedResponse{Items: items, Total: total, Page: page.Page, PageSize: page.PageSize}
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, invalidRequest)
		return false
	}
	return true
}
