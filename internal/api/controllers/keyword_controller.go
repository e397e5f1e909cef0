package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "simplifytour/internal/models/response_models"
	"simplifytour/internal/services"
	"simplifytour/pkg/utils"
)

type KeywordController struct {
	keywords services.KeywordService
}

func NewKeywordController(keywords services.KeywordService) *KeywordController {
	return &KeywordController{keywords: keywords}
}

// Submit godoc
// @Summary Get or create comma separated keywords
// @Description Answers "<id>,<id>|<title>, <title>" as plain text for the admin keyword widget.
// @Tags Admin Keywords
// @Accept x-www-form-urlencoded
// @Produce plain
// @Param text_keywords formData string true "Comma separated keywords"
// @Success 200 {string} string
// @Router /admin/keywords/submit [post]
func (k *KeywordController) Submit(c *gin.Context) {
	result, err := k.keywords.Submit(c.Request.Context(), c.PostForm("text_keywords"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.String(http.StatusOK, result)
}

func (k *KeywordController) List(c *gin.Context) {
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	keywords, total, err := k.keywords.List(c.Request.Context(), page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	out := make([]resp.KeywordResponse, 0, len(keywords))
	for i := range keywords {
		out = append(out, resp.NewKeywordResponse(&keywords[i]))
	}
	utils.RespondSuccess(c, paged(out, total, page), "Keywords fetched successfully")
}

func (k *KeywordController) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := k.keywords.Delete(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Keyword deleted successfully")
}
