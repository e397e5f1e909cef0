package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"simplifytour/pkg/logger"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusOK, "success", message, data)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusCreated, "success", message, data)
}

func RespondError(c *gin.Context, code int, message string) {
	respond(c, code, "error", message, nil)
}

func respond(c *gin.Context, code int, status, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Status:  status,
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

var notFoundErrors = []error{
	ErrPackageNotFound, ErrArticleNotFound, ErrItemNotFound, ErrPlaceNotFound,
	ErrPriceNotFound, ErrPorterNotFound, ErrGuideNotFound, ErrKeywordNotFound,
	ErrImageNotFound, ErrEntryNotFound, ErrSettingNotFound, ErrUserNotFound,
	ErrFileNotFound,
}

var badRequestErrors = []error{
	ErrInvalidInput, ErrUnknownKind, ErrContentRequired, ErrIllegalMove,
	ErrCannotAdd, ErrInvalidRating, ErrInvalidOtherInfo, ErrInvalidArchive,
}

func HandleServiceError(c *gin.Context, err error) {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			RespondError(c, http.StatusNotFound, err.Error())
			return
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			RespondError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	switch {
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	case errors.Is(err, ErrDuplicateEntry), errors.Is(err, ErrPlaceExists), errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidToken), errors.Is(err, ErrExpiredToken):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrPermissionDenied), errors.Is(err, ErrInactiveUser):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrDatabaseError):
		logger.L().Error("database error: ", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		logger.L().Error("unhandled service error: ", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
