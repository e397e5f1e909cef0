package utils

import "errors"

var (
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")
	ErrInvalidInput    = errors.New("invalid input")

	ErrPackageNotFound  = errors.New("package not found")
	ErrArticleNotFound  = errors.New("article not found")
	ErrItemNotFound     = errors.New("itinerary item not found")
	ErrPlaceNotFound    = errors.New("place not found")
	ErrPriceNotFound    = errors.New("price not found")
	ErrPorterNotFound   = errors.New("porter not found")
	ErrGuideNotFound    = errors.New("guide not found")
	ErrKeywordNotFound  = errors.New("keyword not found")
	ErrImageNotFound    = errors.New("gallery image not found")
	ErrEntryNotFound    = errors.New("itinerary entry not found")
	ErrSettingNotFound  = errors.New("setting not found")
	ErrUnknownKind      = errors.New("unknown content model")
	ErrContentRequired  = errors.New("content is required if status is set to published")
	ErrIllegalMove      = errors.New("illegal package move")
	ErrCannotAdd        = errors.New("children cannot be added to this package")
	ErrDuplicateEntry   = errors.New("entry already exists")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrInvalidOtherInfo = errors.New("other info must be valid JSON")
	ErrInvalidArchive   = errors.New("invalid zip archive")
	ErrPlaceExists      = errors.New("place with this name already exists")
	ErrFileNotFound     = errors.New("file not found")

	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("please enter valid credentials")
	ErrEmailAlreadyExists = errors.New("user with this email address already exists")
	ErrInactiveUser       = errors.New("user is disabled")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("signature has expired")
	ErrRefreshExpired     = errors.New("refresh has expired")
	ErrPermissionDenied   = errors.New("You do not have permission to perform this action")
)
