package service

import (
	"Newsroom/internal/model"
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	TooManyRequests     = 429
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("invalid parameters")
	ErrSearchQueryRequired = errors.New("Search query parameter 'q' is required")
	ErrPostNotFound        = errors.New("post not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryNameExist   = errors.New("category with this name already exists")
	ErrSlugConflict        = errors.New("slug already in use")
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameExist       = errors.New("username already exists")
	ErrEmailExist          = errors.New("email already in use")
	ErrEmailNotSet         = errors.New("user has no email address")
	ErrSuperuserProtected  = errors.New("superusers cannot be deleted")
	ErrLogEntryNotFound    = errors.New("log entry not found")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUserInactive        = errors.New("user account is disabled")
	ErrNotStaff            = errors.New("staff access required")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrTokenInvalid        = errors.New("token invalid or expired")
	ErrOTPInvalid          = errors.New("verification code invalid or expired")
	ErrCodeIncorrect       = errors.New("code invalid or expired")
	ErrActivationInvalid   = errors.New("activation link invalid or expired")
	ErrAlreadyActive       = errors.New("user already activated")
	ErrFileNotSupported    = errors.New("file type not supported")
	ErrFileTooLarge        = errors.New("file too large")
	ErrUploadEntityInvalid = errors.New("unknown upload entity")
	ErrUnknownModel        = errors.New("unknown admin model")
	ErrTooManyRequests     = errors.New("too many requests, try again later")
	UnExpectedError        = errors.New("unexpected error, please try again later")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:              BadRequest,
	ErrSearchQueryRequired:       BadRequest,
	ErrPostNotFound:              NotFound,
	ErrCategoryNotFound:          NotFound,
	ErrCategoryNameExist:         Conflict,
	ErrSlugConflict:              Conflict,
	ErrUserNotFound:              NotFound,
	ErrUsernameExist:             Conflict,
	ErrEmailExist:                Conflict,
	ErrEmailNotSet:               BadRequest,
	ErrSuperuserProtected:        Forbidden,
	ErrLogEntryNotFound:          NotFound,
	ErrInvalidCredentials:        Unauthorized,
	ErrUserInactive:              Unauthorized,
	ErrNotStaff:                  Forbidden,
	ErrPermissionDenied:          Forbidden,
	ErrTokenInvalid:              Unauthorized,
	ErrOTPInvalid:                Unauthorized,
	ErrCodeIncorrect:             BadRequest,
	ErrActivationInvalid:         BadRequest,
	ErrAlreadyActive:             BadRequest,
	ErrFileNotSupported:          BadRequest,
	ErrFileTooLarge:              BadRequest,
	ErrUploadEntityInvalid:       BadRequest,
	ErrUnknownModel:              NotFound,
	ErrTooManyRequests:           TooManyRequests,
	UnExpectedError:              InternalServerError,
	model.ErrVideoSourceConflict: BadRequest,
	model.ErrInvalidStatus:       BadRequest,
	model.ErrInvalidCategoryType: BadRequest,
}

// CodeOf business code of err, matching wrapped sentinels too.
func CodeOf(err error) (int, bool) {
	if code, ok := ErrorMap[err]; ok {
		return code, true
	}
	for sentinel, code := range ErrorMap {
		if errors.Is(err, sentinel) {
			return code, true
		}
	}
	return InternalServerError, false
}
