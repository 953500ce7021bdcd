package response

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/pkg/util"
	"Newsroom/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const Ok = 200

// Success wraps data in the admin envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// Fail replies with a business code inside the admin envelope.
func Fail(c *gin.Context, businessCode int, message string) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    businessCode,
		Message: message,
		Data:    nil,
	})
}

// Error maps err onto the admin envelope.
func Error(c *gin.Context, err error) {
	code, message := resolve(c, err)
	Fail(c, code, message)
}

// Detail replies with a public {"detail": ...} body and a real status code.
func Detail(c *gin.Context, status int, message string) {
	c.JSON(status, dto.Detail{Detail: message})
}

// DetailError maps err onto a public error body.
func DetailError(c *gin.Context, err error) {
	code, message := resolve(c, err)
	Detail(c, code, message)
}

func resolve(c *gin.Context, err error) (int, string) {
	var fieldErr *util.ValidationError
	if errors.As(err, &fieldErr) {
		return service.BadRequest, fieldErr.Error()
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return service.BadRequest, "invalid parameters"
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		return service.BadRequest, "malformed JSON"
	}

	code, ok := service.CodeOf(err)
	if !ok {
		log.ErrorContext(c.Request.Context(), "Unhandled error", "path", c.Request.URL.Path, "err", err)
		return service.InternalServerError, service.UnExpectedError.Error()
	}
	return code, err.Error()
}
