package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/batchline/batchline/pkg/common/apperr"
)

// Response codes
const (
	CodeSuccess          = 2000
	CodeAccepted         = 2002
	CodeParamInvalid     = 4000
	CodeValidationFailed = 4001
	CodeInternalServer   = 5000
)

var codeMessages = map[int]string{
	CodeSuccess:          "success",
	CodeAccepted:         "accepted",
	CodeParamInvalid:     "invalid request parameters",
	CodeValidationFailed: "request validation failed",
	CodeInternalServer:   "internal server error",
}

// Response is the envelope for every JSON reply
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// SuccessResponse writes a 200 envelope
func SuccessResponse(c *gin.Context, code int, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: codeMessages[code],
		Data:    data,
	})
}

// AcceptedResponse writes a 202 envelope for asynchronously processed requests
func AcceptedResponse(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, Response{
		Code:    CodeAccepted,
		Message: codeMessages[CodeAccepted],
		Data:    data,
	})
}

// ErrorResponse writes an error envelope. The HTTP status comes from the
// AppError when the cause carries one, otherwise from the response code.
func ErrorResponse(c *gin.Context, code int, err error) {
	status := statusFor(code)

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		status = appErr.HTTPStatus
		code = appErr.Code
	}

	resp := Response{
		Code:    code,
		Message: codeMessages[code],
	}
	if resp.Message == "" && appErr != nil {
		resp.Message = appErr.Message
	}
	if err != nil {
		resp.Detail = err.Error()
	}
	c.JSON(status, resp)
}

// ToErrorResponse normalizes a string or error into an error value for
// the envelope detail.
func ToErrorResponse(v any) error {
	switch e := v.(type) {
	case error:
		return e
	case string:
		return errors.New(e)
	default:
		return fmt.Errorf("%v", v)
	}
}

func statusFor(code int) int {
	switch code {
	case CodeParamInvalid, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeInternalServer:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}
