package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the single error shape returned by every endpoint.
type ErrorBody struct {
	Error     string `json:"error"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// JSON writes data as the response body unchanged. Entities and list pages
// already carry their public shape.
func JSON(ctx *gin.Context, status int, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, data)
}

func NoContent(ctx *gin.Context) {
	ctx.Status(http.StatusNoContent)
}

func NewError(ctx *gin.Context, message string, details any) ErrorBody {
	return ErrorBody{Error: message, Details: details, RequestID: ctx.GetString("request_id")}
}

// Error writes the error body and stops the handler chain.
func Error(ctx *gin.Context, status int, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, NewError(ctx, message, details))
}
