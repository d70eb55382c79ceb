package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/domain/errs"
	"github.com/oksasatya/go-blog-api/pkg/response"
)

// statusFor maps domain errors onto HTTP statuses. Anything unrecognised is a
// 500 and its text never reaches the client.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrInvalidField):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, application.ErrSearchDisabled),
		errors.Is(err, application.ErrUploadDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorDetails(err error) any {
	var ve *errs.ValidationError
	if errors.As(err, &ve) && ve.Field != "" {
		return map[string]string{ve.Field: ve.Message}
	}
	var ce *errs.ConflictError
	if errors.As(err, &ce) {
		return map[string]string{ce.Field: "already in use"}
	}
	var fe *errs.InvalidFieldError
	if errors.As(err, &fe) {
		return map[string]string{"orderBy": "unknown field " + fe.Field}
	}
	return nil
}

func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"route":      c.FullPath(),
			}).Error("request failed")
		}
		_ = c.Error(err)
		response.Error(c, status, "internal server error", nil)
		return
	}
	response.Error(c, status, err.Error(), errorDetails(err))
}
