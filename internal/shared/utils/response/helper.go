package response

import (
	"seatly/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError renders a kinded error with the status its kind maps to.
func RespondError(c *gin.Context, err error) {
	RespondJSON(c, "error", apperrors.HTTPStatus(err), apperrors.MessageOf(err), nil, nil)
}

// RespondSuccess renders a success payload.
func RespondSuccess(c *gin.Context, code int, message string, data interface{}) {
	RespondJSON(c, "success", code, message, data, nil)
}
