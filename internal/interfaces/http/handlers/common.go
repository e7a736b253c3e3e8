// Package handlers implements the HTTP resource handlers of the engine
// API.  Every response is wrapped in common.APIResponse so clients handle
// one envelope everywhere.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
	"github.com/turtacn/FireCircuit-Intelligence/pkg/types/common"
)

func respond[T any](c *gin.Context, status int, data T) {
	c.JSON(status, common.NewSuccessResponse(data))
}

// respondError maps the error's code to an HTTP status and emits the
// standard error envelope.  Unrecognized errors are masked as internal.
func respondError(c *gin.Context, err error) {
	code := apperrors.GetCode(err)
	status := code.HTTPStatus()
	message := err.Error()
	if status == http.StatusInternalServerError && code == apperrors.CodeUnknown {
		message = "internal server error"
	}
	c.AbortWithStatusJSON(status,
		common.NewErrorResponse[any](code.String(), message, ""))
}

// bindJSON decodes the request body, converting gin binding failures to
// the engine's bad-request error shape.
func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "decode request body"))
		return false
	}
	return true
}
