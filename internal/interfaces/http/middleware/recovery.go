package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/logging"
	apperrors "github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
	"github.com/turtacn/FireCircuit-Intelligence/pkg/types/common"
)

// Recovery converts handler panics into structured 500 responses.  The
// mapping engine recovers its own panics; this guards everything else.
func Recovery(log logging.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("handler panic recovered",
					logging.String("path", c.Request.URL.Path),
					logging.Any("panic", r))
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					common.NewErrorResponse[any](
						apperrors.ErrCodeInternal.String(), "internal server error", ""))
			}
		}()
		c.Next()
	}
}
