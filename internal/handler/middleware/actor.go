package middleware

import (
	"net/http"

	"shortstay/internal/handler/httperr"
	"shortstay/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const actorKey = "actor_id"

// RequireActor resolves the acting user from the X-User-ID header set by the
// API gateway after authentication. This service trusts the gateway; it does
// not verify tokens itself.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized,
				errs.New("missing X-User-ID header"), "Authentication required", nil)
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusUnauthorized,
				errs.Wrap(err, "malformed X-User-ID header"), "Authentication required", nil)
			return
		}
		c.Set(actorKey, id)
		c.Next()
	}
}

func GetActorID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(actorKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
