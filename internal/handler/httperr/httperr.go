// Package httperr defines the JSON error envelope every failed request
// returns.
package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the error body written to the client. Status stays out of the
// payload; gin writes it on the wire.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError stops the handler chain and writes the envelope. The
// underlying error is attached to the gin context so the request logger can
// record it.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
