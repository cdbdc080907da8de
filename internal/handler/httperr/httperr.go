package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the error body every endpoint returns: {"error": "<message>"}.
type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
	Detail any    `json:"detail,omitempty"`
}

func New(status int, msg string) Response {
	return Response{Status: status, Error: msg}
}

// preserves original error for the logging middleware
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status, Error: msg, Detail: detail}

	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
