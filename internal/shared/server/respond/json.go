package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes payload with the given status. A nil payload is written as an
// empty object so clients always receive a JSON document.
func JSON(c *gin.Context, status int, payload any) {
	if payload == nil {
		payload = gin.H{}
	}
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}
