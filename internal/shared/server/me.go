package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grammar-backend/internal/shared/server/middleware"
	"grammar-backend/internal/shared/server/respond"
)

// registerMeRoutes attaches the /me endpoint.
func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", middleware.RequireUser(), meHandler)
}

func meHandler(c *gin.Context) {
	response := gin.H{
		"userId":  middleware.UserIDFromContext(c),
		"isAdmin": middleware.IsAdmin(c),
	}
	if email := middleware.UserEmailFromContext(c); email != "" {
		response["email"] = email
	}
	if name := middleware.UserNameFromContext(c); name != "" {
		response["name"] = name
	}
	if role := middleware.RoleFromContext(c); role != "" {
		response["role"] = role
	}

	respond.JSON(c, http.StatusOK, response)
}
