package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/carhive/internal/helpers"
	"github.com/joshua-takyi/carhive/internal/services"
)

const sessionCookieMaxAge = 3600 * 24

func Register(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		user, err := as.Register(c.Request.Context(), &req)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusCreated, helpers.SuccessResponse(user, "Registration successful"))
	}
}

func Login(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		token, user, err := as.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			abortWithError(c, err)
			return
		}

		isProduction := os.Getenv("GIN_MODE") == "release"
		c.SetCookie("access_token", token, sessionCookieMaxAge, "/", "", isProduction, true)

		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{
			"user":  user,
			"token": token,
		}, "Login successful"))
	}
}

func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie("access_token", "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "Logged out"))
	}
}

func Profile(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromContext(c)
		if !ok {
			return
		}

		user, err := as.GetUser(c.Request.Context(), claims.UserID)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(user, ""))
	}
}
