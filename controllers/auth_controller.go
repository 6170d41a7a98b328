package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	config "github.com/mwangikb/event-planner-go/config"
	middleware "github.com/mwangikb/event-planner-go/middleware"
	models "github.com/mwangikb/event-planner-go/models"
)

type passwordInput struct {
	Password string `json:"password"`
}

// ---------------- LOGIN ----------------
func Login(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input passwordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}

		if cfg.AdminPass == "" {
			cfg.Logger.Error().Msg("ADMIN_PASSWORD is not configured")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}

		if input.Password != cfg.AdminPass {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
			return
		}

		now := time.Now()
		sess := models.Session{
			ID:            uuid.NewString(),
			Authenticated: true,
			Role:          "admin",
			CreatedAt:     now,
			ExpiresAt:     now.Add(config.SessionTTL),
		}
		if err := cfg.Sessions.Put(c.Request.Context(), sess); err != nil {
			cfg.Logger.Error().Err(err).Msg("could not store session")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}

		token, err := middleware.NewSessionToken(cfg, sess.ID, sess.ExpiresAt)
		if err != nil {
			cfg.Logger.Error().Err(err).Msg("could not sign session token")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}

		c.SetCookie(middleware.SessionCookie, token, int(config.SessionTTL.Seconds()), "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "logged in"})
	}
}

// ---------------- LOGOUT ----------------
func Logout(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sid, ok := middleware.SessionIDFromCookie(c, cfg); ok {
			if err := cfg.Sessions.Delete(c.Request.Context(), sid); err != nil {
				cfg.Logger.Warn().Err(err).Msg("could not delete session")
			}
		}

		// Logging out without a session still succeeds.
		c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}

// ---------------- STATUS ----------------
func AuthStatus(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := middleware.CurrentSession(c, cfg)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"loggedIn": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"loggedIn": true,
			"user":     gin.H{"role": sess.Role},
		})
	}
}

// ---------------- CHECK ----------------
func CheckPassword(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input passwordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}

		if cfg.AdminPass == "" {
			cfg.Logger.Error().Msg("ADMIN_PASSWORD is not configured")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"isValid": input.Password == cfg.AdminPass})
	}
}
