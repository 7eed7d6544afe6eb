package middleware

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RXAliman/scrunch/config"
	"github.com/RXAliman/scrunch/internal/infra/cache"
	"github.com/RXAliman/scrunch/internal/models"
	"github.com/RXAliman/scrunch/internal/utils"
)

// LoadViewer resolves the request's viewer from the session cookie.
// It never rejects: anonymous and broken sessions both read as an
// unauthenticated viewer. Each request gets its own Viewer value, so
// there is no shared authentication state between requests.
func LoadViewer(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(utils.SessionCookie)
		if err != nil || tokenString == "" {
			c.Next()
			return
		}

		if rdb != nil {
			blacklisted, err := utils.IsTokenBlacklisted(c, rdb, tokenString)
			if err != nil {
				zap.L().Warn("blacklist check failed, treating session as valid", zap.Error(err))
			} else if blacklisted {
				c.Next()
				return
			}
		}

		token, err := utils.ValidateToken(cfg, tokenString)
		if err != nil {
			c.Next()
			return
		}
		accountID, err := utils.AccountIDFromToken(token)
		if err != nil {
			c.Next()
			return
		}

		var profile models.Profile
		if err := db.First(&profile, accountID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				zap.L().Error("failed to load session profile", zap.Error(err))
			}
			c.Next()
			return
		}

		utils.SetViewer(c, models.Viewer{
			Authenticated: true,
			AccountID:     profile.ID,
			FirstName:     profile.FirstName,
			LastName:      profile.LastName,
		})
		c.Next()
	}
}

// RequireViewer guards the HTML pages that need a signed-in account,
// bouncing anonymous visitors to the login form with a way back.
func RequireViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !utils.GetViewer(c).Authenticated {
			c.Redirect(http.StatusFound, "/login?redirectURL="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}
