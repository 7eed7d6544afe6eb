package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RXAliman/scrunch/internal/utils"
)

// Signout revokes the current session token and clears the cookie. The
// blacklist entry outlives the cookie, so a copied token dies too.
func (h *UserHandler) Signout(c *gin.Context) {
	tokenString, err := c.Cookie(utils.SessionCookie)
	if err == nil && tokenString != "" && h.svc.Cache != nil {
		if err := utils.AddTokenToBlacklist(c, h.svc.Cache, tokenString, h.svc.Config.SessionExpiration); err != nil {
			zap.L().Error("failed to blacklist session token", zap.Error(err))
		}
	}

	c.SetCookie(utils.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
