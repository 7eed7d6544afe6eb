package user

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/RXAliman/scrunch/internal/models"
	"github.com/RXAliman/scrunch/internal/utils"
	"github.com/RXAliman/scrunch/internal/validators"
	"github.com/RXAliman/scrunch/internal/view"
)

func (h *UserHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Title":       view.PageTitle("Log In"),
		"Viewer":      utils.GetViewer(c),
		"RedirectURL": c.Query("redirectURL"),
	})
}

// Login checks credentials and starts a session. Wrong email and wrong
// password render the same message.
func (h *UserHandler) Login(c *gin.Context) {
	var req validators.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderLoginError(c, req, "email and password are required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var profile models.Profile
	if err := h.svc.DB.Where("email = ?", email).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.renderLoginError(c, req, "invalid email or password")
			return
		}
		zap.L().Error("login lookup failed", zap.Error(err))
		h.renderLoginError(c, req, "could not sign you in, please try again")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		h.renderLoginError(c, req, "invalid email or password")
		return
	}

	h.startSession(c, profile.ID)
	c.Redirect(http.StatusFound, safeRedirect(req.RedirectURL))
}

func (h *UserHandler) renderLoginError(c *gin.Context, req validators.LoginRequest, message string) {
	c.HTML(http.StatusUnprocessableEntity, "login.html", gin.H{
		"Title":       view.PageTitle("Log In"),
		"Viewer":      utils.GetViewer(c),
		"Error":       message,
		"Email":       req.Email,
		"RedirectURL": req.RedirectURL,
	})
}
