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

// SignupForm renders the signup page, carrying a redirectURL through
// the form so a bounced visitor lands back where they started.
func (h *UserHandler) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{
		"Title":       view.PageTitle("Sign Up"),
		"Viewer":      utils.GetViewer(c),
		"RedirectURL": c.Query("redirectURL"),
	})
}

// Signup validates the password policy, creates the profile, starts a
// session, and redirects. Policy violations re-render the form inline
// with nothing persisted.
func (h *UserHandler) Signup(c *gin.Context) {
	var req validators.SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderSignupErrors(c, req, []string{"all fields are required and the email must be valid"})
		return
	}

	if errs := validators.ValidatePassword(req.Password, req.ConfirmPassword); len(errs) > 0 {
		h.renderSignupErrors(c, req, errs)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var exists models.Profile
	err := h.svc.DB.Where("email = ?", email).First(&exists).Error
	if err == nil {
		h.renderSignupErrors(c, req, []string{"an account with this email already exists"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		zap.L().Error("signup email check failed", zap.Error(err))
		h.renderSignupErrors(c, req, []string{"could not create your account, try again"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("password hashing failed", zap.Error(err))
		h.renderSignupErrors(c, req, []string{"could not create your account, try again"})
		return
	}

	profile := models.Profile{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := h.svc.DB.Create(&profile).Error; err != nil {
		zap.L().Error("create profile db error", zap.Error(err))
		h.renderSignupErrors(c, req, []string{"could not create your account, try again"})
		return
	}

	h.startSession(c, profile.ID)
	c.Redirect(http.StatusFound, safeRedirect(req.RedirectURL))
}

func (h *UserHandler) renderSignupErrors(c *gin.Context, req validators.SignupRequest, errs []string) {
	c.HTML(http.StatusUnprocessableEntity, "signup.html", gin.H{
		"Title":       view.PageTitle("Sign Up"),
		"Viewer":      utils.GetViewer(c),
		"Errors":      errs,
		"FirstName":   req.FirstName,
		"LastName":    req.LastName,
		"Email":       req.Email,
		"RedirectURL": req.RedirectURL,
	})
}

// startSession mints a session token and sets the cookie. Cookie
// failures only cost the session, never the signup.
func (h *UserHandler) startSession(c *gin.Context, accountID uint) {
	token, err := utils.GenerateToken(h.svc.Config, accountID)
	if err != nil {
		zap.L().Error("failed to generate session token", zap.Error(err), zap.Uint("account_id", accountID))
		return
	}
	c.SetCookie(
		utils.SessionCookie,
		token,
		int(h.svc.Config.SessionExpiration.Seconds()),
		"/", "", false, true,
	)
}
