package user

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RXAliman/scrunch/config"
	"github.com/RXAliman/scrunch/internal/models"
	"github.com/RXAliman/scrunch/internal/svc"
)

func newTestHandler(t *testing.T) (*UserHandler, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Profile{}))

	cfg := &config.Config{
		SessionSecretKey:  "test-secret",
		SessionIssuer:     "scrunch",
		SessionExpiration: time.Hour,
	}
	return NewUserHandler(&svc.ServiceContext{Config: cfg, DB: db}), db
}

func signupRouter(h *UserHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// Stripped-down form templates: just the errors, for assertions.
	tmpl := template.Must(template.New("signup.html").Parse(
		`{{ range .Errors }}{{ . }}; {{ end }}`))
	template.Must(tmpl.New("login.html").Parse(`{{ .Error }}`))
	r.SetHTMLTemplate(tmpl)
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func signupForm(password, confirm string) url.Values {
	return url.Values{
		"firstName":       {"Ada"},
		"lastName":        {"Byron"},
		"email":           {"ada@example.com"},
		"password":        {password},
		"confirmPassword": {confirm},
	}
}

func TestSignup_ShortPasswordRejectedWithMinimumLength(t *testing.T) {
	h, db := newTestHandler(t)
	r := signupRouter(h)

	w := postForm(r, "/signup", signupForm("abc", "abc"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "minimum length")

	var count int64
	db.Model(&models.Profile{}).Count(&count)
	assert.Zero(t, count, "rejected signup must not persist a profile")
}

func TestSignup_ValidPasswordCreatesProfileAndRedirects(t *testing.T) {
	h, db := newTestHandler(t)
	r := signupRouter(h)

	form := signupForm("Abcdef1!", "Abcdef1!")
	form.Set("redirectURL", "/user/1")
	w := postForm(r, "/signup", form)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/user/1", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), "scrunch_session=")

	var profile models.Profile
	require.NoError(t, db.Where("email = ?", "ada@example.com").First(&profile).Error)
	assert.Equal(t, "Ada Byron", profile.Name())
	assert.NotEqual(t, "Abcdef1!", profile.PasswordHash)
}

func TestSignup_DefaultRedirectIsHome(t *testing.T) {
	h, _ := newTestHandler(t)
	r := signupRouter(h)

	w := postForm(r, "/signup", signupForm("Abcdef1!", "Abcdef1!"))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestSignup_DuplicateEmailRejected(t *testing.T) {
	h, _ := newTestHandler(t)
	r := signupRouter(h)

	first := postForm(r, "/signup", signupForm("Abcdef1!", "Abcdef1!"))
	require.Equal(t, http.StatusFound, first.Code)

	second := postForm(r, "/signup", signupForm("Abcdef1!", "Abcdef1!"))
	assert.Equal(t, http.StatusUnprocessableEntity, second.Code)
	assert.Contains(t, second.Body.String(), "already exists")
}

func TestLogin_RoundTrip(t *testing.T) {
	h, _ := newTestHandler(t)
	r := signupRouter(h)

	require.Equal(t, http.StatusFound, postForm(r, "/signup", signupForm("Abcdef1!", "Abcdef1!")).Code)

	w := postForm(r, "/login", url.Values{
		"email":       {"ada@example.com"},
		"password":    {"Abcdef1!"},
		"redirectURL": {"/post/3"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/post/3", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), "scrunch_session=")
}

func TestLogin_WrongPassword(t *testing.T) {
	h, _ := newTestHandler(t)
	r := signupRouter(h)
	require.Equal(t, http.StatusFound, postForm(r, "/signup", signupForm("Abcdef1!", "Abcdef1!")).Code)

	w := postForm(r, "/login", url.Values{
		"email":    {"ada@example.com"},
		"password": {"WrongPass1!"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	h, _ := newTestHandler(t)
	r := signupRouter(h)

	w := postForm(r, "/login", url.Values{
		"email":    {"nobody@example.com"},
		"password": {"Abcdef1!"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestLogin_BackendFailureIsNotBadCredentials(t *testing.T) {
	h, db := newTestHandler(t)
	r := signupRouter(h)
	require.Equal(t, http.StatusFound, postForm(r, "/signup", signupForm("Abcdef1!", "Abcdef1!")).Code)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := postForm(r, "/login", url.Values{
		"email":    {"ada@example.com"},
		"password": {"Abcdef1!"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.NotContains(t, w.Body.String(), "invalid email or password")
	assert.Contains(t, w.Body.String(), "could not sign you in")
}

func TestSafeRedirect(t *testing.T) {
	assert.Equal(t, "/", safeRedirect(""))
	assert.Equal(t, "/", safeRedirect("https://evil.example.com/"))
	assert.Equal(t, "/", safeRedirect("//evil.example.com"))
	assert.Equal(t, "/post/7", safeRedirect("/post/7"))
}
