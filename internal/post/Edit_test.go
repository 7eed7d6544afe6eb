package post

import (
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RXAliman/scrunch/internal/models"
	"github.com/RXAliman/scrunch/internal/utils"
)

func editRouter(h *PostHandler, viewer models.Viewer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	tmpl := template.Must(template.New("edit.html").Parse(`editing {{ .Post.ID }}`))
	template.Must(tmpl.New("error.html").Parse(`{{ .Message }}`))
	template.Must(tmpl.New("404.html").Parse(`not found`))
	r.SetHTMLTemplate(tmpl)

	r.Use(func(c *gin.Context) {
		if viewer.Authenticated {
			utils.SetViewer(c, viewer)
		}
		c.Next()
	})
	r.GET("/post/:id/edit", h.EditForm)
	r.POST("/post/:id/edit", h.Edit)
	return r
}

func postEdit(t *testing.T, r *gin.Engine, postID uint, caption string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"caption": {caption}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/post/%d/edit", postID), strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestEdit_AuthorOnly(t *testing.T) {
	h, db := newTestHandler(t)
	p := seedPost(t, db, 1)

	r := editRouter(h, models.Viewer{Authenticated: true, AccountID: 2})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/post/%d/edit", p.ID), nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "only the author")

	w = postEdit(t, r, p.ID, "hijacked")
	assert.Equal(t, http.StatusForbidden, w.Code)

	var got models.Post
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, "a post", got.Caption)
	assert.Nil(t, got.EditedOn)
}

func TestEdit_AuthorUpdatesCaption(t *testing.T) {
	h, db := newTestHandler(t)
	p := seedPost(t, db, 1)

	r := editRouter(h, models.Viewer{Authenticated: true, AccountID: 1})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/post/%d/edit", p.ID), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = postEdit(t, r, p.ID, "a better caption")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/post/%d", p.ID), w.Header().Get("Location"))

	var got models.Post
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, "a better caption", got.Caption)
	require.NotNil(t, got.EditedOn)
	assert.GreaterOrEqual(t, *got.EditedOn, p.Timestamp)
}
