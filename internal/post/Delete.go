package post

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RXAliman/scrunch/internal/models"
	"github.com/RXAliman/scrunch/internal/utils"
	"github.com/RXAliman/scrunch/internal/weberr"
)

// Delete removes a post with its comments and reactions. Author only.
// Answers JSON for the same fetch callers as React, so the viewer
// check lives here rather than behind the redirecting middleware.
func (h *PostHandler) Delete(c *gin.Context) {
	viewer := utils.GetViewer(c)
	if !viewer.Authenticated {
		utils.Error(c, http.StatusUnauthorized, "sign in to delete posts")
		return
	}

	id, err := parsePostID(c)
	if err != nil {
		utils.Error(c, http.StatusNotFound, "post not found")
		return
	}

	p, err := h.loadPost(c, id)
	if err != nil {
		utils.Error(c, weberr.HTTPStatus(err), weberr.Message(err))
		return
	}
	if p.AccountID != viewer.AccountID {
		utils.Error(c, http.StatusForbidden, "only the author can delete this post")
		return
	}

	err = h.svc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		zap.L().Error("delete post transaction failed", zap.Error(err), zap.Uint("post_id", id))
		utils.Error(c, http.StatusInternalServerError, "could not delete the post")
		return
	}

	h.evictPost(c, id)
	h.publishFeedMsg(models.FeedMsg{
		PostID:    id,
		AccountID: p.AccountID,
		Timestamp: p.Timestamp,
		Action:    "remove",
	})

	utils.Success(c, gin.H{})
}
