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

// React toggles the viewer's reaction on a post. The delete-or-create
// runs in one transaction so two rapid taps from the same account
// cannot double-insert; the unique (post_id, account_id) index backs
// that up at the storage level.
func (h *PostHandler) React(c *gin.Context) {
	viewer := utils.GetViewer(c)
	if !viewer.Authenticated {
		utils.Error(c, http.StatusUnauthorized, "sign in to react")
		return
	}

	id, err := parsePostID(c)
	if err != nil {
		utils.Error(c, http.StatusNotFound, "post not found")
		return
	}
	if _, err := h.loadPost(c, id); err != nil {
		utils.Error(c, weberr.HTTPStatus(err), weberr.Message(err))
		return
	}

	var reacted bool
	err = h.svc.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND account_id = ?", id, viewer.AccountID).
			Delete(&models.Reaction{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			reacted = true
			return tx.Create(&models.Reaction{PostID: id, AccountID: viewer.AccountID}).Error
		}
		return nil
	})
	if err != nil {
		zap.L().Error("react transaction failed", zap.Error(err), zap.Uint("post_id", id))
		utils.Error(c, http.StatusInternalServerError, "could not update reaction")
		return
	}
	h.evictPost(c, id)

	var count int64
	if err := h.svc.DB.Model(&models.Reaction{}).Where("post_id = ?", id).Count(&count).Error; err != nil {
		zap.L().Error("reaction count failed", zap.Error(err), zap.Uint("post_id", id))
		utils.Error(c, http.StatusInternalServerError, "could not update reaction")
		return
	}

	utils.Success(c, gin.H{
		"reactionCount": count,
		"reacted":       reacted,
	})
}
