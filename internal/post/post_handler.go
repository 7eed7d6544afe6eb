package post

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RXAliman/scrunch/internal/feed"
	"github.com/RXAliman/scrunch/internal/models"
	"github.com/RXAliman/scrunch/internal/mq"
	"github.com/RXAliman/scrunch/internal/svc"
	"github.com/RXAliman/scrunch/internal/weberr"
)

const postCacheTTL = 10 * time.Minute

type PostHandler struct {
	svc *svc.ServiceContext
}

func NewPostHandler(svc *svc.ServiceContext) *PostHandler {
	return &PostHandler{svc: svc}
}

func postCacheKey(id uint) string {
	return "post:" + strconv.FormatUint(uint64(id), 10)
}

// loadPost fetches one post with its comments and reactions, serving
// from the Redis cache when warm. Every write path evicts the entry,
// so a cache hit is never staler than the last mutation.
func (h *PostHandler) loadPost(ctx context.Context, id uint) (models.Post, error) {
	var p models.Post

	cacheKey := postCacheKey(id)
	if h.svc.Cache != nil {
		if cached, err := h.svc.Cache.Get(ctx, cacheKey); err == nil {
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return p, nil
			}
		}
	}

	err := h.svc.DB.Preload("Comments").Preload("Reactions").First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return p, weberr.E(weberr.NotFound, "post not found", err)
		}
		return p, weberr.E(weberr.Backend, "failed to load post", err)
	}

	if h.svc.Cache != nil {
		if body, err := json.Marshal(p); err == nil {
			if err := h.svc.Cache.SetWithRandomTTL(ctx, cacheKey, string(body), postCacheTTL); err != nil {
				zap.L().Warn("failed to cache post", zap.Error(err), zap.Uint("post_id", id))
			}
		}
	}
	return p, nil
}

// evictPost drops a post's cache entry after a mutation.
func (h *PostHandler) evictPost(ctx context.Context, id uint) {
	if h.svc.Cache == nil {
		return
	}
	if err := h.svc.Cache.Del(ctx, postCacheKey(id)); err != nil {
		zap.L().Warn("failed to evict post cache", zap.Error(err), zap.Uint("post_id", id))
	}
}

// accountName resolves a profile's display name for the assemblers. A
// vanished author is an error, not a placeholder.
func (h *PostHandler) accountName(accountID uint) (string, error) {
	var p models.Profile
	if err := h.svc.DB.Select("id, first_name, last_name").First(&p, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", weberr.E(weberr.NotFound, "account no longer exists", err)
		}
		return "", weberr.E(weberr.Backend, "failed to load account", err)
	}
	return p.Name(), nil
}

func (h *PostHandler) nameLookup() feed.NameLookup {
	return h.accountName
}

// publishFeedMsg tells the consumer to update the Redis recency hint.
// When the message cannot be sent the hint would drift from the
// database, so it is dropped instead: the home feed then falls back to
// the full table until the consumer repopulates it.
func (h *PostHandler) publishFeedMsg(msg models.FeedMsg) {
	if h.svc.Rabbit == nil {
		h.invalidateFeedHint()
		return
	}
	body, _ := json.Marshal(msg)
	if err := h.svc.Rabbit.Publish(mq.FeedQueue, body); err != nil {
		zap.L().Warn("failed to publish feed msg", zap.Error(err))
		h.invalidateFeedHint()
	}
}

func (h *PostHandler) invalidateFeedHint() {
	if h.svc.Cache == nil {
		return
	}
	if err := h.svc.Cache.Del(context.Background(), mq.RecentFeedKey); err != nil {
		zap.L().Warn("failed to invalidate feed hint", zap.Error(err))
	}
}
