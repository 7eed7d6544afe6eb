package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RXAliman/scrunch/internal/infra/cache"
	"github.com/RXAliman/scrunch/internal/models"
)

const (
	FeedQueue = "feed_queue"

	// RecentFeedKey is a sorted set of post IDs scored by creation
	// timestamp. It is a hint for the home page query only; the feed
	// assembler re-sorts regardless of what Redis returns.
	RecentFeedKey = "feed:recent"

	// Cap the hint so Redis never grows unbounded.
	maxRecentFeed = 500
)

// Consumer drains post lifecycle messages and keeps the Redis recency
// hint in step with the database.
type Consumer struct {
	db     *gorm.DB
	cache  *cache.RedisCache
	rabbit *RabbitMQ
}

func NewConsumer(db *gorm.DB, cache *cache.RedisCache, rabbit *RabbitMQ) *Consumer {
	return &Consumer{
		db:     db,
		cache:  cache,
		rabbit: rabbit,
	}
}

func (c *Consumer) Start() {
	go c.consumeFeed()
}

func (c *Consumer) consumeFeed() {
	if c.rabbit == nil || c.cache == nil {
		zap.L().Warn("feed consumer not started, MQ or Redis unavailable")
		return
	}

	msgs, err := c.rabbit.Consume(FeedQueue)
	if err != nil {
		zap.L().Error("failed to start feed consumer", zap.Error(err))
		return
	}

	zap.L().Info("waiting for feed messages")

	ctx := context.Background()
	for d := range msgs {
		var msg models.FeedMsg
		if err := json.Unmarshal(d.Body, &msg); err != nil {
			zap.L().Error("failed to unmarshal feed msg", zap.Error(err))
			continue
		}

		member := strconv.FormatUint(uint64(msg.PostID), 10)

		switch msg.Action {
		case "add":
			// The post may already be gone by the time the message
			// drains; never hint a ghost.
			var exists int64
			if err := c.db.Model(&models.Post{}).Where("id = ?", msg.PostID).Count(&exists).Error; err != nil || exists == 0 {
				continue
			}
			if _, err := c.cache.ZAdd(ctx, RecentFeedKey, redis.Z{
				Score:  float64(msg.Timestamp),
				Member: member,
			}); err != nil {
				zap.L().Error("failed to push feed hint", zap.Error(err))
				continue
			}
			// Trim oldest entries past the cap.
			if _, err := c.cache.ZRemRangeByRank(ctx, RecentFeedKey, 0, int64(-maxRecentFeed-1)); err != nil {
				zap.L().Error("failed to trim feed hint", zap.Error(err))
			}
		case "remove":
			if _, err := c.cache.ZRem(ctx, RecentFeedKey, member); err != nil {
				zap.L().Error("failed to drop feed hint", zap.Error(err))
			}
		default:
			zap.L().Warn("unknown feed action", zap.String("action", msg.Action))
		}
	}
}
