package svc

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RXAliman/scrunch/config"
	"github.com/RXAliman/scrunch/internal/infra/cache"
	"github.com/RXAliman/scrunch/internal/infra/db"
	"github.com/RXAliman/scrunch/internal/infra/storage"
	"github.com/RXAliman/scrunch/internal/mq"
)

// ServiceContext wires every backing service once at startup. Redis,
// RabbitMQ, and MinIO are optional: the app serves pages without them,
// just without their features (session revocation, feed hint, upload).
type ServiceContext struct {
	Config   *config.Config
	DB       *gorm.DB
	Cache    *cache.RedisCache
	Rabbit   *mq.RabbitMQ
	Images   *storage.FileStorage
	Consumer *mq.Consumer
}

func NewServiceContext(cfg *config.Config) *ServiceContext {
	dbConn := db.InitMySQL(cfg)

	rdb, err := cache.New(cfg)
	if err != nil {
		zap.L().Warn("Redis connection failed, continuing without Redis", zap.Error(err))
		rdb = nil
	} else {
		zap.L().Info("Redis connected successfully")
	}

	rabbit, err := mq.New(cfg)
	if err != nil {
		zap.L().Warn("RabbitMQ connection failed, continuing without MQ", zap.Error(err))
		rabbit = nil
	} else {
		zap.L().Info("RabbitMQ connected successfully")
	}

	images, err := storage.NewFileStorage(
		cfg.MinioEndpoint,
		cfg.MinioPublicURL,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioBucket,
	)
	if err != nil {
		zap.L().Warn("MinIO connection failed, image uploads disabled", zap.Error(err))
		images = nil
	}

	consumer := mq.NewConsumer(dbConn, rdb, rabbit)

	return &ServiceContext{
		Config:   cfg,
		DB:       dbConn,
		Cache:    rdb,
		Rabbit:   rabbit,
		Images:   images,
		Consumer: consumer,
	}
}

func (s *ServiceContext) Close() {
	if s.Rabbit != nil {
		s.Rabbit.Close()
		zap.L().Info("RabbitMQ closed")
	}
	if s.Cache != nil {
		if err := s.Cache.Close(); err != nil {
			zap.L().Error("Redis close error", zap.Error(err))
		}
	}
	if s.DB != nil {
		if sqlDB, err := s.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
