package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RXAliman/scrunch/config"
	"github.com/RXAliman/scrunch/internal/middleware"
	"github.com/RXAliman/scrunch/internal/models"
	"github.com/RXAliman/scrunch/internal/post"
	"github.com/RXAliman/scrunch/internal/svc"
	"github.com/RXAliman/scrunch/internal/user"
	"github.com/RXAliman/scrunch/internal/utils"
	"github.com/RXAliman/scrunch/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	utils.InitLogger(cfg.AppEnv)
	defer zap.L().Sync()

	serviceCtx := svc.NewServiceContext(cfg)
	defer serviceCtx.Close()

	err = serviceCtx.DB.AutoMigrate(
		&models.Profile{},
		&models.Post{},
		&models.Comment{},
		&models.Reaction{},
	)
	if err != nil {
		panic("failed to migrate database: " + err.Error())
	}

	serviceCtx.Consumer.Start()

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.LoadViewer(cfg, serviceCtx.DB, serviceCtx.Cache))
	r.LoadHTMLGlob("web/templates/*.html")

	userHandler := user.NewUserHandler(serviceCtx)
	postHandler := post.NewPostHandler(serviceCtx)

	// Public pages.
	r.GET("/", postHandler.Home)
	r.GET("/login", userHandler.LoginForm)
	r.POST("/login", userHandler.Login)
	r.GET("/signup", userHandler.SignupForm)
	r.POST("/signup", userHandler.Signup)
	r.GET("/signout", userHandler.Signout)
	r.GET("/user/:id", userHandler.ProfilePage)
	r.GET("/post/:id", postHandler.GetPost)

	// Pages that need a signed-in viewer.
	auth := r.Group("/")
	auth.Use(middleware.RequireViewer())
	{
		auth.GET("/create", postHandler.CreateForm)
		auth.POST("/create", postHandler.Create)
		auth.POST("/post/:id",
			middleware.RateLimitMiddleware(serviceCtx.Cache, "comment", 30, time.Minute),
			postHandler.Comment)
		auth.GET("/post/:id/edit", postHandler.EditForm)
		auth.POST("/post/:id/edit", postHandler.Edit)
	}

	// React and Delete return JSON instead of redirecting, so they do
	// their own viewer check for a proper error body.
	r.POST("/post/:id/react",
		middleware.RateLimitMiddleware(serviceCtx.Cache, "react", 60, time.Minute),
		postHandler.React)
	r.DELETE("/post/:id/delete", postHandler.Delete)

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "404.html", gin.H{
			"Title":  view.PageTitle("Not Found"),
			"Viewer": utils.GetViewer(c),
		})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zap.L().Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zap.L().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("shutdown error", zap.Error(err))
	}
}
