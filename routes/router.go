package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/config"
	"github.com/cppla/yatube/controllers"
	"github.com/cppla/yatube/middleware"
	"github.com/cppla/yatube/repository"
	"github.com/cppla/yatube/templates"
	"github.com/cppla/yatube/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(cfg config.AppConfig, store *repository.Store, cache utils.CacheStore, media *utils.MediaStorage) (*gin.Engine, error) {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = media.MaxBytes
	// Access log and recovery go to their own rolling file when configured
	gl := utils.Logger
	if cfg.GinLogPath != "" {
		fl, err := utils.NewRollingFileLogger(cfg.GinLogPath, cfg)
		if err != nil {
			utils.Sugar.Warnf("gin log file unavailable path=%s err=%v", cfg.GinLogPath, err)
		} else {
			gl = fl
		}
	}
	r.Use(ginzap.Ginzap(gl, time.RFC3339, true))
	r.Use(ginzap.CustomRecoveryWithZap(gl, false, func(ctx *gin.Context, _ any) {
		utils.ErrorPage(ctx, http.StatusInternalServerError)
	}))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		// credentials cannot be combined with a wildcard origin
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	tmpl, err := templates.Load(media, cfg.PostTitleLength)
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	if media.URL != "" {
		r.Static(media.URL, media.Root)
	}

	statsController := controllers.NewStatsController(store)
	r.GET("/health", statsController.Health)

	ttl := time.Duration(cfg.IndexCacheSeconds) * time.Second
	postController := controllers.NewPostController(store, media, cfg.PostsPerPage)
	followController := controllers.NewFollowController(store, cfg.PostsPerPage)
	authController := controllers.NewAuthController(store.Users, cfg.JWTSecret, cfg.SessionCookie,
		time.Duration(cfg.SessionTTLHours)*time.Hour)

	site := r.Group("")
	site.Use(middleware.Authenticate(cfg.JWTSecret, cfg.SessionCookie, store.Users))

	// Index is cached per URL; writes do not invalidate it
	site.GET("/", middleware.CachePage(cache, ttl), postController.Index)
	site.GET("/group/:slug/", postController.GroupPosts)
	site.GET("/profile/:username/", postController.Profile)
	site.GET("/posts/:id/", postController.PostDetail)

	site.GET("/auth/login/", authController.LoginForm)
	site.POST("/auth/login/", middleware.RateLimit(cfg.RateLimitPerMinute), authController.Login)
	site.GET("/auth/logout/", authController.Logout)

	member := site.Group("")
	member.Use(middleware.LoginRequired())
	member.GET("/follow/", followController.FollowIndex)
	member.GET("/profile/:username/follow/", followController.ProfileFollow)
	member.GET("/profile/:username/unfollow/", followController.ProfileUnfollow)
	member.GET("/create/", postController.PostCreate)
	member.GET("/posts/:id/edit/", postController.PostEdit)

	writes := member.Group("")
	writes.Use(middleware.RateLimit(cfg.RateLimitPerMinute))
	writes.POST("/create/", postController.PostCreate)
	writes.POST("/posts/:id/edit/", postController.PostEdit)
	writes.POST("/posts/:id/comment/", postController.AddComment)

	r.NoRoute(controllers.NotFound)

	return r, nil
}
