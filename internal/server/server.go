package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	articledomain "github.com/smallbiznis/cube/internal/article/domain"
	"github.com/smallbiznis/cube/internal/config"
	"github.com/smallbiznis/cube/internal/observability"
	obslogger "github.com/smallbiznis/cube/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/cube/internal/observability/metrics"
	obstracing "github.com/smallbiznis/cube/internal/observability/tracing"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{Debug: obsCfg.Debug()}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(CORSMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/metrics", gin.WrapH(httpMetrics.Handler()))

	return r
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	db         *gorm.DB
	log        *zap.Logger
	articleSvc articledomain.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	DB         *gorm.DB
	Log        *zap.Logger
	ArticleSvc articledomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		db:         p.DB,
		log:        p.Log.Named("server"),
		articleSvc: p.ArticleSvc,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// RegisterRoutes attaches the full HTTP surface to the engine.
func (s *Server) RegisterRoutes() {
	s.engine.GET("/", s.Root)
	s.engine.GET("/health", s.Health)
	s.engine.GET("/db/test", s.DBTest)

	articles := s.engine.Group("/articles")
	{
		articles.POST("", s.CreateArticle)
		articles.GET("", s.ListArticles)
		articles.GET("/:id", s.GetArticleByID)
		articles.PUT("/:id", s.UpdateArticle)
		articles.DELETE("/:id", s.DeleteArticle)
	}

	s.engine.GET("/categories", s.ListCategories)
}

func registerRoutes(s *Server) {
	s.RegisterRoutes()
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_ = ctx
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			log.Info("http server stopping")
			return srv.Shutdown(shutdownCtx)
		},
	})
}
