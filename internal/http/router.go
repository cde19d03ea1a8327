package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kiosk_checkin/backend/internal/config"
	"github.com/kiosk_checkin/backend/internal/http/handlers"
	"github.com/kiosk_checkin/backend/internal/http/middleware"
	"github.com/kiosk_checkin/backend/internal/llm"
	"github.com/kiosk_checkin/backend/internal/service"

	_ "github.com/kiosk_checkin/backend/docs"
)

func Router(cfg config.Config, checkin *service.CheckIn, completer llm.Completer, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.BodyLimit(cfg.MaxBodyKB << 10))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		CheckIn:            checkin,
		Completer:          completer,
		Validator:          validator.New(),
		Logger:             logger,
		DefaultModel:       cfg.LLMModel,
		DefaultTemperature: cfg.LLMTemperature,
	}

	r.GET("/health", h.Health)
	r.POST("/ticket", h.CreateTicket)
	r.POST("/llm", h.Completion)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
