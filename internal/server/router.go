package server

import (
	"custody-core/internal/handler"
	"custody-core/internal/handler/response"
	"custody-core/internal/wallet"
	"custody-core/pkg/monitor"
	"custody-core/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHTTPRouter 初始化并返回一个 Gin Engine
func NewHTTPRouter(svc *wallet.Service) *gin.Engine {
	// 0. 初始化监控指标与请求校验器
	monitor.Init()
	validator.Init()

	// 1. 创建 Engine (使用默认中间件: Logger, Recovery)
	r := gin.Default()

	// 2. 注册通用中间件
	r.Use(monitor.PrometheusMiddleware())

	// 3. 注册基础路由
	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 4. 注册 API 路由组
	walletHandler := handler.NewWalletHandler(svc)
	recoveryHandler := handler.NewRecoveryHandler(svc)

	api := r.Group("/api/v1")
	{
		api.GET("/ping", func(c *gin.Context) {
			response.Success(c, gin.H{"pong": true})
		})

		w := api.Group("/wallet")
		{
			w.POST("/load", walletHandler.LoadAccount)
			w.POST("/refresh", walletHandler.RefreshBalance)
			w.POST("/prepare", walletHandler.Prepare)
			w.POST("/confirm", walletHandler.Confirm)
			w.GET("/state", walletHandler.State)
		}

		rec := api.Group("/recovery")
		{
			rec.POST("/split", recoveryHandler.Split)
			rec.POST("/reconstruct", recoveryHandler.Reconstruct)
		}
	}

	return r
}
