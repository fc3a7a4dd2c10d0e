package server

import (
	"wallet-ledger/internal/handler"
	"wallet-ledger/internal/handler/middleware"

	"wallet-ledger/pkg/monitor"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps 路由依赖的所有 handler
type RouterDeps struct {
	Deposit        *handler.DepositHandler
	Wallet         *handler.WalletHandler
	Admin          *handler.AdminHandler
	AdminTokenHash string
}

// NewHTTPRouter 初始化并返回一个 Gin Engine
func NewHTTPRouter(deps RouterDeps) *gin.Engine {
	// 0. 初始化监控指标 (含业务指标)
	monitor.Init()

	// 1. 创建 Engine (使用默认中间件: Logger, Recovery)
	r := gin.Default()

	// 2. 注册通用中间件
	r.Use(monitor.PrometheusMiddleware()) // 监控埋点

	// 3. 注册基础路由
	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler())) // 暴露给 Prometheus

	// 4. 注册 API 路由组
	api := r.Group("/api/v1")
	{
		deposits := api.Group("/deposits")
		{
			deposits.POST("", deps.Deposit.Create)
			deposits.GET("", deps.Deposit.List)
		}

		wallet := api.Group("/wallet")
		{
			wallet.GET("/balances", deps.Wallet.Balances)
			wallet.GET("/balances/:coin", deps.Wallet.CoinBalance)
		}

		admin := api.Group("/admin", middleware.AdminAuth(deps.AdminTokenHash))
		{
			admin.POST("/deposits/:id/resolve", deps.Admin.Resolve)
			admin.POST("/deposits/resolve-batch", deps.Admin.ResolveBatch)
			admin.PUT("/deposits/:id/amount", deps.Admin.SetAmount)
		}
	}

	return r
}
