package router

import (
	"github.com/gin-gonic/gin"

	"upflow/internal/handler/execution"
	"upflow/internal/handler/market"
	"upflow/internal/handler/ping"
	"upflow/internal/handler/webhook"
	"upflow/internal/middleware"
)

type ApiRouter struct {
	webhookHandler   *webhook.Handler
	executionHandler *execution.Handler
	marketHandler    *market.Handler
}

func NewApiRouter(wh *webhook.Handler, eh *execution.Handler, mh *market.Handler) *ApiRouter {
	return &ApiRouter{webhookHandler: wh, executionHandler: eh, marketHandler: mh}
}

func (api *ApiRouter) Load(g *gin.Engine) {
	g.Use(middleware.RequestId(), middleware.Logger, middleware.Secure(), gin.Recovery())

	g.GET("/ping", ping.Ping())

	// TradingView alert 入口
	g.POST("/webhook", api.webhookHandler.HandleWebhook())

	e := g.Group("/executions", middleware.NoCache(), middleware.AntiDuplicateMiddleware())
	{
		// 最近的执行记录
		e.GET("", api.executionHandler.ExecutionsGetRecent())
	}

	m := g.Group("/market", middleware.NoCache())
	{
		// 配置交易对的最新价格
		m.GET("/price", api.marketHandler.PriceGet())
	}
}
