package market

import (
	"github.com/gin-gonic/gin"

	"upflow/internal/upbit"
	"upflow/pkg/errors"
	"upflow/pkg/errors/ecode"
	"upflow/pkg/response"
)

type Handler struct {
	client upbit.ExchangeClient
	market string
}

func NewHandler(client upbit.ExchangeClient, market string) *Handler {
	return &Handler{client: client, market: market}
}

// PriceGet 返回配置交易对的最新成交价
func (h *Handler) PriceGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		price, err := h.client.GetCurrentPrice(ctx.Request.Context(), h.market)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.ExchangeCallErr, "fetch ticker failed"), nil)
			return
		}
		response.JSON(ctx, nil, gin.H{
			"market":      h.market,
			"trade_price": price,
		})
	}
}
