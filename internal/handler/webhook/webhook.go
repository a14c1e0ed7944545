package webhook

import (
	"bytes"
	"context"
	"io"

	"github.com/gin-gonic/gin"

	"upflow/internal/consts"
	"upflow/internal/model"
	"upflow/internal/webhook"
	"upflow/pkg/errors"
	"upflow/pkg/errors/ecode"
	"upflow/pkg/response"
)

type Handler struct {
	whHandler *webhook.WebhookHandler
}

func NewHandler(wh *webhook.WebhookHandler) *Handler {
	return &Handler{whHandler: wh}
}

// HandleWebhook 接收POST请求，验签后解析为交易信号并执行
func (h *Handler) HandleWebhook() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		// 获取签名
		signature := ctx.GetHeader(consts.SignatureHeader)
		if signature == "" {
			response.RequireAuthErr(ctx, errors.New(ecode.SignatureErr, "missing signature"))
			return
		}

		body, err := ctx.GetRawData()
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.BadRequestErr, "failed to read body"), nil)
			return
		}

		// 验签
		if !webhook.VerifySignature(body, signature) {
			response.RequireAuthErr(ctx, errors.New(ecode.SignatureErr, "invalid signature"))
			return
		}

		// body已读出，回填后走gin的绑定校验
		ctx.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		var sig model.Signal
		if err := ctx.ShouldBindJSON(&sig); err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.BadRequestErr, "invalid signal payload"), nil)
			return
		}

		// 下单流程不跟随请求取消，客户端断连不能中断已发出的委托
		result, err := h.whHandler.HandleSignal(context.WithoutCancel(ctx.Request.Context()), sig)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, result)
	}
}
