package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"

	"upflow/conf"
	"upflow/internal/consts"
	"upflow/internal/engine"
	"upflow/internal/model"
	"upflow/pkg/errors"
	"upflow/pkg/errors/ecode"
	"upflow/pkg/logger"
)

// TradingView Webhook 的接收器

type WebhookHandler struct {
	engine   *engine.Engine
	market   string
	recorder model.ExecutionRecorder
	node     *snowflake.Node
}

func NewWebhookHandler(e *engine.Engine, market string, recorder model.ExecutionRecorder) (*WebhookHandler, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, err
	}
	return &WebhookHandler{
		engine:   e,
		market:   market,
		recorder: recorder,
		node:     node,
	}, nil
}

// HandleSignal 校验信号并触发一次买入执行
// 非BUY指令或不支持的交易对在这里就被拒绝，不会触达引擎
func (wh *WebhookHandler) HandleSignal(ctx context.Context, sig model.Signal) (*model.ExecutionResult, error) {
	if !strings.EqualFold(sig.Action, consts.ActionBuy) {
		return nil, errors.New(ecode.SignalRejectedErr, "unsupported action: "+sig.Action)
	}
	market, err := model.NormalizeSymbol(sig.Symbol)
	if err != nil {
		return nil, errors.Wrap(err, ecode.SignalRejectedErr, "invalid symbol")
	}
	if market != wh.market {
		return nil, errors.New(ecode.SignalRejectedErr, "unsupported market: "+market)
	}

	logger.Info("[Webhook] executing buy signal",
		logger.Pair("market", market),
		logger.Pair("comment", sig.Comment))

	result := wh.engine.ExecuteBuy(ctx)
	wh.record(sig, result)
	return &result, nil
}

func (wh *WebhookHandler) record(sig model.Signal, result model.ExecutionResult) {
	if wh.recorder == nil {
		return
	}
	rec := &model.ExecutionRecord{
		ID:              wh.node.Generate().String(),
		Market:          wh.market,
		Action:          strings.ToUpper(sig.Action),
		Timestamp:       time.Now(),
		ExecutionResult: result,
	}
	if err := wh.recorder.Record(rec); err != nil {
		logger.Errorf("record execution failed: %v", err)
	}
}

// VerifySignature 对原始body做HMAC-SHA256验签
func VerifySignature(body []byte, signatureHeader string) bool {
	secret := conf.AppConfig.Webhook.Secret

	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	expectedMAC := h.Sum(nil)
	providedMAC, err := hex.DecodeString(signatureHeader)
	if err != nil {
		return false
	}
	return hmac.Equal(providedMAC, expectedMAC)
}
