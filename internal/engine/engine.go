package engine

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"upflow/conf"
	"upflow/internal/model"
	"upflow/internal/upbit"
	"upflow/pkg/logger"
)

// Engine 单次买入执行引擎
// 每次ExecuteBuy内部严格按 余额 -> 查重 -> 下单 的顺序调用交易所，
// 三步不能并行也不能颠倒：查重读到的订单状态不能比余额快照更旧
type Engine struct {
	client    upbit.ExchangeClient
	market    string
	buyPct    decimal.Decimal
	minOrder  decimal.Decimal
	window    time.Duration
	serialize bool

	// serialize开启时，用进程内互斥锁堵住并发webhook触发的双买窗口。
	// 关闭时保持原始行为：并发执行可能都通过查重，这是已知的限制
	mu sync.Mutex
}

func New(client upbit.ExchangeClient, cfg conf.TradingConfig) *Engine {
	return &Engine{
		client:    client,
		market:    cfg.Market,
		buyPct:    decimal.NewFromFloat(cfg.BuyPercentage),
		minOrder:  decimal.NewFromInt(cfg.MinOrderAmount),
		window:    time.Duration(cfg.DuplicateWindowHours) * time.Hour,
		serialize: cfg.SerializeExecutions,
	}
}

// ExecuteBuy 执行一次买入，永远返回终态结果，不向上抛错
// 每次调用最多发起一次下单，下单失败不重试（市价单失败后盲目重试可能双花）
func (e *Engine) ExecuteBuy(ctx context.Context) model.ExecutionResult {
	if e.serialize {
		e.mu.Lock()
		defer e.mu.Unlock()
	}

	balance, err := e.client.GetKRWBalance(ctx)
	if err != nil {
		return model.ExecutionResult{Success: false, Error: err.Error()}
	}

	buyAmount := balance.Mul(e.buyPct).Floor()
	if buyAmount.LessThan(e.minOrder) {
		logger.Info("buy amount below minimum, skipping",
			logger.Pair("market", e.market),
			logger.Pair("balance", balance.String()),
			logger.Pair("buy_amount", buyAmount.String()))
		return model.ExecutionResult{Success: false, Reason: model.ReasonInsufficientFunds}
	}

	if e.hasRecentBuy(ctx) {
		return model.ExecutionResult{Success: false, Reason: model.ReasonDuplicatePrevented}
	}

	order, err := e.client.PlaceBuyOrder(ctx, e.market, buyAmount)
	if err != nil {
		return model.ExecutionResult{Success: false, Error: err.Error()}
	}

	logger.Info("buy order placed",
		logger.Pair("market", e.market),
		logger.Pair("order_id", order.UUID),
		logger.Pair("amount", buyAmount.String()))
	return model.ExecutionResult{Success: true, OrderID: order.UUID, Amount: buyAmount}
}

// hasRecentBuy 窗口期内是否已有成交的买单
// 查重本身失败时放行（fail-open）：宁可少挡一次，也不让临时的读故障卡死全部交易
func (e *Engine) hasRecentBuy(ctx context.Context) bool {
	orders, err := e.client.GetRecentOrders(ctx, e.market, e.window)
	if err != nil {
		logger.Warn("duplicate check failed, proceeding without it",
			logger.Pair("market", e.market),
			logger.Pair("error", err.Error()))
		return false
	}
	for _, o := range orders {
		if o.Side == model.Bid && o.State == model.OrderStateDone {
			return true
		}
	}
	return false
}
