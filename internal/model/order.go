package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderSide string

const (
	// 买入
	Bid OrderSide = "bid"
	// 卖出
	Ask OrderSide = "ask"
)

type OrderState string

const (
	OrderStateWait   OrderState = "wait"
	OrderStateDone   OrderState = "done"
	OrderStateCancel OrderState = "cancel"
)

// Order 交易所持有的订单视图，本地只读不改
type Order struct {
	UUID      string          `json:"uuid"`
	Market    string          `json:"market"`
	Side      OrderSide       `json:"side"`
	OrdType   string          `json:"ord_type"`
	State     OrderState      `json:"state"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// Balance 账户某一币种的可用余额快照，每次执行前重新拉取，不做缓存
type Balance struct {
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
}
