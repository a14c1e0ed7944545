package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 失败原因
const (
	ReasonInsufficientFunds  = "insufficient_funds"
	ReasonDuplicatePrevented = "duplicate_prevented"
)

// ExecutionResult 一次买入执行的终态结果
// success为true时必有OrderID和Amount，为false时必有Reason或Error之一
type ExecutionResult struct {
	Success bool            `json:"success"`
	OrderID string          `json:"order_id,omitempty"`
	Amount  decimal.Decimal `json:"amount"` // 实际下单的KRW金额，失败时为0
	Reason  string          `json:"reason,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ExecutionRecord 落盘的执行记录
type ExecutionRecord struct {
	ID        string    `json:"id"` // 雪花id
	Market    string    `json:"market"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	ExecutionResult
}

// 用于记录执行结果的接口
type ExecutionRecorder interface {
	Record(record *ExecutionRecord) error
}
