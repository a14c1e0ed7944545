package upbit

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse 交易所响应缺少预期字段
var ErrMalformedResponse = errors.New("upbit: malformed response")

// APIError 交易所调用失败（非2xx响应或传输层错误）
type APIError struct {
	Endpoint string
	Status   int // 0表示请求未到达服务端
	Body     string
	Err      error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upbit: call %s failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("upbit: call %s failed: status %d, body %s", e.Endpoint, e.Status, e.Body)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// 下单前本地校验失败的原因
const ReasonBelowMinimum = "below_minimum"

// OrderRejectedError 订单在发出网络请求之前就被拒绝
type OrderRejectedError struct {
	Reason string
}

func (e *OrderRejectedError) Error() string {
	return "upbit: order rejected: " + e.Reason
}
