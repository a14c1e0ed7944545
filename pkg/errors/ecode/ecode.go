package ecode

// 错误码定义，0表示成功
const (
	Success = 0

	InternalErr    = 10001 // 内部错误
	BadRequestErr  = 10002 // 请求参数错误
	RequireAuthErr = 10003 // 鉴权失败
	SignatureErr   = 10004 // webhook签名校验失败

	SignalRejectedErr = 20001 // 信号被拒绝（非BUY或不支持的交易对）
	ExchangeCallErr   = 20002 // 交易所调用失败
)
