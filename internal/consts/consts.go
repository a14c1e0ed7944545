package consts

const (
	// RequestId 请求id名称
	RequestId = "request_id"

	// webhook请求签名头
	SignatureHeader = "X-Signature"

	DateLayout   = "2006-01-02"
	TimeLayout   = "2006-01-02 15:04:05"
	TimeLayoutMs = "2006-01-02 15:04:05.000"
)

const (
	// 信号指令
	ActionBuy  = "BUY"
	ActionSell = "SELL"
)
