package upbit

import (
	"net/url"
	"strings"
)

type Param struct {
	Key   string
	Value string
}

// Params 保序的请求参数。签名哈希要求按原始参数顺序编码，
// 不能用url.Values（它会按key排序）
type Params []Param

// Encode 按 key=urlEncode(value) 用&连接，保持原始顺序
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(kv.Key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.Value))
	}
	return b.String()
}

func (p Params) toMap() map[string]string {
	m := make(map[string]string, len(p))
	for _, kv := range p {
		m[kv.Key] = kv.Value
	}
	return m
}
