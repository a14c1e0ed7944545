package model

import (
	"fmt"
	"strings"
)

/*
来源于外部数据（TradingView alert webhook）

	{
	  "action": "BUY",
	  "symbol": "ETHKRW",
	  "comment": "급등 감지"
	}
*/
type Signal struct {
	Action  string `json:"action" binding:"required,action"` // 交易指令 BUY / SELL
	Symbol  string `json:"symbol" binding:"required"`        // ETHKRW、KRW-ETH、UPBIT:ETHKRW 等形式
	Comment string `json:"comment"`
}

// NormalizeSymbol 把外部的symbol写法统一成Upbit市场代码，如 KRW-ETH
// 支持 ETHKRW / ETH/KRW / KRW-ETH / UPBIT:ETHKRW
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.ReplaceAll(s, "/", "")
	if s == "" {
		return "", fmt.Errorf("empty symbol")
	}
	if strings.Contains(s, "-") {
		parts := strings.SplitN(s, "-", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return "", fmt.Errorf("invalid symbol: %s", symbol)
		}
		return s, nil
	}
	// ETHKRW -> KRW-ETH
	if base, ok := strings.CutSuffix(s, "KRW"); ok && base != "" {
		return "KRW-" + base, nil
	}
	return "", fmt.Errorf("unsupported symbol: %s", symbol)
}
