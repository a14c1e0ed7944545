package upbit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"upflow/conf"
	"upflow/internal/model"
)

type AuthType int

const (
	AuthNone AuthType = iota
	AuthSigned
)

// ExchangeClient 引擎依赖的交易所能力，方便测试时注入fake
type ExchangeClient interface {
	// 获取最新成交价
	GetCurrentPrice(ctx context.Context, market string) (decimal.Decimal, error)
	// 获取KRW可用余额，没有KRW账户时返回0
	GetKRWBalance(ctx context.Context) (decimal.Decimal, error)
	// 市价买入：按KRW金额吃单
	PlaceBuyOrder(ctx context.Context, market string, price decimal.Decimal) (*model.Order, error)
	// 获取窗口期内的已完成/已取消订单，交易所返回顺序保持不变
	GetRecentOrders(ctx context.Context, market string, window time.Duration) ([]model.Order, error)
}

type Client struct {
	accessKey      string
	secretKey      string
	baseURL        string
	minOrderAmount decimal.Decimal
	httpClient     *http.Client
}

func NewClient(cfg conf.UpbitConfig, minOrderAmount int64) (*Client, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("upbit access-key/secret-key required")
	}
	timeout := 10 * time.Second
	if cfg.HTTPTimeoutSec > 0 {
		timeout = time.Duration(cfg.HTTPTimeoutSec) * time.Second
	}
	return &Client{
		accessKey:      cfg.AccessKey,
		secretKey:      cfg.SecretKey,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		minOrderAmount: decimal.NewFromInt(minOrderAmount),
		httpClient:     &http.Client{Timeout: timeout},
	}, nil
}

// execute 执行一次HTTP往返。GET把参数拼到query上，
// 其他方法参数走JSON body，但签名哈希仍然对query-string编码计算（交易所的约定）
func (c *Client) execute(ctx context.Context, method, endpoint string, params Params, auth AuthType) ([]byte, error) {
	reqURL := c.baseURL + endpoint
	queryString := params.Encode()

	var body io.Reader
	if method == http.MethodGet {
		if queryString != "" {
			reqURL += "?" + queryString
		}
	} else if len(params) > 0 {
		data, err := json.Marshal(params.toMap())
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth == AuthSigned {
		token, err := c.authToken(queryString)
		if err != nil {
			return nil, fmt.Errorf("sign request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Endpoint: endpoint, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{Endpoint: endpoint, Status: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}

func (c *Client) GetCurrentPrice(ctx context.Context, market string) (decimal.Decimal, error) {
	params := Params{{"markets", market}}
	data, err := c.execute(ctx, http.MethodGet, "/v1/ticker", params, AuthNone)
	if err != nil {
		return decimal.Zero, err
	}
	var ticks []struct {
		TradePrice decimal.Decimal `json:"trade_price"`
	}
	if err := json.Unmarshal(data, &ticks); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(ticks) == 0 {
		return decimal.Zero, fmt.Errorf("%w: no ticker entry for %s", ErrMalformedResponse, market)
	}
	return ticks[0].TradePrice, nil
}

func (c *Client) GetKRWBalance(ctx context.Context) (decimal.Decimal, error) {
	data, err := c.execute(ctx, http.MethodGet, "/v1/accounts", nil, AuthSigned)
	if err != nil {
		return decimal.Zero, err
	}
	var accounts []model.Balance
	if err := json.Unmarshal(data, &accounts); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	for _, acc := range accounts {
		if acc.Currency == "KRW" {
			return acc.Balance, nil
		}
	}
	// 没有KRW账户视作余额为0，不是错误
	return decimal.Zero, nil
}

func (c *Client) PlaceBuyOrder(ctx context.Context, market string, price decimal.Decimal) (*model.Order, error) {
	if price.LessThan(c.minOrderAmount) {
		return nil, &OrderRejectedError{Reason: ReasonBelowMinimum}
	}
	params := Params{
		{"market", market},
		{"side", string(model.Bid)},
		{"ord_type", "price"},
		{"price", price.String()},
	}
	data, err := c.execute(ctx, http.MethodPost, "/v1/orders", params, AuthSigned)
	if err != nil {
		return nil, err
	}
	var order model.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if order.UUID == "" {
		return nil, fmt.Errorf("%w: order response without uuid", ErrMalformedResponse)
	}
	return &order, nil
}

func (c *Client) GetRecentOrders(ctx context.Context, market string, window time.Duration) ([]model.Order, error) {
	params := Params{
		{"market", market},
		{"states", "done,cancel"},
		{"limit", "100"},
	}
	data, err := c.execute(ctx, http.MethodGet, "/v1/orders", params, AuthSigned)
	if err != nil {
		return nil, err
	}
	var orders []model.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	cutoff := time.Now().Add(-window)
	recent := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if withinWindow(o.CreatedAt, cutoff) {
			recent = append(recent, o)
		}
	}
	return recent, nil
}

// 窗口为闭区间，恰好落在边界上的订单也算
func withinWindow(createdAt, cutoff time.Time) bool {
	return !createdAt.Before(cutoff)
}
