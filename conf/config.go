package conf

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// 配置加载（API密钥等）

type WebhookConfig struct {
	Secret string `yaml:"secret"`
}

// Upbit Open API 密钥对，进程生命周期内只读
type UpbitConfig struct {
	AccessKey      string `yaml:"access-key"`
	SecretKey      string `yaml:"secret-key"`
	BaseURL        string `yaml:"base-url"`
	HTTPTimeoutSec int64  `yaml:"http-timeout-sec"`
}

type TradingConfig struct {
	Market string `yaml:"market"` // 交易对，例如 KRW-ETH
	// 单次买入占可用余额的比例 (0~1)
	BuyPercentage float64 `yaml:"buy-percentage"`
	// 交易所最小下单金额（计价货币，KRW）
	MinOrderAmount int64 `yaml:"min-order-amount"`
	// 防重复下单的时间窗口（小时）
	DuplicateWindowHours int `yaml:"duplicate-window-hours"`
	// 是否用进程内互斥锁串行化 余额->查重->下单 流程
	SerializeExecutions bool `yaml:"serialize-executions"`
	// 执行结果记录文件（JSONL）
	RecordPath string `yaml:"record-path"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	FileName   string `yaml:"file-name"`
	TimeFormat string `yaml:"time-format"`
	MaxSize    int    `yaml:"max-size"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAge     int    `yaml:"max-age"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local-time"`
	Console    bool   `yaml:"console"`
}

type Config struct {
	AppName      string `yaml:"app_name"`
	Listen       string `yaml:"listen"`
	Mode         string `yaml:"mode"`
	MaxPingCount int    `yaml:"max-ping-count"`

	Webhook WebhookConfig `yaml:"webhook"`
	Upbit   UpbitConfig   `yaml:"upbit"`
	Trading TradingConfig `yaml:"trading"`
	Log     LogConfig     `yaml:"log"`
}

var AppConfig Config

func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Read config file error %w", err)
	}
	if err := yaml.Unmarshal(data, &AppConfig); err != nil {
		return fmt.Errorf("Unmarshal config yaml error: %w", err)
	}
	applyEnvOverrides(&AppConfig)
	applyDefaults(&AppConfig)
	return AppConfig.Validate()
}

// 环境变量优先于配置文件，密钥一般从.env注入，不落盘到config.yaml
func applyEnvOverrides(c *Config) {
	if v := os.Getenv("UPBIT_ACCESS_KEY"); v != "" {
		c.Upbit.AccessKey = v
	}
	if v := os.Getenv("UPBIT_SECRET_KEY"); v != "" {
		c.Upbit.SecretKey = v
	}
	if v := os.Getenv("WEBHOOK_SECRET"); v != "" {
		c.Webhook.Secret = v
	}
	if v := os.Getenv("BUY_PERCENTAGE"); v != "" {
		c.Trading.BuyPercentage = cast.ToFloat64(v)
	}
	if v := os.Getenv("MIN_ORDER_AMOUNT"); v != "" {
		c.Trading.MinOrderAmount = cast.ToInt64(v)
	}
	if v := os.Getenv("DUPLICATE_WINDOW_HOURS"); v != "" {
		c.Trading.DuplicateWindowHours = cast.ToInt(v)
	}
}

func applyDefaults(c *Config) {
	if c.Upbit.BaseURL == "" {
		c.Upbit.BaseURL = "https://api.upbit.com"
	}
	if c.Trading.BuyPercentage == 0 {
		c.Trading.BuyPercentage = 0.10
	}
	if c.Trading.MinOrderAmount == 0 {
		c.Trading.MinOrderAmount = 5000
	}
	if c.Trading.DuplicateWindowHours == 0 {
		c.Trading.DuplicateWindowHours = 1
	}
	if c.MaxPingCount == 0 {
		c.MaxPingCount = 10
	}
}

// Validate 启动时校验，密钥缺失是致命的配置错误，不能等到请求阶段才失败
func (c *Config) Validate() error {
	if c.Upbit.AccessKey == "" || c.Upbit.SecretKey == "" {
		return errors.New("upbit access-key/secret-key required")
	}
	if c.Trading.Market == "" {
		return errors.New("trading market required")
	}
	if c.Trading.BuyPercentage <= 0 || c.Trading.BuyPercentage > 1 {
		return fmt.Errorf("invalid buy-percentage: %v", c.Trading.BuyPercentage)
	}
	return nil
}
