package main

import (
	"log"

	"github.com/joho/godotenv"

	"upflow/conf"
	"upflow/internal/api"
	"upflow/pkg/logger"
)

// 启动服务（监听webhook）

/*
测试

BODY='{"action":"BUY","symbol":"ETHKRW"}'
SECRET="ab12cd34ef56abcdef1234567890abcdef1234567890abcdef1234567890"
SIGNATURE=$(echo -n $BODY | openssl dgst -sha256 -hmac $SECRET | sed 's/^.* //')

curl -X POST http://localhost:12180/webhook \
  -H "Content-Type: application/json" \
  -H "X-Signature: $SIGNATURE" \
  -d "$BODY"
*/

func main() {

	// .env里的密钥优先注入环境变量
	_ = godotenv.Load()

	// 加载配置文件
	err := conf.LoadConfig("conf/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appCfg := conf.AppConfig
	logger.InitLogger(&appCfg.Log, appCfg.AppName)
	defer logger.Sync()

	r, err := api.InitRouter()
	if err != nil {
		logger.Fatal("init failed: " + err.Error())
	}

	server := api.NewServer(&appCfg)
	server.RegisterOnShutdown(logger.Sync)
	server.Run(r)
}
