package api

import (
	"upflow/conf"
	"upflow/internal/engine"
	"upflow/internal/handler/execution"
	"upflow/internal/handler/market"
	whhandler "upflow/internal/handler/webhook"
	"upflow/internal/router"
	"upflow/internal/upbit"
	"upflow/internal/webhook"
	"upflow/pkg/recorder"
)

func InitRouter() (Router, error) {
	appCfg := conf.AppConfig

	client, err := upbit.NewClient(appCfg.Upbit, appCfg.Trading.MinOrderAmount)
	if err != nil {
		return nil, err
	}

	eng := engine.New(client, appCfg.Trading)

	recordPath := appCfg.Trading.RecordPath
	if recordPath == "" {
		recordPath = "logs/executions.json"
	}
	rec := recorder.NewJSONFileRecorder(recordPath)

	wh, err := webhook.NewWebhookHandler(eng, appCfg.Trading.Market, rec)
	if err != nil {
		return nil, err
	}

	apiRouter := router.NewApiRouter(
		whhandler.NewHandler(wh),
		execution.NewHandler(rec),
		market.NewHandler(client, appCfg.Trading.Market),
	)
	return apiRouter, nil
}
