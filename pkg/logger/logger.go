package logger

import (
	"os"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"upflow/conf"
)

// 全局日志，InitLogger之前默认输出到控制台（主要便于单测）
var log = newConsoleLogger(zapcore.DebugLevel)

// InitLogger 根据配置初始化全局日志，文件输出走lumberjack滚动
func InitLogger(cfg *conf.LogConfig, appName string) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	if cfg.TimeFormat != "" {
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(cfg.TimeFormat)
	} else {
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	var cores []zapcore.Core
	if cfg.FileName != "" {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FileName,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, level))
	}
	if cfg.Console || cfg.FileName == "" {
		consoleEnc := zap.NewDevelopmentEncoderConfig()
		consoleEnc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEnc), zapcore.AddSync(os.Stdout), level))
	}

	log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).
		Named(appName)
}

func newConsoleLogger(level zapcore.Level) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stdout), level)
	return zap.New(core, zap.AddCallerSkip(1))
}

// Pair 构造一个结构化字段
func Pair(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}

func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { log.Fatal(msg, fields...) }

func Debugf(format string, args ...interface{}) { log.Sugar().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { log.Sugar().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { log.Sugar().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { log.Sugar().Errorf(format, args...) }

// Sync 进程退出前刷新缓冲
func Sync() {
	_ = log.Sync()
}
