package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options 滚动文件参数，零值字段使用默认值
type Options struct {
	Dir        string
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func (o Options) withDefaults() (Options, error) {
	o.Dir = strings.TrimSpace(o.Dir)
	if o.Dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return o, fmt.Errorf("resolve workdir: %w", err)
		}
		o.Dir = filepath.Join(wd, "logs")
	}
	if o.Filename = strings.TrimSpace(o.Filename); o.Filename == "" {
		o.Filename = "fandom-mart.log"
	}
	if o.MaxSizeMB <= 0 {
		o.MaxSizeMB = 100
	}
	if o.MaxBackups <= 0 {
		o.MaxBackups = 7
	}
	if o.MaxAgeDays <= 0 {
		o.MaxAgeDays = 30
	}
	return o, nil
}

// L 全局实例，Init 之前为 nil，读取请走 Z()/S()
var L *zap.Logger

var (
	fallbackOnce sync.Once
	fallback     *zap.Logger
)

func Init(mode string, options Options) *zap.Logger {
	L = New(mode, options)
	zap.ReplaceGlobals(L)
	return L
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "message"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.MillisDurationEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return cfg
}

func newLogger(core zapcore.Core) *zap.Logger {
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

// New debug 模式输出彩色控制台，其余模式写 JSON 到滚动文件；文件不可用时退回 stdout
func New(mode string, options Options) *zap.Logger {
	if strings.EqualFold(strings.TrimSpace(mode), "debug") {
		enc := encoderConfig()
		enc.EncodeLevel = zapcore.LowercaseColorLevelEncoder
		return newLogger(zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stdout), zap.DebugLevel))
	}
	var sink zapcore.WriteSyncer = zapcore.Lock(os.Stdout)
	if file, err := fileSink(options); err != nil {
		fmt.Fprintf(os.Stderr, "logger: file sink unavailable, using stdout: %v\n", err)
	} else {
		sink = file
	}
	return newLogger(zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), sink, zap.InfoLevel))
}

func fileSink(options Options) (zapcore.WriteSyncer, error) {
	path, err := logFilePath(options)
	if err != nil {
		return nil, err
	}
	opts, _ := options.withDefaults()
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}), nil
}

// logFilePath 创建目录并确认文件可写
func logFilePath(options Options) (string, error) {
	opts, err := options.withDefaults()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(opts.Dir, opts.Filename)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open log file: %w", err)
	}
	return path, f.Close()
}

// StdLogger 供 http.Server 等只接受 *log.Logger 的组件使用
func StdLogger() *log.Logger {
	return zap.NewStdLog(Z())
}

func Z() *zap.Logger {
	if L != nil {
		return L
	}
	fallbackOnce.Do(func() {
		fallback = newLogger(zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.Lock(os.Stdout), zap.InfoLevel))
	})
	return fallback
}

func S() *zap.SugaredLogger {
	return Z().Sugar()
}

// SW 附加键值对，例如 SW("request_id", id)
func SW(kv ...interface{}) *zap.SugaredLogger {
	return S().With(kv...)
}

// Named 组件日志，输出 "logger" 字段
func Named(component string) *zap.SugaredLogger {
	return S().Named(component)
}

func Debugw(message string, kv ...interface{}) { S().Debugw(message, kv...) }
func Infow(message string, kv ...interface{})  { S().Infow(message, kv...) }
func Warnw(message string, kv ...interface{})  { S().Warnw(message, kv...) }
func Errorw(message string, kv ...interface{}) { S().Errorw(message, kv...) }

func Sync() {
	_ = Z().Sync()
}
