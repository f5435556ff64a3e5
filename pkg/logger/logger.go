package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger takes a message followed by alternating keys and values.
type Logger struct {
	sugar *zap.SugaredLogger
}

// Log is the process-wide logger. It is a no-op until Init is called.
var Log = &Logger{sugar: zap.NewNop().Sugar()}

var redactKeys = map[string]bool{
	"token":         true,
	"access_token":  true,
	"password":      true,
	"authorization": true,
	"apikey":        true,
}

// Init builds the logger: JSON at info level in "prod", console at debug
// level otherwise. A non-empty level overrides the mode's default.
func Init(mode, level string) error {
	cfg, err := newConfig(mode, level)
	if err != nil {
		return err
	}
	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	Log = &Logger{sugar: z.Sugar()}
	return nil
}

func newConfig(mode, level string) (zap.Config, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
		if err != nil {
			return cfg, err
		}
		cfg.Level = lvl
	}
	cfg.OutputPaths = []string{"stdout"}
	return cfg, nil
}

// New wraps an existing zap logger, mostly for tests.
func New(z *zap.Logger) *Logger {
	return &Logger{sugar: z.Sugar()}
}

func (l *Logger) Debug(msg string, kv ...interface{}) { l.sugar.Debugw(msg, redact(kv)...) }
func (l *Logger) Info(msg string, kv ...interface{})  { l.sugar.Infow(msg, redact(kv)...) }
func (l *Logger) Warn(msg string, kv ...interface{})  { l.sugar.Warnw(msg, redact(kv)...) }
func (l *Logger) Error(msg string, kv ...interface{}) { l.sugar.Errorw(msg, redact(kv)...) }

// With returns a child logger carrying the given fields.
func (l *Logger) With(kv ...interface{}) *Logger {
	return &Logger{sugar: l.sugar.With(redact(kv)...)}
}

func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

func redact(kv []interface{}) []interface{} {
	if len(kv) == 0 {
		return kv
	}
	out := make([]interface{}, len(kv))
	copy(out, kv)
	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if ok && redactKeys[strings.ToLower(key)] {
			out[i+1] = "[REDACTED]"
		}
	}
	return out
}
