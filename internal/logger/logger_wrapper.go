package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/leandrodaf/midikey/sdk/contracts"
)

// ZapLogger implements the Logger contract on top of Uber's zap logger.
type ZapLogger struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

// NewZapLogger creates a production zap logger at the info level.
func NewZapLogger() contracts.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	logger, _ := cfg.Build(zap.AddCallerSkip(1))
	return &ZapLogger{logger: logger, level: level}
}

// Info logs a message at the INFO level.
func (z *ZapLogger) Info(msg string, fields ...contracts.Field) {
	z.logger.Info(msg, unwrap(fields)...)
}

// Error logs a message at the ERROR level.
func (z *ZapLogger) Error(msg string, fields ...contracts.Field) {
	z.logger.Error(msg, unwrap(fields)...)
}

// Debug logs a message at the DEBUG level.
func (z *ZapLogger) Debug(msg string, fields ...contracts.Field) {
	z.logger.Debug(msg, unwrap(fields)...)
}

// Warn logs a message at the WARN level.
func (z *ZapLogger) Warn(msg string, fields ...contracts.Field) {
	z.logger.Warn(msg, unwrap(fields)...)
}

// Field returns a new field builder.
func (z *ZapLogger) Field() contracts.Field {
	return zapField{f: zap.Skip()}
}

// SetLevel sets the logging level.
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	switch level {
	case contracts.DebugLevel:
		z.level.SetLevel(zapcore.DebugLevel)
	case contracts.WarnLevel:
		z.level.SetLevel(zapcore.WarnLevel)
	case contracts.ErrorLevel:
		z.level.SetLevel(zapcore.ErrorLevel)
	default:
		z.level.SetLevel(zapcore.InfoLevel)
	}
}

// unwrap converts contract fields into zap fields.
func unwrap(fields []contracts.Field) []zap.Field {
	zfs := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if zf, ok := field.(zapField); ok {
			zfs = append(zfs, zf.f)
		}
	}
	return zfs
}

// zapField implements contracts.Field by wrapping a single zap.Field.
type zapField struct {
	f zap.Field
}

func (zapField) Bool(key string, val bool) contracts.Field {
	return zapField{f: zap.Bool(key, val)}
}

func (zapField) Int(key string, val int) contracts.Field {
	return zapField{f: zap.Int(key, val)}
}

func (zapField) String(key string, val string) contracts.Field {
	return zapField{f: zap.String(key, val)}
}

func (zapField) Error(key string, val error) contracts.Field {
	return zapField{f: zap.NamedError(key, val)}
}

func (zapField) Uint8(key string, val uint8) contracts.Field {
	return zapField{f: zap.Uint8(key, val)}
}
