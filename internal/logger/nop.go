package logger

import (
	"go.uber.org/zap"

	"github.com/leandrodaf/midikey/sdk/contracts"
)

// NewNopLogger returns a logger that discards everything. Intended for tests
// and for callers that wire their own logging.
func NewNopLogger() contracts.Logger {
	return &ZapLogger{logger: zap.NewNop(), level: zap.NewAtomicLevel()}
}
