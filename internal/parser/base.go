package parser

import (
	"concilia/extrato-match/internal/logging"
)

// BaseParser provides common functionality for all parser implementations.
// Parsers embed BaseParser to inherit logger wiring:
//
//	type MyParser struct {
//		parser.BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser creates a BaseParser with the provided logger. A nil logger
// falls back to the process-wide default.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return BaseParser{logger: logger}
}

// SetLogger replaces the parser's logger. Nil is ignored.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// Logger returns the current logger instance.
func (b *BaseParser) Logger() logging.Logger {
	return b.logger
}
