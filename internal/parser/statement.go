// Package parser provides the statement input model, the parser strategy
// interface and the base parser shared by all format implementations.
package parser

import (
	"path/filepath"
	"strings"

	"concilia/extrato-match/internal/textutils"
)

// Statement is the raw input of one reconciliation run: either decoded text or
// an opaque binary buffer, plus the original file name used for extension
// hinting and an uploader identity kept for provenance only.
type Statement struct {
	Data       []byte
	FileName   string
	UploadedBy string
}

// NewStatement wraps raw content into a Statement.
func NewStatement(data []byte, fileName, uploadedBy string) *Statement {
	return &Statement{Data: data, FileName: fileName, UploadedBy: uploadedBy}
}

// NewTextStatement wraps already-decoded text into a Statement.
func NewTextStatement(text, fileName, uploadedBy string) *Statement {
	return NewStatement([]byte(text), fileName, uploadedBy)
}

// Text returns the content decoded as text.
func (s *Statement) Text() string {
	return string(s.Data)
}

// IsText reports whether the content looks like decoded text rather than a
// binary buffer.
func (s *Statement) IsText() bool {
	return textutils.IsText(s.Data)
}

// Ext returns the lowercased file extension without the dot ("pdf", "ret",
// "txt"), or "" when the file name has none.
func (s *Statement) Ext() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(s.FileName)), ".")
}
