// Package report defines the diagnostic sink the scanner, parser, resolver
// and interpreter write through, replacing the scattered
// fmt.Fprintf(os.Stderr, ...) calls the teacher package used directly.
// The driver owns the single concrete Reporter instance and can inspect it
// afterwards to pick an exit code (spec.md §6, §7).
package report

import (
	"fmt"
	"io"

	"github.com/cmdneo/loxgo/token"
)

// Reporter is the sink every pipeline stage's diagnostics flow through.
type Reporter interface {
	// Static reports a scan/parse/resolve-time error at the given line.
	// where is "" for scanner errors, " at end" for parser errors at EOF,
	// or " at '<lexeme>'" for parser errors elsewhere (spec.md §6).
	Static(line int, where, message string)
	// Runtime reports an interpreter error caused by the given token.
	Runtime(tok token.Token, message string)
	// HadStaticError reports whether Static has been called since the last Reset.
	HadStaticError() bool
	// HadRuntimeError reports whether Runtime has been called since the last Reset.
	HadRuntimeError() bool
	// Reset clears both error flags, used between REPL lines.
	Reset()
}

// Std is the default Reporter, writing to an arbitrary io.Writer (os.Stderr
// in production, a bytes.Buffer in tests) in the exact formats spec.md §6
// requires.
type Std struct {
	W             io.Writer
	staticError   bool
	runtimeError  bool
}

func NewStd(w io.Writer) *Std {
	return &Std{W: w}
}

func (s *Std) Static(line int, where, message string) {
	s.staticError = true
	fmt.Fprintf(s.W, "[line %d] Error%s: %s\n", line, where, message)
}

func (s *Std) Runtime(tok token.Token, message string) {
	s.runtimeError = true
	fmt.Fprintf(s.W, "%s\n[line %d]\n", message, tok.Line)
}

func (s *Std) HadStaticError() bool  { return s.staticError }
func (s *Std) HadRuntimeError() bool { return s.runtimeError }

func (s *Std) Reset() {
	s.staticError = false
	s.runtimeError = false
}

// AtToken formats the parser's " at '<lexeme>'" / " at end" where-clause
// for a given token.
func AtToken(tok token.Token) string {
	if tok.Kind == token.EOF {
		return " at end"
	}
	return " at '" + tok.Lexeme + "'"
}
