// Package replio provides the REPL's interactive line source: history-aware
// editing via github.com/peterh/liner, built the way
// daios-ai-msg/cmd/msg/main.go's cmdRepl wires up *liner.State (prompt,
// history file, Ctrl-C aborts), generalized into a small Source type the
// driver can loop over instead of a bespoke cmdRepl function.
package replio

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const historyFileName = ".loxgo_history"

// Source reads one Lox statement at a time from an interactive terminal,
// with line-editing and persistent history across sessions.
type Source struct {
	ln       *liner.State
	histPath string
	prompt   string
}

// New opens a Source prompting with prompt and loads history from the
// user's home directory, if any.
func New(prompt string) *Source {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)

	s := &Source{ln: ln, prompt: prompt}
	if home, err := os.UserHomeDir(); err == nil {
		s.histPath = filepath.Join(home, historyFileName)
		if f, err := os.Open(s.histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
	}
	return s
}

// Close persists history and releases the terminal.
func (s *Source) Close() {
	if s.histPath != "" {
		if f, err := os.Create(s.histPath); err == nil {
			s.ln.WriteHistory(f)
			f.Close()
		}
	}
	s.ln.Close()
}

// Next reads one line. ok is false on EOF (Ctrl-D) or the "exit" sentinel
// (spec.md §6), at which point the REPL loop should stop. Blank lines are
// returned with skip=true so the caller can re-prompt without feeding an
// empty program through the pipeline.
func (s *Source) Next() (line string, ok, skip bool) {
	raw, err := s.ln.Prompt(s.prompt)
	if errors.Is(err, io.EOF) {
		return "", false, false
	}
	if err != nil {
		return "", false, false
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "exit" {
		return "", false, false
	}
	if trimmed == "" {
		return "", true, true
	}

	s.ln.AppendHistory(raw)
	return raw, true, false
}
