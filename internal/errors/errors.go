// Package errors provides error formatting utilities for the interpreter
// front end. It formats parse errors with source context, line/column
// information, and a caret pointing at the error location.
package errors

import (
	"fmt"
	"strings"

	"github.com/escript/escript/internal/lexer"
)

// SourceError represents a single positioned error with source context.
type SourceError struct {
	Message string
	Source  string
	File    string
	Pos     lexer.Position
}

// NewSourceError creates a new source error.
func NewSourceError(pos lexer.Position, message, source, file string) *SourceError {
	return &SourceError{
		Pos:     pos,
		Message: message,
		Source:  source,
		File:    file,
	}
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return e.Format(false)
}

// Format formats the error message with source context.
// If color is true, ANSI color codes are used for terminal output.
func (e *SourceError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column))
	}

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		caretCol := e.Pos.Column
		if caretCol < 1 {
			caretCol = 1
		}
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+caretCol-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// getSourceLine extracts a specific line from the source code.
// Lines are 1-indexed.
func (e *SourceError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[lineNum-1], "\r")
}
