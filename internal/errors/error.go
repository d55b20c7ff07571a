package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategorySnapshot Category = "snapshot"
	CategoryServer   Category = "server"
	CategoryCLI      Category = "cli"
)

// Location represents a position in a file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// DraglistError is a structured error with location, suggestions and detail.
type DraglistError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (config, cli, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the file position where the error occurred.
	Location *Location

	// Context contains the lines surrounding Location.
	Context []string

	// ContextStart is the line number of Context[0].
	ContextStart int

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example shows the correct approach.
	Example string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *DraglistError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *DraglistError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a DraglistError with the same code.
func (e *DraglistError) Is(target error) bool {
	t, ok := target.(*DraglistError)
	return ok && t.Code != "" && t.Code == e.Code
}

// WithLocation adds a file location and its surrounding lines.
func (e *DraglistError) WithLocation(file string, line, column int) *DraglistError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context, e.ContextStart = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *DraglistError) WithSuggestion(s string) *DraglistError {
	e.Suggestion = s
	return e
}

// WithExample adds an example to the error.
func (e *DraglistError) WithExample(ex string) *DraglistError {
	e.Example = ex
	return e
}

// WithDetail replaces the detailed explanation.
func (e *DraglistError) WithDetail(d string) *DraglistError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *DraglistError) Wrap(err error) *DraglistError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file
// and returns them with the number of the first line.
func readContextLines(filename string, targetLine, contextSize int) ([]string, int) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	if startLine < 1 {
		startLine = 1
	}
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines, startLine
}

// New creates a DraglistError from a registered error code.
func New(code string) *DraglistError {
	template, ok := registry[code]
	if !ok {
		return &DraglistError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &DraglistError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new DraglistError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *DraglistError {
	return &DraglistError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a DraglistError.
func FromError(err error, code string) *DraglistError {
	if err == nil {
		return nil
	}
	var de *DraglistError
	if stderrors.As(err, &de) {
		return de
	}
	return New(code).Wrap(err)
}
