package translate

import "fmt"

// FormatError reports a structural problem in the coverage XML or in source
// text it references, with enough context to locate the offending line.
type FormatError struct {
	File string
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%q:%d: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("%q: %s", e.File, e.Msg)
}

func formatErrorf(file string, line int, format string, args ...interface{}) *FormatError {
	return &FormatError{File: file, Line: line, Msg: fmt.Sprintf(format, args...)}
}
