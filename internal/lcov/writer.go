// Package lcov emits records in the LCOV tracefile format.
package lcov

import (
	"bufio"
	"fmt"
	"io"
)

// Writer emits LCOV records to an underlying stream. Each method maps onto
// one record type; callers are responsible for record ordering. The first
// write error is sticky and surfaces from Flush.
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter creates a Writer on top of the given stream.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) record(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// TestName writes the TN record that opens a tracefile.
func (w *Writer) TestName(name string) {
	w.record("TN:%s\n", name)
}

// SourceFile writes the SF record that opens a per-file block.
func (w *Writer) SourceFile(path string) {
	w.record("SF:%s\n", path)
}

// FunctionLocation writes the FNL record for one function coverpoint.
func (w *Writer) FunctionLocation(index, start, end int) {
	w.record("FNL:%d,%d,%d\n", index, start, end)
}

// FunctionActivity writes the FNA record matching a FunctionLocation.
func (w *Writer) FunctionActivity(index, hit int, name string) {
	w.record("FNA:%d,%d,%s\n", index, hit, name)
}

// LineData writes a DA record, with an optional checksum suffix.
func (w *Writer) LineData(line, hits int, checksum string) {
	if checksum != "" {
		w.record("DA:%d,%d,%s\n", line, hits, checksum)
		return
	}
	w.record("DA:%d,%d\n", line, hits)
}

// BranchData writes a BRDA record for one branch coverpoint.
func (w *Writer) BranchData(line, block, index, taken int) {
	w.record("BRDA:%d,%d,%d,%d\n", line, block, index, taken)
}

// CounterPair writes a found/hit totals pair such as LF/LH.
func (w *Writer) CounterPair(foundTag, hitTag string, found, hit int) {
	w.record("%s:%d\n", foundTag, found)
	w.record("%s:%d\n", hitTag, hit)
}

// Raw copies an already-serialized run of records through unchanged.
func (w *Writer) Raw(records []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(records)
}

// EndOfRecord closes the current per-file block.
func (w *Writer) EndOfRecord() {
	w.record("end_of_record\n")
}

// Flush writes buffered records through and reports any earlier write error.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}
