package translate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	log "github.com/sirupsen/logrus"
)

// Function is one function coverpoint, either taken from the report's method
// records or derived from source indentation. Hit carries the hit count of
// the function's first executable line.
type Function struct {
	Name  string
	Start int
	End   int
	Hit   int
}

type scopeKind int

const (
	scopeFunction scopeKind = iota
	scopeClass
)

// scopeFrame is one open lexical scope during indentation-based derivation.
// It lives on the deriver's explicit stack until a later line's indentation
// closes it, or until end of file.
type scopeFrame struct {
	kind   scopeKind
	name   string
	indent int
	start  int
	hit    int
	hasHit bool
}

var declRE = regexp.MustCompile(`^(def|class)\s+([^(\s:]+)`)

// deriver reconstructs function extents from source indentation, the only
// structural signal the XML leaves us for dynamically-indented code. One
// instance covers one file; Observe must be called in ascending line order.
type deriver struct {
	file      string
	tabWidth  int
	keepGoing bool
	log       *log.Entry

	stack    []*scopeFrame
	current  *scopeFrame
	prevLine int
	funcs    []Function
}

func newDeriver(file string, tabWidth int, keepGoing bool, logger *log.Entry) *deriver {
	return &deriver{file: file, tabWidth: tabWidth, keepGoing: keepGoing, log: logger}
}

// Observe processes one covered source line. When the line turns out to be
// the first executable line of an unreached function, the declaration line's
// entry in lineHits is overwritten to zero: the XML marks a declaration
// executed when its enclosing scope is compiled, not when the function runs,
// so the body is the trustworthy signal.
func (d *deriver) Observe(lineNo, hits int, source string, lineHits map[int]int) error {
	indent, rest, err := indentWidth(source, d.tabWidth)
	if err != nil {
		if !d.keepGoing {
			return formatErrorf(d.file, lineNo, "%v", err)
		}
		d.log.Warnf("%q:%d: %v, line skipped", d.file, lineNo, err)
		return nil
	}

	for d.current != nil && indent <= d.current.indent {
		d.closeCurrent()
	}

	if kind, name, ok := parseDeclaration(rest); ok {
		if d.current != nil {
			d.stack = append(d.stack, d.current)
		}
		d.current = &scopeFrame{kind: kind, name: name, indent: indent, start: lineNo}
	} else if d.current != nil && !d.current.hasHit {
		d.current.hasHit = true
		d.current.hit = hits
		if hits == 0 {
			lineHits[d.current.start] = 0
		}
	}

	d.prevLine = lineNo
	return nil
}

// Finish closes every scope still open at end of file, innermost first, and
// returns the derived functions in the order their scopes closed.
func (d *deriver) Finish() []Function {
	for d.current != nil {
		d.closeCurrent()
	}
	return d.funcs
}

// closeCurrent finalizes the innermost open frame: its end line is the last
// line observed while it was open. Only function frames become coverpoints;
// class frames exist for name qualification.
func (d *deriver) closeCurrent() {
	frame := d.current
	if d.prevLine < frame.start {
		d.log.Debugf("%q: dropped scope %s with no observed lines", d.file, frame.name)
	} else if frame.kind == scopeFunction {
		d.funcs = append(d.funcs, Function{
			Name:  d.qualify(frame.name),
			Start: frame.start,
			End:   d.prevLine,
			Hit:   frame.hit,
		})
	}

	if n := len(d.stack); n > 0 {
		d.current = d.stack[n-1]
		d.stack = d.stack[:n-1]
	} else {
		d.current = nil
	}
}

// qualify prefixes a name with the enclosing scopes: "::" follows a class
// frame, "." follows a function frame, so nested classes stay distinguishable
// from nested functions.
func (d *deriver) qualify(name string) string {
	var b strings.Builder
	for _, frame := range d.stack {
		b.WriteString(frame.name)
		if frame.kind == scopeClass {
			b.WriteString("::")
		} else {
			b.WriteString(".")
		}
	}
	b.WriteString(name)
	return b.String()
}

// indentWidth measures a line's leading whitespace: spaces count 1, tabs
// count the configured width. Any other whitespace character is a format
// violation.
func indentWidth(line string, tabWidth int) (int, string, error) {
	width := 0
	for i, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += tabWidth
		default:
			if unicode.IsSpace(r) {
				return 0, "", fmt.Errorf("unexpected whitespace %q in indentation", r)
			}
			return width, line[i:], nil
		}
	}
	return width, "", nil
}

// parseDeclaration matches an optional def/class keyword plus identifier at
// the start of an already de-indented line. Parameter lists are ignored; only
// the name up to the first parenthesis, whitespace or colon is kept. A
// signature whose opening parenthesis never closes on this line gets a "...)"
// suffix so a truncated name stays visibly distinct from a clean one.
func parseDeclaration(rest string) (scopeKind, string, bool) {
	m := declRE.FindStringSubmatch(rest)
	if m == nil {
		return 0, "", false
	}
	kind := scopeFunction
	if m[1] == "class" {
		kind = scopeClass
	}
	name := m[2]
	tail := rest[len(m[0]):]
	if open := strings.Index(tail, "("); open >= 0 && !strings.Contains(tail[open:], ")") {
		name += "...)"
	}
	return kind, name, true
}
