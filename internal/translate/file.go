package translate

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/covtools/xml2lcov/internal/cobertura"
	"github.com/covtools/xml2lcov/internal/config"
	"github.com/covtools/xml2lcov/internal/lcov"
)

// counter is one (found, hit) totals pair.
type counter struct {
	found int
	hit   int
}

// fileTranslator produces the LCOV block for a single covered file. All of
// its state is created fresh per file and discarded afterwards. The block is
// assembled in memory and only handed back on success, so a file that cannot
// be translated never leaves a truncated block behind.
type fileTranslator struct {
	cfg *config.Config
	log *log.Entry

	file   string
	source []string // nil when source text is unavailable

	lineHits  map[int]int
	branches  map[int][]Branch
	functions []Function

	lineTotals   counter
	branchTotals counter
	funcTotals   counter
}

func newFileTranslator(cfg *config.Config, logger *log.Entry) *fileTranslator {
	return &fileTranslator{
		cfg:      cfg,
		log:      logger,
		lineHits: make(map[int]int),
		branches: make(map[int][]Branch),
	}
}

// fail demotes an error to a warning under the keep-going policy.
func (t *fileTranslator) fail(err error) error {
	if t.cfg.KeepGoing {
		t.log.Warn(err)
		return nil
	}
	return err
}

// translate builds the complete LCOV block for one class node and its
// resolved on-disk path.
func (t *fileTranslator) translate(class cobertura.Class, path string) ([]byte, error) {
	t.file = path

	if err := t.loadSource(); err != nil {
		return nil, err
	}

	haveMethods := t.translateMethods(class.Methods)

	deriving := !haveMethods && t.cfg.Python && t.cfg.DeriveFunctions && t.source != nil
	var d *deriver
	if deriving {
		d = newDeriver(t.file, t.cfg.TabWidth, t.cfg.KeepGoing, t.log)
	}

	for _, line := range class.Lines {
		t.lineHits[line.Number] = line.Hits

		if deriving {
			if line.Number <= len(t.source) {
				if err := d.Observe(line.Number, line.Hits, t.source[line.Number-1], t.lineHits); err != nil {
					return nil, err
				}
			} else {
				err := formatErrorf(t.file, line.Number, "out of range: file contains %d lines", len(t.source))
				if err := t.fail(err); err != nil {
					return nil, err
				}
			}
		}

		if line.IsBranch() {
			if err := t.translateBranches(line); err != nil {
				return nil, err
			}
		}
	}

	if deriving {
		t.functions = append(t.functions, d.Finish()...)
	}

	return t.emit()
}

// loadSource reads the file's source text when checksums or indentation
// derivation need it. Under keep-going a load failure only disables those
// features for this file.
func (t *fileTranslator) loadSource() error {
	needDerive := t.cfg.Python && t.cfg.DeriveFunctions
	if !t.cfg.Checksum && !needDerive {
		return nil
	}

	data, err := os.ReadFile(t.file)
	if err != nil {
		var features []string
		if t.cfg.Checksum {
			features = append(features, "compute line checksums")
		}
		if needDerive {
			features = append(features, "derive function data")
		}
		return t.fail(fmt.Errorf("cannot open %s, unable to %s: %w",
			t.file, strings.Join(features, " or "), err))
	}
	t.source = strings.Split(string(data), "\n")
	return nil
}

// translateMethods converts explicit method records into function
// coverpoints, suppressing indentation heuristics when any method carries
// line data. A method's hit status is its first line's hit count.
func (t *fileTranslator) translateMethods(methods []cobertura.Method) bool {
	haveData := false
	for _, m := range methods {
		if len(m.Lines) == 0 {
			t.log.Debugf("elided empty function %s", m.Name)
			continue
		}
		haveData = true
		t.functions = append(t.functions, Function{
			Name:  m.Name,
			Start: m.Lines[0].Number,
			End:   m.Lines[len(m.Lines)-1].Number,
			Hit:   m.Lines[0].Hits,
		})
	}
	return haveData
}

func (t *fileTranslator) translateBranches(line cobertura.Line) error {
	taken, total, err := parseConditionCoverage(line.ConditionCoverage)
	if err != nil {
		if ferr, ok := err.(*FormatError); ok {
			ferr.File = t.file
			ferr.Line = line.Number
		}
		return t.fail(err)
	}
	t.branches[line.Number] = reconstructBranches(line.Number, taken, total)
	t.branchTotals.found += total
	t.branchTotals.hit += taken
	return nil
}

// emit serializes the block: functions in encounter order indexed from zero,
// then DA records in strictly ascending line order with each line's BRDA
// records following it, then the totals pairs. Totals are computed from the
// final line-hit map, after any declaration-line overrides.
func (t *fileTranslator) emit() ([]byte, error) {
	var buf bytes.Buffer
	out := lcov.NewWriter(&buf)

	out.SourceFile(t.file)

	for idx, f := range t.functions {
		out.FunctionLocation(idx, f.Start, f.End)
		out.FunctionActivity(idx, f.Hit, f.Name)
		t.funcTotals.found++
		if f.Hit > 0 {
			t.funcTotals.hit++
		}
	}

	numbers := make([]int, 0, len(t.lineHits))
	for n := range t.lineHits {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	for _, n := range numbers {
		checksum := ""
		if t.cfg.Checksum && t.source != nil {
			if n <= len(t.source) {
				checksum = lcov.LineHash(t.source[n-1])
			} else {
				err := formatErrorf(t.file, n, "unable to compute checksum for missing line")
				if err := t.fail(err); err != nil {
					return nil, err
				}
			}
		}
		out.LineData(n, t.lineHits[n], checksum)
		for _, b := range t.branches[n] {
			out.BranchData(b.Line, b.Block, b.Index, b.Taken)
		}
		t.lineTotals.found++
		if t.lineHits[n] > 0 {
			t.lineTotals.hit++
		}
	}

	pairs := []struct {
		foundTag, hitTag string
		c                counter
	}{
		{"LF", "LH", t.lineTotals},
		{"BRF", "BRH", t.branchTotals},
		{"FNF", "FNH", t.funcTotals},
	}
	for _, p := range pairs {
		if p.c.found == 0 {
			continue
		}
		out.CounterPair(p.foundTag, p.hitTag, p.c.found, p.c.hit)
	}

	if err := out.Flush(); err != nil {
		return nil, fmt.Errorf("failed to serialize block for %s: %w", t.file, err)
	}
	return buf.Bytes(), nil
}
