package translate

import (
	"regexp"
	"strconv"
)

// Branch is one reconstructed branch coverpoint. The XML carries only an
// aggregate taken/total pair per line, so Block is always 0 and Taken is
// assigned by position: indices 0..taken-1 are marked taken, the rest not.
// This ordering is the documented lower-bound approximation; merged results
// never overstate coverage.
type Branch struct {
	Line  int
	Block int
	Index int
	Taken int
}

var conditionRE = regexp.MustCompile(`\d+% \((\d+)/(\d+)\)`)

// parseConditionCoverage extracts the (taken, total) pair from a
// condition-coverage attribute such as "50% (2/4)".
func parseConditionCoverage(s string) (taken, total int, err error) {
	m := conditionRE.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, &FormatError{Msg: "unparseable condition-coverage " + strconv.Quote(s)}
	}
	if taken, err = strconv.Atoi(m[1]); err != nil {
		return 0, 0, &FormatError{Msg: "unparseable condition-coverage " + strconv.Quote(s)}
	}
	if total, err = strconv.Atoi(m[2]); err != nil {
		return 0, 0, &FormatError{Msg: "unparseable condition-coverage " + strconv.Quote(s)}
	}
	return taken, total, nil
}

// reconstructBranches enumerates the per-branch records for one line, taken
// indices first.
func reconstructBranches(line, taken, total int) []Branch {
	branches := make([]Branch, 0, total)
	for i := 0; i < taken; i++ {
		branches = append(branches, Branch{Line: line, Index: i, Taken: 1})
	}
	for i := taken; i < total; i++ {
		branches = append(branches, Branch{Line: line, Index: i})
	}
	return branches
}
