// Package translate drives the conversion of Cobertura-style XML coverage
// data into an LCOV tracefile.
package translate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	log "github.com/sirupsen/logrus"

	"github.com/covtools/xml2lcov/internal/cobertura"
	"github.com/covtools/xml2lcov/internal/config"
	"github.com/covtools/xml2lcov/internal/lcov"
	"github.com/covtools/xml2lcov/internal/logging"
)

// SourcePath is one entry of the report's source search list, with a usage
// count kept for end-of-run diagnostics. A path that resolved nothing is
// likely a misconfigured report.
type SourcePath struct {
	Dir  string
	Uses int
}

// ReportTranslator walks a whole coverage report and emits one LCOV block
// per included file. Files are translated strictly in sequence; the only
// state that outlives a file is the output stream and the source-path usage
// counters.
type ReportTranslator struct {
	cfg      *config.Config
	out      *lcov.Writer
	log      *log.Entry
	excludes []glob.Glob
	sources  []*SourcePath
}

// NewReportTranslator creates a translator writing LCOV records to out.
// Exclusion patterns are compiled up front; a malformed pattern is a
// configuration error.
func NewReportTranslator(cfg *config.Config, out io.Writer) (*ReportTranslator, error) {
	t := &ReportTranslator{
		cfg: cfg,
		out: lcov.NewWriter(out),
		log: logging.Component("translate"),
	}
	for _, pattern := range cfg.ExcludeList() {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", pattern, err)
		}
		t.excludes = append(t.excludes, g)
	}
	return t, nil
}

// Run translates the report in xmlPath to the output stream.
func (t *ReportTranslator) Run(xmlPath string) error {
	t.out.TestName(t.cfg.TestName)

	report, err := cobertura.Parse(xmlPath)
	if err != nil {
		if t.cfg.KeepGoing {
			t.log.Warnf("skipping %s: %v", xmlPath, err)
			return t.out.Flush()
		}
		return err
	}

	for _, dir := range report.Sources.Paths {
		t.sources = append(t.sources, &SourcePath{Dir: dir})
		t.log.Debugf("source: %s", dir)
	}

	for _, pkg := range report.Packages.Packages {
		external := pkg.IsExternal()
		for _, class := range pkg.Classes {
			if t.excluded(class.Filename) {
				t.log.Debugf("%s is excluded", class.Filename)
				continue
			}

			path := class.Filename
			if !external {
				path = t.resolve(class.Filename)
			}

			block, err := newFileTranslator(t.cfg, t.log).translate(class, path)
			if err != nil {
				return err
			}
			t.out.Raw(block)
			t.out.EndOfRecord()
		}
	}

	for _, s := range t.sources {
		if s.Uses == 0 {
			t.log.Warnf("XML file %q: source path %q is unused", xmlPath, s.Dir)
		}
	}

	return t.out.Flush()
}

func (t *ReportTranslator) excluded(filename string) bool {
	for _, g := range t.excludes {
		if g.Match(filename) {
			return true
		}
	}
	return false
}

// resolve joins the filename with each source path in order and returns the
// first combination that exists on disk, counting the path as used. A
// filename found under no path is reported but translated as-is.
func (t *ReportTranslator) resolve(filename string) string {
	for _, s := range t.sources {
		path := filepath.Join(s.Dir, filename)
		if _, err := os.Stat(path); err == nil {
			s.Uses++
			return path
		}
	}
	t.log.Warnf("did not find %s in search path", filename)
	return filename
}
