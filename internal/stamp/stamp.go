// Package stamp appends per-file version identifiers to a finished
// tracefile by driving the external lcov tool.
package stamp

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/covtools/xml2lcov/internal/exec"
	"github.com/covtools/xml2lcov/internal/logging"
)

// Stamper runs the version-stamping invocation. It must only be applied
// after the tracefile has been closed and flushed, since the external tool
// re-opens and rewrites it in place.
type Stamper struct {
	exec exec.Executor
	log  *log.Entry
}

// New creates a Stamper using the given executor.
func New(executor exec.Executor) *Stamper {
	return &Stamper{
		exec: executor,
		log:  logging.Component("stamp"),
	}
}

// Apply re-opens the tracefile through lcov and stamps a VER record per file
// using the configured version script, optionally adding checksums. An empty
// script is a no-op. Perl-module scripts (".pm") cannot be run from here and
// are ignored with a warning.
func (s *Stamper) Apply(output, versionScript string, checksum bool) error {
	if versionScript == "" {
		return nil
	}
	if strings.HasSuffix(strings.Split(versionScript, ",")[0], ".pm") {
		s.log.Warnf("perl module version scripts are not supported, ignoring %q", versionScript)
		return nil
	}

	checksumFlag := ""
	if checksum {
		checksumFlag = "--checksum "
	}
	cmd := fmt.Sprintf("lcov -a %s -o %s --version-script '%s' %s--rc compute_file_version=1",
		output, output, versionScript, checksumFlag)

	result, err := s.exec.RunShell(cmd)
	if err != nil {
		return fmt.Errorf("lcov version append failed: %w", err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("lcov version append exited %d: %s",
			result.ExitCode, strings.TrimSpace(result.Stderr))
	}
	return nil
}
