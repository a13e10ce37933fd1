package cobertura

import (
	"encoding/xml"
	"fmt"
	"os"
)

// Parse reads and validates a Cobertura XML report from disk.
func Parse(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read coverage XML %s: %w", path, err)
	}
	return ParseBytes(path, data)
}

// ParseBytes decodes a report and checks its top-level structure. The schema
// requires both a sources and a packages section; a document missing either
// is rejected here, by name, rather than failing obscurely during traversal.
func ParseBytes(path string, data []byte) (*Report, error) {
	report := &Report{}
	if err := xml.Unmarshal(data, report); err != nil {
		return nil, fmt.Errorf("failed to parse coverage XML %s: %w", path, err)
	}
	if report.Sources == nil {
		return nil, fmt.Errorf("no 'sources' section in %s", path)
	}
	if report.Packages == nil {
		return nil, fmt.Errorf("no 'packages' section in %s", path)
	}
	return report, nil
}
