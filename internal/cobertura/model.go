// Package cobertura reads coverage reports in the Cobertura coverage-04 XML
// schema, as produced by Cobertura itself or by Coverage.py's xmlreport
// module.
package cobertura

import "encoding/xml"

// Report is the root of a coverage document. Sources and Packages are
// pointers so that a missing section is distinguishable from an empty one.
type Report struct {
	XMLName  xml.Name  `xml:"coverage"`
	Sources  *Sources  `xml:"sources"`
	Packages *Packages `xml:"packages"`
}

// Sources is the ordered list of directories that per-class filenames are
// resolved against.
type Sources struct {
	Paths []string `xml:"source"`
}

// Packages holds the package hierarchy of the report.
type Packages struct {
	Packages []Package `xml:"package"`
}

// Package groups the classes of one module or directory. A name beginning
// with "." (other than "." itself) marks an external module.
type Package struct {
	Name    string  `xml:"name,attr"`
	Classes []Class `xml:"classes>class"`
}

// Class is one covered file: its filename attribute, its line records, and
// optionally explicit per-method records.
type Class struct {
	Name     string   `xml:"name,attr"`
	Filename string   `xml:"filename,attr"`
	Methods  []Method `xml:"methods>method"`
	Lines    []Line   `xml:"lines>line"`
}

// Method is an explicit function record supplied by the XML producer.
type Method struct {
	Name  string `xml:"name,attr"`
	Lines []Line `xml:"lines>line"`
}

// Line carries the hit count for one source line and, for branching lines,
// the aggregate condition coverage ("NN% (taken/total)").
type Line struct {
	Number            int    `xml:"number,attr"`
	Hits              int    `xml:"hits,attr"`
	Branch            string `xml:"branch,attr"`
	ConditionCoverage string `xml:"condition-coverage,attr"`
}

// IsBranch reports whether the line carries aggregate branch data.
func (l Line) IsBranch() bool {
	return l.Branch == "true"
}

// IsExternal reports whether the package names an external module, whose
// filenames are not resolved against the source search paths.
func (p Package) IsExternal() bool {
	return len(p.Name) > 0 && p.Name[0] == '.' && p.Name != "."
}
