// Package validation checks Silver and Gold data against the record
// contracts and scores Silver data quality. It runs after processing
// and export: the pipeline stages validate what they write, this
// package validates what is on disk.
package validation

// Severity classifies a validation finding.
type Severity string

// Finding severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one validation issue in a dataset.
type Finding struct {
	// Field names the offending field, or "record" for shape issues.
	Field string `json:"field"`

	// Message describes the problem.
	Message string `json:"message"`

	// Severity is error or warning.
	Severity Severity `json:"severity"`

	// Record is the index of the offending record, -1 for dataset-level
	// findings.
	Record int `json:"record"`
}

// Result collects the findings for one validated file.
type Result struct {
	// File is the validated file, relative to its tier directory.
	File string `json:"file"`

	// Records is how many records were checked.
	Records int `json:"records"`

	Findings []Finding `json:"findings,omitempty"`
}

// AddError records an error finding for a record index.
func (r *Result) AddError(record int, field, message string) {
	r.Findings = append(r.Findings, Finding{
		Field: field, Message: message, Severity: SeverityError, Record: record,
	})
}

// AddWarning records a warning finding for a record index.
func (r *Result) AddWarning(record int, field, message string) {
	r.Findings = append(r.Findings, Finding{
		Field: field, Message: message, Severity: SeverityWarning, Record: record,
	})
}

// Errors counts error-severity findings.
func (r *Result) Errors() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			n++
		}
	}
	return n
}

// OK reports whether the file passed without errors. Warnings do not
// fail validation.
func (r *Result) OK() bool {
	return r.Errors() == 0
}

// Report is the outcome of validating one data tier.
type Report struct {
	// Tier is "silver" or "gold".
	Tier string `json:"tier"`

	Results []Result `json:"results"`
}

// OK reports whether every file passed.
func (r *Report) OK() bool {
	for i := range r.Results {
		if !r.Results[i].OK() {
			return false
		}
	}
	return true
}

// TotalErrors sums error findings across all files.
func (r *Report) TotalErrors() int {
	n := 0
	for i := range r.Results {
		n += r.Results[i].Errors()
	}
	return n
}
