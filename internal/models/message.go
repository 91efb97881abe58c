package models

// UnmatchedReason explains why a score row could not be prepared for sending.
type UnmatchedReason string

const (
	ReasonMissingPhone UnmatchedReason = "missing_phone"
	ReasonMissingTotal UnmatchedReason = "missing_total"
)

// PreparedMessage is one recipient ready for dispatch. Total is always a
// real number here; rows without a trustworthy total become UnmatchedRecords.
type PreparedMessage struct {
	Phone       string  `json:"phone"`
	Message     string  `json:"message"`
	StudentName string  `json:"student_name"`
	ExamID      string  `json:"exam_id"`
	ExamName    string  `json:"exam_name"`
	Total       float64 `json:"total"`
	ClassRank   *int    `json:"class_rank,omitempty"`
	ClassSize   int     `json:"class_size,omitempty"`
	OverallRank *int    `json:"overall_rank,omitempty"`
	OverallSize int     `json:"overall_size,omitempty"`
	ParentName  string  `json:"parent_name,omitempty"`
}

// UnmatchedRecord is a recipient that could not be prepared, kept so the
// operator can see who was skipped and why.
type UnmatchedRecord struct {
	ExamID      string          `json:"exam_id"`
	ExamName    string          `json:"exam_name"`
	StudentName string          `json:"student_name"`
	Reason      UnmatchedReason `json:"reason"`
}

// PrepareDiagnostics aggregates counters across all exams of one
// preparation run.
type PrepareDiagnostics struct {
	RowsScanned     int `json:"rows_scanned"`
	RowsWithTotal   int `json:"rows_with_total"`
	RowsDropped     int `json:"rows_dropped_no_total"`
	MergedRows      int `json:"merged_rows"`
	MergedWithPhone int `json:"merged_with_phone"`
	MissingPhone    int `json:"missing_phone"`
	Prepared        int `json:"prepared"`
}

// PrepareResult is the outcome of one preparation run. It is ephemeral
// session state: recomputed on every run, never persisted.
type PrepareResult struct {
	Prepared    []PreparedMessage  `json:"prepared"`
	Unmatched   []UnmatchedRecord  `json:"unmatched"`
	Diagnostics PrepareDiagnostics `json:"diagnostics"`
}
