package models

import (
	"strings"
	"time"
)

// ExamMetadata identifies one saved exam and locates its score table.
// Records are immutable once saved; this service only reads them.
type ExamMetadata struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	ClassName string    `db:"class_name" json:"class_name"`
	Year      int       `db:"year" json:"year"`
	Term      string    `db:"term" json:"term"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Kind derives the exam kind from the exam name: the part before the first
// dash delimiter, e.g. "Midterm - Form 2" yields "Midterm".
func (e ExamMetadata) Kind() string {
	name := e.Name
	for _, delim := range []string{" - ", "-"} {
		if idx := strings.Index(name, delim); idx > 0 {
			return strings.TrimSpace(name[:idx])
		}
	}
	return strings.TrimSpace(name)
}

// ExamView is the API representation including the derived kind.
type ExamView struct {
	ExamMetadata
	Kind string `json:"kind"`
}

// ViewOf builds the API view for an exam.
func ViewOf(e ExamMetadata) ExamView {
	return ExamView{ExamMetadata: e, Kind: e.Kind()}
}
