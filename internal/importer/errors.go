package importer

import "fmt"

// ParseError reports a CSV blob that could not be turned into transactions:
// malformed CSV structure or an uninterpretable date. Nothing from the batch
// is persisted.
type ParseError struct {
	Row    int    // 1-based record number counting the header, 0 if not row-specific
	Column string // canonical column, if any
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("parse error: row %d: %s %q: %v", e.Row, e.Column, e.Value, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("parse error: row %d: %v", e.Row, e.Err)
	case e.Column != "":
		return fmt.Sprintf("parse error: %s: %v", e.Column, e.Err)
	default:
		return fmt.Sprintf("parse error: %v", e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// PersistenceError reports a storage failure during ingestion. The batch was
// rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
