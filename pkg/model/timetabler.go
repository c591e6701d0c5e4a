package model

import (
	"context"
	"errors"
)

var (
	// ErrInvalidInput is wrapped by every error reporting malformed course groups or filters
	ErrInvalidInput = errors.New("invalid input")
	// ErrCancelled is returned when the context ends before the search completes; no partial results are returned
	ErrCancelled = errors.New("timetable generation cancelled")
)

type Timetabler interface {
	// Generate enumerates every conflict-free timetable holding exactly one offering of each group
	// and satisfying the filter. Timetables are emitted in lexicographic order of the chosen
	// offerings' indices, the first group being the most significant.
	Generate(
		ctx context.Context,
		groups []CourseGroup,
		filter Filter,
	) ([]Timetable, error)

	Verify(
		timetables []Timetable,
		groups []CourseGroup,
		filter Filter,
	) bool
}

type Options struct {
	// Stop after this many accepted timetables; zero means no limit
	MaxResults int
}

// Timetablers maps strategy names to constructors
var Timetablers = map[string]func(Options) Timetabler{
	"recursive": NewRecursiveTimetabler,
	"worklist":  NewWorklistTimetabler,
}
