package model

import (
	"context"
)

type recursiveTimetabler struct {
	options Options
}

func NewRecursiveTimetabler(options Options) Timetabler {
	return &recursiveTimetabler{
		options: options,
	}
}

func (timetabler *recursiveTimetabler) Generate(ctx context.Context, groups []CourseGroup, filter Filter) ([]Timetable, error) {
	//** Preprocess input
	state, err := newSearchState(groups, filter, timetabler.options)
	if err != nil {
		return nil, err
	}

	//** Search
	results := make([]Timetable, 0)
	if _, err := timetabler.search(ctx, state, state.root(), &results); err != nil {
		return nil, err
	}
	return results, nil
}

// search explores every extension of the node, appending accepted timetables to results.
// It returns true once the result limit has been reached.
func (timetabler *recursiveTimetabler) search(ctx context.Context, state *searchState, node partial, results *[]Timetable) (bool, error) {
	if state.complete(node) {
		var done bool
		*results, done = state.accept(node, *results)
		return done, nil
	}

	for _, next := range state.groups[node.depth] {
		if ctx.Err() != nil {
			return false, ErrCancelled
		}

		child, ok := state.expand(node, next)
		if !ok {
			continue
		}

		done, err := timetabler.search(ctx, state, child, results)
		if err != nil || done {
			return done, err
		}
	}

	return false, nil
}

func (timetabler *recursiveTimetabler) Verify(timetables []Timetable, groups []CourseGroup, filter Filter) bool {
	return verify(timetables, groups, filter)
}
