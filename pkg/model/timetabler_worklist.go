package model

import (
	"context"
)

type worklistTimetabler struct {
	options Options
}

// NewWorklistTimetabler returns a timetabler that drives the search with an explicit stack
// instead of recursion. It emits the same timetables in the same order as the recursive one.
func NewWorklistTimetabler(options Options) Timetabler {
	return &worklistTimetabler{
		options: options,
	}
}

func (timetabler *worklistTimetabler) Generate(ctx context.Context, groups []CourseGroup, filter Filter) ([]Timetable, error) {
	//** Preprocess input
	state, err := newSearchState(groups, filter, timetabler.options)
	if err != nil {
		return nil, err
	}

	//** Search
	results := make([]Timetable, 0)
	stack := []partial{state.root()}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if state.complete(node) {
			var done bool
			if results, done = state.accept(node, results); done {
				break
			}
			continue
		}

		// Children are pushed in reverse so the first offering is explored first
		candidates := state.groups[node.depth]
		for i := len(candidates) - 1; i >= 0; i-- {
			if ctx.Err() != nil {
				return nil, ErrCancelled
			}
			if child, ok := state.expand(node, candidates[i]); ok {
				stack = append(stack, child)
			}
		}
	}

	return results, nil
}

func (timetabler *worklistTimetabler) Verify(timetables []Timetable, groups []CourseGroup, filter Filter) bool {
	return verify(timetables, groups, filter)
}
