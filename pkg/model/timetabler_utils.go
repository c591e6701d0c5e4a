package model

import (
	"fmt"
	"log"
	"strings"

	"github.com/samber/lo"
)

// candidate is an admissible offering together with its precomputed occupancy
type candidate struct {
	offering CourseOffering
	masks    occupancy
}

// partial is a node of the search tree: a conflict-free timetable built from the first depth groups
type partial struct {
	timetable Timetable
	masks     occupancy
	depth     int
}

type searchState struct {
	groups    [][]candidate
	evaluator predicateEvaluator
	indexed   bool // Whether every candidate fits the occupancy masks
	options   Options
}

func newSearchState(groups []CourseGroup, filter Filter, options Options) (*searchState, error) {
	if err := validate(groups, filter); err != nil {
		return nil, err
	}

	//** Initialize dependencies
	evaluator := newPredicateEvaluator(filter)
	indexer := newIndexer()

	state := searchState{
		groups:    make([][]candidate, len(groups)),
		evaluator: evaluator,
		indexed:   true,
		options:   options,
	}

	//** Prepare candidates
	for i, group := range groups {
		state.groups[i] = make([]candidate, 0, len(group))
		for _, offering := range group {
			// The lecturer rule does not depend on the partial timetable, so it is checked once here
			if !evaluator.Admissible(offering) {
				continue
			}
			masks, ok := indexer.Occupancy(offering)
			if !ok {
				state.indexed = false
			}
			state.groups[i] = append(state.groups[i], candidate{offering: offering, masks: masks})
		}
	}

	return &state, nil
}

func (state *searchState) root() partial {
	return partial{timetable: EmptyTimetable()}
}

func (state *searchState) complete(node partial) bool {
	return node.depth == len(state.groups)
}

// expand places the candidate on the node's timetable, returning false if it conflicts or
// makes the day-off rule unreachable
func (state *searchState) expand(node partial, next candidate) (partial, bool) {
	if state.indexed {
		if node.masks.intersects(next.masks) {
			return partial{}, false
		}
	} else if conflicts(node.timetable, next.offering) {
		return partial{}, false
	}

	timetable, ok := Place(node.timetable, next.offering)
	if !ok {
		log.Panicf("offering \"%v\" (%v) was checked for conflicts but could not be placed", next.offering.Name, next.offering.Class)
	}

	child := partial{
		timetable: timetable,
		masks:     node.masks.union(next.masks),
		depth:     node.depth + 1,
	}
	if !state.evaluator.Extensible(child.timetable) {
		return partial{}, false
	}
	return child, true
}

// accept reports whether the complete node is a result and whether the result limit has been reached
func (state *searchState) accept(node partial, results []Timetable) ([]Timetable, bool) {
	if state.evaluator.Accepts(node.timetable) {
		results = append(results, node.timetable)
	}
	return results, state.options.MaxResults > 0 && len(results) >= state.options.MaxResults
}

func validate(groups []CourseGroup, filter Filter) error {
	owners := make(map[string]int) // Group index owning each course name
	for i, group := range groups {
		offerings := make(map[string]bool) // Offering identities within the group
		for _, offering := range group {
			name := offering.Name
			key := offeringKey(offering.Id, name, offering.Class)
			if offerings[key] {
				return fmt.Errorf("%w: offering \"%v\" (%v) appears twice in group %d", ErrInvalidInput, name, offering.Class, i)
			}
			offerings[key] = true

			if owner, ok := owners[name]; ok && owner != i {
				return fmt.Errorf("%w: course \"%v\" appears in groups %d and %d", ErrInvalidInput, name, owner, i)
			}
			owners[name] = i

			if len(offering.Lessons) == 0 {
				return fmt.Errorf("%w: offering \"%v\" (%v) has no lessons", ErrInvalidInput, name, offering.Class)
			}
			for j, lesson := range offering.Lessons {
				if err := validateLesson(lesson); err != nil {
					return fmt.Errorf("%w: lesson %d of offering \"%v\" (%v) %v", ErrInvalidInput, j, name, offering.Class, err)
				}
			}
		}
	}

	if filter.DayOff != nil {
		if filter.DayOff.Days < 0 {
			return fmt.Errorf("%w: minimum days off must not be negative: %d", ErrInvalidInput, filter.DayOff.Days)
		}
		if lo.SomeBy(filter.DayOff.SpecificDays, func(day Day) bool { return !day.Valid() }) {
			return fmt.Errorf("%w: specific days off contain an unknown day", ErrInvalidInput)
		}
	}
	return nil
}

type lessonError string

func (err lessonError) Error() string {
	return string(err)
}

func validateLesson(lesson Lesson) error {
	switch {
	case !lesson.Day.Valid():
		return lessonError("has an unknown day")
	case lesson.Start < 1:
		return lessonError(fmt.Sprintf("starts at non-positive period %d", lesson.Start))
	case lesson.Duration < 1:
		return lessonError(fmt.Sprintf("has non-positive duration %d", lesson.Duration))
	case len(lo.Compact(lo.Map(lesson.Lecturers, func(name string, _ int) string { return strings.TrimSpace(name) }))) == 0:
		return lessonError("has no lecturers")
	}
	return nil
}

func verify(timetables []Timetable, groups []CourseGroup, filter Filter) bool {
	evaluator := newPredicateEvaluator(filter)

	for _, timetable := range timetables {
		//** Check day sequences are sorted and disjoint
		for _, lessons := range timetable.Days {
			for i := range lessons {
				if i > 0 && lessons[i-1].Start > lessons[i].Start {
					return false
				}
				for j := i + 1; j < len(lessons); j++ {
					if Overlaps(lessons[i].Lesson, lessons[j].Lesson) {
						return false
					}
				}
			}
		}

		//** Check exactly one offering per group is present
		placedLessons := make(map[string]int)
		for _, lessons := range timetable.Days {
			for _, lesson := range lessons {
				placedLessons[offeringKey(lesson.CourseId, lesson.CourseName, lesson.Class)]++
			}
		}
		for _, group := range groups {
			chosen := lo.CountBy(group, func(offering CourseOffering) bool {
				count, ok := placedLessons[offeringKey(offering.Id, offering.Name, offering.Class)]
				return ok && count == len(offering.Lessons)
			})
			if chosen != 1 {
				return false
			}
		}
		if len(placedLessons) != len(groups) {
			return false
		}

		//** Check filter
		if !evaluator.Accepts(timetable) {
			return false
		}
	}
	return true
}

func offeringKey(id, name, class string) string {
	return fmt.Sprintf("%v~%v~%v", id, name, class)
}
