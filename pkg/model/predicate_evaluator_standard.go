package model

import (
	"github.com/samber/lo"
)

type lecturerSets struct {
	expected   map[string]bool
	unexpected map[string]bool
}

type predicateEvaluatorStandard struct {
	minimumDaysOff int
	requiredOff    []Day
	lecturers      map[string]lecturerSets // Normalized lecturer rules per course name
}

func newPredicateEvaluatorStandard(filter Filter) *predicateEvaluatorStandard {
	evaluator := predicateEvaluatorStandard{
		lecturers: make(map[string]lecturerSets),
	}

	if filter.DayOff != nil {
		evaluator.minimumDaysOff = filter.DayOff.Days
		evaluator.requiredOff = lo.Uniq(filter.DayOff.SpecificDays)
	}

	normalize := func(names []string) map[string]bool {
		set := make(map[string]bool)
		for _, name := range names {
			if name = LecturerName(name); name != "" {
				set[name] = true
			}
		}
		return set
	}

	for course, rule := range filter.Lecturers {
		sets := lecturerSets{
			expected:   normalize(rule.Expectations),
			unexpected: normalize(rule.Unexpectations),
		}
		// A rule without names on either side imposes nothing
		if len(sets.expected) == 0 && len(sets.unexpected) == 0 {
			continue
		}
		evaluator.lecturers[course] = sets
	}

	return &evaluator
}

func (evaluator *predicateEvaluatorStandard) Admissible(offering CourseOffering) bool {
	sets, ok := evaluator.lecturers[offering.Name]
	if !ok {
		return true
	}
	return lo.EveryBy(offering.Lessons, func(lesson Lesson) bool {
		return sets.satisfiedBy(lesson)
	})
}

func (evaluator *predicateEvaluatorStandard) Extensible(timetable Timetable) bool {
	// Placing lessons never frees a day, so a violated day-off rule stays violated
	return evaluator.daysOffSatisfied(timetable)
}

func (evaluator *predicateEvaluatorStandard) Accepts(timetable Timetable) bool {
	if !evaluator.daysOffSatisfied(timetable) {
		return false
	}

	for _, lessons := range timetable.Days {
		for _, lesson := range lessons {
			if sets, ok := evaluator.lecturers[lesson.CourseName]; ok && !sets.satisfiedBy(lesson.Lesson) {
				return false
			}
		}
	}
	return true
}

func (evaluator *predicateEvaluatorStandard) daysOffSatisfied(timetable Timetable) bool {
	if timetable.DaysOff() < evaluator.minimumDaysOff {
		return false
	}
	return lo.EveryBy(evaluator.requiredOff, func(day Day) bool {
		return !day.Valid() || len(timetable.Days[day]) == 0
	})
}

func (sets lecturerSets) satisfiedBy(lesson Lesson) bool {
	names := lo.Map(lesson.Lecturers, func(name string, _ int) string { return LecturerName(name) })

	if len(sets.expected) > 0 && !lo.SomeBy(names, func(name string) bool { return sets.expected[name] }) {
		return false
	}
	if len(sets.unexpected) > 0 && lo.SomeBy(names, func(name string) bool { return sets.unexpected[name] }) {
		return false
	}
	return true
}
