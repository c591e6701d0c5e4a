package model

import (
	"strings"

	"github.com/samber/lo"
)

// DayOffRule requires at least Days empty days and every day in SpecificDays to be empty.
// A zero Days imposes no minimum.
type DayOffRule struct {
	Days         int   `json:"days" mapstructure:"days"`
	SpecificDays []Day `json:"specificDays" mapstructure:"specificDays"`
}

// LecturerRule constrains which lecturers may teach the chosen offering of a course.
// Every lesson must list at least one of the Expectations and none of the Unexpectations.
// An empty side imposes nothing.
type LecturerRule struct {
	Expectations   []string `json:"expectations" mapstructure:"expectations"`
	Unexpectations []string `json:"unexpectations" mapstructure:"unexpectations"`
}

type Filter struct {
	DayOff    *DayOffRule             `json:"dayOff,omitempty" mapstructure:"dayOff"`
	Lecturers map[string]LecturerRule `json:"lecturer,omitempty" mapstructure:"lecturer"`
}

// Lecturer returns the rule registered for the course name, if any
func (filter Filter) Lecturer(course string) (LecturerRule, bool) {
	rule, ok := filter.Lecturers[course]
	return rule, ok
}

// Admits checks the lecturer rule of the offering's course against the offering alone
func (filter Filter) Admits(offering CourseOffering) bool {
	return newPredicateEvaluator(filter).Admissible(offering)
}

// Accepts checks the day-off rule and the lecturer rule of every course in the timetable
func (filter Filter) Accepts(timetable Timetable) bool {
	return newPredicateEvaluator(filter).Accepts(timetable)
}

// Apply keeps the accepted timetables in their original order
func (filter Filter) Apply(timetables []Timetable) []Timetable {
	evaluator := newPredicateEvaluator(filter)
	return lo.Filter(timetables, func(timetable Timetable, _ int) bool {
		return evaluator.Accepts(timetable)
	})
}

// LecturerName strips a trailing parenthesised tag, e.g. "Dr. Lee (Lab)" becomes "Dr. Lee"
func LecturerName(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasSuffix(name, ")") {
		if open := strings.LastIndex(name, "("); open > 0 {
			name = strings.TrimSpace(name[:open])
		}
	}
	return name
}
