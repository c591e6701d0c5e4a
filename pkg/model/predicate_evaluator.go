package model

type predicateEvaluator interface {
	// Checks whether the offering satisfies the lecturer rule of its course (if there is one)
	Admissible(offering CourseOffering) bool

	// Checks whether the partial timetable can still satisfy the day-off rule once more offerings are placed on it
	Extensible(timetable Timetable) bool

	// Checks whether the complete timetable satisfies every rule
	Accepts(timetable Timetable) bool
}

func newPredicateEvaluator(filter Filter) predicateEvaluator {
	return newPredicateEvaluatorStandard(filter)
}
