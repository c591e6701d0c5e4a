package model

// Overlaps checks whether two lessons fall on the same day and their closed period intervals intersect
func Overlaps(a, b Lesson) bool {
	return a.Day == b.Day &&
		a.Start <= b.End() &&
		b.Start <= a.End()
}

// Checks whether any lesson of the offering overlaps a lesson already present in the timetable
func conflicts(timetable Timetable, offering CourseOffering) bool {
	for _, lesson := range offering.Lessons {
		for _, placed := range timetable.Days[lesson.Day] {
			// Day sequences are sorted by start, so nothing further can overlap
			if placed.Start > lesson.End() {
				break
			}
			if Overlaps(lesson, placed.Lesson) {
				return true
			}
		}
	}
	return false
}
