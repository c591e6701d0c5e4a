package model

// Paginate returns the 1-based page of the given size. Pages past the end are empty.
func Paginate(timetables []Timetable, page, size int) []Timetable {
	if page < 1 || size < 1 {
		return []Timetable{}
	}

	start := (page - 1) * size
	if start >= len(timetables) {
		return []Timetable{}
	}
	end := min(start+size, len(timetables))
	return timetables[start:end]
}

// Pages returns how many pages of the given size the timetables fill
func Pages(total, size int) int {
	if size < 1 {
		return 0
	}
	return (total + size - 1) / size
}
