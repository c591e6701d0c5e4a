package model

// indexer interface is design to give a unique bit index to a (day, period) slot of the weekly grid
type indexer interface {
	// Returns a unique index for the slot
	Index(day Day, period int) uint64
	// Returns the per-day occupancy masks of an offering, or false if some period cannot be indexed
	Occupancy(offering CourseOffering) (occupancy, bool)
}

// occupancy holds one bit per period for every day of the week
type occupancy [DaysInWeek]uint64

func (a occupancy) intersects(b occupancy) bool {
	for day := range a {
		if a[day]&b[day] != 0 {
			return true
		}
	}
	return false
}

func (a occupancy) union(b occupancy) occupancy {
	for day := range a {
		a[day] |= b[day]
	}
	return a
}

func newIndexer() indexer {
	return &indexerImplementation{periods: 64}
}
