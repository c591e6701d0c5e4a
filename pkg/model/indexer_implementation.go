package model

type indexerImplementation struct {
	periods uint64 // Periods per day that fit in a mask
}

func (indexer *indexerImplementation) Index(day Day, period int) uint64 {
	return uint64(period-1) + indexer.periods*uint64(day)
}

func (indexer *indexerImplementation) Occupancy(offering CourseOffering) (occupancy, bool) {
	var masks occupancy
	for _, lesson := range offering.Lessons {
		if lesson.Start < 1 || uint64(lesson.End()) > indexer.periods {
			return occupancy{}, false
		}
		for period := lesson.Start; period <= lesson.End(); period++ {
			index := indexer.Index(lesson.Day, period)
			masks[lesson.Day] |= 1 << (index % indexer.periods)
		}
	}
	return masks, true
}
