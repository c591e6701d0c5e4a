package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexIsUnique(t *testing.T) {
	indexer := newIndexer()

	indices := make(map[uint64]bool)
	for day := Monday; day <= Sunday; day++ {
		for period := 1; period <= 64; period++ {
			index := indexer.Index(day, period)
			assert.False(t, indices[index], "index %d is not unique", index)
			indices[index] = true
		}
	}
	assert.Len(t, indices, DaysInWeek*64)
}

func TestOccupancy(t *testing.T) {
	indexer := newIndexer()

	masks, ok := indexer.Occupancy(offering("A", "A1", lesson(Monday, 1, 3), lesson(Wednesday, 64, 1)))
	assert.True(t, ok)
	assert.Equal(t, uint64(0b111), masks[Monday])
	assert.Equal(t, uint64(1)<<63, masks[Wednesday])

	other, _ := indexer.Occupancy(offering("B", "B1", lesson(Monday, 3, 1)))
	assert.True(t, masks.intersects(other))
	other, _ = indexer.Occupancy(offering("B", "B2", lesson(Monday, 4, 1)))
	assert.False(t, masks.intersects(other))

	_, ok = indexer.Occupancy(offering("C", "C1", lesson(Monday, 63, 3)))
	assert.False(t, ok)
}
