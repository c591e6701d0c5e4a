package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderGrid(t *testing.T) {
	//** Act
	grid := RenderGrid(sampleTimetable(t))

	//** Assert
	for _, expected := range []string{"Monday", "Sunday", "free", "P2-3", "Algorithms", "Databases", "E201", "Dr. Kim, Dr. Tran"} {
		assert.Contains(t, grid, expected)
	}
	assert.Contains(t, grid, "Courses: 2  Credits: 7  Days off: 5")
}
