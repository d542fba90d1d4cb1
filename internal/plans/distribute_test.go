package plans

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selahapp/selah/internal/entities"
)

func TestDistributeReadingsEvenSplit(t *testing.T) {
	// Genesis 1-50 over 10 days: exactly 5 chapters a day.
	days := DistributeReadings("genesis", 1, "genesis", 50, 10)
	require.Len(t, days, 10)

	for i, d := range days {
		assert.Equal(t, i+1, d.DayNumber)
		require.Len(t, d.Readings, 1)
		r := d.Readings[0]
		assert.Equal(t, "genesis", r.Book)
		assert.Equal(t, 5, r.EndChapter-r.StartChapter+1)
	}
	assert.Equal(t, 1, days[0].Readings[0].StartChapter)
	assert.Equal(t, 50, days[9].Readings[0].EndChapter)
}

func TestDistributeReadingsRemainderToFirstDays(t *testing.T) {
	// 17 chapters over 5 days: base 3, remainder 2 -> 4,4,3,3,3.
	days := DistributeReadings("genesis", 1, "genesis", 17, 5)
	require.Len(t, days, 5)

	counts := make([]int, len(days))
	for i, d := range days {
		for _, r := range d.Readings {
			counts[i] += r.EndChapter - r.StartChapter + 1
		}
	}
	assert.Equal(t, []int{4, 4, 3, 3, 3}, counts)
}

func TestDistributeReadingsCrossesBookBoundary(t *testing.T) {
	// Malachi 3-4 and Matthew 1-2 in one day: two contiguous groups.
	days := DistributeReadings("malachi", 3, "matthew", 2, 1)
	require.Len(t, days, 1)
	require.Len(t, days[0].Readings, 2)

	assert.Equal(t, entities.DailyReadingItem{Book: "malachi", StartChapter: 3, EndChapter: 4}, days[0].Readings[0])
	assert.Equal(t, entities.DailyReadingItem{Book: "matthew", StartChapter: 1, EndChapter: 2}, days[0].Readings[1])
}

func TestDistributeReadingsMoreDaysThanChapters(t *testing.T) {
	// 5 chapters over 10 days: first 5 days get one chapter, the rest rest.
	days := DistributeReadings("genesis", 1, "genesis", 5, 10)
	require.Len(t, days, 10)

	for i := 0; i < 5; i++ {
		require.Len(t, days[i].Readings, 1)
		assert.Equal(t, i+1, days[i].Readings[0].StartChapter)
	}
	for i := 5; i < 10; i++ {
		assert.Empty(t, days[i].Readings)
	}
}

func TestDistributeReadingsInvalidInput(t *testing.T) {
	assert.Nil(t, DistributeReadings("genesis", 1, "genesis", 5, 0))
	assert.Nil(t, DistributeReadings("genesis", 1, "genesis", 5, -3))
}

func TestSchedule(t *testing.T) {
	days := DistributeReadings("genesis", 1, "genesis", 6, 3)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	scheduled := Schedule(days, start)
	require.Len(t, scheduled, 3)
	assert.Equal(t, start, scheduled[0].Date)
	assert.Equal(t, start.AddDate(0, 0, 2), scheduled[2].Date)
}
