// Package plans builds reading plan schedules by spreading a chapter span
// evenly over a number of days.
package plans

import (
	"time"

	"github.com/selahapp/selah/internal/bible"
	"github.com/selahapp/selah/internal/entities"
)

// DistributeReadings splits the inclusive chapter span into durationInDays
// daily assignments. Chapters divide evenly with floor division; the
// remainder goes one extra chapter to each of the first days. When the span
// is shorter than the duration, trailing days carry no readings. Each day's
// chapters are grouped into contiguous per-book spans.
func DistributeReadings(startBook string, startChapter int, endBook string, endChapter, durationInDays int) []entities.DailyReading {
	allChapters := bible.ChaptersBetween(startBook, startChapter, endBook, endChapter)
	total := len(allChapters)
	if total == 0 || durationInDays <= 0 {
		return nil
	}

	base := total / durationInDays
	remainder := total % durationInDays

	days := make([]entities.DailyReading, 0, durationInDays)
	idx := 0
	for day := 1; day <= durationInDays; day++ {
		count := base
		if day <= remainder {
			count++
		}

		todays := allChapters[idx : idx+count]
		idx += count

		days = append(days, entities.DailyReading{
			DayNumber: day,
			Readings:  groupContiguous(todays),
		})
	}
	return days
}

// Schedule stamps calendar dates onto a distributed plan, day 1 falling on
// startDate.
func Schedule(days []entities.DailyReading, startDate time.Time) []entities.DailyReading {
	out := make([]entities.DailyReading, len(days))
	for i, d := range days {
		d.Date = startDate.AddDate(0, 0, d.DayNumber-1)
		out[i] = d
	}
	return out
}

func groupContiguous(chapters []bible.ChapterRef) []entities.DailyReadingItem {
	if len(chapters) == 0 {
		return []entities.DailyReadingItem{}
	}

	var groups []entities.DailyReadingItem
	current := entities.DailyReadingItem{
		Book:         chapters[0].Book,
		StartChapter: chapters[0].Chapter,
		EndChapter:   chapters[0].Chapter,
	}
	for _, c := range chapters[1:] {
		if c.Book == current.Book && c.Chapter == current.EndChapter+1 {
			current.EndChapter = c.Chapter
			continue
		}
		groups = append(groups, current)
		current = entities.DailyReadingItem{Book: c.Book, StartChapter: c.Chapter, EndChapter: c.Chapter}
	}
	groups = append(groups, current)
	return groups
}
