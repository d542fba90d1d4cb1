// Package bible carries the static book/chapter metadata used to validate
// references and to expand chapter spans for reading plans.
package bible

import (
	"fmt"
	"strings"
)

// Book is one canonical book with its chapter count.
type Book struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Chapters int    `json:"chapters"`
}

// ChapterRef identifies a single chapter of a book.
type ChapterRef struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
}

var books = []Book{
	{"genesis", "Genesis", 50},
	{"exodus", "Exodus", 40},
	{"leviticus", "Leviticus", 27},
	{"numbers", "Numbers", 36},
	{"deuteronomy", "Deuteronomy", 34},
	{"joshua", "Joshua", 24},
	{"judges", "Judges", 21},
	{"ruth", "Ruth", 4},
	{"1-samuel", "1 Samuel", 31},
	{"2-samuel", "2 Samuel", 24},
	{"1-kings", "1 Kings", 22},
	{"2-kings", "2 Kings", 25},
	{"1-chronicles", "1 Chronicles", 29},
	{"2-chronicles", "2 Chronicles", 36},
	{"ezra", "Ezra", 10},
	{"nehemiah", "Nehemiah", 13},
	{"esther", "Esther", 10},
	{"job", "Job", 42},
	{"psalms", "Psalms", 150},
	{"proverbs", "Proverbs", 31},
	{"ecclesiastes", "Ecclesiastes", 12},
	{"song-of-solomon", "Song of Solomon", 8},
	{"isaiah", "Isaiah", 66},
	{"jeremiah", "Jeremiah", 52},
	{"lamentations", "Lamentations", 5},
	{"ezekiel", "Ezekiel", 48},
	{"daniel", "Daniel", 12},
	{"hosea", "Hosea", 14},
	{"joel", "Joel", 3},
	{"amos", "Amos", 9},
	{"obadiah", "Obadiah", 1},
	{"jonah", "Jonah", 4},
	{"micah", "Micah", 7},
	{"nahum", "Nahum", 3},
	{"habakkuk", "Habakkuk", 3},
	{"zephaniah", "Zephaniah", 3},
	{"haggai", "Haggai", 2},
	{"zechariah", "Zechariah", 14},
	{"malachi", "Malachi", 4},
	{"matthew", "Matthew", 28},
	{"mark", "Mark", 16},
	{"luke", "Luke", 24},
	{"john", "John", 21},
	{"acts", "Acts", 28},
	{"romans", "Romans", 16},
	{"1-corinthians", "1 Corinthians", 16},
	{"2-corinthians", "2 Corinthians", 13},
	{"galatians", "Galatians", 6},
	{"ephesians", "Ephesians", 6},
	{"philippians", "Philippians", 4},
	{"colossians", "Colossians", 4},
	{"1-thessalonians", "1 Thessalonians", 5},
	{"2-thessalonians", "2 Thessalonians", 3},
	{"1-timothy", "1 Timothy", 6},
	{"2-timothy", "2 Timothy", 4},
	{"titus", "Titus", 3},
	{"philemon", "Philemon", 1},
	{"hebrews", "Hebrews", 13},
	{"james", "James", 5},
	{"1-peter", "1 Peter", 5},
	{"2-peter", "2 Peter", 3},
	{"1-john", "1 John", 5},
	{"2-john", "2 John", 1},
	{"3-john", "3 John", 1},
	{"jude", "Jude", 1},
	{"revelation", "Revelation", 22},
}

var bookIndex = func() map[string]int {
	idx := make(map[string]int, len(books))
	for i, b := range books {
		idx[b.ID] = i
	}
	return idx
}()

// Books returns all books in canonical order.
func Books() []Book {
	out := make([]Book, len(books))
	copy(out, books)
	return out
}

// Find looks up a book by its ID (case-insensitive).
func Find(id string) (Book, bool) {
	i, ok := bookIndex[strings.ToLower(id)]
	if !ok {
		return Book{}, false
	}
	return books[i], true
}

// IsValidBook reports whether the ID names a known book.
func IsValidBook(id string) bool {
	_, ok := Find(id)
	return ok
}

// ChapterCount returns the number of chapters in the book, or 0 if unknown.
func ChapterCount(id string) int {
	b, ok := Find(id)
	if !ok {
		return 0
	}
	return b.Chapters
}

// ValidateSpan checks a chapter span for plan creation: both books must
// exist, chapters must be in range, and the end must not precede the start.
// An endChapter of 0 means "through the last chapter of the end book".
func ValidateSpan(startBook string, startChapter int, endBook string, endChapter int) error {
	sIdx, ok := bookIndex[strings.ToLower(startBook)]
	if !ok {
		return fmt.Errorf("invalid start book: %s", startBook)
	}
	eIdx, ok := bookIndex[strings.ToLower(endBook)]
	if !ok {
		return fmt.Errorf("invalid end book: %s", endBook)
	}
	sBook, eBook := books[sIdx], books[eIdx]

	if startChapter < 1 || startChapter > sBook.Chapters {
		return fmt.Errorf("start chapter %d is out of range for %s (1-%d)", startChapter, sBook.Name, sBook.Chapters)
	}
	if endChapter != 0 && (endChapter < 1 || endChapter > eBook.Chapters) {
		return fmt.Errorf("end chapter %d is out of range for %s (1-%d)", endChapter, eBook.Name, eBook.Chapters)
	}
	if sIdx > eIdx {
		return fmt.Errorf("end book cannot be before start book")
	}
	if sIdx == eIdx {
		end := endChapter
		if end == 0 {
			end = eBook.Chapters
		}
		if end < startChapter {
			return fmt.Errorf("end chapter cannot be before start chapter in the same book")
		}
	}
	return nil
}

// ChaptersBetween expands the inclusive span into a flat, canonical-order
// chapter list. The span is assumed valid (see ValidateSpan).
func ChaptersBetween(startBook string, startChapter int, endBook string, endChapter int) []ChapterRef {
	var chapters []ChapterRef

	sID := strings.ToLower(startBook)
	eID := strings.ToLower(endBook)

	started := false
	for _, b := range books {
		if !started && b.ID != sID {
			continue
		}
		started = true

		first := 1
		if b.ID == sID {
			first = startChapter
		}
		last := b.Chapters
		if b.ID == eID && endChapter != 0 {
			last = endChapter
		}

		for c := first; c <= last; c++ {
			chapters = append(chapters, ChapterRef{Book: b.ID, Chapter: c})
		}

		if b.ID == eID {
			break
		}
	}
	return chapters
}
