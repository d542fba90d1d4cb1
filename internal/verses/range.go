// Package verses implements the verse-range model shared by bookmarks,
// highlights, notes and topics: a contiguous inclusive span of verses
// within one chapter of one book, plus the overlap predicates used for
// duplicate detection and range queries.
package verses

import "errors"

var (
	ErrBookRequired      = errors.New("bookId is required")
	ErrChapterInvalid    = errors.New("chapter must be at least 1")
	ErrVerseStartInvalid = errors.New("verseStart must be at least 1")
	ErrVerseCountInvalid = errors.New("verseCount must be at least 1")
)

// Range is a contiguous inclusive span of verses within a single chapter.
// The zero value is invalid; use Validate before persisting.
type Range struct {
	BookID     string
	Chapter    int
	VerseStart int
	VerseCount int
}

// VerseEnd returns the last verse number covered by the range.
func (r Range) VerseEnd() int {
	return r.VerseStart + r.VerseCount - 1
}

// Validate checks the range invariants. Overlap predicates assume
// already-validated input and have no error paths of their own.
func (r Range) Validate() error {
	if r.BookID == "" {
		return ErrBookRequired
	}
	if r.Chapter < 1 {
		return ErrChapterInvalid
	}
	if r.VerseStart < 1 {
		return ErrVerseStartInvalid
	}
	if r.VerseCount < 1 {
		return ErrVerseCountInvalid
	}
	return nil
}

// Equal reports whether two ranges share the same natural key
// (book, chapter, verseStart, verseCount).
func (r Range) Equal(other Range) bool {
	return r.BookID == other.BookID &&
		r.Chapter == other.Chapter &&
		r.VerseStart == other.VerseStart &&
		r.VerseCount == other.VerseCount
}

// Overlaps reports whether two ranges share at least one verse.
// Ranges in different books or chapters never overlap, regardless of
// verse numbers. Symmetric in its arguments.
func (r Range) Overlaps(other Range) bool {
	if r.BookID != other.BookID || r.Chapter != other.Chapter {
		return false
	}
	return !(r.VerseEnd() < other.VerseStart || r.VerseStart > other.VerseEnd())
}

// ContainsVerse reports whether the range intersects the inclusive verse
// span [verseStart, verseEnd] in the given book and chapter. A verseEnd
// below verseStart (typically 0, meaning "single verse") defaults to
// verseStart.
func (r Range) ContainsVerse(bookID string, chapter, verseStart, verseEnd int) bool {
	if verseEnd < verseStart {
		verseEnd = verseStart
	}
	return r.Overlaps(Range{
		BookID:     bookID,
		Chapter:    chapter,
		VerseStart: verseStart,
		VerseCount: verseEnd - verseStart + 1,
	})
}

// Ranged is implemented by entities that carry a verse range.
type Ranged interface {
	VerseRange() Range
}

// FindOverlapping filters candidates down to those whose range overlaps
// the query. The candidate order is preserved, so repositories that hand
// over created-at-descending slices get deterministic, stable results.
func FindOverlapping[T Ranged](candidates []T, query Range) []T {
	matched := make([]T, 0, len(candidates))
	for _, c := range candidates {
		if c.VerseRange().Overlaps(query) {
			matched = append(matched, c)
		}
	}
	return matched
}
