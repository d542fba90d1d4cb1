package verses

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange_VerseEnd(t *testing.T) {
	r := Range{BookID: "genesis", Chapter: 1, VerseStart: 1, VerseCount: 5}
	assert.Equal(t, 5, r.VerseEnd())

	single := Range{BookID: "genesis", Chapter: 1, VerseStart: 7, VerseCount: 1}
	assert.Equal(t, 7, single.VerseEnd())
}

func TestRange_Validate(t *testing.T) {
	tests := []struct {
		name    string
		r       Range
		wantErr error
	}{
		{"valid", Range{BookID: "genesis", Chapter: 1, VerseStart: 1, VerseCount: 1}, nil},
		{"missing book", Range{Chapter: 1, VerseStart: 1, VerseCount: 1}, ErrBookRequired},
		{"zero chapter", Range{BookID: "genesis", VerseStart: 1, VerseCount: 1}, ErrChapterInvalid},
		{"zero verse start", Range{BookID: "genesis", Chapter: 1, VerseCount: 1}, ErrVerseStartInvalid},
		{"zero verse count", Range{BookID: "genesis", Chapter: 1, VerseStart: 1}, ErrVerseCountInvalid},
		{"negative verse count", Range{BookID: "genesis", Chapter: 1, VerseStart: 1, VerseCount: -2}, ErrVerseCountInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestRange_Overlaps(t *testing.T) {
	a := Range{BookID: "genesis", Chapter: 1, VerseStart: 1, VerseCount: 5} // verses 1-5

	t.Run("shared boundary verse overlaps", func(t *testing.T) {
		b := Range{BookID: "genesis", Chapter: 1, VerseStart: 5, VerseCount: 3} // verses 5-7
		assert.True(t, a.Overlaps(b))
	})

	t.Run("adjacent ranges do not overlap", func(t *testing.T) {
		b := Range{BookID: "genesis", Chapter: 1, VerseStart: 6, VerseCount: 3} // verses 6-8
		assert.False(t, a.Overlaps(b))
	})

	t.Run("contained range overlaps", func(t *testing.T) {
		b := Range{BookID: "genesis", Chapter: 1, VerseStart: 2, VerseCount: 2}
		assert.True(t, a.Overlaps(b))
	})

	t.Run("identical ranges overlap", func(t *testing.T) {
		assert.True(t, a.Overlaps(a))
	})

	t.Run("different book never overlaps", func(t *testing.T) {
		b := Range{BookID: "exodus", Chapter: 1, VerseStart: 1, VerseCount: 5}
		assert.False(t, a.Overlaps(b))
	})

	t.Run("different chapter never overlaps", func(t *testing.T) {
		b := Range{BookID: "genesis", Chapter: 2, VerseStart: 1, VerseCount: 5}
		assert.False(t, a.Overlaps(b))
	})
}

func TestRange_Overlaps_Symmetric(t *testing.T) {
	ranges := []Range{
		{BookID: "genesis", Chapter: 1, VerseStart: 1, VerseCount: 5},
		{BookID: "genesis", Chapter: 1, VerseStart: 5, VerseCount: 3},
		{BookID: "genesis", Chapter: 1, VerseStart: 6, VerseCount: 3},
		{BookID: "genesis", Chapter: 2, VerseStart: 1, VerseCount: 5},
		{BookID: "exodus", Chapter: 1, VerseStart: 3, VerseCount: 1},
		{BookID: "genesis", Chapter: 1, VerseStart: 100, VerseCount: 1},
	}

	for _, a := range ranges {
		for _, b := range ranges {
			assert.Equal(t, a.Overlaps(b), b.Overlaps(a),
				"overlap must be symmetric for %+v and %+v", a, b)
		}
	}
}

func TestRange_ContainsVerse(t *testing.T) {
	r := Range{BookID: "psalms", Chapter: 23, VerseStart: 1, VerseCount: 4} // verses 1-4

	t.Run("single verse inside", func(t *testing.T) {
		assert.True(t, r.ContainsVerse("psalms", 23, 3, 0))
	})

	t.Run("single verse outside", func(t *testing.T) {
		assert.False(t, r.ContainsVerse("psalms", 23, 5, 0))
	})

	t.Run("sub-range crossing the end", func(t *testing.T) {
		assert.True(t, r.ContainsVerse("psalms", 23, 4, 6))
	})

	t.Run("wrong chapter", func(t *testing.T) {
		assert.False(t, r.ContainsVerse("psalms", 22, 3, 0))
	})
}

type testEntry struct {
	id int
	r  Range
}

func (e testEntry) VerseRange() Range { return e.r }

func TestFindOverlapping(t *testing.T) {
	// Candidates in created-at-descending order, as the repositories return them.
	candidates := []testEntry{
		{id: 4, r: Range{BookID: "john", Chapter: 3, VerseStart: 16, VerseCount: 1}},
		{id: 3, r: Range{BookID: "john", Chapter: 3, VerseStart: 14, VerseCount: 4}}, // 14-17
		{id: 2, r: Range{BookID: "john", Chapter: 3, VerseStart: 1, VerseCount: 5}},  // 1-5
		{id: 1, r: Range{BookID: "john", Chapter: 4, VerseStart: 16, VerseCount: 1}},
	}

	query := Range{BookID: "john", Chapter: 3, VerseStart: 16, VerseCount: 2} // 16-17

	matched := FindOverlapping(candidates, query)
	require.Len(t, matched, 2)
	assert.Equal(t, 4, matched[0].id)
	assert.Equal(t, 3, matched[1].id)
}

func TestFindOverlapping_Empty(t *testing.T) {
	query := Range{BookID: "john", Chapter: 3, VerseStart: 16, VerseCount: 1}

	matched := FindOverlapping[testEntry](nil, query)
	assert.Empty(t, matched)
}
