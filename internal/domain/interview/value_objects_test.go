//go:build unit

package interview_test

import (
	"strings"
	"testing"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/domain/interview"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSkillSet(t *testing.T) {
	t.Run("normalizes case and whitespace and deduplicates", func(t *testing.T) {
		set, err := interview.NewSkillSet([]string{" Go ", "go", "SQL", "", "  "})
		require.NoError(t, err)
		assert.Equal(t, []string{"go", "sql"}, set.Values())
	})

	t.Run("empty input is rejected", func(t *testing.T) {
		_, err := interview.NewSkillSet(nil)
		assert.ErrorIs(t, err, interview.ErrEmptySkills)

		_, err = interview.NewSkillSet([]string{"", "   "})
		assert.ErrorIs(t, err, interview.ErrEmptySkills)
	})
}

func TestSkillSetIntersects(t *testing.T) {
	a, err := interview.NewSkillSet([]string{"go", "sql"})
	require.NoError(t, err)
	b, err := interview.NewSkillSet([]string{"SQL", "kubernetes"})
	require.NoError(t, err)
	c, err := interview.NewSkillSet([]string{"rust"})
	require.NoError(t, err)

	assert.True(t, a.Intersects(b))
	assert.True(t, b.Intersects(a))
	assert.False(t, a.Intersects(c))
}

func TestNewDuration(t *testing.T) {
	cases := []struct {
		name    string
		minutes int
		wantErr bool
	}{
		{name: "below minimum", minutes: interview.MinDurationMinutes - 1, wantErr: true},
		{name: "minimum", minutes: interview.MinDurationMinutes},
		{name: "default", minutes: interview.DefaultDuration},
		{name: "maximum", minutes: interview.MaxDurationMinutes},
		{name: "above maximum", minutes: interview.MaxDurationMinutes + 1, wantErr: true},
		{name: "zero", minutes: 0, wantErr: true},
		{name: "negative", minutes: -30, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := interview.NewDuration(tc.minutes)
			if tc.wantErr {
				assert.ErrorIs(t, err, interview.ErrInvalidDuration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.minutes, d.Minutes())
		})
	}
}

func TestNewFeedback(t *testing.T) {
	t.Run("valid ratings", func(t *testing.T) {
		for rating := 1; rating <= 5; rating++ {
			fb, err := interview.NewFeedback(rating, "ok")
			require.NoError(t, err)
			assert.Equal(t, rating, fb.Rating())
		}
	})

	t.Run("out of range ratings", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1} {
			_, err := interview.NewFeedback(rating, "ok")
			assert.ErrorIs(t, err, interview.ErrInvalidRating)
		}
	})

	t.Run("comment is trimmed", func(t *testing.T) {
		fb, err := interview.NewFeedback(3, "  needs work  ")
		require.NoError(t, err)
		assert.Equal(t, "needs work", fb.Comment())
	})

	t.Run("comment at maximum length", func(t *testing.T) {
		_, err := interview.NewFeedback(3, strings.Repeat("a", interview.MaxCommentLength))
		require.NoError(t, err)
	})

	t.Run("comment above maximum length", func(t *testing.T) {
		_, err := interview.NewFeedback(3, strings.Repeat("a", interview.MaxCommentLength+1))
		assert.ErrorIs(t, err, interview.ErrCommentTooLong)
	})
}

func TestNewNotes(t *testing.T) {
	t.Run("empty notes are allowed", func(t *testing.T) {
		n, err := interview.NewNotes("")
		require.NoError(t, err)
		assert.True(t, n.IsEmpty())
	})

	t.Run("notes above maximum length", func(t *testing.T) {
		_, err := interview.NewNotes(strings.Repeat("a", interview.MaxNotesLength+1))
		assert.ErrorIs(t, err, interview.ErrNotesTooLong)
	})
}

func TestNewStatus(t *testing.T) {
	for _, s := range []string{"requested", "scheduled", "in_progress", "completed", "cancelled", "no_show", "expired"} {
		status, err := interview.NewStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, status.String())
	}

	_, err := interview.NewStatus("archived")
	assert.ErrorIs(t, err, interview.ErrInvalidStatus)
}
