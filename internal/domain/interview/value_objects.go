package interview

import (
	"strings"
	"time"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/errs"
)

var (
	ErrEmptySkills      = errs.New("at least one skill is required")
	ErrInvalidDuration  = errs.New("duration must be between 15 and 180 minutes")
	ErrInvalidRating    = errs.New("rating must be between 1 and 5")
	ErrCommentTooLong   = errs.New("feedback comment exceeds maximum length")
	ErrNotesTooLong     = errs.New("notes exceed maximum length")
	ErrScheduleInPast   = errs.New("scheduled time cannot be in the past")
)

const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 180
	DefaultDuration    = 60
	MaxCommentLength   = 2000
	MaxNotesLength     = 1000
)

// SkillSet is a normalized, de-duplicated set of skill tags.
type SkillSet struct {
	skills []string
}

func NewSkillSet(raw []string) (SkillSet, error) {
	seen := make(map[string]struct{}, len(raw))
	skills := make([]string, 0, len(raw))
	for _, s := range raw {
		normalized := strings.ToLower(strings.TrimSpace(s))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		skills = append(skills, normalized)
	}
	if len(skills) == 0 {
		return SkillSet{}, ErrEmptySkills
	}
	return SkillSet{skills: skills}, nil
}

func (s SkillSet) Values() []string {
	out := make([]string, len(s.skills))
	copy(out, s.skills)
	return out
}

func (s SkillSet) Intersects(other SkillSet) bool {
	set := make(map[string]struct{}, len(s.skills))
	for _, v := range s.skills {
		set[v] = struct{}{}
	}
	for _, v := range other.skills {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

func (s SkillSet) IsEmpty() bool {
	return len(s.skills) == 0
}

// Duration is an interview length in whole minutes.
type Duration struct {
	minutes int
}

func NewDuration(minutes int) (Duration, error) {
	if minutes < MinDurationMinutes || minutes > MaxDurationMinutes {
		return Duration{}, ErrInvalidDuration
	}
	return Duration{minutes: minutes}, nil
}

func DefaultDurationMinutes() Duration {
	return Duration{minutes: DefaultDuration}
}

func (d Duration) Minutes() int {
	return d.minutes
}

func (d Duration) AsTimeDuration() time.Duration {
	return time.Duration(d.minutes) * time.Minute
}

// Feedback is the interviewer's write-once assessment of a session.
type Feedback struct {
	rating  int
	comment string
}

func NewFeedback(rating int, comment string) (Feedback, error) {
	if rating < 1 || rating > 5 {
		return Feedback{}, ErrInvalidRating
	}
	comment = strings.TrimSpace(comment)
	if len(comment) > MaxCommentLength {
		return Feedback{}, ErrCommentTooLong
	}
	return Feedback{rating: rating, comment: comment}, nil
}

func (f Feedback) Rating() int     { return f.rating }
func (f Feedback) Comment() string { return f.comment }

type Notes struct {
	value string
}

func NewNotes(value string) (Notes, error) {
	value = strings.TrimSpace(value)
	if len(value) > MaxNotesLength {
		return Notes{}, ErrNotesTooLong
	}
	return Notes{value: value}, nil
}

func (n Notes) String() string { return n.value }
func (n Notes) IsEmpty() bool  { return n.value == "" }
