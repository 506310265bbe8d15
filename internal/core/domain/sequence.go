package domain

import (
	"fmt"
	"strings"
	"time"
)

// StrictSequence is a gapless number generator. NumberNext is the value handed
// out by the next allocation.
type StrictSequence struct {
	SequenceID      string `json:"sequenceID"`
	Name            string `json:"name"`
	Prefix          string `json:"prefix"`  // may contain ${year}, ${month}, ${day}
	Suffix          string `json:"suffix"`  // same substitutions as Prefix
	Padding         int    `json:"padding"` // zero-pad the number to this width
	NumberNext      int64  `json:"numberNext"`
	NumberIncrement int64  `json:"numberIncrement"`
	AuditFields
}

// Format renders number with the sequence prefix, suffix and padding, using date
// for the ${year}, ${month} and ${day} placeholders.
func (s StrictSequence) Format(number int64, date time.Time) string {
	return expandDatePlaceholders(s.Prefix, date) +
		fmt.Sprintf("%0*d", s.Padding, number) +
		expandDatePlaceholders(s.Suffix, date)
}

func expandDatePlaceholders(tmpl string, date time.Time) string {
	if !strings.Contains(tmpl, "${") {
		return tmpl
	}
	return strings.NewReplacer(
		"${year}", date.Format("2006"),
		"${month}", date.Format("01"),
		"${day}", date.Format("02"),
	).Replace(tmpl)
}
