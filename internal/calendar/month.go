// Package calendar builds the six-week installation calendar and models
// the drag-and-drop reschedule gesture on it.
package calendar

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/sitereg/internal/common"
	"github.com/dmitrijs2005/sitereg/internal/models"
)

// Month is the reference month of a calendar view.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month d falls in. It backs the "today" action.
func MonthOf(d models.Date) Month {
	return Month{Year: d.Year, Month: d.Month}
}

// ParseMonth reads "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("%w: month %q", common.ErrInvalidDate, s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// First is the 1st day of m.
func (m Month) First() models.Date {
	return models.NewDate(m.Year, m.Month, 1)
}

// Next and Prev step by whole months from the 1st, so a view opened on
// the 31st never skips a short month.
func (m Month) Next() Month {
	return MonthOf(models.NewDate(m.Year, m.Month+1, 1))
}

func (m Month) Prev() Month {
	return MonthOf(models.NewDate(m.Year, m.Month-1, 1))
}

func (m Month) Contains(d models.Date) bool {
	return d.Year == m.Year && d.Month == m.Month
}

func (m Month) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Month) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseWeekday maps "sunday" … "saturday" (case-insensitive) to a
// time.Weekday. Unknown names yield Sunday.
func ParseWeekday(s string) time.Weekday {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == s {
			return d
		}
	}
	return time.Sunday
}
