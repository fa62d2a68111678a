package calendar

import (
	"time"

	"github.com/dmitrijs2005/sitereg/internal/models"
)

// GridSize is the number of cells in every calendar view: six full weeks.
const GridSize = 42

// Day is one cell of the grid.
type Day struct {
	Date          models.Date           `json:"date"`
	Installations []models.Installation `json:"installations"`
	InMonth       bool                  `json:"in_month"`
	IsToday       bool                  `json:"is_today"`
}

// Grid is a built calendar view.
type Grid struct {
	Month Month `json:"month"`
	Days  []Day `json:"days"`
}

// Build lays out month as GridSize cells starting on the last weekStart
// on or before the 1st, and buckets installations by scheduled day.
// Within a cell installations keep their input order; records scheduled
// outside the 42-day span are not shown.
func Build(month Month, installations []models.Installation, today models.Date, weekStart time.Weekday) Grid {
	first := month.First()
	offset := (int(first.Weekday()) - int(weekStart) + 7) % 7
	start := first.AddDays(-offset)

	days := make([]Day, GridSize)
	for i := range days {
		d := start.AddDays(i)
		days[i] = Day{
			Date:          d,
			Installations: []models.Installation{},
			InMonth:       month.Contains(d),
			IsToday:       d == today,
		}
	}

	for _, inst := range installations {
		if inst.EstimatedInstallDate.IsZero() {
			continue
		}
		idx := daysBetween(start, inst.EstimatedInstallDate)
		if idx < 0 || idx >= GridSize {
			continue
		}
		days[idx].Installations = append(days[idx].Installations, inst)
	}

	return Grid{Month: month, Days: days}
}

// Start is the date of the first cell.
func (g Grid) Start() models.Date {
	return g.Days[0].Date
}

// End is the date of the last cell.
func (g Grid) End() models.Date {
	return g.Days[len(g.Days)-1].Date
}

// Cell returns the cell for d, if d is on the grid.
func (g Grid) Cell(d models.Date) (Day, bool) {
	if len(g.Days) == 0 {
		return Day{}, false
	}
	idx := daysBetween(g.Start(), d)
	if idx < 0 || idx >= len(g.Days) {
		return Day{}, false
	}
	return g.Days[idx], true
}

func daysBetween(from, to models.Date) int {
	return int(to.Time().Sub(from.Time()).Hours() / 24)
}
