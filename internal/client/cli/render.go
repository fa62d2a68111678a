package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/sitereg/internal/calendar"
	"github.com/dmitrijs2005/sitereg/internal/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderInstallations(w io.Writer, list []models.Installation, c models.InstallationCounts) {
	fmt.Fprintf(w, "Installations: %d total, %d pending, %d completed, %d cancelled\n",
		c.Total, c.Pending, c.Completed, c.Cancelled)
	if len(list) == 0 {
		fmt.Fprintln(w, "No installations match")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tSITE\tEND USER\tCONTACT\tINSTALL DATE\tSTATUS")
	for _, i := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			i.ID, i.IntersectionName, i.EndUser, i.ContactName, i.EstimatedInstallDate, i.Status)
	}
	tw.Flush()
}

func renderAccounts(w io.Writer, list []models.MobilityAccount, c models.AccountCounts) {
	fmt.Fprintf(w, "Mobility accounts: %d total, %d active, %d inactive\n", c.Total, c.Active, c.Inactive)
	if len(list) == 0 {
		fmt.Fprintln(w, "No accounts match")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tORGANISATION\tSTATUS")
	for _, a := range list {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\t%s\n",
			a.ID, a.FirstName, a.LastName, a.Email, a.Phone, a.EndUser, a.Status)
	}
	tw.Flush()
}

// renderCalendar prints the six-week grid followed by the installations
// scheduled in it. Days outside the month are bracketed, today carries a
// star and "+n" counts the installations on a day.
func renderCalendar(w io.Writer, g calendar.Grid) {
	fmt.Fprintf(w, "%s %d\n", g.Month.Month, g.Month.Year)

	tw := newTable(w)
	header := make([]string, 0, 7)
	for _, d := range g.Days[:7] {
		header = append(header, d.Date.Weekday().String()[:3])
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for row := 0; row < len(g.Days)/7; row++ {
		cells := make([]string, 0, 7)
		for _, d := range g.Days[row*7 : row*7+7] {
			cells = append(cells, dayLabel(d))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()

	tw = newTable(w)
	listed := false
	for _, d := range g.Days {
		for _, i := range d.Installations {
			if !listed {
				fmt.Fprintln(tw, "DATE\tID\tSITE\tSTATUS")
				listed = true
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Date, i.ID, i.IntersectionName, i.Status)
		}
	}
	if !listed {
		fmt.Fprintln(tw, "No installations scheduled")
	}
	tw.Flush()
}

func dayLabel(d calendar.Day) string {
	s := fmt.Sprint(d.Date.Day)
	if !d.InMonth {
		s = "(" + s + ")"
	}
	if d.IsToday {
		s += "*"
	}
	if n := len(d.Installations); n > 0 {
		s += fmt.Sprintf("+%d", n)
	}
	return s
}

func renderAttachments(w io.Writer, list []models.Attachment) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No attachments")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "KIND\tFILE\tSIZE\tDOWNLOAD")
	for _, a := range list {
		link := a.DownloadURL
		if link == "" {
			link = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", a.Kind, a.FileName, a.Size, link)
	}
	tw.Flush()
}
