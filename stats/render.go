package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/pterm/pterm"

	"github.com/studytrack/studytrack/internal/timeutil"
	"github.com/studytrack/studytrack/internal/ui"
)

const (
	barChartChar = "▇"
	noTasksMsg   = "No tasks yet. Add one with 'studytrack task add'"
)

func formatMinutes(minutes int) string {
	d := time.Duration(minutes) * time.Minute
	if d == 0 {
		return "0 minutes"
	}

	//nolint:gomnd // limit to first 2 units
	return durafmt.Parse(d).LimitToUnit("hours").LimitFirstN(2).String()
}

// getSummary renders the task and session totals.
func getSummary(r *Report) string {
	header := fmt.Sprintf("%s\n", ui.Blue("Summary"))

	focus := fmt.Sprintf(
		"Focus time: %s\n",
		ui.Green(formatMinutes(r.TotalFocusMinutes)),
	)

	tasks := fmt.Sprintf(
		"Tasks completed: %s of %s (%s)\n",
		ui.Green(r.CompletedTasks),
		ui.Green(r.TotalTasks),
		ui.Green(strconv.Itoa(r.CompletionRate)+"%"),
	)

	sessions := fmt.Sprintf(
		"Focus sessions: %s (%s)\n",
		ui.Green(r.Sessions),
		ui.Green(formatMinutes(r.SessionMinutes)),
	)

	return header + focus + tasks + sessions
}

func getStreak(r *Report) string {
	header := fmt.Sprintf("\n%s\n", ui.Blue("Streak"))

	current := fmt.Sprintln("Current:", ui.Green(r.CurrentStreak))
	longest := fmt.Sprintln("Longest:", ui.Green(r.LongestStreak))
	active := fmt.Sprintln("Active days:", ui.Green(len(r.ActiveDates)))

	return header + current + longest + active
}

// getBarChart renders the focus minutes of each day in the period.
func getBarChart(r *Report) string {
	if len(r.Daily) == 0 {
		return ""
	}

	header := ui.Blue("\nDaily breakdown (minutes)")

	bars := make(pterm.Bars, 0, len(r.Daily))

	for _, d := range r.Daily {
		label := d.Date

		date, err := timeutil.ParseDay(d.Date, time.Local)
		if err == nil {
			label = date.Format("Mon, Jan 02")
		}

		bars = append(bars, pterm.Bar{
			Value: d.Minutes,
			Label: label,
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return header + chart
}

func printSubjects(w io.Writer, r *Report) {
	if len(r.Subjects) == 0 {
		return
	}

	fmt.Fprintf(w, "%s\n", ui.Blue("Subjects"))

	data := [][]string{{"SUBJECT", "COMPLETED", "TOTAL"}}

	for _, s := range r.Subjects {
		data = append(data, []string{
			s.Title,
			strconv.Itoa(s.Completed),
			strconv.Itoa(s.Total),
		})
	}

	ui.PrintTable(data, w)
}

// Show prints the report for a terminal.
func Show(w io.Writer, r *Report) {
	timePeriod := "Reporting period: " + r.StartDate + " - " + r.EndDate

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintln(timePeriod)

	if r.TotalTasks == 0 {
		fmt.Fprintln(w, header)
		pterm.Info.WithWriter(w).Println(noTasksMsg)

		return
	}

	output := fmt.Sprint(
		header,
		getSummary(r),
		getStreak(r),
		getBarChart(r),
	)

	fmt.Fprintln(w, strings.TrimSpace(output))
	fmt.Fprintln(w)

	printSubjects(w, r)
}

// JSON writes the report as indented JSON.
func JSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(r)
}
