package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/internal/ui"
)

const (
	noSubjectsMsg = "No subjects found. Add one with 'studytrack subject add'"
	noTasksMsg    = "No tasks found. Add one with 'studytrack task add'"
	shortIDLength = 8
	dateFormat    = "Jan 02, 2006"
)

// shortID returns the prefix of id shown in tables. Any unique prefix is
// accepted wherever an id is expected.
func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}

	return id[:shortIDLength]
}

// printSubjectsTable prints a subject table to the command-line.
func printSubjectsTable(w io.Writer, subjects []*models.Subject) {
	tableBody := make([][]string, len(subjects))

	for i, s := range subjects {
		var scheduled string
		if s.ScheduledDate != nil {
			scheduled = s.ScheduledDate.Local().Format(dateFormat)
		}

		tableBody[i] = []string{
			shortID(s.ID),
			s.Title,
			scheduled,
			s.Description,
		}
	}

	tableBody = append([][]string{
		{"ID", "TITLE", "SCHEDULED", "DESCRIPTION"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// printTasksTable prints a task table to the command-line. titles maps
// subject ids to subject titles.
func printTasksTable(
	w io.Writer,
	tasks []*models.Task,
	titles map[string]string,
) {
	tableBody := make([][]string, len(tasks))

	for i, t := range tasks {
		statusText := ui.Cyan("pending")
		if t.Completed {
			statusText = ui.Green("done")

			if t.CompletedAt != nil {
				statusText += " " + t.CompletedAt.Local().Format(dateFormat)
			}
		}

		tableBody[i] = []string{
			shortID(t.ID),
			t.Title,
			titles[t.SubjectID],
			fmt.Sprintf("%dm", t.FocusMinutes),
			fmt.Sprintf("%dm", t.BreakMinutes),
			statusText,
		}
	}

	tableBody = append([][]string{
		{"ID", "TITLE", "SUBJECT", "FOCUS", "BREAK", "STATUS"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))

	return err
}
