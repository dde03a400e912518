package streak

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/studytrack/studytrack/internal/models"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		panic(err)
	}

	return t
}

type UpdateTest struct {
	Name    string
	Now     time.Time
	Record  models.Streak
	Want    models.Streak
	Outcome Outcome
}

var updateTestCases = []UpdateTest{
	{
		Name:   "consecutive day increments the streak",
		Now:    day("2024-01-02 08:00"),
		Record: models.Streak{Current: 3, Longest: 3, LastActiveDate: "2024-01-01"},
		Want: models.Streak{
			Current:        4,
			Longest:        4,
			LastActiveDate: "2024-01-02",
		},
		Outcome: Incremented,
	},
	{
		Name:   "consecutive day keeps a larger longest streak",
		Now:    day("2024-01-02 23:59"),
		Record: models.Streak{Current: 3, Longest: 10, LastActiveDate: "2024-01-01"},
		Want: models.Streak{
			Current:        4,
			Longest:        10,
			LastActiveDate: "2024-01-02",
		},
		Outcome: Incremented,
	},
	{
		Name:   "same day is a no-op",
		Now:    day("2024-01-02 21:00"),
		Record: models.Streak{Current: 4, Longest: 4, LastActiveDate: "2024-01-02"},
		Want: models.Streak{
			Current:        4,
			Longest:        4,
			LastActiveDate: "2024-01-02",
		},
		Outcome: Unchanged,
	},
	{
		Name:   "two day gap resets",
		Now:    day("2024-01-03 09:00"),
		Record: models.Streak{Current: 7, Longest: 7, LastActiveDate: "2024-01-01"},
		Want: models.Streak{
			Current:        1,
			Longest:        7,
			LastActiveDate: "2024-01-03",
		},
		Outcome: Reset,
	},
	{
		Name:   "long gap resets",
		Now:    day("2024-06-01 09:00"),
		Record: models.Streak{Current: 2, Longest: 5, LastActiveDate: "2024-01-01"},
		Want: models.Streak{
			Current:        1,
			Longest:        5,
			LastActiveDate: "2024-06-01",
		},
		Outcome: Reset,
	},
	{
		Name:   "first completion starts at one",
		Now:    day("2024-01-01 12:00"),
		Record: models.Streak{},
		Want: models.Streak{
			Current:        1,
			Longest:        1,
			LastActiveDate: "2024-01-01",
		},
		Outcome: Reset,
	},
	{
		Name:   "future last active date resets",
		Now:    day("2024-01-01 12:00"),
		Record: models.Streak{Current: 2, Longest: 2, LastActiveDate: "2024-01-02"},
		Want: models.Streak{
			Current:        1,
			Longest:        2,
			LastActiveDate: "2024-01-01",
		},
		Outcome: Reset,
	},
	{
		Name:   "unreadable last active date resets",
		Now:    day("2024-01-01 12:00"),
		Record: models.Streak{Current: 2, Longest: 2, LastActiveDate: "yesterday"},
		Want: models.Streak{
			Current:        1,
			Longest:        2,
			LastActiveDate: "2024-01-01",
		},
		Outcome: Reset,
	},
	{
		Name:   "month boundary counts as consecutive",
		Now:    day("2024-03-01 00:10"),
		Record: models.Streak{Current: 1, Longest: 1, LastActiveDate: "2024-02-29"},
		Want: models.Streak{
			Current:        2,
			Longest:        2,
			LastActiveDate: "2024-03-01",
		},
		Outcome: Incremented,
	},
}

func TestUpdate(t *testing.T) {
	for _, tc := range updateTestCases {
		t.Run(tc.Name, func(t *testing.T) {
			got, outcome := Update(tc.Record, tc.Now)

			if diff := cmp.Diff(tc.Want, got); diff != "" {
				t.Errorf("unexpected streak (-want +got):\n%s", diff)
			}

			if outcome != tc.Outcome {
				t.Errorf("expected outcome %q, but got %q", tc.Outcome, outcome)
			}

			if got.Current > got.Longest {
				t.Errorf(
					"current streak %d exceeds longest streak %d",
					got.Current,
					got.Longest,
				)
			}
		})
	}
}

func TestUpdateSameDayTwice(t *testing.T) {
	rec := models.Streak{Current: 3, Longest: 5, LastActiveDate: "2024-01-01"}

	first, _ := Update(rec, day("2024-01-02 09:00"))
	second, outcome := Update(first, day("2024-01-02 17:00"))

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second completion changed the streak (-want +got):\n%s", diff)
	}

	if outcome != Unchanged {
		t.Errorf("expected outcome %q, but got %q", Unchanged, outcome)
	}
}

func TestUpdateConsecutiveRun(t *testing.T) {
	var rec models.Streak

	start := day("2024-01-01 10:00")

	for i := range 10 {
		rec, _ = Update(rec, start.AddDate(0, 0, i))

		if rec.Current != i+1 {
			t.Fatalf("day %d: expected current streak %d, got %d", i, i+1, rec.Current)
		}
	}

	if rec.Longest != 10 {
		t.Errorf("expected longest streak 10, got %d", rec.Longest)
	}
}

func TestDisplayed(t *testing.T) {
	now := day("2024-01-05 10:00")

	testCases := []struct {
		Name   string
		Record models.Streak
		Want   int
	}{
		{"active today", models.Streak{Current: 3, LastActiveDate: "2024-01-05"}, 3},
		{"active yesterday", models.Streak{Current: 3, LastActiveDate: "2024-01-04"}, 3},
		{"lapsed", models.Streak{Current: 3, LastActiveDate: "2024-01-03"}, 0},
		{"never active", models.Streak{}, 0},
		{"active in the future", models.Streak{Current: 9, LastActiveDate: "2024-01-07"}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			if got := Displayed(tc.Record, now); got != tc.Want {
				t.Errorf("expected %d, got %d", tc.Want, got)
			}
		})
	}
}
