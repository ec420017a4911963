package schedule

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// dateLayout is the MM-DD-YYYY format the schedule exports use.
const dateLayout = "01-02-2006"

// Match is one scheduled team match. Result is empty until the match has
// been played, then reads like "W 4-2" or "L 3-4".
type Match struct {
	Date     time.Time `json:"date"`
	Opponent string    `json:"opponent"`
	Location string    `json:"location"`
	Result   string    `json:"result"`
	Season   string    `json:"season"`
}

// Played reports whether the match has a result yet.
func (m Match) Played() bool {
	return strings.TrimSpace(m.Result) != ""
}

// Won reports whether the result is a win. Only meaningful when Played.
func (m Match) Won() bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(m.Result)), "W")
}

// ReadCSV loads a schedule export. Expected columns, by header name:
// Date, Opponent, Location, Result, Season. Rows with an unparseable or
// empty date are kept with a zero Date so an unscheduled exhibition still
// counts toward the record.
func ReadCSV(path string) ([]Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schedule: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing schedule: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	idx := map[string]int{}
	for i, h := range rows[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	col := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var matches []Match
	for _, row := range rows[1:] {
		m := Match{
			Opponent: col(row, "opponent"),
			Location: col(row, "location"),
			Result:   col(row, "result"),
			Season:   col(row, "season"),
		}
		if m.Opponent == "" {
			continue
		}
		if d := col(row, "date"); d != "" {
			if parsed, err := time.Parse(dateLayout, d); err == nil {
				m.Date = parsed
			}
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// Record is an overall win-loss summary.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

func (r Record) String() string {
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

// Overall tallies played matches into a win-loss record.
func Overall(matches []Match) Record {
	var rec Record
	for _, m := range matches {
		if !m.Played() {
			continue
		}
		if m.Won() {
			rec.Wins++
		} else {
			rec.Losses++
		}
	}
	return rec
}

// Point is one step of the cumulative score series.
type Point struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
}

// Cumulative turns played matches into a running +1/-1 score series
// ordered by date, the shape used to chart a season's trajectory. The sort
// is stable so same-day matches keep their schedule order.
func Cumulative(matches []Match) []Point {
	played := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.Played() {
			played = append(played, m)
		}
	}
	sort.SliceStable(played, func(i, j int) bool {
		return played[i].Date.Before(played[j].Date)
	})

	points := make([]Point, 0, len(played))
	score := 0
	for _, m := range played {
		if m.Won() {
			score++
		} else {
			score--
		}
		points = append(points, Point{Date: m.Date, Score: score})
	}
	return points
}
