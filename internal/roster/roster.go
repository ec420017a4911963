package roster

import (
	"fmt"
	"time"
)

// Unknown marks a field that no source could resolve.
const Unknown = "N/A"

// Player is a partial athlete record produced by one extraction strategy.
// It is mutable only during extraction and enrichment; the persisted unit
// is Record.
type Player struct {
	Name       string // display name as rendered on the page
	ID         string // numeric id or slug embedded in the profile URL
	Year       string // year in school, raw or canonical
	Hometown   string
	ProfileURL string
}

// Record is the persisted unit: one row per normalized identity, combining
// the roster card, the cumulative stats table, and the rating lookup.
type Record struct {
	School        string    `json:"school"`
	Season        string    `json:"season"`
	Player        string    `json:"player"`
	PlayerID      string    `json:"player_id"`
	Year          string    `json:"year_in_school"`
	Hometown      string    `json:"hometown"`
	ProfileURL    string    `json:"profile_url"`
	Rating        string    `json:"utr_rating"`
	RatingURL     string    `json:"utr_url"`
	SinglesWins   int       `json:"singles_w"`
	SinglesLosses int       `json:"singles_l"`
	DoublesWins   int       `json:"doubles_w"`
	DoublesLosses int       `json:"doubles_l"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Key returns the record's normalized identity.
func (r *Record) Key() string {
	return NormalizeName(r.Player)
}

// SinglesRecord renders the singles win-loss count as "W-L".
func (r *Record) SinglesRecord() string {
	return fmt.Sprintf("%d-%d", r.SinglesWins, r.SinglesLosses)
}

// DoublesRecord renders the doubles win-loss count as "W-L".
func (r *Record) DoublesRecord() string {
	return fmt.Sprintf("%d-%d", r.DoublesWins, r.DoublesLosses)
}

// FromPlayer builds a new Record from an extracted candidate with zeroed
// stats and an unresolved rating.
func FromPlayer(p Player, school, season string) *Record {
	return &Record{
		School:     school,
		Season:     season,
		Player:     p.Name,
		PlayerID:   p.ID,
		Year:       p.Year,
		Hometown:   p.Hometown,
		ProfileURL: p.ProfileURL,
		Rating:     Unknown,
		RatingURL:  Unknown,
		UpdatedAt:  time.Now().UTC(),
	}
}
