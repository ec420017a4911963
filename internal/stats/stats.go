package stats

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/emmalilie/scouting-strategy-yr2526/internal/roster"
)

// Entry holds one player's win/loss counters for both match formats.
type Entry struct {
	SinglesWins   int
	SinglesLosses int
	DoublesWins   int
	DoublesLosses int
}

// Table maps normalized identity to its stats entry.
type Table map[string]Entry

// Column header aliases observed across Sidearm stats pages. Order in the
// header row varies; positions are detected per table.
var (
	singlesWinAliases  = aliasSet("sw", "s-w", "singles_w", "singles wins", "w", "wins")
	singlesLossAliases = aliasSet("sl", "s-l", "singles_l", "singles losses", "l", "losses")
	doublesWinAliases  = aliasSet("dw", "d-w", "doubles_w", "doubles wins")
	doublesLossAliases = aliasSet("dl", "d-l", "doubles_l", "doubles losses")
)

// headerMarkers are labels whose presence identifies the header row.
var headerMarkers = []string{"w", "l", "s-w", "d-w", "sw", "dw"}

// skipRows are first-column values that are not player names.
var skipRows = map[string]bool{
	"total": true, "totals": true, "team": true,
	"singles": true, "percentage": true, "": true,
}

func aliasSet(aliases ...string) map[string]bool {
	set := make(map[string]bool, len(aliases))
	for _, a := range aliases {
		set[a] = true
	}
	return set
}

// Parse extracts the stats table from raw HTML. Tables without a
// recognizable header row are skipped; an unparsable document yields an
// empty Table, not an error.
func Parse(html []byte) Table {
	result := make(Table)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return result
	}

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return
		}

		// The header row is one of the first few rows containing a
		// stat-like label; pages put a banner row above it.
		headerIdx := -1
		var headers []string
		scanLimit := rows.Length()
		if scanLimit > 5 {
			scanLimit = 5
		}
		for i := 0; i < scanLimit; i++ {
			var texts []string
			rows.Eq(i).Find("th, td").Each(func(_ int, cell *goquery.Selection) {
				texts = append(texts, strings.ToLower(strings.TrimSpace(cell.Text())))
			})
			if containsMarker(texts) {
				headerIdx = i
				headers = texts
				break
			}
		}
		if headerIdx == -1 {
			return
		}

		sw := colIndex(headers, singlesWinAliases)
		sl := colIndex(headers, singlesLossAliases)
		dw := colIndex(headers, doublesWinAliases)
		dl := colIndex(headers, doublesLossAliases)

		// Positional fallback for the common Name|SW|SL|S%|DW|DL|D% shape
		if sw == -1 && len(headers) >= 6 {
			sw, sl, dw, dl = 1, 2, 4, 5
		}

		rows.Slice(headerIdx+1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			var cols []string
			row.Find("td").Each(func(_ int, cell *goquery.Selection) {
				cols = append(cols, strings.TrimSpace(cell.Text()))
			})
			if len(cols) == 0 {
				return
			}
			name := cols[0]
			if skipRows[strings.ToLower(name)] {
				return
			}

			result[roster.NormalizeName(name)] = Entry{
				SinglesWins:   intAt(cols, sw),
				SinglesLosses: intAt(cols, sl),
				DoublesWins:   intAt(cols, dw),
				DoublesLosses: intAt(cols, dl),
			}
		})
	})

	return result
}

func containsMarker(texts []string) bool {
	for _, t := range texts {
		for _, m := range headerMarkers {
			if t == m {
				return true
			}
		}
	}
	return false
}

func colIndex(headers []string, aliases map[string]bool) int {
	for i, h := range headers {
		if aliases[strings.TrimSpace(h)] {
			return i
		}
	}
	return -1
}

func intAt(cols []string, idx int) int {
	if idx < 0 || idx >= len(cols) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(cols[idx]))
	if err != nil {
		return 0
	}
	return n
}

// Match finds the stats entry for a normalized identity. Lookup order:
//  1. exact key match;
//  2. last-name fallback: the identity's final whitespace token against
//     each candidate key's token set, first satisfying candidate wins —
//     two athletes sharing a surname are resolved arbitrarily by
//     iteration order, a known limitation kept from observed behavior;
//  3. zero-valued entry.
func (t Table) Match(normName string) Entry {
	if entry, ok := t[normName]; ok {
		return entry
	}

	tokens := strings.Fields(normName)
	if len(tokens) == 0 {
		return Entry{}
	}
	last := tokens[len(tokens)-1]

	for key, entry := range t {
		for _, tok := range strings.Fields(key) {
			if tok == last {
				return entry
			}
		}
	}

	return Entry{}
}
