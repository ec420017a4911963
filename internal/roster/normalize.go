package roster

import (
	"regexp"
	"strings"
)

// nonAlpha matches every rune outside the lowercase-letter/space alphabet.
var nonAlpha = regexp.MustCompile(`[^a-z ]`)

// NormalizeName derives the canonical identity key for a display name:
// lowercase, strip everything outside [a-z ], trim. The derivation is pure
// and deterministic, so the key can join records across independently
// fetched documents. Two display names with the same key are the same
// athlete.
func NormalizeName(name string) string {
	return strings.TrimSpace(nonAlpha.ReplaceAllString(strings.ToLower(name), ""))
}

// yearVocab maps the academic-year vocabulary observed across Sidearm sites
// to a fixed set of abbreviations.
var yearVocab = map[string]string{
	"freshman":           "Fr",
	"fr":                 "Fr",
	"sophomore":          "So",
	"so":                 "So",
	"junior":             "Jr",
	"jr":                 "Jr",
	"senior":             "Sr",
	"sr":                 "Sr",
	"graduate":           "Grad",
	"grad":               "Grad",
	"5th year":           "Grad",
	"fifth year":         "Grad",
	"redshirt":           "RS",
	"redshirt freshman":  "RS Fr",
	"redshirt sophomore": "RS So",
	"redshirt junior":    "RS Jr",
	"redshirt senior":    "RS Sr",
}

// maxYearLen guards against capturing an unrelated block of page text in
// place of a short year label.
const maxYearLen = 30

// CanonicalYear maps raw academic-year text to the fixed abbreviation
// vocabulary after lowercasing and trailing-period removal. Unrecognized
// input is returned title-cased rather than discarded; empty or implausibly
// long input resolves to Unknown.
func CanonicalYear(text string) string {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > maxYearLen {
		return Unknown
	}
	key := strings.TrimRight(strings.ToLower(text), ".")
	if abbr, ok := yearVocab[key]; ok {
		return abbr
	}
	return strings.Title(strings.ToLower(text)) // nolint:staticcheck
}

// MaxHometownLen is the longest string accepted as a hometown before it is
// assumed to be misparsed page text.
const MaxHometownLen = 100

// hometownShape matches "City, ST" / "Los Angeles, CA" shapes.
var hometownShape = regexp.MustCompile(`[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*,\s*[A-Z]{2,}`)

// PlausibleHometown reports whether text can be accepted as-is.
func PlausibleHometown(text string) bool {
	text = strings.TrimSpace(text)
	return text != "" && text != Unknown && len(text) < MaxHometownLen
}

// RescueHometown searches surrounding context for a "City, Region" shape.
// Card text runs fields together, so the shape can capture a preceding
// academic-year word ("Junior Los Angeles, CA"); leading year-vocabulary
// tokens are stripped from the match. Returns Unknown when nothing matches.
func RescueHometown(context string) string {
	m := hometownShape.FindString(context)
	if m == "" {
		return Unknown
	}

	city, region, _ := strings.Cut(m, ",")
	words := strings.Fields(city)
	for len(words) > 1 {
		if _, isYear := yearVocab[strings.ToLower(words[0])]; !isYear {
			break
		}
		words = words[1:]
	}
	return strings.Join(words, " ") + "," + region
}
