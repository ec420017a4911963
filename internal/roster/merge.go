package roster

import (
	"sort"
	"time"
)

// Dataset is the persisted roster set for one site, keyed by normalized
// identity.
type Dataset map[string]*Record

// NewDataset builds a Dataset from a list of records. Later records with a
// duplicate identity replace earlier ones.
func NewDataset(records []*Record) Dataset {
	ds := make(Dataset, len(records))
	for _, r := range records {
		ds[r.Key()] = r
	}
	return ds
}

// Records returns the dataset's records sorted by player name for stable
// output.
func (ds Dataset) Records() []*Record {
	out := make([]*Record, 0, len(ds))
	for _, r := range ds {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].School != out[j].School {
			return out[i].School < out[j].School
		}
		return out[i].Player < out[j].Player
	})
	return out
}

// Upsert merges a fresh scrape into the previously persisted dataset and
// returns the result.
//
// Semantics: union by normalized identity. An incoming record replaces the
// year, hometown, rating, and stats fields of an existing one; identities
// present only in the existing set are retained untouched, so a transient
// fetch failure never deletes an athlete. The operation is idempotent:
// applying the same fresh set twice yields the same dataset.
func Upsert(existing Dataset, fresh []*Record) Dataset {
	merged := make(Dataset, len(existing)+len(fresh))
	for key, rec := range existing {
		cp := *rec
		merged[key] = &cp
	}

	now := time.Now().UTC()
	for _, in := range fresh {
		key := in.Key()
		prev, ok := merged[key]
		if !ok {
			in.UpdatedAt = now
			merged[key] = in
			continue
		}

		// Replace volatile fields wholesale; identity fields only when
		// the incoming side actually resolved them.
		prev.Season = in.Season
		prev.Year = in.Year
		prev.Hometown = in.Hometown
		prev.Rating = in.Rating
		prev.RatingURL = in.RatingURL
		prev.SinglesWins = in.SinglesWins
		prev.SinglesLosses = in.SinglesLosses
		prev.DoublesWins = in.DoublesWins
		prev.DoublesLosses = in.DoublesLosses
		if in.ProfileURL != "" && in.ProfileURL != Unknown {
			prev.ProfileURL = in.ProfileURL
		}
		if in.PlayerID != "" {
			prev.PlayerID = in.PlayerID
		}
		prev.UpdatedAt = now
	}

	return merged
}
