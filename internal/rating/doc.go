// Package rating resolves player skill ratings from the UTR search API.
//
// The lookup service conflates "no rating yet" with a literal zero, so a
// returned rating of exactly zero (or an absent field) is normalized to the
// Unrated sentinel and never treated as a real value. Among multiple
// candidates for a query, one affiliated with a college program is
// preferred over the first-returned result.
package rating
