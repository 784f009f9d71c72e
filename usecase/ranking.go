package usecase

import (
	"sort"
	"time"
	"unicode"
)

// FilterByDuration keeps the videos whose duration equals target exactly
func FilterByDuration(durations map[string]time.Duration, target time.Duration) map[string]time.Duration {
	matched := make(map[string]time.Duration)
	for id, d := range durations {
		if d == target {
			matched[id] = d
		}
	}
	return matched
}

// RankVideoIDs orders ids ascending by uppercase count, then digit count, then duration.
// Equal keys keep lexicographic id order.
func RankVideoIDs(durations map[string]time.Duration) []string {
	ids := make([]string, 0, len(durations))
	for id := range durations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	type rankKey struct {
		upper    int
		digits   int
		duration time.Duration
	}
	keys := make(map[string]rankKey, len(ids))
	for _, id := range ids {
		keys[id] = rankKey{upper: countUpper(id), digits: countDigits(id), duration: durations[id]}
	}

	sort.SliceStable(ids, func(i, j int) bool {
		a, b := keys[ids[i]], keys[ids[j]]
		if a.upper != b.upper {
			return a.upper < b.upper
		}
		if a.digits != b.digits {
			return a.digits < b.digits
		}
		return a.duration < b.duration
	})
	return ids
}

func countUpper(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsUpper(r) {
			n++
		}
	}
	return n
}

// countDigits counts ASCII digits only
func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
