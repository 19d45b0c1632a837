package domain

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ParseKind resolves user input to a Kind.
// Accepts exact names, plural forms and labels ("movies", "tv series"), "all"
// or empty for any kind, and otherwise the closest fuzzy match ("epi" -> episode).
func ParseKind(input string) (Kind, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch s {
	case "", "all", "any":
		return KindAny, nil
	}

	candidates := make([]string, 0, len(Kinds)-1)
	byName := make(map[string]Kind)
	for _, k := range Kinds[1:] {
		candidates = append(candidates, string(k))
		byName[string(k)] = k
		byName[strings.ToLower(k.Label())] = k
	}
	if k, ok := byName[s]; ok {
		return k, nil
	}
	if k, ok := byName[strings.TrimSuffix(s, "s")]; ok {
		return k, nil
	}

	ranks := fuzzy.RankFindNormalizedFold(s, candidates)
	if len(ranks) == 0 {
		return KindAny, fmt.Errorf("%w: %q", ErrUnknownKind, input)
	}
	best, ties := ranks[0], 0
	for _, r := range ranks[1:] {
		switch {
		case r.Distance < best.Distance:
			best, ties = r, 0
		case r.Distance == best.Distance:
			ties++
		}
	}
	if ties > 0 {
		return KindAny, fmt.Errorf("%w: %q is ambiguous", ErrUnknownKind, input)
	}
	return byName[best.Target], nil
}
