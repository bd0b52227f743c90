package search

import (
	"math"
	"slices"
	"strings"
	"unicode"
)

// DefaultSuggestions is the number of names SuggestNames returns when the
// caller does not ask for a specific count.
const DefaultSuggestions = 20

// Scorer selects the similarity algorithm used to rank candidates.
type Scorer int

const (
	// TokenSet compares the sorted token sets of both strings. It ignores
	// word order and case, so "bar" scores 100 against "Cocktail Bar".
	TokenSet Scorer = iota
	// PartialTokenSet is TokenSet with substring alignment, and any shared
	// token is a perfect match. It suits incremental input like "Abs".
	PartialTokenSet
)

func (s Scorer) String() string {
	switch s {
	case TokenSet:
		return "token_set"
	case PartialTokenSet:
		return "partial_token_set"
	default:
		return "unknown"
	}
}

// Match is one ranked candidate. Index is its position in the input.
type Match struct {
	Value string `json:"value"`
	Score int    `json:"score"`
	Index int    `json:"-"`
}

// Score returns the 0-100 similarity of candidate to query.
func (s Scorer) Score(query, candidate string) int {
	return s.score(tokenize(query), tokenize(candidate))
}

func (s Scorer) score(query, candidate []string) int {
	return tokenSetRatio(query, candidate, s == PartialTokenSet)
}

// Rank scores every candidate against query and returns all of them ordered
// by descending score. Equal scores keep their input order, so the result is
// deterministic for a given candidate sequence. Weak or absent matches are
// still returned with their low scores.
func Rank(query string, candidates []string, scorer Scorer) ([]Match, error) {
	if len(candidates) == 0 {
		return nil, ErrEmptyCandidateSet
	}

	q := tokenize(query)
	matches := make([]Match, len(candidates))
	for i, c := range candidates {
		matches[i] = Match{Value: c, Score: scorer.score(q, tokenize(c)), Index: i}
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		return b.Score - a.Score
	})
	return matches, nil
}

// SuggestNames ranks candidates with the partial token-set scorer and
// returns the topN best values. A non-positive topN selects DefaultSuggestions.
func SuggestNames(query string, candidates []string, topN int) ([]string, error) {
	if topN <= 0 {
		topN = DefaultSuggestions
	}
	matches, err := Rank(query, candidates, PartialTokenSet)
	if err != nil {
		return nil, err
	}
	return matchValues(matches, topN), nil
}

func matchValues(matches []Match, limit int) []string {
	limit = clamp(limit, len(matches))
	values := make([]string, limit)
	for i := range limit {
		values[i] = matches[i].Value
	}
	return values
}

// tokenize folds case, treats anything that is not a letter or digit as a
// separator and returns the distinct tokens in sorted order.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	slices.Sort(fields)
	return slices.Compact(fields)
}

func tokenSetRatio(a, b []string, partial bool) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var intersection, onlyA, onlyB []string
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			intersection = append(intersection, a[i])
			i++
			j++
		case a[i] < b[j]:
			onlyA = append(onlyA, a[i])
			i++
		default:
			onlyB = append(onlyB, b[j])
			j++
		}
	}
	onlyA = append(onlyA, a[i:]...)
	onlyB = append(onlyB, b[j:]...)

	if partial && len(intersection) > 0 {
		return 100
	}

	sect := strings.Join(intersection, " ")
	combinedA := strings.TrimSpace(sect + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(sect + " " + strings.Join(onlyB, " "))

	ratioFn := ratio
	if partial {
		ratioFn = partialRatio
	}
	return max(
		ratioFn([]rune(sect), []rune(combinedA)),
		ratioFn([]rune(sect), []rune(combinedB)),
		ratioFn([]rune(combinedA), []rune(combinedB)),
	)
}

// ratio is the indel similarity 2*LCS/(len(a)+len(b)) scaled to 0-100.
func ratio(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	lcs := longestCommonSubsequence(a, b)
	return int(math.Round(200 * float64(lcs) / float64(len(a)+len(b))))
}

// partialRatio slides the shorter string over every same-length window of
// the longer one and keeps the best ratio.
func partialRatio(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	short, long := a, b
	if len(short) > len(long) {
		short, long = long, short
	}

	best := 0
	for start := 0; start+len(short) <= len(long); start++ {
		best = max(best, ratio(short, long[start:start+len(short)]))
		if best == 100 {
			break
		}
	}
	return best
}

func longestCommonSubsequence(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func clamp(limit, n int) int {
	return max(0, min(limit, n))
}
