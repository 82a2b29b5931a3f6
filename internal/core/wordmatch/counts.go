package wordmatch

// TokenCounts is a token multiset: per-token occurrence counts, the total
// number of occurrences, and the first-appearance order of distinct tokens.
// Order is what makes missing-word listings reproducible; the score itself
// only depends on the counts.
type TokenCounts struct {
	ByToken map[string]int
	Total   int
	Order   []string
}

// Add records one token occurrence.
func (c *TokenCounts) Add(token string) {
	if c.ByToken == nil {
		c.ByToken = make(map[string]int)
	}
	if c.ByToken[token] == 0 {
		c.Order = append(c.Order, token)
	}
	c.ByToken[token]++
	c.Total++
}

// CountTokens folds a token sequence into a TokenCounts.
func CountTokens(tokens []string) TokenCounts {
	var c TokenCounts
	c.ByToken = make(map[string]int, len(tokens))
	for _, t := range tokens {
		c.Add(t)
	}
	return c
}
