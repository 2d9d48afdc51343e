package matcher

import (
	"strings"
	"unicode/utf8"
)

// Prefixes returns the name prefixes tried by the partial stage, shortest
// first. After the two-token prefix it inserts the first token followed by
// the initial of the second, so "JOAO SILVA JUNIOR" yields
// JOAO, JOAO SILVA, JOAO S, JOAO SILVA JUNIOR.
func Prefixes(name string) []string {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return nil
	}

	prefixes := make([]string, 0, len(tokens)+1)
	for i := range tokens {
		prefixes = append(prefixes, strings.Join(tokens[:i+1], " "))
		if i == 1 {
			initial, _ := utf8.DecodeRuneInString(tokens[1])
			prefixes = append(prefixes, tokens[0]+" "+string(initial))
		}
	}
	return prefixes
}

// significantTokens lowercases the tokens of name longer than two characters.
func significantTokens(name string) []string {
	var tokens []string
	for _, t := range strings.Fields(name) {
		if utf8.RuneCountInString(t) > 2 {
			tokens = append(tokens, strings.ToLower(t))
		}
	}
	return tokens
}
