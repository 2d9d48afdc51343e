package parser

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultExcludedMarker flags legacy lines that never carry a name.
const DefaultExcludedMarker = "0BD"

// Lines ending in digits followed by a letter are record codes, not names.
var legacyCodeSuffix = regexp.MustCompile(`[0-9][A-Za-z]$`)

// FilterLegacyLines applies the fixed-width export layout: the first two and
// last two lines are header and footer, only odd line numbers from line 3 on
// are name lines, and lines with the excluded marker or a trailing code are
// dropped.
func FilterLegacyLines(lines []string, marker string) []string {
	if len(lines) <= 4 {
		return nil
	}
	body := lines[2 : len(lines)-2]

	var kept []string
	for i, line := range body {
		lineNum := i + 3
		if lineNum%2 == 0 {
			continue
		}
		line = strings.TrimRight(line, "\r\n")
		if marker != "" && strings.Contains(line, marker) {
			continue
		}
		if legacyCodeSuffix.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

// ParseLegacy returns the candidate names of a legacy export, in order.
func ParseLegacy(lines []string, marker string) []string {
	var names []string
	for _, line := range FilterLegacyLines(lines, marker) {
		names = append(names, ScanNames(line)...)
	}
	return names
}

// ScanNames finds runs of upper-case (possibly accented) words in a line.
// A name starts and ends on a word boundary, spans at least three
// characters, and may contain inner whitespace.
func ScanNames(line string) []string {
	runes := []rune(line)
	var names []string

	for i := 0; i < len(runes); {
		if !isNameLetter(runes[i]) {
			i++
			continue
		}
		end := i
		for end < len(runes) && (isNameLetter(runes[end]) || unicode.IsSpace(runes[end])) {
			end++
		}
		names = append(names, scanRun(runes, i, end)...)
		i = end
	}
	return names
}

type span struct{ start, end int }

// scanRun extracts names from runes[start:end], a maximal stretch of name
// letters and whitespace that begins with a letter.
func scanRun(runes []rune, start, end int) []string {
	var words []span
	for i := start; i < end; {
		if !isNameLetter(runes[i]) {
			i++
			continue
		}
		j := i
		for j < end && isNameLetter(runes[j]) {
			j++
		}
		words = append(words, span{i, j})
		i = j
	}

	leftClean := func(w span) bool { return w.start == 0 || !isWordRune(runes[w.start-1]) }
	rightClean := func(w span) bool { return w.end == len(runes) || !isWordRune(runes[w.end]) }

	var names []string
	for i := 0; i < len(words); i++ {
		if !leftClean(words[i]) {
			continue
		}
		last := -1
		for j := len(words) - 1; j >= i; j-- {
			if rightClean(words[j]) && words[j].end-words[i].start >= 3 {
				last = j
				break
			}
		}
		if last < 0 {
			continue
		}
		names = append(names, string(runes[words[i].start:words[last].end]))
		i = last
	}
	return names
}

func isNameLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'Á' && r <= 'Ú')
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
