package statement

import "strings"

// SentenceDelimiter separates sentences in cleaned text
const SentenceDelimiter = ". "

// SplitSentences splits text into the sentence pool.
// The split is a plain delimiter heuristic; repeated sentences are kept.
func SplitSentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	return strings.Split(text, SentenceDelimiter)
}

// Occurs reports whether term appears in sentence as a literal substring.
// There is no word-boundary check, so "array" occurs in "arrays".
func Occurs(sentence, term string) bool {
	return term != "" && strings.Contains(sentence, term)
}
