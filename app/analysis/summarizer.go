package analysis

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

const DefaultSummaryLength = 150

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	digitPattern      = regexp.MustCompile(`\d`)
)

var signalWords = []string{
	"announced", "launched", "developed", "achieved",
	"发布", "推出", "实现", "完成", "突破", "首次",
}

type Summarizer struct {
	maxLength int
}

func NewSummarizer(maxLength int) *Summarizer {
	if maxLength <= 0 {
		maxLength = DefaultSummaryLength
	}
	return &Summarizer{maxLength: maxLength}
}

// Run picks the two highest scoring sentences of text. Text that already
// fits is returned untouched.
func (s *Summarizer) Run(text, title string) string {
	if utf8.RuneCountInString(text) <= s.maxLength {
		return text
	}

	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	sentences := splitSentences(text)
	if len(sentences) <= 2 {
		return TruncateRunes(text, s.maxLength) + "..."
	}

	type scored struct {
		index int
		score float64
	}

	candidates := make([]scored, len(sentences))
	for i, sentence := range sentences {
		candidates[i] = scored{index: i, score: scoreSentence(sentence, title)}
	}
	slices.SortStableFunc(candidates, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return 0
	})

	selected := []int{candidates[0].index, candidates[1].index}
	slices.Sort(selected)

	summary := sentences[selected[0]] + " " + sentences[selected[1]]
	if utf8.RuneCountInString(summary) <= s.maxLength {
		return summary
	}

	cut := TruncateRunes(summary, s.maxLength)
	if i := strings.LastIndex(cut, " "); i >= 0 {
		cut = cut[:i]
	}
	return cut + "..."
}

// splitSentences breaks after a terminator (。！？.!?) that is followed by
// whitespace. Terminators stay attached to their sentence, so unspaced CJK
// text is a single sentence.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)

		if !strings.ContainsRune("。！？.!?", r) || i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}

		sentences = appendSentence(sentences, current.String())
		current.Reset()
		for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			i++
		}
	}

	return appendSentence(sentences, current.String())
}

func appendSentence(sentences []string, sentence string) []string {
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return sentences
	}
	return append(sentences, sentence)
}

func scoreSentence(sentence, title string) float64 {
	score := 0.0
	lower := strings.ToLower(sentence)

	length := utf8.RuneCountInString(sentence)
	if length >= 50 && length <= 200 {
		score += 1.0
	} else if length > 200 {
		score += 0.5
	}

	for _, word := range signalWords {
		if strings.Contains(lower, word) {
			score += 0.5
		}
	}

	if digitPattern.MatchString(sentence) {
		score += 0.3
	}

	if title != "" {
		titleWords := wordSet(strings.ToLower(title))
		for word := range wordSet(lower) {
			if titleWords[word] {
				score += 0.2
			}
		}
	}

	return score
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(text) {
		set[word] = true
	}
	return set
}

// TruncateRunes cuts text to at most limit runes.
func TruncateRunes(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	count := 0
	for i := range text {
		if count == limit {
			return text[:i]
		}
		count++
	}
	return text
}
