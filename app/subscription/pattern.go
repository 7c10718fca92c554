package subscription

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// CompilePattern turns a wildcard keyword into an unanchored, lower-case
// regular expression. '*' matches any run of characters and '?' exactly one;
// everything else is literal.
func CompilePattern(keyword string) (*regexp.Regexp, error) {
	var expr strings.Builder
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			expr.WriteString(regexp.QuoteMeta(literal.String()))
			literal.Reset()
		}
	}

	for _, r := range strings.ToLower(keyword) {
		switch r {
		case '*':
			flush()
			expr.WriteString(".*")
		case '?':
			flush()
			expr.WriteString(".")
		default:
			literal.WriteRune(r)
		}
	}
	flush()

	pattern, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", keyword, err)
	}
	return pattern, nil
}

type PatternCache struct {
	mu       sync.RWMutex
	patterns map[string]*regexp.Regexp
}

func NewPatternCache() *PatternCache {
	return &PatternCache{patterns: make(map[string]*regexp.Regexp)}
}

func (c *PatternCache) Get(keyword string) (*regexp.Regexp, error) {
	c.mu.RLock()
	pattern, ok := c.patterns[keyword]
	c.mu.RUnlock()
	if ok {
		return pattern, nil
	}

	pattern, err := CompilePattern(keyword)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.patterns[keyword] = pattern
	c.mu.Unlock()

	return pattern, nil
}

// Matches reports whether keyword occurs anywhere in text, ignoring case.
func (c *PatternCache) Matches(keyword, text string) bool {
	pattern, err := c.Get(keyword)
	if err != nil {
		return false
	}
	return pattern.MatchString(strings.ToLower(text))
}
