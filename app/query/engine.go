package query

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/lysyi3m/stellarpulse/app/feed"
)

type Ordering int

const (
	ByRecency Ordering = iota
	ByImportance
)

func ParseOrdering(value string) (Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "recency", "latest":
		return ByRecency, nil
	case "importance", "hot":
		return ByImportance, nil
	default:
		return ByRecency, fmt.Errorf("unknown ordering %q", value)
	}
}

const (
	LatestLimit   = 5
	HotLimit      = 5
	CategoryLimit = 8
	SearchLimit   = 8
	DefaultLimit  = 6
	MaxSelection  = 10
)

var (
	ErrEmptyQuery    = errors.New("search query is empty")
	ErrInvalidNumber = errors.New("invalid number")
	ErrOutOfRange    = fmt.Errorf("selection must be between 1 and %d", MaxSelection)
	ErrNoQuery       = errors.New("run a query first")
)

// ListTooShortError is returned by Select when the cached list has fewer
// entries than the requested position.
type ListTooShortError struct {
	Size int
}

func (e *ListTooShortError) Error() string {
	return fmt.Sprintf("only %d items in current list", e.Size)
}

type Query struct {
	Category string
	Text     string
	Ordering Ordering
	Limit    int
}

type ItemSource interface {
	LoadItems() ([]feed.Item, error)
}

// SessionCache holds the last page shown to a user. There is a single slot
// shared by everyone.
type SessionCache interface {
	Save(items []feed.Item) error
	Load() ([]feed.Item, error)
}

type Engine struct {
	items ItemSource
	cache SessionCache
}

func NewEngine(items ItemSource, cache SessionCache) *Engine {
	return &Engine{items: items, cache: cache}
}

// Find filters and orders the stored items without touching the session
// cache.
func (e *Engine) Find(q Query) ([]feed.Item, error) {
	items, err := e.items.LoadItems()
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}

	results := make([]feed.Item, 0, len(items))
	text := strings.ToLower(q.Text)
	for _, item := range items {
		if q.Category != "" && !item.HasCategory(q.Category) {
			continue
		}
		if text != "" && !strings.Contains(strings.ToLower(item.Title+item.Summary), text) {
			continue
		}
		results = append(results, item)
	}

	slices.SortStableFunc(results, orderingFunc(q.Ordering))

	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}
	return results, nil
}

// Run is Find followed by replacing the session cache with the result page.
func (e *Engine) Run(q Query) ([]feed.Item, error) {
	results, err := e.Find(q)
	if err != nil {
		return nil, err
	}

	if err := e.cache.Save(results); err != nil {
		slog.Warn("Failed to save session cache", "error", err)
	}
	return results, nil
}

func (e *Engine) Latest() ([]feed.Item, error) {
	return e.Run(Query{Ordering: ByRecency, Limit: LatestLimit})
}

func (e *Engine) Hot() ([]feed.Item, error) {
	return e.Run(Query{Ordering: ByImportance, Limit: HotLimit})
}

func (e *Engine) ByCategory(category string) ([]feed.Item, error) {
	return e.Run(Query{Category: category, Ordering: ByRecency, Limit: CategoryLimit})
}

func (e *Engine) Search(text string) ([]feed.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyQuery
	}
	return e.Run(Query{Text: text, Ordering: ByRecency, Limit: SearchLimit})
}

func (e *Engine) Default() ([]feed.Item, error) {
	return e.Run(Query{Ordering: ByRecency, Limit: DefaultLimit})
}

// Select returns the n-th (1-based) item of the cached page. The range check
// runs before the cache is consulted, so 9 or 10 against a short list is a
// ListTooShortError rather than ErrOutOfRange.
func (e *Engine) Select(input string) (feed.Item, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return feed.Item{}, ErrInvalidNumber
	}
	if n < 1 || n > MaxSelection {
		return feed.Item{}, ErrOutOfRange
	}

	cached, err := e.cache.Load()
	if err != nil {
		slog.Warn("Failed to load session cache", "error", err)
		cached = nil
	}
	if len(cached) == 0 {
		return feed.Item{}, ErrNoQuery
	}
	if n > len(cached) {
		return feed.Item{}, &ListTooShortError{Size: len(cached)}
	}

	return cached[n-1], nil
}

func orderingFunc(ordering Ordering) func(a, b feed.Item) int {
	if ordering == ByImportance {
		return func(a, b feed.Item) int {
			switch {
			case a.Importance > b.Importance:
				return -1
			case a.Importance < b.Importance:
				return 1
			}
			return 0
		}
	}
	return func(a, b feed.Item) int {
		return b.FetchedAt.Compare(a.FetchedAt)
	}
}
