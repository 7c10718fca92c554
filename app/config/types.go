package config

// Config represents the sources.yml document
type Config struct {
	Sources  Sources  `yaml:"sources"`
	Keywords Keywords `yaml:"keywords"`
	Settings Settings `yaml:"settings"`
}

// Sources groups the configured feeds by kind
type Sources struct {
	RSS []SourceConfig `yaml:"rss"`
	API []SourceConfig `yaml:"api"`
}

// SourceConfig describes a single feed. API sources pick their adapter by Type.
type SourceConfig struct {
	Name           string `yaml:"name"`
	Type           string `yaml:"type"`
	URL            string `yaml:"url"`
	Enabled        *bool  `yaml:"enabled"`
	Timeout        int    `yaml:"timeout"`         // seconds
	ExtractContent bool   `yaml:"extract_content"` // fetch article text when the feed has no description

	// Source-specific parameters
	Subreddit   string `yaml:"subreddit"`
	Category    string `yaml:"category"`
	BearerToken string `yaml:"bearer_token"`
	Query       string `yaml:"query"`
	MaxResults  int    `yaml:"max_results"`
	Limit       int    `yaml:"limit"`
}

// Settings contains processing and presentation settings
type Settings struct {
	ItemsPerCategory int `yaml:"items_per_category"`
	WebPort          int `yaml:"web_port"`
	MaxItems         int `yaml:"max_items"` // rolling window kept in the store
	SummaryMaxLength int `yaml:"summary_max_length"`
}

// CategoryKeywords is one entry of the keywords mapping
type CategoryKeywords struct {
	Category string
	Keywords []string
}

// Keywords keeps the category order of the YAML document
type Keywords []CategoryKeywords

const (
	SourceTypeHackerNews = "hn"
	SourceTypeReddit     = "reddit"
	SourceTypeArXiv      = "arxiv"
	SourceTypeTwitter    = "twitter"
)
