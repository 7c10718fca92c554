package analysis

type Result struct {
	Summary    string
	Keywords   []string
	Sentiment  Sentiment
	Importance float64
}

// Analyzer derives the heuristic summary, keywords, sentiment and
// importance of one item. It holds no mutable state and is safe for
// concurrent use.
type Analyzer struct {
	summarizer *Summarizer
	extractor  *KeywordExtractor
}

func NewAnalyzer(summaryLength int) *Analyzer {
	return &Analyzer{
		summarizer: NewSummarizer(summaryLength),
		extractor:  NewKeywordExtractor(DefaultKeywordCount),
	}
}

func (a *Analyzer) Run(title, content string) Result {
	combined := title + " " + content

	return Result{
		Summary:    a.summarizer.Run(content, title),
		Keywords:   a.extractor.Run(combined),
		Sentiment:  DetectSentiment(combined),
		Importance: ScoreImportance(combined),
	}
}
