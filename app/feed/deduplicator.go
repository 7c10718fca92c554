package feed

type Deduplicator struct{}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{}
}

// Run normalizes items and keeps the first occurrence of every link.
// Items without a link are dropped.
func (d *Deduplicator) Run(items []RawItem) []RawItem {
	seen := make(map[string]bool, len(items))
	unique := make([]RawItem, 0, len(items))

	for _, item := range items {
		item.Title = Normalize(item.Title)
		item.Summary = Normalize(item.Summary)
		item.Link = Normalize(item.Link)

		if item.Link == "" || seen[item.Link] {
			continue
		}
		seen[item.Link] = true
		unique = append(unique, item)
	}

	return unique
}
