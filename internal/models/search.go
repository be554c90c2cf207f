package models

// SearchResult partitions search matches by collection.
type SearchResult struct {
	Scholarships []Scholarship `json:"scholarships"`
	Articles     []Article     `json:"articles"`
	Countries    []Country     `json:"countries"`
	Universities []University  `json:"universities"`
	News         []News        `json:"news"`
}

// Total counts matches across all collections.
func (r SearchResult) Total() int {
	return len(r.Scholarships) + len(r.Articles) + len(r.Countries) + len(r.Universities) + len(r.News)
}
