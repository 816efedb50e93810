package models

// Stats summarises the collection for the statistics tab.
type Stats struct {
	TotalWords     int            `json:"totalWords"`
	BookCounts     map[string]int `json:"bookCounts"`
	CategoryCounts map[string]int `json:"categoryCounts"`
}
