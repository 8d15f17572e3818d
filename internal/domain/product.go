package domain

import "strings"

type Product struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Price            float64 `json:"price"`
	ShortDescription string  `json:"short_description"`
	Description      string  `json:"description"`
	Image            string  `json:"image"`
	Validity         string  `json:"validity"`
	Features         string  `json:"features"`
	Highlights       string  `json:"highlights"`
}

// FeatureList splits the comma-delimited features column.
func (p Product) FeatureList() []string {
	return splitList(p.Features)
}

// HighlightList splits the comma-delimited highlights column.
func (p Product) HighlightList() []string {
	return splitList(p.Highlights)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
