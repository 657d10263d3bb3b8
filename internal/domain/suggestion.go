package domain

type Suggestion struct {
	Name        string  `json:"name"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int64   `json:"review_count"`
}
