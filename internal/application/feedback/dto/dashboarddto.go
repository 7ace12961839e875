package dto

import "time"

type MetricCardDTO struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
	Change   int    `json:"change"`
	Color    string `json:"color"`
}

// TrendPointDTO sums feedback scores of one business day.
type TrendPointDTO struct {
	Date       string         `json:"date"`
	Categories map[string]int `json:"categories"`
	Total      int            `json:"total"`
}

type FeedbackDTO struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html"`
	Sentiment   string    `json:"sentiment"`
	Category    string    `json:"category"`
	Timestamp   time.Time `json:"timestamp"`
	Persona     string    `json:"persona"`
	Score       int       `json:"score"`
}

type DashboardDTO struct {
	Days     int              `json:"days"`
	AsOf     *time.Time       `json:"as_of,omitempty"`
	Metrics  []*MetricCardDTO `json:"metrics"`
	Trend    []*TrendPointDTO `json:"trend"`
	Feedback []*FeedbackDTO   `json:"feedback"`
}
