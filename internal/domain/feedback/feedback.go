// Package feedback holds the read model behind the dashboard widgets.
package feedback

import (
	"fmt"
	"time"
)

type Source string

const (
	SourceCall   Source = "call"
	SourceTicket Source = "ticket"
	SourceSlack  Source = "slack"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

type Category string

const (
	CategorySecurity    Category = "security"
	CategoryReliability Category = "reliability"
	CategoryPerformance Category = "performance"
	CategoryUsability   Category = "usability"
	CategoryValue       Category = "value"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategorySecurity,
	CategoryReliability,
	CategoryPerformance,
	CategoryUsability,
	CategoryValue,
}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Feedback is one piece of customer feedback. Content is markdown.
type Feedback struct {
	ID        string
	Source    Source
	Content   string
	Sentiment Sentiment
	Category  Category
	Timestamp time.Time
	Persona   string
	Score     int
}

// Validate checks enumerations and the 0..100 score range.
func (f *Feedback) Validate() error {
	switch f.Source {
	case SourceCall, SourceTicket, SourceSlack:
	default:
		return fmt.Errorf("feedback %s: unknown source %q", f.ID, f.Source)
	}
	switch f.Sentiment {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
	default:
		return fmt.Errorf("feedback %s: unknown sentiment %q", f.ID, f.Sentiment)
	}
	if !f.Category.IsValid() {
		return fmt.Errorf("feedback %s: unknown category %q", f.ID, f.Category)
	}
	if f.Score < 0 || f.Score > 100 {
		return fmt.Errorf("feedback %s: score %d out of range", f.ID, f.Score)
	}
	if f.Timestamp.IsZero() {
		return fmt.Errorf("feedback %s: timestamp is required", f.ID)
	}
	return nil
}

// MetricCard is the headline score of one category.
type MetricCard struct {
	Category Category
	Score    int
	Change   int
	Color    string
}
