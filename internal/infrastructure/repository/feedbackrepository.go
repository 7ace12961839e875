package repository

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pulse-inc/pulse/internal/domain/feedback"
	"github.com/pulse-inc/pulse/internal/infrastructure/persistence/seeds"
)

type feedbackSeed struct {
	Metrics []struct {
		Category string `yaml:"category"`
		Score    int    `yaml:"score"`
		Change   int    `yaml:"change"`
		Color    string `yaml:"color"`
	} `yaml:"metrics"`
	Feedback []struct {
		ID        string    `yaml:"id"`
		Source    string    `yaml:"source"`
		Content   string    `yaml:"content"`
		Sentiment string    `yaml:"sentiment"`
		Category  string    `yaml:"category"`
		Timestamp time.Time `yaml:"timestamp"`
		Persona   string    `yaml:"persona"`
		Score     int       `yaml:"score"`
	} `yaml:"feedback"`
}

// SeedFeedbackRepository serves dashboard data parsed once from YAML.
type SeedFeedbackRepository struct {
	items   []*feedback.Feedback
	metrics []feedback.MetricCard
}

// NewSeedFeedbackRepository loads path, or the embedded seed when path is empty.
func NewSeedFeedbackRepository(path string) (*SeedFeedbackRepository, error) {
	data := seeds.FeedbackYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read feedback seed: %w", err)
		}
		data = b
	}
	return ParseFeedbackSeed(data)
}

func ParseFeedbackSeed(data []byte) (*SeedFeedbackRepository, error) {
	var seed feedbackSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse feedback seed: %w", err)
	}

	repo := &SeedFeedbackRepository{}
	for _, m := range seed.Metrics {
		category := feedback.Category(m.Category)
		if !category.IsValid() {
			return nil, fmt.Errorf("metric has unknown category %q", m.Category)
		}
		repo.metrics = append(repo.metrics, feedback.MetricCard{
			Category: category,
			Score:    m.Score,
			Change:   m.Change,
			Color:    m.Color,
		})
	}

	for _, f := range seed.Feedback {
		item := &feedback.Feedback{
			ID:        f.ID,
			Source:    feedback.Source(f.Source),
			Content:   f.Content,
			Sentiment: feedback.Sentiment(f.Sentiment),
			Category:  feedback.Category(f.Category),
			Timestamp: f.Timestamp.UTC(),
			Persona:   f.Persona,
			Score:     f.Score,
		}
		if err := item.Validate(); err != nil {
			return nil, err
		}
		repo.items = append(repo.items, item)
	}
	sort.SliceStable(repo.items, func(i, j int) bool {
		return repo.items[i].Timestamp.Before(repo.items[j].Timestamp)
	})

	return repo, nil
}

func (r *SeedFeedbackRepository) List(_ context.Context) ([]*feedback.Feedback, error) {
	return r.items, nil
}

func (r *SeedFeedbackRepository) Metrics(_ context.Context) ([]feedback.MetricCard, error) {
	return r.metrics, nil
}
