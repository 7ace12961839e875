package usecases

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pulse-inc/pulse/internal/application/feedback/dto"
	"github.com/pulse-inc/pulse/internal/domain/feedback"
	"github.com/pulse-inc/pulse/internal/shared/biztime"
	"github.com/pulse-inc/pulse/internal/shared/errors"
	"github.com/pulse-inc/pulse/internal/shared/logger"
)

const (
	MinDashboardDays = 1
	MaxDashboardDays = 90
)

// MarkdownRenderer turns feedback markdown into sanitized HTML.
type MarkdownRenderer interface {
	ToHTMLSanitized(markdown string) (string, error)
}

type GetDashboardQuery struct {
	Days int
}

type GetDashboardUseCase struct {
	repo        feedback.Repository
	renderer    MarkdownRenderer
	defaultDays int
	logger      logger.Interface
}

func NewGetDashboardUseCase(repo feedback.Repository, renderer MarkdownRenderer, defaultDays int, logger logger.Interface) *GetDashboardUseCase {
	if defaultDays < MinDashboardDays || defaultDays > MaxDashboardDays {
		defaultDays = 7
	}
	return &GetDashboardUseCase{
		repo:        repo,
		renderer:    renderer,
		defaultDays: defaultDays,
		logger:      logger,
	}
}

// Execute builds the dashboard for the window of query.Days business days
// ending on the day of the newest feedback entry.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, query GetDashboardQuery) (*dto.DashboardDTO, error) {
	days := query.Days
	if days == 0 {
		days = uc.defaultDays
	}
	if days < MinDashboardDays || days > MaxDashboardDays {
		return nil, errors.NewValidationError(fmt.Sprintf("days must be between %d and %d", MinDashboardDays, MaxDashboardDays))
	}

	metrics, err := uc.repo.Metrics(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load metrics", "error", err)
		return nil, errors.NewInternalError("failed to load metrics")
	}
	items, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load feedback", "error", err)
		return nil, errors.NewInternalError("failed to load feedback")
	}

	result := &dto.DashboardDTO{
		Days:     days,
		Metrics:  toMetricDTOs(metrics),
		Trend:    []*dto.TrendPointDTO{},
		Feedback: []*dto.FeedbackDTO{},
	}
	if len(items) == 0 {
		return result, nil
	}

	asOf := items[0].Timestamp
	for _, f := range items[1:] {
		if f.Timestamp.After(asOf) {
			asOf = f.Timestamp
		}
	}
	result.AsOf = &asOf

	window := make(map[string]bool, days)
	for _, key := range biztime.LastDays(asOf, days) {
		window[key] = true
	}

	trend := make(map[string]*dto.TrendPointDTO)
	for _, f := range items {
		day := biztime.DayKey(f.Timestamp)
		if !window[day] {
			continue
		}

		point, ok := trend[day]
		if !ok {
			point = &dto.TrendPointDTO{Date: day, Categories: map[string]int{}}
			trend[day] = point
		}
		point.Categories[string(f.Category)] += f.Score
		point.Total += f.Score

		html, err := uc.renderer.ToHTMLSanitized(f.Content)
		if err != nil {
			uc.logger.Warnw("failed to render feedback content", "feedback_id", f.ID, "error", err)
		}
		result.Feedback = append(result.Feedback, toFeedbackDTO(f, html))
	}

	for _, point := range trend {
		result.Trend = append(result.Trend, point)
	}
	sort.Slice(result.Trend, func(i, j int) bool {
		return result.Trend[i].Date < result.Trend[j].Date
	})

	return result, nil
}

func toMetricDTOs(cards []feedback.MetricCard) []*dto.MetricCardDTO {
	title := cases.Title(language.English)
	result := make([]*dto.MetricCardDTO, 0, len(cards))
	for _, c := range cards {
		result = append(result, &dto.MetricCardDTO{
			Category: title.String(string(c.Category)),
			Score:    c.Score,
			Change:   c.Change,
			Color:    c.Color,
		})
	}
	return result
}

func toFeedbackDTO(f *feedback.Feedback, html string) *dto.FeedbackDTO {
	return &dto.FeedbackDTO{
		ID:          f.ID,
		Source:      string(f.Source),
		Content:     f.Content,
		ContentHTML: html,
		Sentiment:   string(f.Sentiment),
		Category:    string(f.Category),
		Timestamp:   f.Timestamp,
		Persona:     f.Persona,
		Score:       f.Score,
	}
}
