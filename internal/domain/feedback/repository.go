package feedback

import "context"

type Repository interface {
	// List returns all feedback ordered by timestamp ascending.
	List(ctx context.Context) ([]*Feedback, error)

	// Metrics returns one card per category in display order.
	Metrics(ctx context.Context) ([]MetricCard, error)
}
