// Package seeds ships the default dashboard data.
package seeds

import _ "embed"

// FeedbackYAML is the built-in dashboard seed, used when dashboard.seed_file is empty.
//
//go:embed feedback.yaml
var FeedbackYAML []byte
