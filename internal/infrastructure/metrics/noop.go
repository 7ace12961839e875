package metrics

import "time"

var _ Recorder = (*Noop)(nil)

// Noop discards everything; used when metrics are disabled.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (*Noop) RecordExchange(string, string)                        {}
func (*Noop) RecordStatus(string, int64)                           {}
func (*Noop) RecordHTTPRequest(string, string, int, time.Duration) {}
