package audit

import "log/slog"

// Observer receives progress checkpoints from a run. It decouples audit logic
// from presentation; the default implementation logs counters the way the
// operators expect to read them.
type Observer interface {
	StreamsListed(count int)
	StreamChecked(streamID string, violation bool)
	StreamSkipped(streamID string, reason error)
	RunCompleted(streams, violations int)
}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver returns the default Observer, reporting progress through the
// given logger.
func NewLogObserver(logger *slog.Logger) Observer {
	return logObserver{logger: logger}
}

func (o logObserver) StreamsListed(count int) {
	o.logger.Info("retrieved external active streams", "count", count)
}

func (o logObserver) StreamChecked(streamID string, violation bool) {
	if violation {
		o.logger.Debug("stream does not meet criteria", "stream_id", streamID)
		return
	}
	o.logger.Debug("stream meets criteria", "stream_id", streamID)
}

func (o logObserver) StreamSkipped(streamID string, reason error) {
	o.logger.Warn("stream skipped", "stream_id", streamID, "reason", reason)
}

func (o logObserver) RunCompleted(streams, violations int) {
	o.logger.Info("audit run completed", "streams", streams, "violations", violations)
}
