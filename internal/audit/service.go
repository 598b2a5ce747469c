package audit

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks StreamLister,MembershipLister,Directory

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"streamaudit/internal/platform/metrics"
	dErrors "streamaudit/pkg/domain-errors"
)

// StreamLister pages the backend's external active conversation list.
type StreamLister interface {
	ListStreams(ctx context.Context, skip, limit int) (Page[Stream], error)
}

// MembershipLister pages one stream's full membership.
type MembershipLister interface {
	ListMembers(ctx context.Context, streamID string, skip, limit int) (Page[Member], error)
}

// Directory resolves user ids to directory identities.
type Directory interface {
	LookupUsers(ctx context.Context, ids []int64) ([]User, error)
}

// Service runs the audit: page all external active streams, classify each
// one's membership, and collect the streams with fewer than two internal
// members. Streams are processed in listing order; the returned violations
// preserve that order even when classification runs concurrently.
type Service struct {
	streams     StreamLister
	members     MembershipLister
	classifier  *Classifier
	logger      *slog.Logger
	metrics     *metrics.Metrics
	observer    Observer
	concurrency int
}

// Option configures a Service.
type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithObserver(o Observer) Option {
	return func(s *Service) {
		s.observer = o
	}
}

// WithConcurrency bounds how many streams are classified at once. Values
// below 2 keep the default strictly sequential behavior.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		s.concurrency = n
	}
}

// NewService constructs a Service.
func NewService(streams StreamLister, members MembershipLister, classifier *Classifier, opts ...Option) *Service {
	s := &Service{
		streams:    streams,
		members:    members,
		classifier: classifier,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.observer == nil {
		s.observer = NewLogObserver(s.logger)
	}
	return s
}

// outcome is the per-stream result of the classification stage, kept indexed
// so the violation list preserves listing order under concurrency.
type outcome struct {
	classification Classification
	skip           error
}

// Run executes one audit pass and returns the violations in listing order.
// Any transport or pagination failure aborts the run; a malformed stream is
// skipped and logged rather than failing the whole audit.
func (s *Service) Run(ctx context.Context) ([]ViolationRecord, error) {
	runID := uuid.New().String()
	logger := s.logger.With("run_id", runID)

	logger.Info("retrieving external active streams")
	streams, err := FetchAll(ctx, s.streams.ListStreams)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeOf(err), "list streams")
	}
	s.observer.StreamsListed(len(streams))
	s.metrics.AddStreamsAudited(len(streams))

	logger.Info("checking streams for violations")
	outcomes := make([]outcome, len(streams))
	if s.concurrency > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.concurrency)
		for i, stream := range streams {
			g.Go(func() error {
				out, err := s.check(gctx, stream)
				if err != nil {
					return err
				}
				outcomes[i] = out
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, stream := range streams {
			out, err := s.check(ctx, stream)
			if err != nil {
				return nil, err
			}
			outcomes[i] = out
		}
	}

	var violations []ViolationRecord
	for i, stream := range streams {
		if skip := outcomes[i].skip; skip != nil {
			s.observer.StreamSkipped(stream.ID, skip)
			s.metrics.IncStreamsSkipped()
			continue
		}
		s.observer.StreamChecked(stream.ID, outcomes[i].classification.Violation())
		if outcomes[i].classification.Violation() {
			violations = append(violations, ViolationRecord{
				Stream:         stream,
				Classification: outcomes[i].classification,
			})
			s.metrics.IncViolationsFound()
		}
	}

	s.observer.RunCompleted(len(streams), len(violations))
	return violations, nil
}

// check fetches and classifies one stream. A validation failure on the stream
// itself is reported as a skip outcome, not a run-level error.
func (s *Service) check(ctx context.Context, stream Stream) (outcome, error) {
	if err := validateStream(stream); err != nil {
		return outcome{skip: err}, nil
	}

	members, err := FetchAll(ctx, func(ctx context.Context, skip, limit int) (Page[Member], error) {
		return s.members.ListMembers(ctx, stream.ID, skip, limit)
	})
	if err != nil {
		return outcome{}, dErrors.Wrap(err, dErrors.CodeOf(err), "list members of "+stream.ID)
	}

	cls, err := s.classifier.Classify(ctx, stream, members)
	if err != nil {
		return outcome{}, dErrors.Wrap(err, dErrors.CodeOf(err), "classify "+stream.ID)
	}
	return outcome{classification: cls}, nil
}

// validateStream rejects streams missing attributes the report depends on.
func validateStream(stream Stream) error {
	if stream.ID == "" {
		return dErrors.New(dErrors.CodeValidation, "stream without id")
	}
	if stream.Type == StreamTypeRoom && stream.Attributes.RoomName == "" {
		return dErrors.Newf(dErrors.CodeValidation, "room %s has no room name", stream.ID)
	}
	return nil
}
