// Package finder composes the availability engine with the occupancy
// tracker into the operations the HTTP layer exposes.
package finder

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hufspace/classroom-finder/internal/availability"
	"github.com/hufspace/classroom-finder/internal/model"
	"github.com/hufspace/classroom-finder/internal/occupancy"
	"github.com/hufspace/classroom-finder/internal/queue"
	"github.com/hufspace/classroom-finder/internal/schedule"
)

// EventPublisher forwards occupancy events to the broker.
type EventPublisher interface {
	PublishOccupancyReported(ctx context.Context, ev queue.OccupancyReportedEvent) error
}

// Service answers free-room and occupancy requests.  The schedule index is
// read-only for the lifetime of the Service; the tracker is shared by all
// handlers.
type Service struct {
	index     model.ScheduleIndex
	tracker   *occupancy.Tracker
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithPublisher sends an event for every accepted occupancy report.
func WithPublisher(p EventPublisher) Option { return func(s *Service) { s.publisher = p } }

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// NewService builds a Service.  A nil index is treated as "not loaded".
func NewService(index model.ScheduleIndex, tracker *occupancy.Tracker, logger *zap.Logger, opts ...Option) *Service {
	if tracker == nil {
		tracker = occupancy.NewTracker()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{index: index, tracker: tracker, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Find returns free rooms for q with the live occupancy of each attached,
// keeping the floor/room-number order of the availability engine.
func (s *Service) Find(ctx context.Context, q availability.Query) ([]model.ClassroomResult, error) {
	free, err := availability.FindFree(s.index, q)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]model.ClassroomResult, 0, len(free))
	for _, f := range free {
		out = append(out, model.ClassroomResult{
			Classroom: f.Room,
			NextClass: f.NextClass,
			Occupancy: s.tracker.CurrentTotal(f.Room, now),
		})
	}
	return out, nil
}

// Buildings lists the distinct building names of the index, sorted.
func (s *Service) Buildings(ctx context.Context) ([]string, error) {
	if len(s.index) == 0 {
		return nil, model.ErrDataUnavailable
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for room := range s.index {
		b := schedule.BuildingOf(room)
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	sort.Strings(out)
	return out, nil
}

// ReportOccupancy records a headcount bucket for classroom and returns the
// room's live total.  Publishing the event is best-effort.
func (s *Service) ReportOccupancy(ctx context.Context, classroom, bucket string) (int, error) {
	classroom = strings.TrimSpace(classroom)
	if classroom == "" {
		return 0, fmt.Errorf("%w: classroom is required", model.ErrInvalidQuery)
	}
	now := s.now()
	total, err := s.tracker.Report(classroom, bucket, now)
	if err != nil {
		return 0, err
	}
	if s.publisher != nil {
		count, _ := occupancy.BucketCount(bucket)
		ev := queue.OccupancyReportedEvent{
			EventID:        uuid.NewString(),
			Classroom:      classroom,
			CountRange:     bucket,
			Count:          count,
			TotalOccupancy: total,
			ReportedAt:     now.UTC().Format(time.RFC3339),
		}
		if err := s.publisher.PublishOccupancyReported(ctx, ev); err != nil {
			s.logger.Warn("publish occupancy event failed",
				zap.String("classroom", classroom), zap.Error(err))
		}
	}
	return total, nil
}

// Rooms reports the size of the loaded index.
func (s *Service) Rooms() int { return s.index.Rooms() }
