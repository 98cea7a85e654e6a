package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/classgrid/learnhub/internal/events"
	"github.com/classgrid/learnhub/internal/repository"
)

// DashboardStats summarizes an instructor's footprint on the platform.
type DashboardStats struct {
	InstructorID     int64 `json:"instructor_id"`
	TotalCourses     int64 `json:"total_courses"`
	TotalEnrollments int64 `json:"total_enrollments"`
}

// DashboardService computes instructor dashboard statistics, caching results
// in Redis. Course and enrollment events invalidate the cached entry so the
// dashboard never serves stale counts past a mutation.
type DashboardService struct {
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewDashboardService builds the service. cache may be nil, in which case
// every request recomputes from the database.
func NewDashboardService(
	courses repository.CourseRepository,
	enrollments repository.EnrollmentRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		courses:     courses,
		enrollments: enrollments,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// RegisterInvalidation subscribes cache invalidation to mutating events.
func (s *DashboardService) RegisterInvalidation(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventCourseCreated,
		events.EventCourseUpdated,
		events.EventCourseDeleted,
		events.EventStudentEnrolled,
	} {
		dispatcher.Subscribe(eventType, s.handleInvalidation)
	}
}

// Stats returns the dashboard counts for an instructor.
func (s *DashboardService) Stats(ctx context.Context, instructorID int64) (*DashboardStats, error) {
	if cached := s.readCache(ctx, instructorID); cached != nil {
		return cached, nil
	}

	courseCount, err := s.courses.CountByInstructor(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	enrollmentCount, err := s.enrollments.CountForInstructor(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		InstructorID:     instructorID,
		TotalCourses:     courseCount,
		TotalEnrollments: enrollmentCount,
	}
	s.writeCache(ctx, stats)
	return stats, nil
}

func (s *DashboardService) handleInvalidation(ctx context.Context, event events.Event) error {
	if s.cache == nil {
		return nil
	}

	var instructorID int64
	switch payload := event.Payload.(type) {
	case events.CoursePayload:
		instructorID = payload.InstructorID
	case events.StudentEnrolledPayload:
		instructorID = payload.InstructorID
	default:
		return nil
	}

	if err := s.cache.Del(ctx, cacheKey(instructorID)).Err(); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err), zap.Int64("instructor_id", instructorID))
	}
	return nil
}

func (s *DashboardService) readCache(ctx context.Context, instructorID int64) *DashboardStats {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, cacheKey(instructorID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
		return nil
	}
	var stats DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *DashboardService) writeCache(ctx context.Context, stats *DashboardStats) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(stats.InstructorID), raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.Error(err))
	}
}

func cacheKey(instructorID int64) string {
	return fmt.Sprintf("dashboard:instructor:%d", instructorID)
}
