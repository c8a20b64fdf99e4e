package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tutorly/roster/internal/roster"
	"github.com/tutorly/roster/internal/statistics"
)

// StatsService reports per-role statistics over the whole roster.
type StatsService struct {
	roster *roster.Roster
	logger *slog.Logger
}

// NewStatsService constructs a statistics service over the shared roster.
func NewStatsService(r *roster.Roster) *StatsService {
	return NewStatsServiceWithLogger(r, nil)
}

// NewStatsServiceWithLogger constructs a statistics service with a specified logger.
func NewStatsServiceWithLogger(r *roster.Roster, logger *slog.Logger) *StatsService {
	return &StatsService{roster: r, logger: defaultLogger(logger)}
}

// Stats computes fresh tutor and student summaries on every call.
func (s *StatsService) Stats(ctx context.Context) (Stats, error) {
	if s == nil || s.roster == nil {
		return Stats{}, fmt.Errorf("StatsService is not configured")
	}

	persons := s.roster.All()
	stats := Stats{
		Tutors:   statistics.Compute(persons, roster.RoleTutor),
		Students: statistics.Compute(persons, roster.RoleStudent),
	}

	serviceLogger(ctx, s.logger, "StatsService", "Stats").DebugContext(ctx, "statistics computed",
		"tutors", stats.Tutors.Total,
		"students", stats.Students.Total,
	)
	return stats, nil
}
