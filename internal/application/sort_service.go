package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tutorly/roster/internal/roster"
)

// SortService narrows the displayed list to one role and orders it.
type SortService struct {
	roster *roster.Roster
	logger *slog.Logger
}

// NewSortService constructs a sort service over the shared roster.
func NewSortService(r *roster.Roster) *SortService {
	return NewSortServiceWithLogger(r, nil)
}

// NewSortServiceWithLogger constructs a sort service with a specified logger.
func NewSortServiceWithLogger(r *roster.Roster, logger *slog.Logger) *SortService {
	return &SortService{roster: r, logger: defaultLogger(logger)}
}

// Sort applies params to the view. The role filter is combined with the
// existing one; ordering is stable with the first key primary.
func (s *SortService) Sort(ctx context.Context, params SortParams) (msg string, err error) {
	if s == nil || s.roster == nil {
		err = fmt.Errorf("SortService is not configured")
		return
	}

	logger := serviceLogger(ctx, s.logger, "SortService", "Sort",
		"target", string(params.Target),
		"keys", roster.DescribeKeys(params.Keys),
	)
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "sort rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "sort applied", "message", msg)
	}()

	if s.roster.Len() == 0 {
		msg = "List is empty, there is nothing to sort."
		return
	}

	if params.Target == SortReset {
		s.roster.ResetView()
		msg = "List is reset to the original unfiltered list."
		return
	}

	role := params.Target.Role()
	if role == "" {
		vErr := &ValidationError{}
		vErr.add("target", "use tutors, students or reset")
		err = vErr
		return
	}
	if len(params.Keys) == 0 {
		vErr := &ValidationError{}
		vErr.add("keys", "provide at least one of p/ (price) or l/ (level)")
		err = vErr
		return
	}

	s.roster.SetFilter(roster.And(s.roster.Filter(), roster.HasRole{Role: role}))
	if len(s.roster.Filtered()) == 0 {
		msg = fmt.Sprintf("No %s found to sort.", role.Plural())
		return
	}

	s.roster.SetOrder(params.Keys)
	msg = fmt.Sprintf("Sorted all %s by %s", role.Plural(), roster.DescribeKeys(params.Keys))
	return
}
