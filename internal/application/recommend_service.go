package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tutorly/roster/internal/roster"
)

// RecommendService narrows the displayed list to counterparts compatible with a reference person.
type RecommendService struct {
	roster *roster.Roster
	logger *slog.Logger
}

// NewRecommendService constructs a recommendation service over the shared roster.
func NewRecommendService(r *roster.Roster) *RecommendService {
	return NewRecommendServiceWithLogger(r, nil)
}

// NewRecommendServiceWithLogger constructs a recommendation service with a specified logger.
func NewRecommendServiceWithLogger(r *roster.Roster, logger *slog.Logger) *RecommendService {
	return &RecommendService{roster: r, logger: defaultLogger(logger)}
}

func (s *RecommendService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RecommendService", operation, attrs...)
}

// Recommend replaces the filter with the opposite role plus every enabled
// dimension of the reference person. An empty result restores the full list.
func (s *RecommendService) Recommend(ctx context.Context, params RecommendParams) (msg string, err error) {
	if s == nil || s.roster == nil {
		err = fmt.Errorf("RecommendService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "Recommend", "index", params.Index)
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "recommendation rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "recommendation applied", "filter", s.roster.Filter().String())
	}()

	var reference roster.Person
	reference, err = displayedPerson(s.roster, params.Index)
	if err != nil {
		return
	}

	want := reference.Role().Opposite()
	if want == "" {
		msg = personsListed(len(s.roster.Filtered()))
		return
	}

	s.roster.SetFilter(RecommendationPredicate(reference, params))
	if len(s.roster.Filtered()) == 0 {
		s.roster.SetFilter(roster.ShowAll{})
		msg = fmt.Sprintf("No %s match your requirements.", want.Plural())
		return
	}

	msg = fmt.Sprintf("Recommended %s based on your requirements!", want.Plural())
	return
}

// RecommendationPredicate builds the conjunction used by Recommend for reference.
func RecommendationPredicate(reference roster.Person, params RecommendParams) roster.Predicate {
	useSubject, useLevel, usePrice := params.UseSubject, params.UseLevel, params.UsePrice
	if !useSubject && !useLevel && !usePrice {
		useSubject, useLevel, usePrice = true, true, true
	}

	terms := []roster.Predicate{roster.HasRole{Role: reference.Role().Opposite()}}
	if useSubject {
		terms = append(terms, roster.MatchingSubject{Subjects: []roster.Subject{reference.Subject()}})
	}
	if useLevel {
		terms = append(terms, roster.OverlappingLevel{Level: reference.Level()})
	}
	if usePrice {
		terms = append(terms, roster.OverlappingPrice{Price: reference.Price()})
	}
	return roster.And(terms...)
}

func personsListed(n int) string {
	return fmt.Sprintf("%d persons listed!", n)
}
