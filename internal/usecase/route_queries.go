package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flighttracker-service/internal/domain/entity"
	"flighttracker-service/internal/domain/repository"
	"flighttracker-service/pkg/localtime"
	"flighttracker-service/pkg/logger"
)

// ErrInvalidRouteQuery wraps validation failures of a saved route query.
var ErrInvalidRouteQuery = errors.New("invalid route query")

// RouteQueries manages saved route searches and evaluates their flex window.
type RouteQueries struct {
	repo        repository.RouteQueryRepository
	ranker      *FlexWindowRanker
	maxFlexDays int
	logger      logger.Logger
}

// NewRouteQueries creates a new route queries usecase
func NewRouteQueries(
	repo repository.RouteQueryRepository,
	ranker *FlexWindowRanker,
	maxFlexDays int,
	logger logger.Logger,
) *RouteQueries {
	return &RouteQueries{
		repo:        repo,
		ranker:      ranker,
		maxFlexDays: maxFlexDays,
		logger:      logger,
	}
}

// Create validates and stores a new route query
func (u *RouteQueries) Create(ctx context.Context, origin, destination string, anchorDate time.Time, flexDays int) (*entity.RouteQuery, error) {
	origin = strings.ToUpper(strings.TrimSpace(origin))
	destination = strings.ToUpper(strings.TrimSpace(destination))

	switch {
	case len(origin) != 3:
		return nil, fmt.Errorf("%w: origin must be a 3-letter IATA code", ErrInvalidRouteQuery)
	case len(destination) != 3:
		return nil, fmt.Errorf("%w: destination must be a 3-letter IATA code", ErrInvalidRouteQuery)
	case flexDays < 0:
		return nil, fmt.Errorf("%w: %v", ErrInvalidRouteQuery, ErrInvalidFlexDays)
	case u.maxFlexDays > 0 && flexDays > u.maxFlexDays:
		return nil, fmt.Errorf("%w: flex days must not exceed %d", ErrInvalidRouteQuery, u.maxFlexDays)
	}

	query := &entity.RouteQuery{
		OriginIata:      origin,
		DestinationIata: destination,
		AnchorDate:      localtime.DateOf(anchorDate),
		FlexibilityDays: flexDays,
	}
	if err := u.repo.Create(ctx, query); err != nil {
		return nil, err
	}

	u.logger.Info("Saved route query",
		"id", query.ID,
		"origin", origin,
		"destination", destination,
		"anchorDate", localtime.FormatDate(query.AnchorDate),
		"flexDays", flexDays)
	return query, nil
}

// List returns all saved route queries
func (u *RouteQueries) List(ctx context.Context) ([]*entity.RouteQuery, error) {
	return u.repo.List(ctx)
}

// FlexStats evaluates the flex window of a saved query. It returns nil, nil
// when the query does not exist.
func (u *RouteQueries) FlexStats(ctx context.Context, id uint) (*entity.FlexWindowStats, error) {
	query, err := u.repo.GetByID(ctx, id)
	if err != nil || query == nil {
		return nil, err
	}

	return u.ranker.Rank(ctx, FlexWindowQuery{
		Origin:      query.OriginIata,
		Destination: query.DestinationIata,
		TargetDate:  query.AnchorDate,
		FlexDays:    query.FlexibilityDays,
	})
}
