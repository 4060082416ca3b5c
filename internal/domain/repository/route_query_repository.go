package repository

import (
	"context"

	"flighttracker-service/internal/domain/entity"
)

// RouteQueryRepository defines the interface for saved route queries
type RouteQueryRepository interface {
	Create(ctx context.Context, query *entity.RouteQuery) error
	GetByID(ctx context.Context, id uint) (*entity.RouteQuery, error)
	List(ctx context.Context) ([]*entity.RouteQuery, error)
}
