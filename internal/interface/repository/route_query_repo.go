package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flighttracker-service/internal/domain/entity"
	"flighttracker-service/internal/domain/repository"
	"flighttracker-service/pkg/logger"

	"gorm.io/gorm"
)

// GormRouteQueryRepository implements the RouteQueryRepository interface
type GormRouteQueryRepository struct {
	db *gorm.DB
}

// NewGormRouteQueryRepository creates a new GORM route query repository
func NewGormRouteQueryRepository(db *gorm.DB, log logger.Logger) repository.RouteQueryRepository {
	if err := db.AutoMigrate(&RouteQueryModel{}); err != nil {
		log.Warn("Failed to migrate route queries table", "error", err)
	}

	return &GormRouteQueryRepository{
		db: db,
	}
}

// RouteQueryModel GORM model for database mapping
type RouteQueryModel struct {
	ID              uint      `gorm:"primaryKey"`
	OriginIata      string    `gorm:"column:origin_iata;size:3;index:idx_route"`
	DestinationIata string    `gorm:"column:destination_iata;size:3;index:idx_route"`
	AnchorDate      time.Time `gorm:"column:anchor_date;type:date"`
	FlexibilityDays int       `gorm:"column:flexibility_days"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the default table name
func (RouteQueryModel) TableName() string {
	return "route_queries"
}

// Create stores a new route query and assigns its id
func (r *GormRouteQueryRepository) Create(ctx context.Context, query *entity.RouteQuery) error {
	model := RouteQueryModel{
		OriginIata:      query.OriginIata,
		DestinationIata: query.DestinationIata,
		AnchorDate:      query.AnchorDate,
		FlexibilityDays: query.FlexibilityDays,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to create route query: %w", err)
	}

	query.ID = model.ID
	query.CreatedAt = model.CreatedAt
	query.UpdatedAt = model.UpdatedAt
	return nil
}

// GetByID finds a route query by id
func (r *GormRouteQueryRepository) GetByID(ctx context.Context, id uint) (*entity.RouteQuery, error) {
	var model RouteQueryModel
	result := r.db.WithContext(ctx).First(&model, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get route query %d: %w", id, result.Error)
	}

	return model.toEntity(), nil
}

// List returns all route queries, newest first
func (r *GormRouteQueryRepository) List(ctx context.Context) ([]*entity.RouteQuery, error) {
	var models []RouteQueryModel
	if err := r.db.WithContext(ctx).Order("id desc").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list route queries: %w", err)
	}

	queries := make([]*entity.RouteQuery, 0, len(models))
	for i := range models {
		queries = append(queries, models[i].toEntity())
	}
	return queries, nil
}

// Convert GORM model to domain entity
func (m RouteQueryModel) toEntity() *entity.RouteQuery {
	return &entity.RouteQuery{
		ID:              m.ID,
		OriginIata:      m.OriginIata,
		DestinationIata: m.DestinationIata,
		AnchorDate:      m.AnchorDate.UTC(),
		FlexibilityDays: m.FlexibilityDays,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
