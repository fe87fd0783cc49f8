package repository

import (
	"context"
	"time"

	"github.com/aman-churiwal/faucet-service/internal/models"
	"github.com/aman-churiwal/faucet-service/internal/storage"
)

type ClaimLogRepository struct {
	db *storage.Postgres
}

func NewClaimLogRepository(db *storage.Postgres) *ClaimLogRepository {
	return &ClaimLogRepository{db: db}
}

// Inserts a new claim log
func (r *ClaimLogRepository) Create(ctx context.Context, entry *models.ClaimLog) error {
	return r.db.DB.WithContext(ctx).Create(entry).Error
}

// Inserts multiple claim logs (for batch insertion)
func (r *ClaimLogRepository) CreateBatch(ctx context.Context, entries []*models.ClaimLog) error {
	if len(entries) == 0 {
		return nil
	}

	return r.db.DB.WithContext(ctx).Create(&entries).Error
}

// Retrieves claim logs within a time range
func (r *ClaimLogRepository) FindByTimeRange(ctx context.Context, from, to time.Time, limit, offset int) ([]models.ClaimLog, error) {
	var entries []models.ClaimLog

	err := r.db.DB.WithContext(ctx).
		Where("timestamp BETWEEN ? AND ?", from, to).
		Order("timestamp DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error

	return entries, err
}

// Retrieves claim logs for a specific chain
func (r *ClaimLogRepository) FindByChain(ctx context.Context, chainID uint64, from, to time.Time, limit, offset int) ([]models.ClaimLog, error) {
	var entries []models.ClaimLog

	err := r.db.DB.WithContext(ctx).
		Where("chain_id = ? AND timestamp BETWEEN ? AND ?", chainID, from, to).
		Order("timestamp DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error

	return entries, err
}

// Counts claim logs in a time range
func (r *ClaimLogRepository) CountByTimeRange(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64

	err := r.db.DB.WithContext(ctx).
		Model(&models.ClaimLog{}).
		Where("timestamp BETWEEN ? AND ?", from, to).
		Count(&count).Error

	return count, err
}

// Counts claim logs with a given outcome
func (r *ClaimLogRepository) CountByOutcome(ctx context.Context, outcome string, from, to time.Time) (int64, error) {
	var count int64

	err := r.db.DB.WithContext(ctx).
		Model(&models.ClaimLog{}).
		Where("outcome = ? AND timestamp BETWEEN ? AND ?", outcome, from, to).
		Count(&count).Error

	return count, err
}

// Returns claim counts grouped by chain, granted claims only
func (r *ClaimLogRepository) GetChainBreakdown(ctx context.Context, from, to time.Time) ([]map[string]interface{}, error) {
	var results []map[string]interface{}

	rows, err := r.db.DB.WithContext(ctx).
		Model(&models.ClaimLog{}).
		Select("chain_id, COUNT(*) as count").
		Where("outcome = ? AND timestamp BETWEEN ? AND ?", models.ClaimOutcomeGranted, from, to).
		Group("chain_id").
		Order("count DESC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var chainID uint64
		var count int64

		if err := rows.Scan(&chainID, &count); err != nil {
			return nil, err
		}

		results = append(results, map[string]interface{}{
			"chain_id": chainID,
			"count":    count,
		})
	}

	return results, nil
}

// Deletes claim logs older than the specified time
func (r *ClaimLogRepository) DeleteOldLogs(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.DB.WithContext(ctx).
		Where("timestamp < ?", before).
		Delete(&models.ClaimLog{})

	return result.RowsAffected, result.Error
}
