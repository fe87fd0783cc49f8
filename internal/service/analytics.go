package service

import (
	"context"
	"time"

	"github.com/aman-churiwal/faucet-service/internal/models"
	"github.com/aman-churiwal/faucet-service/internal/repository"
)

// AnalyticsService summarizes the claim audit log for the admin console.
type AnalyticsService struct {
	repository *repository.ClaimLogRepository
}

func NewAnalyticsService(repo *repository.ClaimLogRepository) *AnalyticsService {
	return &AnalyticsService{
		repository: repo,
	}
}

// Holds claim summary data
type ClaimSummary struct {
	TotalAttempts  int64                    `json:"total_attempts"`
	Granted        int64                    `json:"granted"`
	RateLimited    int64                    `json:"rate_limited"`
	Rejected       int64                    `json:"rejected"`
	Failed         int64                    `json:"failed"`
	GrantRate      float64                  `json:"grant_rate"`
	ChainBreakdown []map[string]interface{} `json:"chain_breakdown"`
}

// Retrieves a claim summary for a time range
func (s *AnalyticsService) GetSummary(ctx context.Context, from, to time.Time) (*ClaimSummary, error) {
	summary := &ClaimSummary{}

	total, err := s.repository.CountByTimeRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	summary.TotalAttempts = total

	if total == 0 {
		return summary, nil
	}

	granted, err := s.repository.CountByOutcome(ctx, models.ClaimOutcomeGranted, from, to)
	if err != nil {
		return nil, err
	}
	summary.Granted = granted

	rateLimited, err := s.repository.CountByOutcome(ctx, models.ClaimOutcomeRateLimited, from, to)
	if err != nil {
		return nil, err
	}
	summary.RateLimited = rateLimited

	rejected, err := s.repository.CountByOutcome(ctx, models.ClaimOutcomeRejected, from, to)
	if err != nil {
		return nil, err
	}
	summary.Rejected = rejected

	failed, err := s.repository.CountByOutcome(ctx, models.ClaimOutcomeFailed, from, to)
	if err != nil {
		return nil, err
	}
	summary.Failed = failed

	summary.GrantRate = (float64(granted) / float64(total)) * 100

	breakdown, err := s.repository.GetChainBreakdown(ctx, from, to)
	if err != nil {
		return nil, err
	}
	summary.ChainBreakdown = breakdown

	return summary, nil
}

// Retrieves claim logs with pagination and optional chain filtering
func (s *AnalyticsService) GetLogs(ctx context.Context, from, to time.Time, chainID *uint64, limit, offset int) ([]models.ClaimLog, error) {
	if chainID != nil {
		return s.repository.FindByChain(ctx, *chainID, from, to, limit, offset)
	}

	return s.repository.FindByTimeRange(ctx, from, to, limit, offset)
}

// Deletes claim logs older than specified retention period
func (s *AnalyticsService) CleanupOldLogs(ctx context.Context, retentionDays int) (int64, error) {
	cutOffDate := time.Now().AddDate(0, 0, -retentionDays)
	return s.repository.DeleteOldLogs(ctx, cutOffDate)
}
