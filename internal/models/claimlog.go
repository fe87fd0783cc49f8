package models

import (
	"time"
)

// Outcome values recorded for each claim attempt.
const (
	ClaimOutcomeGranted     = "granted"
	ClaimOutcomeRateLimited = "rate_limited"
	ClaimOutcomeRejected    = "rejected"
	ClaimOutcomeFailed      = "failed"
)

// Represents a logged faucet claim attempt
type ClaimLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Timestamp  time.Time `gorm:"index" json:"timestamp"`
	ChainID    uint64    `gorm:"index" json:"chain_id"`
	Wallet     string    `gorm:"index" json:"wallet"`
	ToAddress  string    `gorm:"index" json:"to_address"`
	IPHash     string    `json:"ip_hash"`
	Amount     string    `json:"amount"`
	Outcome    string    `gorm:"index" json:"outcome"`
	StatusCode int       `json:"status_code"`
	Reason     string    `json:"reason,omitempty"`
}

func (ClaimLog) TableName() string {
	return "claim_logs"
}
