package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"time"

	"github.com/aman-churiwal/faucet-service/internal/models"
	"github.com/aman-churiwal/faucet-service/internal/repository"
)

// ClaimRecorder persists claim attempts asynchronously so the claim path
// never blocks on Postgres. Entries are batched and flushed by a background
// worker; when the buffer is full entries are dropped rather than stalling
// a request.
type ClaimRecorder struct {
	repo *repository.ClaimLogRepository
	ch   chan models.ClaimLog
}

func NewClaimRecorder(repo *repository.ClaimLogRepository, bufferSize int) *ClaimRecorder {
	r := &ClaimRecorder{
		repo: repo,
		ch:   make(chan models.ClaimLog, bufferSize),
	}

	go r.worker()

	return r
}

// Record queues a claim log entry. Non-blocking.
func (r *ClaimRecorder) Record(entry models.ClaimLog) {
	select {
	case r.ch <- entry:
	default:
		log.Println("Claim log channel full, dropping entry")
	}
}

func (r *ClaimRecorder) worker() {
	batch := make([]*models.ClaimLog, 0, 100)
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case entry := <-r.ch:
			batch = append(batch, &entry)

			if len(batch) >= 100 {
				r.flush(batch)
				batch = make([]*models.ClaimLog, 0, 100)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				r.flush(batch)
				batch = make([]*models.ClaimLog, 0, 100)
			}
		}
	}
}

func (r *ClaimRecorder) flush(batch []*models.ClaimLog) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := r.repo.CreateBatch(ctx, batch); err != nil {
		log.Printf("Failed to insert claim logs: %v", err)
	}
}

// HashIP hashes a client IP for storage. Raw IPs never reach the audit log.
func HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:16])
}
