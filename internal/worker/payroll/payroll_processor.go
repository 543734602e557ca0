package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"learnhr.service/internal/core/model"
	"learnhr.service/internal/ports/messaging"
	"learnhr.service/internal/ports/repository"
	"learnhr.service/internal/worker/legacyhr"
)

// Processor handles jobs from the payroll queue, pushing saved salary
// snapshots into the legacy HR system. A circuit breaker keeps us from
// hammering the legacy system when it is struggling.
type Processor struct {
	repo     repository.SalaryRepository
	legacyhr legacyhr.Client
	cb       *gobreaker.CircuitBreaker
}

// NewProcessor creates a new processor for the payroll queue.
func NewProcessor(repo repository.SalaryRepository, client legacyhr.Client) *Processor {
	settings := gobreaker.Settings{
		Name:        "Legacy-HR-API",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip if failure rate is bigger than 50% after at least 10 requests
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.5
		},
	}

	return &Processor{
		repo:     repo,
		legacyhr: client,
		cb:       gobreaker.NewCircuitBreaker(settings),
	}
}

// Process handles one message from the payroll queue. It calls the legacy HR
// API through the circuit breaker and schedules retries with exponential backoff.
func (p *Processor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	var event messaging.SalarySyncEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal salary sync event")
		return false, 0, err // Do not retry on malformed message
	}

	record, err := p.repo.GetByID(ctx, event.SalaryRecordID)
	if err != nil {
		return true, 10, fmt.Errorf("failed to get salary record from db: %w", err)
	}
	if record == nil {
		// Snapshot was re-saved and re-keyed before we got here; nothing to sync.
		return false, 0, nil
	}

	if record.SyncStatus == model.StatusSyncCompleted {
		return false, 0, nil
	}

	_, err = p.cb.Execute(func() (interface{}, error) {
		return nil, p.legacyhr.RecordSalary(ctx, event)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			log.Ctx(ctx).Warn().Msg("Circuit Breaker is OPEN; skipping Legacy HR API call")
		}
		newCount := record.SyncRetryCount + 1
		p.repo.UpdateSyncStatus(ctx, event.SalaryRecordID, model.StatusSyncPending, newCount)

		delay := calculateBackoff(newCount)
		return true, delay, err
	}

	err = p.repo.UpdateSyncStatus(ctx, event.SalaryRecordID, model.StatusSyncCompleted, 0)
	return false, 0, err
}

// calculateBackoff determines how long to wait before retrying a failed job.
// It increases the delay exponentially with each retry.
func calculateBackoff(retryCount int) int32 {
	backoff := int32(math.Pow(2, float64(retryCount)) * 10)
	if backoff > 3600 {
		return 3600 // max at 1 hour
	}
	return backoff
}
