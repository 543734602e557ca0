package email

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"

	"learnhr.service/internal/core"
	"learnhr.service/internal/core/model"
	"learnhr.service/internal/ports/messaging"
	"learnhr.service/internal/ports/repository"
)

// Processor handles jobs from the email queue: salary summaries and
// enrollment decisions.
type Processor struct {
	emailService core.EmailService
	repo         repository.SalaryRepository
	emailDomain  string
}

// NewProcessor sets up a new processor for handling email-related jobs.
// It needs an email service to send emails and a repository to track the
// delivery status of salary summaries.
func NewProcessor(emailService core.EmailService, repo repository.SalaryRepository, emailDomain string) *Processor {
	return &Processor{
		emailService: emailService,
		repo:         repo,
		emailDomain:  emailDomain,
	}
}

// Process is the main entry point for handling a message from the email queue.
// It tries to send an email and will tell the worker to retry if something goes wrong.
func (p *Processor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	var event messaging.EmailEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal email event")
		return false, 0, err // Do not retry on malformed message
	}

	switch event.Kind {
	case messaging.EmailKindSalarySummary:
		return p.processSalarySummary(ctx, event)
	case messaging.EmailKindEnrollmentDecision:
		// Decision emails carry no delivery state; a failure is retried after
		// a short delay and duplicates are acceptable.
		to := event.UserID + "@" + p.emailDomain
		if err := p.emailService.SendEnrollmentDecision(ctx, to, event.CourseID, event.Approved); err != nil {
			return true, 30, err
		}
		return false, 0, nil
	default:
		return false, 0, fmt.Errorf("unknown email event kind: %q", event.Kind)
	}
}

func (p *Processor) processSalarySummary(ctx context.Context, event messaging.EmailEvent) (bool, int32, error) {
	record, err := p.repo.GetByID(ctx, event.SalaryRecordID)
	if err != nil {
		// If we can't get the record, retry after a short delay.
		return true, 10, fmt.Errorf("failed to get salary record for email processing: %w", err)
	}
	if record == nil {
		return false, 0, nil
	}

	if record.EmailStatus == model.StatusEmailCompleted {
		log.Ctx(ctx).Info().Int64("salary_record_id", event.SalaryRecordID).Msg("Email already sent. Skipping.")
		return false, 0, nil
	}

	to := event.EmployeeID + "@" + p.emailDomain
	if err := p.emailService.SendSalarySummary(ctx, to, event.Month, event.FinalSalary); err != nil {
		newCount := record.EmailRetryCount + 1
		p.repo.UpdateEmailStatus(ctx, event.SalaryRecordID, model.StatusEmailPending, newCount)

		delay := calculateBackoff(newCount)
		return true, delay, err
	}

	err = p.repo.UpdateEmailStatus(ctx, event.SalaryRecordID, model.StatusEmailCompleted, 0)
	return false, 0, err
}

// calculateBackoff determines how long to wait before retrying a failed job.
// It increases the delay exponentially with each retry to avoid overwhelming a struggling service.
func calculateBackoff(retryCount int) int32 {
	backoff := int32(math.Pow(2, float64(retryCount)) * 10)
	if backoff > 3600 { // Cap at 1 hour
		return 3600
	}
	return backoff
}
