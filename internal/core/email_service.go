package core

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"learnhr.service/pkg/telemetry"
)

type EmailService interface {
	SendSalarySummary(ctx context.Context, to, month string, finalSalary float64) error
	SendEnrollmentDecision(ctx context.Context, to, courseID string, approved bool) error
}

type SESEmailService struct {
	client *ses.Client
	sender string
}

func NewSESEmailService(client *ses.Client, sender string) *SESEmailService {
	return &SESEmailService{client: client, sender: sender}
}

func (s *SESEmailService) SendSalarySummary(ctx context.Context, to, month string, finalSalary float64) error {
	body := fmt.Sprintf("Hello,\n\nYour salary for %s has been computed. Net amount: %.2f.", month, finalSalary)
	return s.send(ctx, to, "Monthly Salary Summary", body)
}

func (s *SESEmailService) SendEnrollmentDecision(ctx context.Context, to, courseID string, approved bool) error {
	verdict := "approved"
	if !approved {
		verdict = "rejected"
	}
	body := fmt.Sprintf("Hello,\n\nYour enrollment request for course %s has been %s.", courseID, verdict)
	return s.send(ctx, to, "Course Enrollment Update", body)
}

func (s *SESEmailService) send(ctx context.Context, to, subject, body string) error {
	tracer := otel.Tracer("ses-email-service")
	ctx, span := tracer.Start(ctx, "send_email", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	// Enrich span with employeeId if available in context
	if empID := telemetry.GetEmployeeIDFromContext(ctx); empID != "" {
		span.SetAttributes(attribute.String("app.employeeId", empID))
	}

	input := &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
	}

	_, err := s.client.SendEmail(ctx, input)
	return err
}
