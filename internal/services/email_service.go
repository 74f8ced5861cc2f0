package services

import (
	"context"
	"fmt"

	"github.com/decent-cloud/backend/internal/constants"
	"github.com/decent-cloud/backend/internal/db"
	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// EmailService wraps the Resend transactional-email API and the durable
// outbox (spec §4.H). Enqueue* methods insert a row; the EmailWorker
// (email_worker.go) is what actually calls Resend.
type EmailService struct {
	client    *resend.Client
	queries   db.Querier
	logger    *zap.Logger
	fromEmail string
	fromName  string
	frontendURL string
}

func NewEmailService(apiKey string, queries db.Querier, fromEmail, fromName, frontendURL string, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:      resend.NewClient(apiKey),
		queries:     queries,
		logger:      logger,
		fromEmail:   fromEmail,
		fromName:    fromName,
		frontendURL: frontendURL,
	}
}

func (s *EmailService) from() string {
	return fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
}

func (s *EmailService) enqueue(ctx context.Context, emailType, to, subject, body string, isHTML bool) error {
	_, err := s.queries.EnqueueEmail(ctx, db.EnqueueEmailParams{
		ID:          uuid.New(),
		ToAddr:      to,
		FromAddr:    s.fromEmail,
		Subject:     subject,
		Body:        body,
		IsHTML:      isHTML,
		EmailType:   emailType,
		MaxAttempts: constants.MaxAttemptsForType(emailType),
	})
	return err
}

// EnqueueVerificationEmail enqueues the email-verification message (spec §4.B).
func (s *EmailService) EnqueueVerificationEmail(ctx context.Context, to string, token [16]byte) error {
	link := fmt.Sprintf("%s/verify-email?token=%x", s.frontendURL, token)
	body := fmt.Sprintf("<p>Confirm your Decent Cloud email address:</p><p><a href=\"%s\">%s</a></p>", link, link)
	return s.enqueue(ctx, constants.EmailTypeVerification, to, "Verify your email", body, true)
}

// EnqueueRecoveryEmail enqueues the account-recovery message (spec §4.B).
func (s *EmailService) EnqueueRecoveryEmail(ctx context.Context, to string, token [16]byte) error {
	link := fmt.Sprintf("%s/recover?token=%x", s.frontendURL, token)
	body := fmt.Sprintf("<p>Recover your Decent Cloud account:</p><p><a href=\"%s\">%s</a></p>", link, link)
	return s.enqueue(ctx, constants.EmailTypeRecovery, to, "Recover your account", body, true)
}

// EnqueueReceiptEmail enqueues a payment-receipt notification (spec §4.F).
func (s *EmailService) EnqueueReceiptEmail(ctx context.Context, to string, receiptNumber int64, contractID uuid.UUID) error {
	body := fmt.Sprintf("<p>Receipt #%d issued for contract %s.</p>", receiptNumber, contractID)
	return s.enqueue(ctx, constants.EmailTypeReceipt, to, fmt.Sprintf("Receipt #%d", receiptNumber), body, true)
}

// EnqueueEscalationEmail enqueues an escalation notification (spec §4.J).
func (s *EmailService) EnqueueEscalationEmail(ctx context.Context, to, subject, body string) error {
	return s.enqueue(ctx, constants.EmailTypeEscalation, to, subject, body, true)
}

// send delivers one queued email through Resend. Called only by the
// worker, never directly by request handlers.
func (s *EmailService) send(entry db.EmailQueueEntry) error {
	req := &resend.SendEmailRequest{
		From:    s.from(),
		To:      []string{entry.ToAddr},
		Subject: entry.Subject,
		Headers: map[string]string{
			"X-Entity-Ref-ID": entry.ID.String(),
		},
		Tags: []resend.Tag{
			{Name: "email_type", Value: entry.EmailType},
		},
	}
	if entry.IsHTML {
		req.Html = entry.Body
	} else {
		req.Text = entry.Body
	}

	sent, err := s.client.Emails.Send(req)
	if err != nil {
		return err
	}
	s.logger.Debug("email sent", zap.String("resend_id", sent.Id), zap.String("email_id", entry.ID.String()))
	return nil
}
