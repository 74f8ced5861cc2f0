package services

import (
	"context"
	"time"

	"github.com/decent-cloud/backend/internal/constants"
	"github.com/decent-cloud/backend/internal/db"
	"go.uber.org/zap"
)

// EmailWorker is the single-flight batch poller for the email outbox and
// the message-notification queue (spec §4.H). One worker tick processes
// both, per the shared-retry-policy design note in spec §9.
type EmailWorker struct {
	queries  db.Querier
	email    *EmailService
	logger   *zap.Logger
	messages *MessagingService
}

func NewEmailWorker(queries db.Querier, email *EmailService, messages *MessagingService, logger *zap.Logger) *EmailWorker {
	return &EmailWorker{queries: queries, email: email, logger: logger, messages: messages}
}

// Tick runs one batch: due emails, then pending message notifications.
// Callers (cmd/emailworker) invoke this on a fixed interval; it never
// overlaps itself (the caller owns serialization of ticks).
func (w *EmailWorker) Tick(ctx context.Context, batchSize int32) {
	if err := w.processDueEmails(ctx, batchSize); err != nil {
		w.logger.Error("email worker tick failed", zap.Error(err))
	}
	if err := w.processPendingNotifications(ctx, batchSize); err != nil {
		w.logger.Error("notification worker tick failed", zap.Error(err))
	}
}

func (w *EmailWorker) processDueEmails(ctx context.Context, batchSize int32) error {
	now := time.Now().UnixNano()
	due, err := w.queries.ListDueEmails(ctx, now, batchSize)
	if err != nil {
		return err
	}

	for _, entry := range due {
		if err := w.attemptSend(ctx, entry); err != nil {
			w.logger.Warn("email send attempt failed",
				zap.String("email_id", entry.ID.String()),
				zap.String("email_type", entry.EmailType),
				zap.Error(err))
			// Continue processing the rest of the batch regardless of
			// this entry's outcome.
		}
	}
	return nil
}

func (w *EmailWorker) attemptSend(ctx context.Context, entry db.EmailQueueEntry) error {
	sendErr := w.email.send(entry)
	now := time.Now().UnixNano()

	if sendErr == nil {
		return w.queries.MarkEmailSent(ctx, entry.ID, now)
	}

	attempts := entry.Attempts + 1
	failed := attempts >= entry.MaxAttempts
	nextAttempt := now + backoffFor(attempts).Nanoseconds()

	if err := w.queries.MarkEmailAttemptFailed(ctx, entry.ID, attempts, sendErr.Error(), nextAttempt, failed); err != nil {
		return err
	}
	return sendErr
}

// backoffFor computes the exponential backoff (base 60s, capped at 1h)
// for the given attempt count (spec §4.H).
func backoffFor(attempts int32) time.Duration {
	d := constants.EmailBackoffBase
	for i := int32(1); i < attempts; i++ {
		d *= 2
		if d >= constants.EmailBackoffCap {
			return constants.EmailBackoffCap
		}
	}
	if d > constants.EmailBackoffCap {
		return constants.EmailBackoffCap
	}
	return d
}

// processPendingNotifications synthesizes an email for each message
// notification not yet read by its recipient; already-read notifications
// are marked skipped (spec §4.H).
func (w *EmailWorker) processPendingNotifications(ctx context.Context, batchSize int32) error {
	pending, err := w.queries.ListPendingMessageNotifications(ctx, batchSize)
	if err != nil {
		return err
	}

	for _, notif := range pending {
		if err := w.processOneNotification(ctx, notif); err != nil {
			w.logger.Warn("notification processing failed",
				zap.String("notification_id", notif.ID.String()),
				zap.Error(err))
		}
	}
	return nil
}

func (w *EmailWorker) processOneNotification(ctx context.Context, notif db.MessageNotification) error {
	already, err := w.queries.HasReadReceipt(ctx, notif.MessageID, notif.RecipientPubkey)
	if err != nil {
		return err
	}
	now := time.Now().UnixNano()

	if already {
		return w.queries.SetMessageNotificationStatus(ctx, notif.ID, db.NotificationStatusSkipped, nil)
	}

	msg, err := w.queries.GetMessage(ctx, notif.MessageID)
	if err != nil {
		return err
	}
	if err := w.messages.EnqueueNotificationEmail(ctx, msg, notif.RecipientPubkey); err != nil {
		return err
	}
	return w.queries.SetMessageNotificationStatus(ctx, notif.ID, db.NotificationStatusSent, &now)
}
