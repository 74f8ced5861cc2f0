package services

import (
	"context"

	"github.com/decent-cloud/backend/internal/apierr"
	"github.com/decent-cloud/backend/internal/client/sms"
	"github.com/decent-cloud/backend/internal/client/telegram"
	"github.com/decent-cloud/backend/internal/constants"
	"github.com/decent-cloud/backend/internal/db"
	"github.com/decent-cloud/backend/internal/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EscalationService dispatches notifications for escalations raised in an
// externally managed conversation (spec §4.J): resolve the assignee's
// internal account, fan out across its enabled channels, and fall back to
// a default account when no mapping exists. Each channel is best-effort —
// one channel failing never blocks the others (same log-and-continue
// posture as the email worker, spec §4.H).
type EscalationService struct {
	queries               db.Querier
	emails                *EmailService
	telegram              *telegram.Client
	sms                   *sms.Client
	defaultEscalationAccountID uuid.UUID
}

func NewEscalationService(queries db.Querier, emails *EmailService, tg *telegram.Client, smsClient *sms.Client, defaultEscalationAccountID uuid.UUID) *EscalationService {
	return &EscalationService{
		queries:                    queries,
		emails:                     emails,
		telegram:                   tg,
		sms:                        smsClient,
		defaultEscalationAccountID: defaultEscalationAccountID,
	}
}

// Dispatch resolves externalAssigneeID to an account and notifies it of
// subject/body across every channel it has enabled. Resolution failure
// falls back to the configured default escalation account rather than
// dropping the notification (spec §4.J).
func (s *EscalationService) Dispatch(ctx context.Context, externalAssigneeID, subject, body string) error {
	accountID, err := s.queries.ResolveEscalationAssignee(ctx, externalAssigneeID)
	if err != nil {
		logger.Warn("no escalation mapping for assignee, using default account",
			zap.String("external_assignee_id", externalAssigneeID))
		accountID = s.defaultEscalationAccountID
	}

	prefs, err := s.queries.ListNotificationPreferences(ctx, accountID)
	if err != nil {
		return apierr.Wrap(apierr.Internal, "failed to load notification preferences", err)
	}

	for _, pref := range prefs {
		if !pref.Enabled {
			continue
		}
		if err := s.send(ctx, pref, subject, body); err != nil {
			logger.Error("escalation channel dispatch failed",
				zap.String("channel", string(pref.Channel)), zap.String("account_id", accountID.String()), zap.Error(err))
		}
	}
	return nil
}

func (s *EscalationService) send(ctx context.Context, pref db.NotificationPreference, subject, body string) error {
	switch pref.Channel {
	case db.NotificationChannelEmail:
		return s.emails.enqueue(ctx, constants.EmailTypeEscalation, pref.Target, subject, body, false)
	case db.NotificationChannelTelegram:
		if s.telegram == nil {
			return nil
		}
		return s.telegram.SendMessage(ctx, pref.Target, subject+"\n\n"+body)
	case db.NotificationChannelSMS:
		if s.sms == nil {
			return nil
		}
		return s.sms.Send(ctx, pref.Target, subject+": "+body)
	}
	return nil
}
