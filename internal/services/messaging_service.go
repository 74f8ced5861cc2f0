package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/decent-cloud/backend/internal/apierr"
	"github.com/decent-cloud/backend/internal/constants"
	"github.com/decent-cloud/backend/internal/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MessagingService implements per-contract threads, messages, read
// receipts, and provider response-time metrics (spec §4.G).
type MessagingService struct {
	queries db.Querier
	email   *EmailService
}

func NewMessagingService(queries db.Querier, email *EmailService) *MessagingService {
	return &MessagingService{queries: queries, email: email}
}

// GetOrCreateThread returns the contract's thread, creating it (and its two
// participants) lazily on first use (spec §4.G, §9).
func (s *MessagingService) GetOrCreateThread(ctx context.Context, contract db.Contract) (db.MessageThread, error) {
	thread, err := s.queries.GetThreadByContractID(ctx, contract.ContractID)
	if err == nil {
		return thread, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return db.MessageThread{}, apierr.Wrap(apierr.Internal, "failed to look up thread", err)
	}

	now := time.Now().UnixNano()
	thread, err = s.queries.CreateThread(ctx, db.CreateThreadParams{
		ID:              uuid.New(),
		ContractID:      contract.ContractID,
		Subject:         fmt.Sprintf("Contract %s", contract.ContractID),
		CreatedAtNs:     now,
		LastMessageAtNs: now,
	})
	if err != nil {
		return db.MessageThread{}, apierr.Wrap(apierr.Internal, "failed to create thread", err)
	}

	if err := s.queries.AddThreadParticipant(ctx, thread.ID, contract.RequesterPubkey, db.ParticipantRoleRequester, now); err != nil {
		return db.MessageThread{}, apierr.Wrap(apierr.Internal, "failed to add requester participant", err)
	}
	if err := s.queries.AddThreadParticipant(ctx, thread.ID, contract.ProviderPubkey, db.ParticipantRoleProvider, now); err != nil {
		return db.MessageThread{}, apierr.Wrap(apierr.Internal, "failed to add provider participant", err)
	}
	return thread, nil
}

// SendMessage posts a message on behalf of senderPubkey, who must be a
// thread participant, and enqueues a notification for the other
// participant if they have not already read it (spec §4.G).
func (s *MessagingService) SendMessage(ctx context.Context, contract db.Contract, senderPubkey [32]byte, body string) (db.Message, error) {
	thread, err := s.GetOrCreateThread(ctx, contract)
	if err != nil {
		return db.Message{}, err
	}

	participants, err := s.queries.ListThreadParticipants(ctx, thread.ID)
	if err != nil {
		return db.Message{}, apierr.Wrap(apierr.Internal, "failed to list participants", err)
	}
	isParticipant := false
	for _, p := range participants {
		if p.Pubkey == senderPubkey {
			isParticipant = true
			break
		}
	}
	if !isParticipant {
		return db.Message{}, apierr.New(apierr.Forbidden, "caller is not a participant in this thread")
	}

	now := time.Now().UnixNano()
	msg, err := s.queries.CreateMessage(ctx, db.CreateMessageParams{
		ID:           uuid.New(),
		ThreadID:     thread.ID,
		SenderPubkey: senderPubkey,
		SenderRole:   db.SenderRoleUser,
		Body:         body,
		CreatedAtNs:  now,
	})
	if err != nil {
		return db.Message{}, apierr.Wrap(apierr.Internal, "failed to create message", err)
	}
	if err := s.queries.TouchThreadLastMessage(ctx, thread.ID, now); err != nil {
		return db.Message{}, apierr.Wrap(apierr.Internal, "failed to update thread", err)
	}

	for _, p := range participants {
		if p.Pubkey == senderPubkey {
			continue
		}
		read, err := s.queries.HasReadReceipt(ctx, msg.ID, p.Pubkey)
		if err == nil && !read {
			if _, err := s.queries.CreateMessageNotification(ctx, db.CreateMessageNotificationParams{
				ID:              uuid.New(),
				MessageID:       msg.ID,
				RecipientPubkey: p.Pubkey,
				CreatedAtNs:     now,
			}); err != nil {
				return db.Message{}, apierr.Wrap(apierr.Internal, "failed to enqueue notification", err)
			}
		}
	}

	return msg, nil
}

// ListMessages returns a thread's messages if the caller participates.
func (s *MessagingService) ListMessages(ctx context.Context, contractID uuid.UUID, callerPubkey [32]byte) ([]db.Message, error) {
	thread, err := s.queries.GetThreadByContractID(ctx, contractID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apierr.Wrap(apierr.Internal, "failed to look up thread", err)
	}
	if err := s.requireParticipant(ctx, thread.ID, callerPubkey); err != nil {
		return nil, err
	}
	messages, err := s.queries.ListMessages(ctx, thread.ID)
	if err != nil {
		return nil, apierr.Wrap(apierr.Internal, "failed to list messages", err)
	}
	return messages, nil
}

func (s *MessagingService) requireParticipant(ctx context.Context, threadID uuid.UUID, pubkey [32]byte) error {
	participants, err := s.queries.ListThreadParticipants(ctx, threadID)
	if err != nil {
		return apierr.Wrap(apierr.Internal, "failed to list participants", err)
	}
	for _, p := range participants {
		if p.Pubkey == pubkey {
			return nil
		}
	}
	return apierr.New(apierr.Forbidden, "caller is not a participant in this thread")
}

// MarkRead idempotently records a read receipt (spec §4.G, §8 idempotency).
func (s *MessagingService) MarkRead(ctx context.Context, messageID uuid.UUID, reader [32]byte) (int64, error) {
	readAtNs, err := s.queries.MarkRead(ctx, messageID, reader, time.Now().UnixNano())
	if err != nil {
		return 0, apierr.Wrap(apierr.Internal, "failed to mark read", err)
	}
	return readAtNs, nil
}

// UnreadCount returns the number of messages in the thread not sent by the
// viewer and not yet read by the viewer (spec §4.G, §8).
func (s *MessagingService) UnreadCount(ctx context.Context, contractID uuid.UUID, viewer [32]byte) (int64, error) {
	thread, err := s.queries.GetThreadByContractID(ctx, contractID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, apierr.Wrap(apierr.Internal, "failed to look up thread", err)
	}
	count, err := s.queries.UnreadCount(ctx, thread.ID, viewer)
	if err != nil {
		return 0, apierr.Wrap(apierr.Internal, "failed to compute unread count", err)
	}
	return count, nil
}

// EnqueueNotificationEmail resolves a recipient pubkey to an account email
// and enqueues the message-notification email (called from the worker).
func (s *MessagingService) EnqueueNotificationEmail(ctx context.Context, msg db.Message, recipientPubkey [32]byte) error {
	key, err := s.queries.GetPublicKeyByBytes(ctx, recipientPubkey)
	if err != nil {
		return err
	}
	account, err := s.queries.GetAccountByID(ctx, key.AccountID)
	if err != nil {
		return err
	}
	if account.Email == "" {
		return nil
	}
	body := fmt.Sprintf("<p>New message: %s</p>", msg.Body)
	return s.email.enqueue(ctx, constants.EmailTypeMessageNotify, account.Email, "New message on Decent Cloud", body, true)
}

// ResponseMetrics is the provider response-time SLA summary (spec §4.G).
type ResponseMetrics struct {
	AverageResponseSeconds float64
	Buckets                map[constants.ResponseBucket]int
	SLACompliancePercent   float64
	BreachCount            int
	ThreadsSampled         int
}

// ResponseMetricsFor computes (a) average seconds between the requester's
// first message and the provider's first response, (b) a response-time
// histogram, (c) SLA compliance percentage, and (d) breach count, over the
// provider's threads in the last 30 days (spec §4.G).
func (s *MessagingService) ResponseMetricsFor(ctx context.Context, providerPubkey [32]byte) (ResponseMetrics, error) {
	since := time.Now().Add(-constants.ResponseMetricsWindow).UnixNano()
	contracts, err := s.queries.ListContractsForProvider(ctx, providerPubkey, since)
	if err != nil {
		return ResponseMetrics{}, apierr.Wrap(apierr.Internal, "failed to list contracts", err)
	}

	metrics := ResponseMetrics{Buckets: map[constants.ResponseBucket]int{}}
	var totalSeconds float64
	var sampled int

	for _, c := range contracts {
		thread, err := s.queries.GetThreadByContractID(ctx, c.ContractID)
		if err != nil {
			continue
		}
		messages, err := s.queries.ListMessages(ctx, thread.ID)
		if err != nil || len(messages) == 0 {
			continue
		}
		sort.Slice(messages, func(i, j int) bool { return messages[i].CreatedAtNs < messages[j].CreatedAtNs })

		var firstRequesterAt, firstProviderAt int64
		for _, m := range messages {
			if m.SenderPubkey == c.RequesterPubkey && firstRequesterAt == 0 {
				firstRequesterAt = m.CreatedAtNs
			}
			if m.SenderPubkey == c.ProviderPubkey && firstProviderAt == 0 && firstRequesterAt != 0 {
				firstProviderAt = m.CreatedAtNs
			}
		}
		if firstRequesterAt == 0 || firstProviderAt == 0 {
			continue
		}

		elapsed := time.Duration(firstProviderAt - firstRequesterAt)
		sampled++
		totalSeconds += elapsed.Seconds()
		metrics.Buckets[bucketFor(elapsed)]++
		if elapsed > constants.ResponseSLA {
			metrics.BreachCount++
		}
	}

	metrics.ThreadsSampled = sampled
	if sampled > 0 {
		metrics.AverageResponseSeconds = totalSeconds / float64(sampled)
		metrics.SLACompliancePercent = 100 * float64(sampled-metrics.BreachCount) / float64(sampled)
	}
	return metrics, nil
}

func bucketFor(d time.Duration) constants.ResponseBucket {
	switch {
	case d <= time.Hour:
		return constants.ResponseBucket1h
	case d <= 4*time.Hour:
		return constants.ResponseBucket4h
	case d <= 12*time.Hour:
		return constants.ResponseBucket12h
	case d <= 24*time.Hour:
		return constants.ResponseBucket24h
	case d <= 72*time.Hour:
		return constants.ResponseBucket72h
	default:
		return constants.ResponseBucketOver
	}
}
