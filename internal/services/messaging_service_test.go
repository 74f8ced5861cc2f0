package services

import (
	"context"
	"testing"

	"github.com/decent-cloud/backend/internal/db"
	"github.com/decent-cloud/backend/internal/dbmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newMessagingService(t *testing.T) (*MessagingService, *dbmock.MockQuerier) {
	q := dbmock.NewMockQuerierForTest(t)
	return NewMessagingService(q, nil), q
}

// newMessagingServiceWithEmail wires a real EmailService onto the mock
// Querier so SendMessage's notification-enqueue branch can be exercised
// end-to-end without ever touching Resend: EmailService.enqueue only
// writes a row via the store, the same mock Querier used everywhere else.
func newMessagingServiceWithEmail(t *testing.T) (*MessagingService, *dbmock.MockQuerier) {
	q := dbmock.NewMockQuerierForTest(t)
	email := NewEmailService("test-api-key", q, "noreply@example.com", "Decent Cloud", "https://example.com", zap.NewNop())
	return NewMessagingService(q, email), q
}

// TestMessagingService_MarkRead_IsIdempotent asserts calling MarkRead twice
// for the same (message, reader) pair returns the same read_at_ns both
// times (spec §8 idempotency) — the mock stands in for the underlying
// upsert-on-conflict query, which is itself the source of the guarantee.
func TestMessagingService_MarkRead_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, q := newMessagingService(t)

	messageID := uuid.New()
	var reader [32]byte
	reader[0] = 1

	const readAt int64 = 1_700_000_000_000_000_000

	q.EXPECT().MarkRead(ctx, messageID, reader, gomock.Any()).Return(readAt, nil).Times(2)

	first, err := svc.MarkRead(ctx, messageID, reader)
	require.NoError(t, err)
	second, err := svc.MarkRead(ctx, messageID, reader)
	require.NoError(t, err)

	assert.Equal(t, readAt, first)
	assert.Equal(t, first, second)
}

// TestMessagingService_UnreadCount_DelegatesToThreadQuery verifies
// UnreadCount resolves the thread before asking the store for the
// sender-not-viewer, unread-by-viewer count (spec §4.G, §8).
func TestMessagingService_UnreadCount_DelegatesToThreadQuery(t *testing.T) {
	ctx := context.Background()
	svc, q := newMessagingService(t)

	contractID := uuid.New()
	threadID := uuid.New()
	var viewer [32]byte
	viewer[0] = 2

	q.EXPECT().GetThreadByContractID(ctx, contractID).Return(db.MessageThread{ID: threadID}, nil)
	q.EXPECT().UnreadCount(ctx, threadID, viewer).Return(int64(3), nil)

	count, err := svc.UnreadCount(ctx, contractID, viewer)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

// TestMessagingService_UnreadCount_NoThreadMeansZero covers a contract that
// has never exchanged a message: there is no thread to count against, and
// that is zero unread rather than an error.
func TestMessagingService_UnreadCount_NoThreadMeansZero(t *testing.T) {
	ctx := context.Background()
	svc, q := newMessagingService(t)

	contractID := uuid.New()
	q.EXPECT().GetThreadByContractID(ctx, contractID).Return(db.MessageThread{}, pgx.ErrNoRows)

	count, err := svc.UnreadCount(ctx, contractID, [32]byte{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

// TestMessagingService_SendMessage_NotifiesOnlyUnreadParticipants covers
// the fan-out rule in SendMessage (spec §4.G): every other participant who
// has not already read the message gets a notification row; the sender
// never notifies itself.
func TestMessagingService_SendMessage_NotifiesOnlyUnreadParticipants(t *testing.T) {
	ctx := context.Background()
	svc, q := newMessagingService(t)

	contract := db.Contract{ContractID: uuid.New()}
	var requester, provider [32]byte
	requester[0] = 1
	provider[0] = 2

	thread := db.MessageThread{ID: uuid.New(), ContractID: contract.ContractID}
	q.EXPECT().GetThreadByContractID(ctx, contract.ContractID).Return(thread, nil)
	q.EXPECT().ListThreadParticipants(ctx, thread.ID).Return([]db.ThreadParticipant{
		{ThreadID: thread.ID, Pubkey: requester, Role: db.ParticipantRoleRequester},
		{ThreadID: thread.ID, Pubkey: provider, Role: db.ParticipantRoleProvider},
	}, nil)

	msg := db.Message{ID: uuid.New(), ThreadID: thread.ID, SenderPubkey: requester, Body: "hello"}
	q.EXPECT().CreateMessage(ctx, gomock.Any()).Return(msg, nil)
	q.EXPECT().TouchThreadLastMessage(ctx, thread.ID, gomock.Any()).Return(nil)

	q.EXPECT().HasReadReceipt(ctx, msg.ID, provider).Return(false, nil)
	q.EXPECT().CreateMessageNotification(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, arg db.CreateMessageNotificationParams) (db.MessageNotification, error) {
			assert.Equal(t, provider, arg.RecipientPubkey)
			return db.MessageNotification{ID: arg.ID, MessageID: arg.MessageID, RecipientPubkey: arg.RecipientPubkey}, nil
		})

	got, err := svc.SendMessage(ctx, contract, requester, "hello")
	require.NoError(t, err)
	assert.Equal(t, msg.ID, got.ID)
}

// TestMessagingService_SendMessage_SkipsNotificationWhenAlreadyRead covers
// the case where the other participant already has a read receipt for the
// new message — no notification row should be created for them.
func TestMessagingService_SendMessage_SkipsNotificationWhenAlreadyRead(t *testing.T) {
	ctx := context.Background()
	svc, q := newMessagingService(t)

	contract := db.Contract{ContractID: uuid.New()}
	var requester, provider [32]byte
	requester[0] = 1
	provider[0] = 2

	thread := db.MessageThread{ID: uuid.New(), ContractID: contract.ContractID}
	q.EXPECT().GetThreadByContractID(ctx, contract.ContractID).Return(thread, nil)
	q.EXPECT().ListThreadParticipants(ctx, thread.ID).Return([]db.ThreadParticipant{
		{ThreadID: thread.ID, Pubkey: requester, Role: db.ParticipantRoleRequester},
		{ThreadID: thread.ID, Pubkey: provider, Role: db.ParticipantRoleProvider},
	}, nil)

	msg := db.Message{ID: uuid.New(), ThreadID: thread.ID, SenderPubkey: requester, Body: "hello"}
	q.EXPECT().CreateMessage(ctx, gomock.Any()).Return(msg, nil)
	q.EXPECT().TouchThreadLastMessage(ctx, thread.ID, gomock.Any()).Return(nil)
	q.EXPECT().HasReadReceipt(ctx, msg.ID, provider).Return(true, nil)

	_, err := svc.SendMessage(ctx, contract, requester, "hello")
	require.NoError(t, err)
}

// TestMessagingService_EnqueueNotificationEmail_SkipsAccountsWithoutEmail
// ensures a recipient who never set an email address is silently skipped
// rather than producing an empty-address send attempt (spec §4.H).
func TestMessagingService_EnqueueNotificationEmail_SkipsAccountsWithoutEmail(t *testing.T) {
	ctx := context.Background()
	svc, q := newMessagingServiceWithEmail(t)

	var recipient [32]byte
	recipient[0] = 3
	accountID := uuid.New()

	q.EXPECT().GetPublicKeyByBytes(ctx, recipient).Return(db.PublicKey{AccountID: accountID}, nil)
	q.EXPECT().GetAccountByID(ctx, accountID).Return(db.Account{ID: accountID, Email: ""}, nil)

	err := svc.EnqueueNotificationEmail(ctx, db.Message{Body: "hi"}, recipient)
	require.NoError(t, err)
}

// TestMessagingService_EnqueueNotificationEmail_EnqueuesForAccountWithEmail
// covers the send path: once the recipient's account has an email, the
// notification is written to the outbox with that address.
func TestMessagingService_EnqueueNotificationEmail_EnqueuesForAccountWithEmail(t *testing.T) {
	ctx := context.Background()
	svc, q := newMessagingServiceWithEmail(t)

	var recipient [32]byte
	recipient[0] = 4
	accountID := uuid.New()

	q.EXPECT().GetPublicKeyByBytes(ctx, recipient).Return(db.PublicKey{AccountID: accountID}, nil)
	q.EXPECT().GetAccountByID(ctx, accountID).Return(db.Account{ID: accountID, Email: "user@example.com"}, nil)
	q.EXPECT().EnqueueEmail(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, arg db.EnqueueEmailParams) (db.EmailQueueEntry, error) {
			assert.Equal(t, "user@example.com", arg.ToAddr)
			return db.EmailQueueEntry{ID: arg.ID}, nil
		})

	err := svc.EnqueueNotificationEmail(ctx, db.Message{Body: "hi"}, recipient)
	require.NoError(t, err)
}
