package services

import (
	"context"
	"testing"
	"time"

	"github.com/decent-cloud/backend/internal/constants"
	"github.com/decent-cloud/backend/internal/db"
	"github.com/decent-cloud/backend/internal/dbmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// TestBackoffFor_ExponentialWithCap pins the retry schedule (spec §4.H):
// base 60s doubling per attempt, capped at 1h.
func TestBackoffFor_ExponentialWithCap(t *testing.T) {
	assert.Equal(t, 60*time.Second, backoffFor(1))
	assert.Equal(t, 120*time.Second, backoffFor(2))
	assert.Equal(t, 240*time.Second, backoffFor(3))
	assert.Equal(t, 480*time.Second, backoffFor(4))
	assert.Equal(t, constants.EmailBackoffCap, backoffFor(10))
}

func newEmailWorker(t *testing.T) (*EmailWorker, *dbmock.MockQuerier) {
	q := dbmock.NewMockQuerierForTest(t)
	email := NewEmailService("test-api-key", q, "noreply@example.com", "Decent Cloud", "https://example.com", zap.NewNop())
	messages := NewMessagingService(q, email)
	return NewEmailWorker(q, email, messages, zap.NewNop()), q
}

// TestEmailWorker_ProcessOneNotification_SkipsAlreadyReadMessage covers the
// "reader beat the worker to it" race (spec §4.H): a notification whose
// message was read before the worker got to it is marked skipped, and no
// email is ever enqueued.
func TestEmailWorker_ProcessOneNotification_SkipsAlreadyReadMessage(t *testing.T) {
	ctx := context.Background()
	w, q := newEmailWorker(t)

	var recipient [32]byte
	recipient[0] = 1
	notif := db.MessageNotification{ID: uuid.New(), MessageID: uuid.New(), RecipientPubkey: recipient}

	q.EXPECT().HasReadReceipt(ctx, notif.MessageID, recipient).Return(true, nil)
	q.EXPECT().SetMessageNotificationStatus(ctx, notif.ID, db.NotificationStatusSkipped, (*int64)(nil)).Return(nil)

	require.NoError(t, w.processOneNotification(ctx, notif))
}

// TestEmailWorker_ProcessOneNotification_SendsForUnreadMessage covers the
// normal path: an unread message's notification is turned into a queued
// email and marked sent.
func TestEmailWorker_ProcessOneNotification_SendsForUnreadMessage(t *testing.T) {
	ctx := context.Background()
	w, q := newEmailWorker(t)

	var recipient [32]byte
	recipient[0] = 2
	accountID := uuid.New()
	msg := db.Message{ID: uuid.New(), Body: "hello"}
	notif := db.MessageNotification{ID: uuid.New(), MessageID: msg.ID, RecipientPubkey: recipient}

	q.EXPECT().HasReadReceipt(ctx, notif.MessageID, recipient).Return(false, nil)
	q.EXPECT().GetMessage(ctx, notif.MessageID).Return(msg, nil)
	q.EXPECT().GetPublicKeyByBytes(ctx, recipient).Return(db.PublicKey{AccountID: accountID}, nil)
	q.EXPECT().GetAccountByID(ctx, accountID).Return(db.Account{ID: accountID, Email: "user@example.com"}, nil)
	q.EXPECT().EnqueueEmail(ctx, gomock.Any()).Return(db.EmailQueueEntry{}, nil)
	q.EXPECT().SetMessageNotificationStatus(ctx, notif.ID, db.NotificationStatusSent, gomock.Any()).Return(nil)

	require.NoError(t, w.processOneNotification(ctx, notif))
}
