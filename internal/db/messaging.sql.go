package db

import (
	"context"

	"github.com/google/uuid"
)

const getThreadByContractIDSQL = `
SELECT id, contract_id, subject, status, created_at_ns, last_message_at_ns
FROM message_threads WHERE contract_id = $1`

func (q *Queries) GetThreadByContractID(ctx context.Context, contractID uuid.UUID) (MessageThread, error) {
	row := q.db.QueryRow(ctx, getThreadByContractIDSQL, contractID)
	return scanThread(row)
}

const createThreadSQL = `
INSERT INTO message_threads (id, contract_id, subject, status, created_at_ns, last_message_at_ns)
VALUES ($1, $2, $3, 'open', $4, $5)
ON CONFLICT (contract_id) DO UPDATE SET subject = message_threads.subject
RETURNING id, contract_id, subject, status, created_at_ns, last_message_at_ns`

// CreateThread is the atomic get_or_create_thread(contract_id) helper
// (spec §9): the ON CONFLICT DO UPDATE no-op turns this into an
// idempotent upsert-and-return under a single round trip.
func (q *Queries) CreateThread(ctx context.Context, arg CreateThreadParams) (MessageThread, error) {
	row := q.db.QueryRow(ctx, createThreadSQL, arg.ID, arg.ContractID, arg.Subject, arg.CreatedAtNs, arg.LastMessageAtNs)
	return scanThread(row)
}

func scanThread(row rowScanner) (MessageThread, error) {
	var t MessageThread
	var status string
	err := row.Scan(&t.ID, &t.ContractID, &t.Subject, &status, &t.CreatedAtNs, &t.LastMessageAtNs)
	if err != nil {
		return MessageThread{}, err
	}
	t.Status = ThreadStatus(status)
	return t, nil
}

const addThreadParticipantSQL = `
INSERT INTO thread_participants (thread_id, pubkey, role, joined_at_ns)
VALUES ($1, $2, $3, $4)
ON CONFLICT DO NOTHING`

func (q *Queries) AddThreadParticipant(ctx context.Context, threadID uuid.UUID, pubkey [32]byte, role ParticipantRole, joinedAtNs int64) error {
	_, err := q.db.Exec(ctx, addThreadParticipantSQL, threadID, pubkey[:], string(role), joinedAtNs)
	return err
}

const listThreadParticipantsSQL = `SELECT thread_id, pubkey, role, joined_at_ns FROM thread_participants WHERE thread_id = $1`

func (q *Queries) ListThreadParticipants(ctx context.Context, threadID uuid.UUID) ([]ThreadParticipant, error) {
	rows, err := q.db.Query(ctx, listThreadParticipantsSQL, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ThreadParticipant
	for rows.Next() {
		var p ThreadParticipant
		var pubkey []byte
		var role string
		if err := rows.Scan(&p.ThreadID, &pubkey, &role, &p.JoinedAtNs); err != nil {
			return nil, err
		}
		copy(p.Pubkey[:], pubkey)
		p.Role = ParticipantRole(role)
		out = append(out, p)
	}
	return out, rows.Err()
}

const createMessageSQL = `
INSERT INTO messages (id, thread_id, sender_pubkey, sender_role, body, created_at_ns)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, thread_id, sender_pubkey, sender_role, body, created_at_ns`

func (q *Queries) CreateMessage(ctx context.Context, arg CreateMessageParams) (Message, error) {
	row := q.db.QueryRow(ctx, createMessageSQL, arg.ID, arg.ThreadID, arg.SenderPubkey[:], string(arg.SenderRole), arg.Body, arg.CreatedAtNs)
	return scanMessage(row)
}

const getMessageSQL = `SELECT id, thread_id, sender_pubkey, sender_role, body, created_at_ns FROM messages WHERE id = $1`

func (q *Queries) GetMessage(ctx context.Context, messageID uuid.UUID) (Message, error) {
	row := q.db.QueryRow(ctx, getMessageSQL, messageID)
	return scanMessage(row)
}

func scanMessage(row rowScanner) (Message, error) {
	var m Message
	var sender []byte
	var role string
	err := row.Scan(&m.ID, &m.ThreadID, &sender, &role, &m.Body, &m.CreatedAtNs)
	if err != nil {
		return Message{}, err
	}
	copy(m.SenderPubkey[:], sender)
	m.SenderRole = SenderRole(role)
	return m, nil
}

const touchThreadLastMessageSQL = `UPDATE message_threads SET last_message_at_ns = $2 WHERE id = $1`

func (q *Queries) TouchThreadLastMessage(ctx context.Context, threadID uuid.UUID, atNs int64) error {
	_, err := q.db.Exec(ctx, touchThreadLastMessageSQL, threadID, atNs)
	return err
}

const listMessagesSQL = `
SELECT id, thread_id, sender_pubkey, sender_role, body, created_at_ns
FROM messages WHERE thread_id = $1 ORDER BY created_at_ns`

func (q *Queries) ListMessages(ctx context.Context, threadID uuid.UUID) ([]Message, error) {
	rows, err := q.db.Query(ctx, listMessagesSQL, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

const hasReadReceiptSQL = `SELECT EXISTS(SELECT 1 FROM message_read_receipts WHERE message_id = $1 AND reader_pubkey = $2)`

func (q *Queries) HasReadReceipt(ctx context.Context, messageID uuid.UUID, reader [32]byte) (bool, error) {
	var ok bool
	err := q.db.QueryRow(ctx, hasReadReceiptSQL, messageID, reader[:]).Scan(&ok)
	return ok, err
}

// MarkRead is an idempotent INSERT-IGNORE-shaped upsert: the first caller
// wins the read_at_ns value, every subsequent call (including concurrent
// ones) observes the same timestamp via the RETURNING clause.
const markReadSQL = `
INSERT INTO message_read_receipts (message_id, reader_pubkey, read_at_ns)
VALUES ($1, $2, $3)
ON CONFLICT (message_id, reader_pubkey) DO UPDATE SET read_at_ns = message_read_receipts.read_at_ns
RETURNING read_at_ns`

func (q *Queries) MarkRead(ctx context.Context, messageID uuid.UUID, reader [32]byte, readAtNs int64) (int64, error) {
	var actual int64
	err := q.db.QueryRow(ctx, markReadSQL, messageID, reader[:], readAtNs).Scan(&actual)
	return actual, err
}

const unreadCountSQL = `
SELECT COUNT(*) FROM messages m
WHERE m.thread_id = $1 AND m.sender_pubkey <> $2
  AND NOT EXISTS (SELECT 1 FROM message_read_receipts r WHERE r.message_id = m.id AND r.reader_pubkey = $2)`

func (q *Queries) UnreadCount(ctx context.Context, threadID uuid.UUID, viewer [32]byte) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, unreadCountSQL, threadID, viewer[:]).Scan(&n)
	return n, err
}

const createMessageNotificationSQL = `
INSERT INTO message_notifications (id, message_id, recipient_pubkey, status, created_at_ns)
VALUES ($1, $2, $3, 'pending', $4)
RETURNING id, message_id, recipient_pubkey, status, created_at_ns, sent_at_ns`

func (q *Queries) CreateMessageNotification(ctx context.Context, arg CreateMessageNotificationParams) (MessageNotification, error) {
	row := q.db.QueryRow(ctx, createMessageNotificationSQL, arg.ID, arg.MessageID, arg.RecipientPubkey[:], arg.CreatedAtNs)
	return scanMessageNotification(row)
}

const listPendingMessageNotificationsSQL = `
SELECT id, message_id, recipient_pubkey, status, created_at_ns, sent_at_ns
FROM message_notifications WHERE status = 'pending' ORDER BY created_at_ns LIMIT $1`

func (q *Queries) ListPendingMessageNotifications(ctx context.Context, limit int32) ([]MessageNotification, error) {
	rows, err := q.db.Query(ctx, listPendingMessageNotificationsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MessageNotification
	for rows.Next() {
		n, err := scanMessageNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

const setMessageNotificationStatusSQL = `UPDATE message_notifications SET status = $2, sent_at_ns = $3 WHERE id = $1`

func (q *Queries) SetMessageNotificationStatus(ctx context.Context, id uuid.UUID, status NotificationStatus, sentAtNs *int64) error {
	_, err := q.db.Exec(ctx, setMessageNotificationStatusSQL, id, string(status), sentAtNs)
	return err
}

func scanMessageNotification(row rowScanner) (MessageNotification, error) {
	var n MessageNotification
	var recipient []byte
	var status string
	err := row.Scan(&n.ID, &n.MessageID, &recipient, &status, &n.CreatedAtNs, &n.SentAtNs)
	if err != nil {
		return MessageNotification{}, err
	}
	copy(n.RecipientPubkey[:], recipient)
	n.Status = NotificationStatus(status)
	return n, nil
}
