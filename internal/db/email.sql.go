package db

import (
	"context"

	"github.com/google/uuid"
)

const enqueueEmailSQL = `
INSERT INTO email_queue (id, to_addr, from_addr, subject, body, is_html, email_type,
       status, attempts, max_attempts, next_attempt_at_ns, created_at_ns)
VALUES ($1,$2,$3,$4,$5,$6,$7,'pending',0,$8,$9,$9)
RETURNING id, to_addr, from_addr, subject, body, is_html, email_type, status, attempts,
          max_attempts, last_error, next_attempt_at_ns, sent_at_ns, created_at_ns`

func (q *Queries) EnqueueEmail(ctx context.Context, arg EnqueueEmailParams) (EmailQueueEntry, error) {
	row := q.db.QueryRow(ctx, enqueueEmailSQL,
		arg.ID, arg.ToAddr, arg.FromAddr, arg.Subject, arg.Body, arg.IsHTML, arg.EmailType,
		arg.MaxAttempts, arg.CreatedAtNs)
	return scanEmailQueueEntry(row)
}

// ListDueEmails returns pending/failed-but-retryable rows whose backoff
// window has elapsed (spec §4.H: base 60s, cap 1h, per-type max_attempts).
const listDueEmailsSQL = `
SELECT id, to_addr, from_addr, subject, body, is_html, email_type, status, attempts,
       max_attempts, last_error, next_attempt_at_ns, sent_at_ns, created_at_ns
FROM email_queue
WHERE status IN ('pending', 'failed') AND attempts < max_attempts AND next_attempt_at_ns <= $1
ORDER BY next_attempt_at_ns
LIMIT $2`

func (q *Queries) ListDueEmails(ctx context.Context, nowNs int64, limit int32) ([]EmailQueueEntry, error) {
	rows, err := q.db.Query(ctx, listDueEmailsSQL, nowNs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EmailQueueEntry
	for rows.Next() {
		e, err := scanEmailQueueEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

const markEmailSentSQL = `UPDATE email_queue SET status = 'sent', sent_at_ns = $2 WHERE id = $1`

func (q *Queries) MarkEmailSent(ctx context.Context, id uuid.UUID, sentAtNs int64) error {
	_, err := q.db.Exec(ctx, markEmailSentSQL, id, sentAtNs)
	return err
}

const markEmailAttemptFailedSQL = `
UPDATE email_queue SET
  attempts = $2, last_error = $3, next_attempt_at_ns = $4,
  status = CASE WHEN $5 THEN 'failed' ELSE 'pending' END
WHERE id = $1`

func (q *Queries) MarkEmailAttemptFailed(ctx context.Context, id uuid.UUID, attempts int32, lastErr string, nextAttemptAtNs int64, failed bool) error {
	_, err := q.db.Exec(ctx, markEmailAttemptFailedSQL, id, attempts, lastErr, nextAttemptAtNs, failed)
	return err
}

const resetEmailSQL = `
UPDATE email_queue SET status = 'pending', attempts = 0, last_error = NULL, next_attempt_at_ns = $2
WHERE id = $1`

func (q *Queries) ResetEmail(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, resetEmailSQL, id, int64(0))
	return err
}

const retryAllFailedSQL = `
UPDATE email_queue SET status = 'pending', attempts = 0, last_error = NULL, next_attempt_at_ns = 0
WHERE status = 'failed'`

func (q *Queries) RetryAllFailed(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, retryAllFailedSQL)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const emailStatsSQL = `SELECT status, COUNT(*) FROM email_queue GROUP BY status`

func (q *Queries) EmailStats(ctx context.Context) (map[EmailStatus]int64, error) {
	rows, err := q.db.Query(ctx, emailStatsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[EmailStatus]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[EmailStatus(status)] = n
	}
	return out, rows.Err()
}

const getEmailSQL = `
SELECT id, to_addr, from_addr, subject, body, is_html, email_type, status, attempts,
       max_attempts, last_error, next_attempt_at_ns, sent_at_ns, created_at_ns
FROM email_queue WHERE id = $1`

func (q *Queries) GetEmail(ctx context.Context, id uuid.UUID) (EmailQueueEntry, error) {
	row := q.db.QueryRow(ctx, getEmailSQL, id)
	return scanEmailQueueEntry(row)
}

func scanEmailQueueEntry(row rowScanner) (EmailQueueEntry, error) {
	var e EmailQueueEntry
	var status string
	err := row.Scan(&e.ID, &e.ToAddr, &e.FromAddr, &e.Subject, &e.Body, &e.IsHTML, &e.EmailType,
		&status, &e.Attempts, &e.MaxAttempts, &e.LastError, &e.NextAttemptAtNs, &e.SentAtNs,
		&e.CreatedAtNs)
	if err != nil {
		return EmailQueueEntry{}, err
	}
	e.Status = EmailStatus(status)
	return e, nil
}
