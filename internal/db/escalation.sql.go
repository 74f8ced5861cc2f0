package db

import (
	"context"

	"github.com/google/uuid"
)

const resolveEscalationAssigneeSQL = `
SELECT account_id FROM escalation_mappings WHERE external_assignee_id = $1`

func (q *Queries) ResolveEscalationAssignee(ctx context.Context, externalAssigneeID string) (uuid.UUID, error) {
	var accountID uuid.UUID
	err := q.db.QueryRow(ctx, resolveEscalationAssigneeSQL, externalAssigneeID).Scan(&accountID)
	return accountID, err
}

const listNotificationPreferencesSQL = `
SELECT account_id, channel, enabled, target
FROM notification_preferences WHERE account_id = $1`

func (q *Queries) ListNotificationPreferences(ctx context.Context, accountID uuid.UUID) ([]NotificationPreference, error) {
	rows, err := q.db.Query(ctx, listNotificationPreferencesSQL, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []NotificationPreference
	for rows.Next() {
		var p NotificationPreference
		var channel string
		if err := rows.Scan(&p.AccountID, &channel, &p.Enabled, &p.Target); err != nil {
			return nil, err
		}
		p.Channel = NotificationChannel(channel)
		out = append(out, p)
	}
	return out, rows.Err()
}
