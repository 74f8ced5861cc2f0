package db

import (
	"context"
	"time"
)

const platformStatsSQL = `
SELECT
  (SELECT COUNT(DISTINCT owner_pubkey) FROM offerings) AS provider_count,
  (SELECT COUNT(*) FROM offerings) AS offering_count,
  (SELECT COUNT(*) FROM contracts) AS contract_count,
  (SELECT COUNT(*) FROM contracts WHERE status = 'active' AND status_updated_at_ns >= $1) AS active_contracts_24h`

func (q *Queries) PlatformStats(ctx context.Context) (PlatformStatsRow, error) {
	dayAgoNs := time.Now().Add(-24 * time.Hour).UnixNano()

	var r PlatformStatsRow
	err := q.db.QueryRow(ctx, platformStatsSQL, dayAgoNs).Scan(
		&r.ProviderCount, &r.OfferingCount, &r.ContractCount, &r.ActiveContracts24h)
	return r, err
}
