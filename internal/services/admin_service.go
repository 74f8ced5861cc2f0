package services

import (
	"context"

	"github.com/decent-cloud/backend/internal/apierr"
	"github.com/decent-cloud/backend/internal/auth"
	"github.com/decent-cloud/backend/internal/db"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	emailQueueDepth = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "decent_cloud_email_queue_depth",
		Help: "Number of email queue entries by status.",
	}, []string{"status"})
	nonceCacheOccupancy = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "decent_cloud_nonce_cache_entries",
		Help: "Number of nonces currently tracked by the signature replay cache.",
	})
	nonceCacheCapacity = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "decent_cloud_nonce_cache_capacity",
		Help: "Configured capacity of the signature replay cache.",
	})
)

func init() {
	prometheus.MustRegister(emailQueueDepth, nonceCacheOccupancy, nonceCacheCapacity)
}

// AdminService backs the admin and observability surface (spec §4.K):
// platform stats, admin grant/revoke, and failed-email triage.
type AdminService struct {
	queries db.Querier
	nonces  *auth.NonceCache
}

func NewAdminService(queries db.Querier, nonces *auth.NonceCache) *AdminService {
	return &AdminService{queries: queries, nonces: nonces}
}

// PlatformStats reports headline counts plus the nonce-cache occupancy and
// email-queue depth by status (SPEC_FULL.md §4.K supplement) and updates
// the matching Prometheus gauges as a side effect of being scraped.
type PlatformStats struct {
	db.PlatformStatsRow
	EmailQueueDepth  map[db.EmailStatus]int64
	NonceCacheLen    int
	NonceCacheCap    int
}

func (s *AdminService) PlatformStats(ctx context.Context) (PlatformStats, error) {
	row, err := s.queries.PlatformStats(ctx)
	if err != nil {
		return PlatformStats{}, apierr.Wrap(apierr.Internal, "failed to load platform stats", err)
	}
	emailStats, err := s.queries.EmailStats(ctx)
	if err != nil {
		return PlatformStats{}, apierr.Wrap(apierr.Internal, "failed to load email stats", err)
	}

	nonceLen, nonceCap := 0, 0
	if s.nonces != nil {
		nonceLen, nonceCap = s.nonces.Len(), s.nonces.Cap()
	}

	emailQueueDepth.Reset()
	for status, count := range emailStats {
		emailQueueDepth.WithLabelValues(string(status)).Set(float64(count))
	}
	nonceCacheOccupancy.Set(float64(nonceLen))
	nonceCacheCapacity.Set(float64(nonceCap))

	return PlatformStats{
		PlatformStatsRow: row,
		EmailQueueDepth:  emailStats,
		NonceCacheLen:    nonceLen,
		NonceCacheCap:    nonceCap,
	}, nil
}

func (s *AdminService) GrantAdmin(ctx context.Context, accountID uuid.UUID, atNs int64) error {
	return s.queries.SetAccountAdmin(ctx, accountID, true, atNs)
}

func (s *AdminService) RevokeAdmin(ctx context.Context, accountID uuid.UUID, atNs int64) error {
	return s.queries.SetAccountAdmin(ctx, accountID, false, atNs)
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]db.Account, error) {
	return s.queries.ListAdmins(ctx)
}

func (s *AdminService) GetEmail(ctx context.Context, id uuid.UUID) (db.EmailQueueEntry, error) {
	entry, err := s.queries.GetEmail(ctx, id)
	if err != nil {
		return db.EmailQueueEntry{}, apierr.New(apierr.NotFound, "email not found")
	}
	return entry, nil
}

func (s *AdminService) ResetEmail(ctx context.Context, id uuid.UUID) error {
	return s.queries.ResetEmail(ctx, id)
}

// RetryAllFailed re-queues every failed email for another attempt and
// returns how many rows were affected.
func (s *AdminService) RetryAllFailed(ctx context.Context) (int64, error) {
	n, err := s.queries.RetryAllFailed(ctx)
	if err != nil {
		return 0, apierr.Wrap(apierr.Internal, "failed to retry failed emails", err)
	}
	return n, nil
}

func (s *AdminService) EmailStats(ctx context.Context) (map[db.EmailStatus]int64, error) {
	return s.queries.EmailStats(ctx)
}
