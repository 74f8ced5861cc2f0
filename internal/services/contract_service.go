package services

import (
	"context"
	"errors"
	"time"

	"github.com/decent-cloud/backend/internal/apierr"
	"github.com/decent-cloud/backend/internal/client/stripe"
	"github.com/decent-cloud/backend/internal/constants"
	"github.com/decent-cloud/backend/internal/db"
	"github.com/decent-cloud/backend/internal/dbx"
	"github.com/decent-cloud/backend/internal/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ContractService implements the rental contract lifecycle state machine
// (spec §4.E): requested → accepted → provisioning → provisioned → active →
// ended, with parallel cancelled/rejected/expired states. Every transition
// runs inside a transaction that locks the contract row (SELECT ... FOR
// UPDATE) and appends to ContractStatusHistory (spec §5).
type ContractService struct {
	pool      *pgxpool.Pool
	queries   db.Querier
	offerings *OfferingService
	cardRail  *stripe.Client
}

func NewContractService(pool *pgxpool.Pool, queries db.Querier, offerings *OfferingService, cardRail *stripe.Client) *ContractService {
	return &ContractService{pool: pool, queries: queries, offerings: offerings, cardRail: cardRail}
}

// allowedTransitions is the contract status graph (spec §4.E, §8).
var allowedTransitions = map[db.ContractStatus][]db.ContractStatus{
	db.ContractStatusRequested:    {db.ContractStatusAccepted, db.ContractStatusRejected, db.ContractStatusCancelled, db.ContractStatusExpired},
	db.ContractStatusAccepted:     {db.ContractStatusProvisioning, db.ContractStatusCancelled},
	db.ContractStatusProvisioning: {db.ContractStatusProvisioned, db.ContractStatusCancelled},
	db.ContractStatusProvisioned:  {db.ContractStatusActive, db.ContractStatusCancelled},
	db.ContractStatusActive:       {db.ContractStatusEnded, db.ContractStatusCancelled},
}

func isAllowedTransition(from, to db.ContractStatus) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// CreateRequest is the input to Create (spec §4.E "create" transition).
type CreateRequest struct {
	RequesterPubkey    [32]byte
	OfferingDBID       uuid.UUID
	SSHPubkey          *string
	ContactMethod      *string
	RequestMemo        string
	DurationHours       int32
	PaymentMethod      db.PaymentMethod
}

// Create validates the offering and writes the requested-state row (spec
// §4.E). Card contracts start payment_status=pending; crypto contracts
// start payment_status=succeeded immediately (trust-frontend, spec §4.F).
func (s *ContractService) Create(ctx context.Context, req CreateRequest) (db.Contract, error) {
	offering, err := s.queries.GetOfferingByDBID(ctx, req.OfferingDBID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.Contract{}, apierr.New(apierr.NotFound, "offering not found")
		}
		return db.Contract{}, apierr.Wrap(apierr.Internal, "failed to look up offering", err)
	}
	if !s.offerings.isVisibleTo(ctx, offering, &req.RequesterPubkey) {
		return db.Contract{}, apierr.New(apierr.NotFound, "offering not found")
	}
	if !isValidCurrency(offering.Currency) {
		return db.Contract{}, apierr.New(apierr.InvalidArgument, "offering has an invalid currency")
	}
	if req.DurationHours <= 0 {
		return db.Contract{}, apierr.New(apierr.InvalidArgument, "duration_hours must be positive")
	}

	// payment_amount_e9s = monthly_price * 1e9 * duration_hours / 720, rounded (spec §4.E).
	amountE9s := int64(offering.MonthlyPrice*1e9*float64(req.DurationHours)/constants.HoursPerBillingMonth + 0.5)
	if amountE9s <= 0 {
		return db.Contract{}, apierr.New(apierr.InvalidArgument, "computed payment amount must be positive")
	}

	paymentStatus := db.PaymentStatusPending
	if req.PaymentMethod == db.PaymentMethodCrypto {
		paymentStatus = db.PaymentStatusSucceeded
	}

	now := time.Now().UnixNano()
	contract, err := s.queries.CreateContract(ctx, db.CreateContractParams{
		ContractID:         uuid.New(),
		RequesterPubkey:    req.RequesterPubkey,
		ProviderPubkey:     offering.OwnerPubkey,
		OfferingID:         offering.ID,
		PaymentMethod:      req.PaymentMethod,
		PaymentStatus:      paymentStatus,
		Status:             db.ContractStatusRequested,
		PaymentAmountE9s:   amountE9s,
		Currency:           offering.Currency,
		RequestMemo:        req.RequestMemo,
		RequesterSSHPubkey: req.SSHPubkey,
		RequesterContact:   req.ContactMethod,
		DurationHours:      req.DurationHours,
		StatusUpdatedAtNs:  now,
		CreatedAtNs:        now,
	})
	if err != nil {
		return db.Contract{}, apierr.Wrap(apierr.Internal, "failed to create contract", err)
	}
	return contract, nil
}

// transition runs fn against a row-locked contract inside a transaction,
// validating the status change and appending history (spec §4.E, §5).
func (s *ContractService) transition(ctx context.Context, contractID uuid.UUID, actor [32]byte, memo *string, fn func(qtx db.Querier, c *db.Contract) (db.ContractStatus, error)) (db.Contract, error) {
	var result db.Contract

	err := dbx.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		qtx := db.New(tx)
		contract, err := qtx.GetContractForUpdate(ctx, contractID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apierr.New(apierr.NotFound, "contract not found")
			}
			return apierr.Wrap(apierr.Internal, "failed to lock contract", err)
		}

		from := contract.Status
		to, err := fn(qtx, &contract)
		if err != nil {
			return err
		}

		if to != from {
			if !isAllowedTransition(from, to) {
				return apierr.New(apierr.PreconditionFailed, "illegal contract transition "+string(from)+" -> "+string(to))
			}
			contract.Status = to
		}
		contract.StatusUpdatedAtNs = time.Now().UnixNano()

		if err := qtx.UpdateContract(ctx, contract); err != nil {
			return apierr.Wrap(apierr.Internal, "failed to update contract", err)
		}
		if to != from {
			if err := qtx.AppendContractStatusHistory(ctx, db.ContractStatusHistoryParams{
				ID:          uuid.New(),
				ContractID:  contract.ContractID,
				FromStatus:  string(from),
				ToStatus:    string(to),
				ActorPubkey: actor,
				Memo:        memo,
				AtNs:        contract.StatusUpdatedAtNs,
			}); err != nil {
				return apierr.Wrap(apierr.Internal, "failed to append status history", err)
			}
		}

		result = contract
		return nil
	})
	if err != nil {
		return db.Contract{}, err
	}
	return result, nil
}

// Accept transitions requested -> accepted (provider, manual), only once
// payment has succeeded (spec §4.E).
func (s *ContractService) Accept(ctx context.Context, contractID uuid.UUID, providerPubkey [32]byte) (db.Contract, error) {
	return s.transition(ctx, contractID, providerPubkey, nil, func(_ db.Querier, c *db.Contract) (db.ContractStatus, error) {
		if c.ProviderPubkey != providerPubkey {
			return c.Status, apierr.New(apierr.Forbidden, "caller is not the provider")
		}
		if c.Status != db.ContractStatusRequested {
			return c.Status, apierr.New(apierr.PreconditionFailed, "contract is not in requested state")
		}
		if c.PaymentStatus != db.PaymentStatusSucceeded {
			return c.Status, apierr.New(apierr.PreconditionFailed, "payment has not succeeded")
		}
		return db.ContractStatusAccepted, nil
	})
}

// Reject transitions requested -> rejected (provider).
func (s *ContractService) Reject(ctx context.Context, contractID uuid.UUID, providerPubkey [32]byte, memo *string) (db.Contract, error) {
	return s.transition(ctx, contractID, providerPubkey, memo, func(_ db.Querier, c *db.Contract) (db.ContractStatus, error) {
		if c.ProviderPubkey != providerPubkey {
			return c.Status, apierr.New(apierr.Forbidden, "caller is not the provider")
		}
		if c.Status != db.ContractStatusRequested {
			return c.Status, apierr.New(apierr.PreconditionFailed, "contract is not in requested state")
		}
		return db.ContractStatusRejected, nil
	})
}

// ProvisioningUpdate moves accepted -> provisioning -> provisioned; the
// provisioned state requires non-empty instance_details. Marking a
// contract provisioned commits it to a start/end clock: start_timestamp_ns
// is set to the moment provisioning completes, and end_timestamp_ns is
// derived from duration_hours (spec §4.E — the "create" transition's
// CreateContractParams carries duration_hours but not the timestamps
// themselves, since the clock cannot start before the instance exists).
func (s *ContractService) ProvisioningUpdate(ctx context.Context, contractID uuid.UUID, providerPubkey [32]byte, to db.ContractStatus, instanceDetails *string) (db.Contract, error) {
	return s.transition(ctx, contractID, providerPubkey, nil, func(_ db.Querier, c *db.Contract) (db.ContractStatus, error) {
		if c.ProviderPubkey != providerPubkey {
			return c.Status, apierr.New(apierr.Forbidden, "caller is not the provider")
		}
		if to == db.ContractStatusProvisioned {
			if instanceDetails == nil || *instanceDetails == "" {
				return c.Status, apierr.New(apierr.InvalidArgument, "instance_details is required to mark provisioned")
			}
			c.InstanceDetails = instanceDetails

			start := time.Now().UnixNano()
			end := start + int64(c.DurationHours)*int64(time.Hour)
			c.StartTimestampNs = &start
			c.EndTimestampNs = &end
		}
		return to, nil
	})
}

// Activate moves provisioned -> active at start_timestamp_ns (internal timer).
func (s *ContractService) Activate(ctx context.Context, contractID uuid.UUID) (db.Contract, error) {
	return s.transition(ctx, contractID, [32]byte{}, nil, func(_ db.Querier, c *db.Contract) (db.ContractStatus, error) {
		if c.Status != db.ContractStatusProvisioned {
			return c.Status, apierr.New(apierr.PreconditionFailed, "contract is not provisioned")
		}
		return db.ContractStatusActive, nil
	})
}

// End moves active -> ended at end_timestamp_ns (internal timer).
func (s *ContractService) End(ctx context.Context, contractID uuid.UUID) (db.Contract, error) {
	return s.transition(ctx, contractID, [32]byte{}, nil, func(_ db.Querier, c *db.Contract) (db.ContractStatus, error) {
		if c.Status != db.ContractStatusActive {
			return c.Status, apierr.New(apierr.PreconditionFailed, "contract is not active")
		}
		return db.ContractStatusEnded, nil
	})
}

var cancellableFrom = map[db.ContractStatus]bool{
	db.ContractStatusRequested:    true,
	db.ContractStatusAccepted:     true,
	db.ContractStatusProvisioning: true,
	db.ContractStatusProvisioned:  true,
	db.ContractStatusActive:       true,
}

// Cancel computes the prorated refund and transitions the contract to
// cancelled (spec §4.E, §8 scenario 4).
func (s *ContractService) Cancel(ctx context.Context, contractID uuid.UUID, actor [32]byte, memo *string) (db.Contract, error) {
	return s.transition(ctx, contractID, actor, memo, func(_ db.Querier, c *db.Contract) (db.ContractStatus, error) {
		if actor != c.RequesterPubkey && actor != c.ProviderPubkey {
			return c.Status, apierr.New(apierr.Forbidden, "caller is not a party to this contract")
		}
		if !cancellableFrom[c.Status] {
			return c.Status, apierr.New(apierr.PreconditionFailed, "contract cannot be cancelled from its current state")
		}

		refund := ProratedRefund(c.PaymentAmountE9s, c.StartTimestampNs, c.EndTimestampNs, time.Now().UnixNano())
		s.applyRefund(ctx, c, refund)
		return db.ContractStatusCancelled, nil
	})
}

// applyRefund persists the refund outcome on the contract row. Card
// refunds call out to the card rail; failures are logged but never block
// cancellation (spec §4.E). Crypto refunds are recorded for out-of-band
// settlement only.
func (s *ContractService) applyRefund(ctx context.Context, c *db.Contract, refundE9s int64) {
	if refundE9s <= 0 {
		return
	}
	now := time.Now().UnixNano()

	switch c.PaymentMethod {
	case db.PaymentMethodCard:
		if s.cardRail == nil || c.CardPaymentIntentID == nil {
			return
		}
		amountCents := refundE9s / 1e7
		externalID, err := s.cardRail.Refund(*c.CardPaymentIntentID, amountCents)
		if err != nil {
			logger.Error("card refund failed, cancellation proceeds anyway",
				zap.String("contract_id", c.ContractID.String()), zap.Error(err))
			return
		}
		c.PaymentStatus = db.PaymentStatusRefunded
		c.RefundAmountE9s = &refundE9s
		c.RefundExternalID = &externalID
		c.RefundCreatedAtNs = &now

	case db.PaymentMethodCrypto:
		// Out-of-band settlement is the provider's obligation (spec §4.E);
		// we only persist the computed amount.
		c.RefundAmountE9s = &refundE9s
		c.RefundCreatedAtNs = &now
	}
}

// ProratedRefund implements the linear proration formula (spec §4.E, §8
// scenario "Prorated refund"): full refund before start, zero after end,
// linear in between, truncated to integer e9s.
func ProratedRefund(amountE9s int64, startNs, endNs *int64, now int64) int64 {
	if startNs == nil || now < *startNs {
		return amountE9s
	}
	if endNs == nil {
		return amountE9s
	}
	if now >= *endNs {
		return 0
	}
	remaining := *endNs - now
	total := *endNs - *startNs
	if total <= 0 {
		return 0
	}
	return amountE9s * remaining / total
}

// PaySucceeded handles a webhook-delivered intent.succeeded event (spec
// §4.F): marks payment succeeded and, for card contracts still requested,
// auto-accepts and allocates a receipt. Idempotent — a second delivery for
// an already-succeeded contract is a no-op (spec §5, §8).
func (s *ContractService) PaySucceeded(ctx context.Context, contractID uuid.UUID) (db.Contract, bool, error) {
	var receiptAllocated bool

	contract, err := s.transition(ctx, contractID, [32]byte{}, nil, func(qtx db.Querier, c *db.Contract) (db.ContractStatus, error) {
		if c.PaymentStatus == db.PaymentStatusSucceeded {
			return c.Status, nil // idempotent no-op
		}
		c.PaymentStatus = db.PaymentStatusSucceeded

		to := c.Status
		if c.PaymentMethod == db.PaymentMethodCard && c.Status == db.ContractStatusRequested {
			to = db.ContractStatusAccepted
		}

		receiptNumber, err := qtx.AllocateReceiptNumber(ctx)
		if err != nil {
			return c.Status, apierr.Wrap(apierr.Internal, "failed to allocate receipt number", err)
		}
		c.ReceiptNumber = &receiptNumber
		receiptAllocated = true

		return to, nil
	})
	return contract, receiptAllocated, err
}

// PayFailed handles a webhook-delivered intent.payment_failed event (spec
// §4.F): marks payment failed; status is unchanged, and the contract
// remains cancellable.
func (s *ContractService) PayFailed(ctx context.Context, contractID uuid.UUID) (db.Contract, error) {
	return s.transition(ctx, contractID, [32]byte{}, nil, func(_ db.Querier, c *db.Contract) (db.ContractStatus, error) {
		if c.PaymentStatus != db.PaymentStatusSucceeded {
			c.PaymentStatus = db.PaymentStatusFailed
		}
		return c.Status, nil
	})
}

// AttachCryptoTransaction lets the authenticated requester set the crypto
// transaction id (spec §4.F): the requester has unilateral power to set
// the transaction id but not the payment status.
func (s *ContractService) AttachCryptoTransaction(ctx context.Context, contractID uuid.UUID, requesterPubkey [32]byte, txID string) (db.Contract, error) {
	return s.transition(ctx, contractID, requesterPubkey, nil, func(_ db.Querier, c *db.Contract) (db.ContractStatus, error) {
		if c.RequesterPubkey != requesterPubkey {
			return c.Status, apierr.New(apierr.Forbidden, "caller is not the requester")
		}
		if c.PaymentMethod != db.PaymentMethodCrypto {
			return c.Status, apierr.New(apierr.PreconditionFailed, "contract is not on the crypto rail")
		}
		c.CryptoTransactionID = &txID
		return c.Status, nil
	})
}

// InvalidateCryptoPayment is called by the (optional) background verifier
// when a claimed transaction id does not exist on the rail (spec §4.F).
func (s *ContractService) InvalidateCryptoPayment(ctx context.Context, contractID uuid.UUID) (db.Contract, error) {
	return s.transition(ctx, contractID, [32]byte{}, nil, func(_ db.Querier, c *db.Contract) (db.ContractStatus, error) {
		c.PaymentStatus = db.PaymentStatusFailed
		return c.Status, nil
	})
}
