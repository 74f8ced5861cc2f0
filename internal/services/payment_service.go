package services

import (
	"context"
	"errors"

	"github.com/decent-cloud/backend/internal/apierr"
	"github.com/decent-cloud/backend/internal/client/cryptorail"
	"github.com/decent-cloud/backend/internal/client/stripe"
	"github.com/decent-cloud/backend/internal/db"
	"github.com/decent-cloud/backend/internal/logger"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PaymentService coordinates the two payment rails (spec §4.F): Card,
// driven by Stripe webhooks, and Crypto, a trust-frontend model with an
// optional best-effort background verifier. It translates rail events
// into ContractService transitions. The one contract-row write it makes
// itself is CreateCardIntent storing the new intent id.
type PaymentService struct {
	queries  db.Querier
	contracts *ContractService
	emails    *EmailService
	sequences *SequenceService
	cardRail  *stripe.Client
	cryptoRail *cryptorail.Client
}

func NewPaymentService(queries db.Querier, contracts *ContractService, emails *EmailService, sequences *SequenceService, cardRail *stripe.Client, cryptoRail *cryptorail.Client) *PaymentService {
	return &PaymentService{
		queries:    queries,
		contracts:  contracts,
		emails:     emails,
		sequences:  sequences,
		cardRail:   cardRail,
		cryptoRail: cryptoRail,
	}
}

// CreateCardIntent opens a Stripe PaymentIntent for a just-created card
// contract and records the intent id so the webhook can find the
// contract again (spec §4.F).
func (p *PaymentService) CreateCardIntent(ctx context.Context, contract db.Contract) (stripe.Intent, error) {
	amountCents := contract.PaymentAmountE9s / 1e7
	intent, err := p.cardRail.CreateIntent(amountCents, contract.Currency, map[string]string{
		"contract_id": contract.ContractID.String(),
	})
	if err != nil {
		return stripe.Intent{}, apierr.Wrap(apierr.Internal, "failed to create card payment intent", err)
	}

	locked, err := p.queries.GetContractForUpdate(ctx, contract.ContractID)
	if err != nil {
		return stripe.Intent{}, apierr.Wrap(apierr.Internal, "failed to reload contract", err)
	}
	locked.CardPaymentIntentID = &intent.ID
	if err := p.queries.UpdateContract(ctx, locked); err != nil {
		return stripe.Intent{}, apierr.Wrap(apierr.Internal, "failed to attach payment intent", err)
	}
	return intent, nil
}

// HandleStripeWebhook verifies and dispatches a Stripe webhook delivery
// (spec §4.F). Unknown event types are accepted and ignored, since Stripe
// retries on non-2xx and this endpoint only cares about two of them.
func (p *PaymentService) HandleStripeWebhook(ctx context.Context, body []byte, signatureHeader string) error {
	event, err := p.cardRail.ParseWebhook(body, signatureHeader)
	if err != nil {
		return apierr.Wrap(apierr.InvalidArgument, "invalid stripe webhook signature", err)
	}

	switch event.Type {
	case stripe.EventIntentSucceeded:
		return p.onCardSucceeded(ctx, event.IntentID)
	case stripe.EventIntentPaymentFailed:
		return p.onCardFailed(ctx, event.IntentID)
	}
	return nil
}

func (p *PaymentService) onCardSucceeded(ctx context.Context, intentID string) error {
	contract, err := p.queries.GetContractByCardIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn("stripe webhook for unknown intent", zap.String("intent_id", intentID))
			return nil
		}
		return apierr.Wrap(apierr.Internal, "failed to look up contract by intent id", err)
	}

	updated, allocated, err := p.contracts.PaySucceeded(ctx, contract.ContractID)
	if err != nil {
		return err
	}
	if !allocated {
		return nil // already processed (idempotent webhook redelivery)
	}

	if updated.ReceiptNumber != nil {
		p.notifyReceipt(ctx, updated)
	}
	return nil
}

func (p *PaymentService) onCardFailed(ctx context.Context, intentID string) error {
	contract, err := p.queries.GetContractByCardIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn("stripe webhook for unknown intent", zap.String("intent_id", intentID))
			return nil
		}
		return apierr.Wrap(apierr.Internal, "failed to look up contract by intent id", err)
	}
	_, err = p.contracts.PayFailed(ctx, contract.ContractID)
	return err
}

// VerifyCryptoTransaction is the optional best-effort background check
// (spec §4.F): if the rail has no record matching the contract at all, the
// claim is treated as false and the contract's payment is invalidated. A
// rail error (as opposed to "not found") is not treated as a false claim —
// it only means verification is currently unavailable, so the
// trust-frontend posture is kept.
func (p *PaymentService) VerifyCryptoTransaction(ctx context.Context, contract db.Contract) {
	if p.cryptoRail == nil || contract.CryptoTransactionID == nil {
		return
	}
	record, err := p.cryptoRail.FindByMetadata(ctx, contract.ContractID.String())
	if err != nil {
		logger.Warn("crypto rail verification unavailable", zap.String("contract_id", contract.ContractID.String()), zap.Error(err))
		return
	}
	if record == nil {
		if _, err := p.contracts.InvalidateCryptoPayment(ctx, contract.ContractID); err != nil {
			logger.Error("failed to invalidate unverifiable crypto payment",
				zap.String("contract_id", contract.ContractID.String()), zap.Error(err))
		}
	}
}

func (p *PaymentService) notifyReceipt(ctx context.Context, contract db.Contract) {
	key, err := p.queries.GetPublicKeyByBytes(ctx, contract.RequesterPubkey)
	if err != nil {
		return
	}
	account, err := p.queries.GetAccountByID(ctx, key.AccountID)
	if err != nil || account.Email == "" {
		return
	}
	if err := p.emails.EnqueueReceiptEmail(ctx, account.Email, *contract.ReceiptNumber, contract.ContractID); err != nil {
		logger.Error("failed to enqueue receipt email", zap.String("contract_id", contract.ContractID.String()), zap.Error(err))
	}
}
