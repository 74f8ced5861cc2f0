package handlers

import (
	"io"
	"net/http"

	"github.com/decent-cloud/backend/internal/apierr"
	"github.com/decent-cloud/backend/internal/db"
	"github.com/decent-cloud/backend/internal/services"
	"github.com/gin-gonic/gin"
)

type createContractRequest struct {
	OfferingID    string  `json:"offering_id" validate:"required,max=128"`
	OwnerPubkey   string  `json:"owner_pubkey" validate:"required,len=64,hexadecimal"`
	SSHPubkey     *string `json:"ssh_pubkey"`
	ContactMethod *string `json:"contact_method"`
	RequestMemo   string  `json:"request_memo" validate:"max=2048"`
	DurationHours int32   `json:"duration_hours" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=card crypto"`
}

// CreateContract handles POST /contracts (spec §4.E, §6). For card
// contracts it also opens the Stripe PaymentIntent so the client secret
// can be returned in the same response.
func CreateContract(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := callerPubkey(c)
		if !ok {
			sendError(c, apierr.New(apierr.Unauthenticated, "authentication required"))
			return
		}
		var req createContractRequest
		if err := bindJSON(c, &req); err != nil {
			sendError(c, err)
			return
		}
		ownerPubkey, err := decodePubkeyHex(req.OwnerPubkey)
		if err != nil {
			sendError(c, err)
			return
		}
		offering, err := s.Offerings.GetVisible(c.Request.Context(), ownerPubkey, req.OfferingID, &requester)
		if err != nil {
			sendError(c, err)
			return
		}

		contract, err := s.Contracts.Create(c.Request.Context(), services.CreateRequest{
			RequesterPubkey: requester,
			OfferingDBID:    offering.ID,
			SSHPubkey:       req.SSHPubkey,
			ContactMethod:   req.ContactMethod,
			RequestMemo:     req.RequestMemo,
			DurationHours:   req.DurationHours,
			PaymentMethod:   db.PaymentMethod(req.PaymentMethod),
		})
		if err != nil {
			sendError(c, err)
			return
		}

		response := gin.H{"contract": contract}
		if contract.PaymentMethod == db.PaymentMethodCard {
			intent, err := s.Payments.CreateCardIntent(c.Request.Context(), contract)
			if err != nil {
				sendError(c, err)
				return
			}
			response["client_secret"] = intent.ClientSecret
		}
		sendSuccess(c, http.StatusCreated, response)
	}
}

// AcceptContract handles POST /contracts/:contractID/accept (provider).
func AcceptContract(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider, ok := callerPubkey(c)
		if !ok {
			sendError(c, apierr.New(apierr.Unauthenticated, "authentication required"))
			return
		}
		contractID, err := parseUUIDParam(c, "contractID")
		if err != nil {
			sendError(c, err)
			return
		}
		contract, err := s.Contracts.Accept(c.Request.Context(), contractID, provider)
		if err != nil {
			sendError(c, err)
			return
		}
		sendSuccess(c, http.StatusOK, contract)
	}
}

type rejectRequest struct {
	Memo *string `json:"memo"`
}

// RejectContract handles POST /contracts/:contractID/reject (provider).
func RejectContract(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider, ok := callerPubkey(c)
		if !ok {
			sendError(c, apierr.New(apierr.Unauthenticated, "authentication required"))
			return
		}
		contractID, err := parseUUIDParam(c, "contractID")
		if err != nil {
			sendError(c, err)
			return
		}
		var req rejectRequest
		_ = c.ShouldBindJSON(&req)
		contract, err := s.Contracts.Reject(c.Request.Context(), contractID, provider, req.Memo)
		if err != nil {
			sendError(c, err)
			return
		}
		sendSuccess(c, http.StatusOK, contract)
	}
}

type provisioningUpdateRequest struct {
	Status          string  `json:"status" validate:"required,oneof=provisioning provisioned"`
	InstanceDetails *string `json:"instance_details"`
}

// UpdateProvisioning handles POST /contracts/:contractID/provisioning (provider).
func UpdateProvisioning(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider, ok := callerPubkey(c)
		if !ok {
			sendError(c, apierr.New(apierr.Unauthenticated, "authentication required"))
			return
		}
		contractID, err := parseUUIDParam(c, "contractID")
		if err != nil {
			sendError(c, err)
			return
		}
		var req provisioningUpdateRequest
		if err := bindJSON(c, &req); err != nil {
			sendError(c, err)
			return
		}
		contract, err := s.Contracts.ProvisioningUpdate(c.Request.Context(), contractID, provider, db.ContractStatus(req.Status), req.InstanceDetails)
		if err != nil {
			sendError(c, err)
			return
		}
		sendSuccess(c, http.StatusOK, contract)
	}
}

type cancelRequest struct {
	Memo *string `json:"memo"`
}

// CancelContract handles POST /contracts/:contractID/cancel (either party).
func CancelContract(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := callerPubkey(c)
		if !ok {
			sendError(c, apierr.New(apierr.Unauthenticated, "authentication required"))
			return
		}
		contractID, err := parseUUIDParam(c, "contractID")
		if err != nil {
			sendError(c, err)
			return
		}
		var req cancelRequest
		_ = c.ShouldBindJSON(&req)
		contract, err := s.Contracts.Cancel(c.Request.Context(), contractID, actor, req.Memo)
		if err != nil {
			sendError(c, err)
			return
		}
		sendSuccess(c, http.StatusOK, contract)
	}
}

type attachCryptoTxRequest struct {
	TransactionID string `json:"transaction_id" validate:"required,max=256"`
}

// AttachCryptoTransaction handles POST /contracts/:contractID/crypto-transaction
// (requester reports the on-chain/rail transaction id, spec §4.F).
func AttachCryptoTransaction(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := callerPubkey(c)
		if !ok {
			sendError(c, apierr.New(apierr.Unauthenticated, "authentication required"))
			return
		}
		contractID, err := parseUUIDParam(c, "contractID")
		if err != nil {
			sendError(c, err)
			return
		}
		var req attachCryptoTxRequest
		if err := bindJSON(c, &req); err != nil {
			sendError(c, err)
			return
		}
		contract, err := s.Contracts.AttachCryptoTransaction(c.Request.Context(), contractID, requester, req.TransactionID)
		if err != nil {
			sendError(c, err)
			return
		}
		sendSuccess(c, http.StatusOK, contract)
	}
}

// StripeWebhook handles POST /webhooks/stripe — no signature-auth
// middleware; authenticity comes from the Stripe-Signature header
// verified inside PaymentService (spec §4.F).
func StripeWebhook(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			sendError(c, apierr.Wrap(apierr.InvalidArgument, "failed to read webhook body", err))
			return
		}
		if err := s.Payments.HandleStripeWebhook(c.Request.Context(), body, c.GetHeader("Stripe-Signature")); err != nil {
			sendError(c, err)
			return
		}
		c.Status(http.StatusOK)
	}
}

// GetInvoice handles GET /contracts/:contractID/invoice.
func GetInvoice(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		contractID, err := parseUUIDParam(c, "contractID")
		if err != nil {
			sendError(c, err)
			return
		}
		invoice, err := s.Sequences.GetInvoice(c.Request.Context(), contractID)
		if err != nil {
			sendError(c, err)
			return
		}
		sendSuccess(c, http.StatusOK, invoice)
	}
}
