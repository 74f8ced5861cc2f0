package db

import (
	"context"

	"github.com/google/uuid"
)

// Querier is the full set of data-access operations the service layer
// depends on. CommonServices-style callers hold a Querier, not a
// *Queries, so tests can substitute a mock (go.uber.org/mock).
type Querier interface {
	// Accounts (§4.B)
	CreateAccount(ctx context.Context, arg CreateAccountParams) (Account, error)
	GetAccountByUsernameLower(ctx context.Context, usernameLower string) (Account, error)
	GetAccountByID(ctx context.Context, id uuid.UUID) (Account, error)
	GetAccountByEmail(ctx context.Context, email string) (Account, error)
	SetAccountEmail(ctx context.Context, id uuid.UUID, email string, updatedAtNs int64) error
	SetAccountEmailVerified(ctx context.Context, id uuid.UUID, updatedAtNs int64) error
	SetAccountAdmin(ctx context.Context, id uuid.UUID, isAdmin bool, updatedAtNs int64) error
	ListAdmins(ctx context.Context) ([]Account, error)

	// Public keys
	CreatePublicKey(ctx context.Context, arg CreatePublicKeyParams) (PublicKey, error)
	GetPublicKeyByBytes(ctx context.Context, pubkey [32]byte) (PublicKey, error)
	GetPublicKeyByID(ctx context.Context, id uuid.UUID) (PublicKey, error)
	ListActiveKeysForAccount(ctx context.Context, accountID uuid.UUID) ([]PublicKey, error)
	DisablePublicKey(ctx context.Context, id uuid.UUID, disabledAtNs int64, disabledByKeyID uuid.UUID) error
	RenamePublicKey(ctx context.Context, id uuid.UUID, deviceName string) error

	// Tokens
	CreateEmailVerificationToken(ctx context.Context, arg CreateEmailVerificationTokenParams) (EmailVerificationToken, error)
	GetEmailVerificationToken(ctx context.Context, token [16]byte) (EmailVerificationToken, error)
	MarkEmailVerificationTokenUsed(ctx context.Context, token [16]byte, usedAtNs int64) error
	CreateRecoveryToken(ctx context.Context, arg CreateRecoveryTokenParams) (RecoveryToken, error)
	GetRecoveryToken(ctx context.Context, token [16]byte) (RecoveryToken, error)
	MarkRecoveryTokenUsed(ctx context.Context, token [16]byte, usedAtNs int64) error

	// Offerings (§4.D)
	CreateOffering(ctx context.Context, arg CreateOfferingParams) (Offering, error)
	UpsertOffering(ctx context.Context, arg CreateOfferingParams) (Offering, error)
	GetOfferingByOwnerAndID(ctx context.Context, ownerPubkey [32]byte, offeringID string) (Offering, error)
	GetOfferingByDBID(ctx context.Context, id uuid.UUID) (Offering, error)
	QueryOfferings(ctx context.Context, whereClause string, binds []interface{}, limit, offset int32) ([]Offering, error)
	IsAllowlisted(ctx context.Context, offeringID string, pubkey [32]byte) (bool, error)
	AddAllowlistEntry(ctx context.Context, offeringID string, pubkey [32]byte) error

	// Contracts (§4.E)
	CreateContract(ctx context.Context, arg CreateContractParams) (Contract, error)
	GetContractForUpdate(ctx context.Context, contractID uuid.UUID) (Contract, error)
	GetContractByCardIntentID(ctx context.Context, intentID string) (Contract, error)
	UpdateContract(ctx context.Context, arg Contract) error
	AppendContractStatusHistory(ctx context.Context, arg ContractStatusHistoryParams) error
	ListContractsForProvider(ctx context.Context, providerPubkey [32]byte, since int64) ([]Contract, error)
	ListContractsDueToActivate(ctx context.Context, nowNs int64) ([]Contract, error)
	ListContractsDueToEnd(ctx context.Context, nowNs int64) ([]Contract, error)

	// Messaging (§4.G)
	GetThreadByContractID(ctx context.Context, contractID uuid.UUID) (MessageThread, error)
	CreateThread(ctx context.Context, arg CreateThreadParams) (MessageThread, error)
	AddThreadParticipant(ctx context.Context, threadID uuid.UUID, pubkey [32]byte, role ParticipantRole, joinedAtNs int64) error
	ListThreadParticipants(ctx context.Context, threadID uuid.UUID) ([]ThreadParticipant, error)
	CreateMessage(ctx context.Context, arg CreateMessageParams) (Message, error)
	TouchThreadLastMessage(ctx context.Context, threadID uuid.UUID, atNs int64) error
	ListMessages(ctx context.Context, threadID uuid.UUID) ([]Message, error)
	HasReadReceipt(ctx context.Context, messageID uuid.UUID, reader [32]byte) (bool, error)
	MarkRead(ctx context.Context, messageID uuid.UUID, reader [32]byte, readAtNs int64) (int64, error)
	UnreadCount(ctx context.Context, threadID uuid.UUID, viewer [32]byte) (int64, error)
	CreateMessageNotification(ctx context.Context, arg CreateMessageNotificationParams) (MessageNotification, error)
	ListPendingMessageNotifications(ctx context.Context, limit int32) ([]MessageNotification, error)
	GetMessage(ctx context.Context, messageID uuid.UUID) (Message, error)
	SetMessageNotificationStatus(ctx context.Context, id uuid.UUID, status NotificationStatus, sentAtNs *int64) error

	// Email queue (§4.H)
	EnqueueEmail(ctx context.Context, arg EnqueueEmailParams) (EmailQueueEntry, error)
	ListDueEmails(ctx context.Context, nowNs int64, limit int32) ([]EmailQueueEntry, error)
	MarkEmailSent(ctx context.Context, id uuid.UUID, sentAtNs int64) error
	MarkEmailAttemptFailed(ctx context.Context, id uuid.UUID, attempts int32, lastErr string, nextAttemptAtNs int64, failed bool) error
	ResetEmail(ctx context.Context, id uuid.UUID) error
	RetryAllFailed(ctx context.Context) (int64, error)
	EmailStats(ctx context.Context) (map[EmailStatus]int64, error)
	GetEmail(ctx context.Context, id uuid.UUID) (EmailQueueEntry, error)

	// Sequences & invoices (§4.I)
	AllocateReceiptNumber(ctx context.Context) (int64, error)
	AllocateInvoiceNumber(ctx context.Context, year int32) (int64, error)
	CreateInvoice(ctx context.Context, arg CreateInvoiceParams) (Invoice, error)
	GetInvoiceByContractID(ctx context.Context, contractID uuid.UUID) (Invoice, error)
	SetInvoicePDF(ctx context.Context, id uuid.UUID, blob []byte, generatedAtNs int64) error

	// Escalation (§4.J)
	ResolveEscalationAssignee(ctx context.Context, externalAssigneeID string) (uuid.UUID, error)
	ListNotificationPreferences(ctx context.Context, accountID uuid.UUID) ([]NotificationPreference, error)

	// Admin & observability (§4.K)
	PlatformStats(ctx context.Context) (PlatformStatsRow, error)
}

type CreateAccountParams struct {
	ID            uuid.UUID
	Username      string
	UsernameLower string
	Email         string
	CreatedAtNs   int64
	UpdatedAtNs   int64
}

type CreatePublicKeyParams struct {
	ID         uuid.UUID
	AccountID  uuid.UUID
	PublicKey  [32]byte
	DeviceName *string
	AddedAtNs  int64
}

type CreateEmailVerificationTokenParams struct {
	Token       [16]byte
	AccountID   uuid.UUID
	Email       *string
	CreatedAtNs int64
	ExpiresAtNs int64
}

type CreateRecoveryTokenParams struct {
	Token       [16]byte
	AccountID   uuid.UUID
	Email       *string
	CreatedAtNs int64
	ExpiresAtNs int64
}

type CreateOfferingParams struct {
	ID                uuid.UUID
	OwnerPubkey       [32]byte
	OfferingID        string
	Name              string
	Description       string
	MonthlyPrice      float64
	StockStatus       string
	ProductType       string
	DatacenterCountry string
	ProcessorCores    int32
	MemoryGiB         int32
	GPUModel          string
	Features          string
	Visibility        Visibility
	Currency          string
	CreatedAtNs       int64
}

type CreateContractParams struct {
	ContractID         uuid.UUID
	RequesterPubkey    [32]byte
	ProviderPubkey     [32]byte
	OfferingID         uuid.UUID
	PaymentMethod      PaymentMethod
	PaymentStatus      PaymentStatus
	Status             ContractStatus
	PaymentAmountE9s   int64
	Currency           string
	RequestMemo        string
	RequesterSSHPubkey *string
	RequesterContact   *string
	DurationHours      int32
	StatusUpdatedAtNs  int64
	CreatedAtNs        int64
}

type ContractStatusHistoryParams struct {
	ID          uuid.UUID
	ContractID  uuid.UUID
	FromStatus  string
	ToStatus    string
	ActorPubkey [32]byte
	Memo        *string
	AtNs        int64
}

type CreateThreadParams struct {
	ID              uuid.UUID
	ContractID      uuid.UUID
	Subject         string
	CreatedAtNs     int64
	LastMessageAtNs int64
}

type CreateMessageParams struct {
	ID           uuid.UUID
	ThreadID     uuid.UUID
	SenderPubkey [32]byte
	SenderRole   SenderRole
	Body         string
	CreatedAtNs  int64
}

type CreateMessageNotificationParams struct {
	ID              uuid.UUID
	MessageID       uuid.UUID
	RecipientPubkey [32]byte
	CreatedAtNs     int64
}

type EnqueueEmailParams struct {
	ID          uuid.UUID
	ToAddr      string
	FromAddr    string
	Subject     string
	Body        string
	IsHTML      bool
	EmailType   string
	MaxAttempts int32
	CreatedAtNs int64
}

type CreateInvoiceParams struct {
	ID             uuid.UUID
	ContractID     uuid.UUID
	InvoiceNumber  string
	InvoiceDateNs  int64
	SellerName     string
	SellerAddress  string
	SellerVatID    string
	BuyerName      string
	BuyerAddress   string
	BuyerVatID     *string
	SubtotalE9s    int64
	VatRatePercent float64
	VatAmountE9s   int64
	TotalE9s       int64
	Currency       string
	CreatedAtNs    int64
}

type PlatformStatsRow struct {
	ProviderCount  int64
	OfferingCount  int64
	ContractCount  int64
	ActiveContracts24h int64
}
