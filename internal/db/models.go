package db

import "github.com/google/uuid"

// All timestamps are integer nanoseconds since epoch (spec §3). All
// monetary quantities are integer e9s unless explicitly a float (e.g.
// monthly list price).

type Account struct {
	ID                 uuid.UUID
	Username           string
	UsernameLower      string
	Email              string
	EmailVerified      bool
	IsAdmin            bool
	BillingAddress     *string
	BillingVatID       *string
	BillingCountryCode *string
	CreatedAtNs        int64
	UpdatedAtNs        int64
}

type PublicKey struct {
	ID              uuid.UUID
	AccountID       uuid.UUID
	PublicKey       [32]byte
	DeviceName      *string
	AddedAtNs       int64
	DisabledAtNs    *int64
	DisabledByKeyID *uuid.UUID
}

type EmailVerificationToken struct {
	Token       [16]byte
	AccountID   uuid.UUID
	Email       *string
	CreatedAtNs int64
	ExpiresAtNs int64
	UsedAtNs    *int64
}

type RecoveryToken struct {
	Token       [16]byte
	AccountID   uuid.UUID
	Email       *string
	CreatedAtNs int64
	ExpiresAtNs int64
	UsedAtNs    *int64
}

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

type Offering struct {
	ID                 uuid.UUID
	OwnerPubkey        [32]byte
	OfferingID         string
	Name               string
	Description        string
	MonthlyPrice       float64
	StockStatus        string
	ProductType        string
	DatacenterCountry  string
	ProcessorCores     int32
	MemoryGiB          int32
	GPUModel           string
	Features           string
	Visibility         Visibility
	Currency           string
	CreatedAtNs        int64
}

type OfferingAllowlistEntry struct {
	OfferingID    string
	AllowedPubkey [32]byte
}

type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodCrypto PaymentMethod = "crypto"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type ContractStatus string

const (
	ContractStatusRequested    ContractStatus = "requested"
	ContractStatusAccepted     ContractStatus = "accepted"
	ContractStatusProvisioning ContractStatus = "provisioning"
	ContractStatusProvisioned  ContractStatus = "provisioned"
	ContractStatusActive       ContractStatus = "active"
	ContractStatusEnded        ContractStatus = "ended"
	ContractStatusCancelled    ContractStatus = "cancelled"
	ContractStatusRejected     ContractStatus = "rejected"
	ContractStatusExpired      ContractStatus = "expired"
)

type Contract struct {
	ContractID           uuid.UUID
	RequesterPubkey      [32]byte
	ProviderPubkey       [32]byte
	OfferingID           uuid.UUID
	PaymentMethod        PaymentMethod
	PaymentStatus        PaymentStatus
	Status               ContractStatus
	PaymentAmountE9s     int64
	Currency             string
	RequestMemo          string
	RequesterSSHPubkey   *string
	RequesterContact     *string
	StartTimestampNs     *int64
	EndTimestampNs       *int64
	DurationHours        int32
	CardPaymentIntentID  *string
	CryptoTransactionID  *string
	RefundAmountE9s      *int64
	RefundExternalID     *string
	RefundCreatedAtNs    *int64
	ReceiptNumber        *int64
	InstanceDetails      *string
	TaxAmountE9s         *int64
	TaxRatePercent       *float64
	TaxType              *string
	TaxJurisdiction      *string
	CustomerTaxID        *string
	TaxReverseCharge     bool
	StatusUpdatedAtNs    int64
	CreatedAtNs          int64
}

type ContractStatusHistory struct {
	ID          uuid.UUID
	ContractID  uuid.UUID
	FromStatus  string
	ToStatus    string
	ActorPubkey [32]byte
	Memo        *string
	AtNs        int64
}

type ThreadStatus string

const (
	ThreadStatusOpen     ThreadStatus = "open"
	ThreadStatusResolved ThreadStatus = "resolved"
	ThreadStatusClosed   ThreadStatus = "closed"
)

type MessageThread struct {
	ID              uuid.UUID
	ContractID      uuid.UUID
	Subject         string
	Status          ThreadStatus
	CreatedAtNs     int64
	LastMessageAtNs int64
}

type ParticipantRole string

const (
	ParticipantRoleRequester ParticipantRole = "requester"
	ParticipantRoleProvider  ParticipantRole = "provider"
)

type ThreadParticipant struct {
	ThreadID  uuid.UUID
	Pubkey    [32]byte
	Role      ParticipantRole
	JoinedAtNs int64
}

type SenderRole string

const (
	SenderRoleUser      SenderRole = "user"
	SenderRoleAssistant SenderRole = "assistant"
	SenderRoleSystem    SenderRole = "system"
)

type Message struct {
	ID          uuid.UUID
	ThreadID    uuid.UUID
	SenderPubkey [32]byte
	SenderRole  SenderRole
	Body        string
	CreatedAtNs int64
}

type MessageReadReceipt struct {
	MessageID   uuid.UUID
	ReaderPubkey [32]byte
	ReadAtNs    int64
}

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusSkipped NotificationStatus = "skipped"
)

type MessageNotification struct {
	ID              uuid.UUID
	MessageID       uuid.UUID
	RecipientPubkey [32]byte
	Status          NotificationStatus
	CreatedAtNs     int64
	SentAtNs        *int64
}

type EmailStatus string

const (
	EmailStatusPending EmailStatus = "pending"
	EmailStatusSent    EmailStatus = "sent"
	EmailStatusFailed  EmailStatus = "failed"
)

type EmailQueueEntry struct {
	ID              uuid.UUID
	ToAddr          string
	FromAddr        string
	Subject         string
	Body            string
	IsHTML          bool
	EmailType       string
	Status          EmailStatus
	Attempts        int32
	MaxAttempts     int32
	LastError       *string
	NextAttemptAtNs int64
	SentAtNs        *int64
	CreatedAtNs     int64
}

type ReceiptSequence struct {
	ID         int32
	NextNumber int64
}

type InvoiceSequence struct {
	ID         int32
	Year       int32
	NextNumber int64
}

type Invoice struct {
	ID                 uuid.UUID
	ContractID         uuid.UUID
	InvoiceNumber      string
	InvoiceDateNs      int64
	SellerName         string
	SellerAddress      string
	SellerVatID        string
	BuyerName          string
	BuyerAddress       string
	BuyerVatID         *string
	SubtotalE9s        int64
	VatRatePercent     float64
	VatAmountE9s       int64
	TotalE9s           int64
	Currency           string
	PDFBlob            []byte
	PDFGeneratedAtNs   *int64
	CreatedAtNs        int64
}

// EscalationMapping and NotificationPreference support §4.J: resolving an
// externally managed conversation's assignee identity to an internal
// account and that account's notification channel preferences. Neither is
// named as a table in spec.md §3; both are implied by "a pre-recorded
// mapping" and "the account's notification preferences" in §4.J and are
// added here (SPEC_FULL.md §4.J supplement).
type EscalationMapping struct {
	ExternalAssigneeID string
	AccountID           uuid.UUID
}

type NotificationChannel string

const (
	NotificationChannelEmail    NotificationChannel = "email"
	NotificationChannelTelegram NotificationChannel = "telegram"
	NotificationChannelSMS      NotificationChannel = "sms"
)

type NotificationPreference struct {
	AccountID uuid.UUID
	Channel   NotificationChannel
	Enabled   bool
	Target    string // email address, telegram chat id, or phone number
}
