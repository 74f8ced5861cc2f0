// Package dbmock hand-implements a gomock-style mock of db.Querier
// (go.uber.org/mock/gomock), following the shape MockGen itself would
// generate -- mockgen can't run in this environment, so this is written by
// hand in its exact idiom instead of inventing a different test-double
// style.
package dbmock

import (
	"context"
	"reflect"

	"github.com/decent-cloud/backend/internal/db"
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

// MockQuerier is a mock of the db.Querier interface.
type MockQuerier struct {
	ctrl     *gomock.Controller
	recorder *MockQuerierMockRecorder
}

// MockQuerierMockRecorder is the mock recorder for MockQuerier.
type MockQuerierMockRecorder struct {
	mock *MockQuerier
}

// NewMockQuerier creates a new mock instance.
func NewMockQuerier(ctrl *gomock.Controller) *MockQuerier {
	mock := &MockQuerier{ctrl: ctrl}
	mock.recorder = &MockQuerierMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockQuerier) EXPECT() *MockQuerierMockRecorder {
	return m.recorder
}

var _ db.Querier = (*MockQuerier)(nil)

func (m *MockQuerier) CreateAccount(ctx context.Context, arg db.CreateAccountParams) (db.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateAccount", ctx, arg)
	ret0, _ := ret[0].(db.Account)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) CreateAccount(ctx interface{}, arg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateAccount", reflect.TypeOf((*MockQuerier)(nil).CreateAccount), ctx, arg)
}

func (m *MockQuerier) GetAccountByUsernameLower(ctx context.Context, usernameLower string) (db.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetAccountByUsernameLower", ctx, usernameLower)
	ret0, _ := ret[0].(db.Account)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) GetAccountByUsernameLower(ctx interface{}, usernameLower interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAccountByUsernameLower", reflect.TypeOf((*MockQuerier)(nil).GetAccountByUsernameLower), ctx, usernameLower)
}

func (m *MockQuerier) GetAccountByID(ctx context.Context, id uuid.UUID) (db.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetAccountByID", ctx, id)
	ret0, _ := ret[0].(db.Account)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) GetAccountByID(ctx interface{}, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAccountByID", reflect.TypeOf((*MockQuerier)(nil).GetAccountByID), ctx, id)
}

func (m *MockQuerier) GetAccountByEmail(ctx context.Context, email string) (db.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetAccountByEmail", ctx, email)
	ret0, _ := ret[0].(db.Account)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) GetAccountByEmail(ctx interface{}, email interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAccountByEmail", reflect.TypeOf((*MockQuerier)(nil).GetAccountByEmail), ctx, email)
}

func (m *MockQuerier) SetAccountEmail(ctx context.Context, id uuid.UUID, email string, updatedAtNs int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetAccountEmail", ctx, id, email, updatedAtNs)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) SetAccountEmail(ctx interface{}, id interface{}, email interface{}, updatedAtNs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetAccountEmail", reflect.TypeOf((*MockQuerier)(nil).SetAccountEmail), ctx, id, email, updatedAtNs)
}

func (m *MockQuerier) SetAccountEmailVerified(ctx context.Context, id uuid.UUID, updatedAtNs int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetAccountEmailVerified", ctx, id, updatedAtNs)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) SetAccountEmailVerified(ctx interface{}, id interface{}, updatedAtNs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetAccountEmailVerified", reflect.TypeOf((*MockQuerier)(nil).SetAccountEmailVerified), ctx, id, updatedAtNs)
}

func (m *MockQuerier) SetAccountAdmin(ctx context.Context, id uuid.UUID, isAdmin bool, updatedAtNs int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetAccountAdmin", ctx, id, isAdmin, updatedAtNs)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) SetAccountAdmin(ctx interface{}, id interface{}, isAdmin interface{}, updatedAtNs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetAccountAdmin", reflect.TypeOf((*MockQuerier)(nil).SetAccountAdmin), ctx, id, isAdmin, updatedAtNs)
}

func (m *MockQuerier) ListAdmins(ctx context.Context) ([]db.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListAdmins", ctx)
	ret0, _ := ret[0].([]db.Account)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) ListAdmins(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListAdmins", reflect.TypeOf((*MockQuerier)(nil).ListAdmins), ctx)
}

func (m *MockQuerier) CreatePublicKey(ctx context.Context, arg db.CreatePublicKeyParams) (db.PublicKey, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreatePublicKey", ctx, arg)
	ret0, _ := ret[0].(db.PublicKey)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) CreatePublicKey(ctx interface{}, arg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreatePublicKey", reflect.TypeOf((*MockQuerier)(nil).CreatePublicKey), ctx, arg)
}

func (m *MockQuerier) GetPublicKeyByBytes(ctx context.Context, pubkey [32]byte) (db.PublicKey, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetPublicKeyByBytes", ctx, pubkey)
	ret0, _ := ret[0].(db.PublicKey)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) GetPublicKeyByBytes(ctx interface{}, pubkey interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetPublicKeyByBytes", reflect.TypeOf((*MockQuerier)(nil).GetPublicKeyByBytes), ctx, pubkey)
}

func (m *MockQuerier) GetPublicKeyByID(ctx context.Context, id uuid.UUID) (db.PublicKey, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetPublicKeyByID", ctx, id)
	ret0, _ := ret[0].(db.PublicKey)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) GetPublicKeyByID(ctx interface{}, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetPublicKeyByID", reflect.TypeOf((*MockQuerier)(nil).GetPublicKeyByID), ctx, id)
}

func (m *MockQuerier) ListActiveKeysForAccount(ctx context.Context, accountID uuid.UUID) ([]db.PublicKey, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListActiveKeysForAccount", ctx, accountID)
	ret0, _ := ret[0].([]db.PublicKey)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) ListActiveKeysForAccount(ctx interface{}, accountID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListActiveKeysForAccount", reflect.TypeOf((*MockQuerier)(nil).ListActiveKeysForAccount), ctx, accountID)
}

func (m *MockQuerier) DisablePublicKey(ctx context.Context, id uuid.UUID, disabledAtNs int64, disabledByKeyID uuid.UUID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DisablePublicKey", ctx, id, disabledAtNs, disabledByKeyID)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) DisablePublicKey(ctx interface{}, id interface{}, disabledAtNs interface{}, disabledByKeyID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DisablePublicKey", reflect.TypeOf((*MockQuerier)(nil).DisablePublicKey), ctx, id, disabledAtNs, disabledByKeyID)
}

func (m *MockQuerier) RenamePublicKey(ctx context.Context, id uuid.UUID, deviceName string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RenamePublicKey", ctx, id, deviceName)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) RenamePublicKey(ctx interface{}, id interface{}, deviceName interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RenamePublicKey", reflect.TypeOf((*MockQuerier)(nil).RenamePublicKey), ctx, id, deviceName)
}

func (m *MockQuerier) CreateEmailVerificationToken(ctx context.Context, arg db.CreateEmailVerificationTokenParams) (db.EmailVerificationToken, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateEmailVerificationToken", ctx, arg)
	ret0, _ := ret[0].(db.EmailVerificationToken)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) CreateEmailVerificationToken(ctx interface{}, arg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateEmailVerificationToken", reflect.TypeOf((*MockQuerier)(nil).CreateEmailVerificationToken), ctx, arg)
}

func (m *MockQuerier) GetEmailVerificationToken(ctx context.Context, token [16]byte) (db.EmailVerificationToken, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetEmailVerificationToken", ctx, token)
	ret0, _ := ret[0].(db.EmailVerificationToken)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) GetEmailVerificationToken(ctx interface{}, token interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetEmailVerificationToken", reflect.TypeOf((*MockQuerier)(nil).GetEmailVerificationToken), ctx, token)
}

func (m *MockQuerier) MarkEmailVerificationTokenUsed(ctx context.Context, token [16]byte, usedAtNs int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkEmailVerificationTokenUsed", ctx, token, usedAtNs)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) MarkEmailVerificationTokenUsed(ctx interface{}, token interface{}, usedAtNs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkEmailVerificationTokenUsed", reflect.TypeOf((*MockQuerier)(nil).MarkEmailVerificationTokenUsed), ctx, token, usedAtNs)
}

func (m *MockQuerier) CreateRecoveryToken(ctx context.Context, arg db.CreateRecoveryTokenParams) (db.RecoveryToken, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateRecoveryToken", ctx, arg)
	ret0, _ := ret[0].(db.RecoveryToken)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) CreateRecoveryToken(ctx interface{}, arg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateRecoveryToken", reflect.TypeOf((*MockQuerier)(nil).CreateRecoveryToken), ctx, arg)
}

func (m *MockQuerier) GetRecoveryToken(ctx context.Context, token [16]byte) (db.RecoveryToken, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetRecoveryToken", ctx, token)
	ret0, _ := ret[0].(db.RecoveryToken)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) GetRecoveryToken(ctx interface{}, token interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetRecoveryToken", reflect.TypeOf((*MockQuerier)(nil).GetRecoveryToken), ctx, token)
}

func (m *MockQuerier) MarkRecoveryTokenUsed(ctx context.Context, token [16]byte, usedAtNs int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkRecoveryTokenUsed", ctx, token, usedAtNs)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) MarkRecoveryTokenUsed(ctx interface{}, token interface{}, usedAtNs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkRecoveryTokenUsed", reflect.TypeOf((*MockQuerier)(nil).MarkRecoveryTokenUsed), ctx, token, usedAtNs)
}

func (m *MockQuerier) CreateOffering(ctx context.Context, arg db.CreateOfferingParams) (db.Offering, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateOffering", ctx, arg)
	ret0, _ := ret[0].(db.Offering)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) CreateOffering(ctx interface{}, arg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateOffering", reflect.TypeOf((*MockQuerier)(nil).CreateOffering), ctx, arg)
}

func (m *MockQuerier) UpsertOffering(ctx context.Context, arg db.CreateOfferingParams) (db.Offering, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertOffering", ctx, arg)
	ret0, _ := ret[0].(db.Offering)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) UpsertOffering(ctx interface{}, arg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertOffering", reflect.TypeOf((*MockQuerier)(nil).UpsertOffering), ctx, arg)
}

func (m *MockQuerier) GetOfferingByOwnerAndID(ctx context.Context, ownerPubkey [32]byte, offeringID string) (db.Offering, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetOfferingByOwnerAndID", ctx, ownerPubkey, offeringID)
	ret0, _ := ret[0].(db.Offering)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) GetOfferingByOwnerAndID(ctx interface{}, ownerPubkey interface{}, offeringID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetOfferingByOwnerAndID", reflect.TypeOf((*MockQuerier)(nil).GetOfferingByOwnerAndID), ctx, ownerPubkey, offeringID)
}

func (m *MockQuerier) GetOfferingByDBID(ctx context.Context, id uuid.UUID) (db.Offering, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetOfferingByDBID", ctx, id)
	ret0, _ := ret[0].(db.Offering)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) GetOfferingByDBID(ctx interface{}, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetOfferingByDBID", reflect.TypeOf((*MockQuerier)(nil).GetOfferingByDBID), ctx, id)
}

func (m *MockQuerier) QueryOfferings(ctx context.Context, whereClause string, binds []interface{}, limit int32, offset int32) ([]db.Offering, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "QueryOfferings", ctx, whereClause, binds, limit, offset)
	ret0, _ := ret[0].([]db.Offering)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) QueryOfferings(ctx interface{}, whereClause interface{}, binds interface{}, limit interface{}, offset interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "QueryOfferings", reflect.TypeOf((*MockQuerier)(nil).QueryOfferings), ctx, whereClause, binds, limit, offset)
}

func (m *MockQuerier) IsAllowlisted(ctx context.Context, offeringID string, pubkey [32]byte) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IsAllowlisted", ctx, offeringID, pubkey)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) IsAllowlisted(ctx interface{}, offeringID interface{}, pubkey interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IsAllowlisted", reflect.TypeOf((*MockQuerier)(nil).IsAllowlisted), ctx, offeringID, pubkey)
}

func (m *MockQuerier) AddAllowlistEntry(ctx context.Context, offeringID string, pubkey [32]byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddAllowlistEntry", ctx, offeringID, pubkey)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) AddAllowlistEntry(ctx interface{}, offeringID interface{}, pubkey interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddAllowlistEntry", reflect.TypeOf((*MockQuerier)(nil).AddAllowlistEntry), ctx, offeringID, pubkey)
}

func (m *MockQuerier) CreateContract(ctx context.Context, arg db.CreateContractParams) (db.Contract, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateContract", ctx, arg)
	ret0, _ := ret[0].(db.Contract)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) CreateContract(ctx interface{}, arg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateContract", reflect.TypeOf((*MockQuerier)(nil).CreateContract), ctx, arg)
}

func (m *MockQuerier) GetContractForUpdate(ctx context.Context, contractID uuid.UUID) (db.Contract, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetContractForUpdate", ctx, contractID)
	ret0, _ := ret[0].(db.Contract)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) GetContractForUpdate(ctx interface{}, contractID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetContractForUpdate", reflect.TypeOf((*MockQuerier)(nil).GetContractForUpdate), ctx, contractID)
}

func (m *MockQuerier) GetContractByCardIntentID(ctx context.Context, intentID string) (db.Contract, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetContractByCardIntentID", ctx, intentID)
	ret0, _ := ret[0].(db.Contract)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) GetContractByCardIntentID(ctx interface{}, intentID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetContractByCardIntentID", reflect.TypeOf((*MockQuerier)(nil).GetContractByCardIntentID), ctx, intentID)
}

func (m *MockQuerier) UpdateContract(ctx context.Context, arg db.Contract) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateContract", ctx, arg)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) UpdateContract(ctx interface{}, arg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateContract", reflect.TypeOf((*MockQuerier)(nil).UpdateContract), ctx, arg)
}

func (m *MockQuerier) AppendContractStatusHistory(ctx context.Context, arg db.ContractStatusHistoryParams) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AppendContractStatusHistory", ctx, arg)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) AppendContractStatusHistory(ctx interface{}, arg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AppendContractStatusHistory", reflect.TypeOf((*MockQuerier)(nil).AppendContractStatusHistory), ctx, arg)
}

func (m *MockQuerier) ListContractsForProvider(ctx context.Context, providerPubkey [32]byte, since int64) ([]db.Contract, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListContractsForProvider", ctx, providerPubkey, since)
	ret0, _ := ret[0].([]db.Contract)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) ListContractsForProvider(ctx interface{}, providerPubkey interface{}, since interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListContractsForProvider", reflect.TypeOf((*MockQuerier)(nil).ListContractsForProvider), ctx, providerPubkey, since)
}

func (m *MockQuerier) ListContractsDueToActivate(ctx context.Context, nowNs int64) ([]db.Contract, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListContractsDueToActivate", ctx, nowNs)
	ret0, _ := ret[0].([]db.Contract)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) ListContractsDueToActivate(ctx interface{}, nowNs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListContractsDueToActivate", reflect.TypeOf((*MockQuerier)(nil).ListContractsDueToActivate), ctx, nowNs)
}

func (m *MockQuerier) ListContractsDueToEnd(ctx context.Context, nowNs int64) ([]db.Contract, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListContractsDueToEnd", ctx, nowNs)
	ret0, _ := ret[0].([]db.Contract)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) ListContractsDueToEnd(ctx interface{}, nowNs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListContractsDueToEnd", reflect.TypeOf((*MockQuerier)(nil).ListContractsDueToEnd), ctx, nowNs)
}

func (m *MockQuerier) GetThreadByContractID(ctx context.Context, contractID uuid.UUID) (db.MessageThread, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetThreadByContractID", ctx, contractID)
	ret0, _ := ret[0].(db.MessageThread)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) GetThreadByContractID(ctx interface{}, contractID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetThreadByContractID", reflect.TypeOf((*MockQuerier)(nil).GetThreadByContractID), ctx, contractID)
}

func (m *MockQuerier) CreateThread(ctx context.Context, arg db.CreateThreadParams) (db.MessageThread, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateThread", ctx, arg)
	ret0, _ := ret[0].(db.MessageThread)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) CreateThread(ctx interface{}, arg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateThread", reflect.TypeOf((*MockQuerier)(nil).CreateThread), ctx, arg)
}

func (m *MockQuerier) AddThreadParticipant(ctx context.Context, threadID uuid.UUID, pubkey [32]byte, role db.ParticipantRole, joinedAtNs int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddThreadParticipant", ctx, threadID, pubkey, role, joinedAtNs)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) AddThreadParticipant(ctx interface{}, threadID interface{}, pubkey interface{}, role interface{}, joinedAtNs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddThreadParticipant", reflect.TypeOf((*MockQuerier)(nil).AddThreadParticipant), ctx, threadID, pubkey, role, joinedAtNs)
}

func (m *MockQuerier) ListThreadParticipants(ctx context.Context, threadID uuid.UUID) ([]db.ThreadParticipant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListThreadParticipants", ctx, threadID)
	ret0, _ := ret[0].([]db.ThreadParticipant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) ListThreadParticipants(ctx interface{}, threadID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListThreadParticipants", reflect.TypeOf((*MockQuerier)(nil).ListThreadParticipants), ctx, threadID)
}

func (m *MockQuerier) CreateMessage(ctx context.Context, arg db.CreateMessageParams) (db.Message, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateMessage", ctx, arg)
	ret0, _ := ret[0].(db.Message)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) CreateMessage(ctx interface{}, arg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateMessage", reflect.TypeOf((*MockQuerier)(nil).CreateMessage), ctx, arg)
}

func (m *MockQuerier) TouchThreadLastMessage(ctx context.Context, threadID uuid.UUID, atNs int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TouchThreadLastMessage", ctx, threadID, atNs)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) TouchThreadLastMessage(ctx interface{}, threadID interface{}, atNs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TouchThreadLastMessage", reflect.TypeOf((*MockQuerier)(nil).TouchThreadLastMessage), ctx, threadID, atNs)
}

func (m *MockQuerier) ListMessages(ctx context.Context, threadID uuid.UUID) ([]db.Message, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListMessages", ctx, threadID)
	ret0, _ := ret[0].([]db.Message)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) ListMessages(ctx interface{}, threadID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListMessages", reflect.TypeOf((*MockQuerier)(nil).ListMessages), ctx, threadID)
}

func (m *MockQuerier) HasReadReceipt(ctx context.Context, messageID uuid.UUID, reader [32]byte) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HasReadReceipt", ctx, messageID, reader)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) HasReadReceipt(ctx interface{}, messageID interface{}, reader interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HasReadReceipt", reflect.TypeOf((*MockQuerier)(nil).HasReadReceipt), ctx, messageID, reader)
}

func (m *MockQuerier) MarkRead(ctx context.Context, messageID uuid.UUID, reader [32]byte, readAtNs int64) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkRead", ctx, messageID, reader, readAtNs)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) MarkRead(ctx interface{}, messageID interface{}, reader interface{}, readAtNs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkRead", reflect.TypeOf((*MockQuerier)(nil).MarkRead), ctx, messageID, reader, readAtNs)
}

func (m *MockQuerier) UnreadCount(ctx context.Context, threadID uuid.UUID, viewer [32]byte) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UnreadCount", ctx, threadID, viewer)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) UnreadCount(ctx interface{}, threadID interface{}, viewer interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UnreadCount", reflect.TypeOf((*MockQuerier)(nil).UnreadCount), ctx, threadID, viewer)
}

func (m *MockQuerier) CreateMessageNotification(ctx context.Context, arg db.CreateMessageNotificationParams) (db.MessageNotification, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateMessageNotification", ctx, arg)
	ret0, _ := ret[0].(db.MessageNotification)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) CreateMessageNotification(ctx interface{}, arg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateMessageNotification", reflect.TypeOf((*MockQuerier)(nil).CreateMessageNotification), ctx, arg)
}

func (m *MockQuerier) ListPendingMessageNotifications(ctx context.Context, limit int32) ([]db.MessageNotification, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListPendingMessageNotifications", ctx, limit)
	ret0, _ := ret[0].([]db.MessageNotification)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) ListPendingMessageNotifications(ctx interface{}, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListPendingMessageNotifications", reflect.TypeOf((*MockQuerier)(nil).ListPendingMessageNotifications), ctx, limit)
}

func (m *MockQuerier) GetMessage(ctx context.Context, messageID uuid.UUID) (db.Message, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetMessage", ctx, messageID)
	ret0, _ := ret[0].(db.Message)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) GetMessage(ctx interface{}, messageID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetMessage", reflect.TypeOf((*MockQuerier)(nil).GetMessage), ctx, messageID)
}

func (m *MockQuerier) SetMessageNotificationStatus(ctx context.Context, id uuid.UUID, status db.NotificationStatus, sentAtNs *int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetMessageNotificationStatus", ctx, id, status, sentAtNs)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) SetMessageNotificationStatus(ctx interface{}, id interface{}, status interface{}, sentAtNs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetMessageNotificationStatus", reflect.TypeOf((*MockQuerier)(nil).SetMessageNotificationStatus), ctx, id, status, sentAtNs)
}

func (m *MockQuerier) EnqueueEmail(ctx context.Context, arg db.EnqueueEmailParams) (db.EmailQueueEntry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EnqueueEmail", ctx, arg)
	ret0, _ := ret[0].(db.EmailQueueEntry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) EnqueueEmail(ctx interface{}, arg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EnqueueEmail", reflect.TypeOf((*MockQuerier)(nil).EnqueueEmail), ctx, arg)
}

func (m *MockQuerier) ListDueEmails(ctx context.Context, nowNs int64, limit int32) ([]db.EmailQueueEntry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListDueEmails", ctx, nowNs, limit)
	ret0, _ := ret[0].([]db.EmailQueueEntry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) ListDueEmails(ctx interface{}, nowNs interface{}, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListDueEmails", reflect.TypeOf((*MockQuerier)(nil).ListDueEmails), ctx, nowNs, limit)
}

func (m *MockQuerier) MarkEmailSent(ctx context.Context, id uuid.UUID, sentAtNs int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkEmailSent", ctx, id, sentAtNs)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) MarkEmailSent(ctx interface{}, id interface{}, sentAtNs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkEmailSent", reflect.TypeOf((*MockQuerier)(nil).MarkEmailSent), ctx, id, sentAtNs)
}

func (m *MockQuerier) MarkEmailAttemptFailed(ctx context.Context, id uuid.UUID, attempts int32, lastErr string, nextAttemptAtNs int64, failed bool) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkEmailAttemptFailed", ctx, id, attempts, lastErr, nextAttemptAtNs, failed)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) MarkEmailAttemptFailed(ctx interface{}, id interface{}, attempts interface{}, lastErr interface{}, nextAttemptAtNs interface{}, failed interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkEmailAttemptFailed", reflect.TypeOf((*MockQuerier)(nil).MarkEmailAttemptFailed), ctx, id, attempts, lastErr, nextAttemptAtNs, failed)
}

func (m *MockQuerier) ResetEmail(ctx context.Context, id uuid.UUID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ResetEmail", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) ResetEmail(ctx interface{}, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResetEmail", reflect.TypeOf((*MockQuerier)(nil).ResetEmail), ctx, id)
}

func (m *MockQuerier) RetryAllFailed(ctx context.Context) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RetryAllFailed", ctx)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) RetryAllFailed(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RetryAllFailed", reflect.TypeOf((*MockQuerier)(nil).RetryAllFailed), ctx)
}

func (m *MockQuerier) EmailStats(ctx context.Context) (map[db.EmailStatus]int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EmailStats", ctx)
	ret0, _ := ret[0].(map[db.EmailStatus]int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) EmailStats(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EmailStats", reflect.TypeOf((*MockQuerier)(nil).EmailStats), ctx)
}

func (m *MockQuerier) GetEmail(ctx context.Context, id uuid.UUID) (db.EmailQueueEntry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetEmail", ctx, id)
	ret0, _ := ret[0].(db.EmailQueueEntry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) GetEmail(ctx interface{}, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetEmail", reflect.TypeOf((*MockQuerier)(nil).GetEmail), ctx, id)
}

func (m *MockQuerier) AllocateReceiptNumber(ctx context.Context) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AllocateReceiptNumber", ctx)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) AllocateReceiptNumber(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AllocateReceiptNumber", reflect.TypeOf((*MockQuerier)(nil).AllocateReceiptNumber), ctx)
}

func (m *MockQuerier) AllocateInvoiceNumber(ctx context.Context, year int32) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AllocateInvoiceNumber", ctx, year)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) AllocateInvoiceNumber(ctx interface{}, year interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AllocateInvoiceNumber", reflect.TypeOf((*MockQuerier)(nil).AllocateInvoiceNumber), ctx, year)
}

func (m *MockQuerier) CreateInvoice(ctx context.Context, arg db.CreateInvoiceParams) (db.Invoice, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateInvoice", ctx, arg)
	ret0, _ := ret[0].(db.Invoice)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) CreateInvoice(ctx interface{}, arg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateInvoice", reflect.TypeOf((*MockQuerier)(nil).CreateInvoice), ctx, arg)
}

func (m *MockQuerier) GetInvoiceByContractID(ctx context.Context, contractID uuid.UUID) (db.Invoice, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetInvoiceByContractID", ctx, contractID)
	ret0, _ := ret[0].(db.Invoice)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) GetInvoiceByContractID(ctx interface{}, contractID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetInvoiceByContractID", reflect.TypeOf((*MockQuerier)(nil).GetInvoiceByContractID), ctx, contractID)
}

func (m *MockQuerier) SetInvoicePDF(ctx context.Context, id uuid.UUID, blob []byte, generatedAtNs int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetInvoicePDF", ctx, id, blob, generatedAtNs)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuerierMockRecorder) SetInvoicePDF(ctx interface{}, id interface{}, blob interface{}, generatedAtNs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetInvoicePDF", reflect.TypeOf((*MockQuerier)(nil).SetInvoicePDF), ctx, id, blob, generatedAtNs)
}

func (m *MockQuerier) ResolveEscalationAssignee(ctx context.Context, externalAssigneeID string) (uuid.UUID, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ResolveEscalationAssignee", ctx, externalAssigneeID)
	ret0, _ := ret[0].(uuid.UUID)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) ResolveEscalationAssignee(ctx interface{}, externalAssigneeID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResolveEscalationAssignee", reflect.TypeOf((*MockQuerier)(nil).ResolveEscalationAssignee), ctx, externalAssigneeID)
}

func (m *MockQuerier) ListNotificationPreferences(ctx context.Context, accountID uuid.UUID) ([]db.NotificationPreference, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListNotificationPreferences", ctx, accountID)
	ret0, _ := ret[0].([]db.NotificationPreference)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) ListNotificationPreferences(ctx interface{}, accountID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListNotificationPreferences", reflect.TypeOf((*MockQuerier)(nil).ListNotificationPreferences), ctx, accountID)
}

func (m *MockQuerier) PlatformStats(ctx context.Context) (db.PlatformStatsRow, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PlatformStats", ctx)
	ret0, _ := ret[0].(db.PlatformStatsRow)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuerierMockRecorder) PlatformStats(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PlatformStats", reflect.TypeOf((*MockQuerier)(nil).PlatformStats), ctx)
}

// NewMockQuerierForTest builds a MockQuerier whose controller is finished
// automatically via t.Cleanup, matching the teacher's mocks package
// convention of not requiring every test to call ctrl.Finish() by hand.
func NewMockQuerierForTest(t testingT) *MockQuerier {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockQuerier(ctrl)
}

// testingT is the subset of *testing.T gomock.NewController needs, kept
// local so this file doesn't have to import "testing" just for the type.
type testingT interface {
	gomock.TestReporter
	Cleanup(func())
	Helper()
}
