package handlers

import (
	"encoding/hex"
	"net/http"

	"github.com/decent-cloud/backend/internal/apierr"
	"github.com/decent-cloud/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

func decodePubkeyHex(s string) ([32]byte, error) {
	var key [32]byte
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 32 {
		return key, apierr.New(apierr.InvalidArgument, "public_key must be 32 bytes of hex")
	}
	copy(key[:], raw)
	return key, nil
}

func decodeToken16Hex(s string) ([16]byte, error) {
	var token [16]byte
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 16 {
		return token, apierr.New(apierr.InvalidArgument, "token must be 16 bytes of hex")
	}
	copy(token[:], raw)
	return token, nil
}

type registerRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=64"`
	Email     string `json:"email" validate:"required,email"`
	PublicKey string `json:"public_key" validate:"required,len=64,hexadecimal"`
}

// RegisterAccount handles POST /accounts (spec §4.B, §6).
func RegisterAccount(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := bindJSON(c, &req); err != nil {
			sendError(c, err)
			return
		}
		key, err := decodePubkeyHex(req.PublicKey)
		if err != nil {
			sendError(c, err)
			return
		}

		account, err := s.Accounts.Register(c.Request.Context(), req.Username, req.Email, key)
		if err != nil {
			sendError(c, err)
			return
		}
		sendSuccess(c, http.StatusCreated, account)
	}
}

type addKeyRequest struct {
	PublicKey  string  `json:"public_key" validate:"required,len=64,hexadecimal"`
	DeviceName *string `json:"device_name" validate:"omitempty,max=128"`
}

// AddKey handles POST /accounts/me/keys.
func AddKey(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetAuthedUser(c)
		if !ok {
			sendError(c, apierr.New(apierr.Unauthenticated, "authentication required"))
			return
		}
		var req addKeyRequest
		if err := bindJSON(c, &req); err != nil {
			sendError(c, err)
			return
		}
		newKey, err := decodePubkeyHex(req.PublicKey)
		if err != nil {
			sendError(c, err)
			return
		}
		key, err := s.Accounts.AddKey(c.Request.Context(), user.Account.ID, newKey, user.ActiveKey)
		if err != nil {
			sendError(c, err)
			return
		}
		sendSuccess(c, http.StatusCreated, key)
	}
}

// DisableKey handles DELETE /accounts/me/keys/:keyID.
func DisableKey(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetAuthedUser(c)
		if !ok {
			sendError(c, apierr.New(apierr.Unauthenticated, "authentication required"))
			return
		}
		keyID, err := parseUUIDParam(c, "keyID")
		if err != nil {
			sendError(c, err)
			return
		}
		if err := s.Accounts.DisableKey(c.Request.Context(), user.Account.ID, keyID, user.ActiveKey); err != nil {
			sendError(c, err)
			return
		}
		sendSuccessMessage(c, http.StatusOK, "key disabled")
	}
}

type renameDeviceRequest struct {
	DeviceName string `json:"device_name" validate:"required,max=128"`
}

// RenameDevice handles PATCH /accounts/me/keys/:keyID.
func RenameDevice(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetAuthedUser(c)
		if !ok {
			sendError(c, apierr.New(apierr.Unauthenticated, "authentication required"))
			return
		}
		keyID, err := parseUUIDParam(c, "keyID")
		if err != nil {
			sendError(c, err)
			return
		}
		var req renameDeviceRequest
		if err := bindJSON(c, &req); err != nil {
			sendError(c, err)
			return
		}
		if err := s.Accounts.RenameDevice(c.Request.Context(), user.Account.ID, keyID, req.DeviceName, user.ActiveKey); err != nil {
			sendError(c, err)
			return
		}
		sendSuccessMessage(c, http.StatusOK, "device renamed")
	}
}

type setEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SetEmail handles PUT /accounts/me/email — changing email re-requires
// verification (spec §4.B).
func SetEmail(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetAuthedUser(c)
		if !ok {
			sendError(c, apierr.New(apierr.Unauthenticated, "authentication required"))
			return
		}
		var req setEmailRequest
		if err := bindJSON(c, &req); err != nil {
			sendError(c, err)
			return
		}
		if err := s.Accounts.SetEmail(c.Request.Context(), user.Account.ID, req.Email); err != nil {
			sendError(c, err)
			return
		}
		user.Account.Email = req.Email
		if _, err := s.Accounts.StartEmailVerification(c.Request.Context(), user.Account); err != nil {
			sendError(c, err)
			return
		}
		sendSuccessMessage(c, http.StatusOK, "email updated, verification sent")
	}
}

// StartEmailVerification handles POST /accounts/me/email/verify.
func StartEmailVerification(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetAuthedUser(c)
		if !ok {
			sendError(c, apierr.New(apierr.Unauthenticated, "authentication required"))
			return
		}
		if _, err := s.Accounts.StartEmailVerification(c.Request.Context(), user.Account); err != nil {
			sendError(c, err)
			return
		}
		sendSuccessMessage(c, http.StatusAccepted, "verification email sent")
	}
}

type verifyEmailRequest struct {
	Token string `json:"token" validate:"required,len=32,hexadecimal"`
}

// VerifyEmail handles POST /accounts/verify-email — unauthenticated, the
// token itself is the credential (spec §4.B).
func VerifyEmail(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verifyEmailRequest
		if err := bindJSON(c, &req); err != nil {
			sendError(c, err)
			return
		}
		token, err := decodeToken16Hex(req.Token)
		if err != nil {
			sendError(c, err)
			return
		}
		if err := s.Accounts.VerifyEmail(c.Request.Context(), token); err != nil {
			sendError(c, err)
			return
		}
		sendSuccessMessage(c, http.StatusOK, "email verified")
	}
}

type startRecoveryRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// StartRecovery handles POST /accounts/recovery — always 202, regardless
// of whether the email is known (spec §7 enumeration-prevention).
func StartRecovery(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req startRecoveryRequest
		if err := bindJSON(c, &req); err != nil {
			sendError(c, err)
			return
		}
		_ = s.Accounts.StartRecovery(c.Request.Context(), req.Email)
		sendSuccessMessage(c, http.StatusAccepted, "if that email is registered, a recovery link has been sent")
	}
}

type completeRecoveryRequest struct {
	Token     string `json:"token" validate:"required,len=32,hexadecimal"`
	PublicKey string `json:"public_key" validate:"required,len=64,hexadecimal"`
}

// CompleteRecovery handles POST /accounts/recovery/complete.
func CompleteRecovery(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req completeRecoveryRequest
		if err := bindJSON(c, &req); err != nil {
			sendError(c, err)
			return
		}
		token, err := decodeToken16Hex(req.Token)
		if err != nil {
			sendError(c, err)
			return
		}
		newKey, err := decodePubkeyHex(req.PublicKey)
		if err != nil {
			sendError(c, err)
			return
		}
		if err := s.Accounts.CompleteRecovery(c.Request.Context(), token, newKey); err != nil {
			sendError(c, err)
			return
		}
		sendSuccessMessage(c, http.StatusOK, "account recovered")
	}
}
