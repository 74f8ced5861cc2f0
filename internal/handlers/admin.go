package handlers

import (
	"net/http"
	"time"

	"github.com/decent-cloud/backend/internal/apierr"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PlatformStats handles GET /admin/stats (spec §4.K).
func PlatformStats(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := s.Admin.PlatformStats(c.Request.Context())
		if err != nil {
			sendError(c, err)
			return
		}
		sendSuccess(c, http.StatusOK, stats)
	}
}

type grantAdminRequest struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
}

// GrantAdmin handles POST /admin/admins.
func GrantAdmin(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req grantAdminRequest
		if err := bindJSON(c, &req); err != nil {
			sendError(c, err)
			return
		}
		accountID, err := uuid.Parse(req.AccountID)
		if err != nil {
			sendError(c, apierr.New(apierr.InvalidArgument, "account_id must be a valid uuid"))
			return
		}
		if err := s.Admin.GrantAdmin(c.Request.Context(), accountID, time.Now().UnixNano()); err != nil {
			sendError(c, err)
			return
		}
		sendSuccessMessage(c, http.StatusOK, "admin granted")
	}
}

// RevokeAdmin handles DELETE /admin/admins/:accountID.
func RevokeAdmin(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, err := parseUUIDParam(c, "accountID")
		if err != nil {
			sendError(c, err)
			return
		}
		if err := s.Admin.RevokeAdmin(c.Request.Context(), accountID, time.Now().UnixNano()); err != nil {
			sendError(c, err)
			return
		}
		sendSuccessMessage(c, http.StatusOK, "admin revoked")
	}
}

// ListAdmins handles GET /admin/admins.
func ListAdmins(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		admins, err := s.Admin.ListAdmins(c.Request.Context())
		if err != nil {
			sendError(c, err)
			return
		}
		sendList(c, admins)
	}
}

// GetFailedEmail handles GET /admin/emails/:emailID.
func GetFailedEmail(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		emailID, err := parseUUIDParam(c, "emailID")
		if err != nil {
			sendError(c, err)
			return
		}
		email, err := s.Admin.GetEmail(c.Request.Context(), emailID)
		if err != nil {
			sendError(c, err)
			return
		}
		sendSuccess(c, http.StatusOK, email)
	}
}

// ResetFailedEmail handles POST /admin/emails/:emailID/reset — clears the
// failed status so the worker picks it up again (spec §4.H).
func ResetFailedEmail(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		emailID, err := parseUUIDParam(c, "emailID")
		if err != nil {
			sendError(c, err)
			return
		}
		if err := s.Admin.ResetEmail(c.Request.Context(), emailID); err != nil {
			sendError(c, err)
			return
		}
		sendSuccessMessage(c, http.StatusOK, "email reset")
	}
}

// RetryAllFailedEmails handles POST /admin/emails/retry-all.
func RetryAllFailedEmails(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := s.Admin.RetryAllFailed(c.Request.Context())
		if err != nil {
			sendError(c, err)
			return
		}
		sendSuccess(c, http.StatusOK, gin.H{"retried": count})
	}
}

// EmailQueueStats handles GET /admin/emails/stats.
func EmailQueueStats(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := s.Admin.EmailStats(c.Request.Context())
		if err != nil {
			sendError(c, err)
			return
		}
		sendSuccess(c, http.StatusOK, stats)
	}
}
