package handlers

import (
	"net/http"

	"github.com/decent-cloud/backend/internal/apierr"
	"github.com/gin-gonic/gin"
)

type sendMessageRequest struct {
	Body string `json:"body" validate:"required,max=4096"`
}

// SendMessage handles POST /contracts/:contractID/messages (spec §4.G).
// The thread is created lazily on first send.
func SendMessage(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		sender, ok := callerPubkey(c)
		if !ok {
			sendError(c, apierr.New(apierr.Unauthenticated, "authentication required"))
			return
		}
		contractID, err := parseUUIDParam(c, "contractID")
		if err != nil {
			sendError(c, err)
			return
		}
		var req sendMessageRequest
		if err := bindJSON(c, &req); err != nil {
			sendError(c, err)
			return
		}
		contract, err := s.DB.GetContractForUpdate(c.Request.Context(), contractID)
		if err != nil {
			sendError(c, apierr.Wrap(apierr.NotFound, "contract not found", err))
			return
		}
		message, err := s.Messaging.SendMessage(c.Request.Context(), contract, sender, req.Body)
		if err != nil {
			sendError(c, err)
			return
		}
		sendSuccess(c, http.StatusCreated, message)
	}
}

// ListMessages handles GET /contracts/:contractID/messages.
func ListMessages(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerPubkey(c)
		if !ok {
			sendError(c, apierr.New(apierr.Unauthenticated, "authentication required"))
			return
		}
		contractID, err := parseUUIDParam(c, "contractID")
		if err != nil {
			sendError(c, err)
			return
		}
		messages, err := s.Messaging.ListMessages(c.Request.Context(), contractID, caller)
		if err != nil {
			sendError(c, err)
			return
		}
		sendList(c, messages)
	}
}

// MarkMessageRead handles POST /messages/:messageID/read.
func MarkMessageRead(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		reader, ok := callerPubkey(c)
		if !ok {
			sendError(c, apierr.New(apierr.Unauthenticated, "authentication required"))
			return
		}
		messageID, err := parseUUIDParam(c, "messageID")
		if err != nil {
			sendError(c, err)
			return
		}
		if _, err := s.Messaging.MarkRead(c.Request.Context(), messageID, reader); err != nil {
			sendError(c, err)
			return
		}
		sendSuccessMessage(c, http.StatusOK, "message marked read")
	}
}

// UnreadMessageCount handles GET /contracts/:contractID/messages/unread-count.
func UnreadMessageCount(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := callerPubkey(c)
		if !ok {
			sendError(c, apierr.New(apierr.Unauthenticated, "authentication required"))
			return
		}
		contractID, err := parseUUIDParam(c, "contractID")
		if err != nil {
			sendError(c, err)
			return
		}
		count, err := s.Messaging.UnreadCount(c.Request.Context(), contractID, viewer)
		if err != nil {
			sendError(c, err)
			return
		}
		sendSuccess(c, http.StatusOK, gin.H{"unread_count": count})
	}
}

// ResponseMetrics handles GET /providers/me/response-metrics (spec §4.G SLA
// reporting).
func ResponseMetrics(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider, ok := callerPubkey(c)
		if !ok {
			sendError(c, apierr.New(apierr.Unauthenticated, "authentication required"))
			return
		}
		metrics, err := s.Messaging.ResponseMetricsFor(c.Request.Context(), provider)
		if err != nil {
			sendError(c, err)
			return
		}
		sendSuccess(c, http.StatusOK, metrics)
	}
}
