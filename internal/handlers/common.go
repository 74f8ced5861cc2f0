package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/decent-cloud/backend/internal/apierr"
	"github.com/decent-cloud/backend/internal/auth"
	"github.com/decent-cloud/backend/internal/db"
	"github.com/decent-cloud/backend/internal/logger"
	"github.com/decent-cloud/backend/internal/middleware"
	"github.com/decent-cloud/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// validate runs struct-tag validation on decoded request bodies. A single
// package-level instance is safe for concurrent use and caches each
// struct type's reflected tags after its first validation.
var validate = validator.New()

// bindJSON decodes the request body into dst and validates it against
// dst's `validate` struct tags, collapsing either failure into a single
// apierr.InvalidArgument so every handler reports malformed input the
// same way (spec §7).
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apierr.Wrap(apierr.InvalidArgument, "invalid request body", err)
	}
	if err := validate.Struct(dst); err != nil {
		return apierr.Wrap(apierr.InvalidArgument, "request failed validation", err)
	}
	return nil
}

// CommonServices bundles every domain service a handler might need. It is
// constructed once at startup (cmd/api/main.go) and injected into each
// route group.
type CommonServices struct {
	DB      db.Querier
	DBPool  *pgxpool.Pool
	Logger  *zap.Logger
	Nonces  *auth.NonceCache

	Accounts    *services.AccountService
	Offerings   *services.OfferingService
	Contracts   *services.ContractService
	Payments    *services.PaymentService
	Messaging   *services.MessagingService
	Emails      *services.EmailService
	Sequences   *services.SequenceService
	Escalations *services.EscalationService
	Admin       *services.AdminService
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// SuccessResponse is the standard bare-message envelope.
type SuccessResponse struct {
	Message string `json:"message"`
}

// sendError renders err as a JSON error response, choosing the status
// code from its apierr.Kind when possible (spec §9).
func sendError(c *gin.Context, err error) {
	correlationID := middleware.GetCorrelationID(c)

	apiErr := apierr.As(err)
	status := apierr.HTTPStatus(apiErr.Kind)
	message := apiErr.Message

	if status >= http.StatusInternalServerError {
		fields := []zap.Field{
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("correlation_id", correlationID),
		}
		if apiErr.Cause != nil {
			fields = append(fields, zap.String("stack", fmt.Sprintf("%+v", apiErr.Cause)))
		}
		logger.Error(message, fields...)
	}

	c.JSON(status, ErrorResponse{Error: message, CorrelationID: correlationID})
}

// sendSuccess sends data with the given status code.
func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// sendSuccessMessage sends a bare message response.
func sendSuccessMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, SuccessResponse{Message: message})
}

// sendList sends an unpaginated list response.
func sendList(c *gin.Context, items interface{}) {
	c.JSON(http.StatusOK, gin.H{"object": "list", "data": items})
}

type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Object     string      `json:"object"`
	HasMore    bool        `json:"has_more"`
	Pagination Pagination  `json:"pagination"`
}

type Pagination struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
}

// sendPaginatedSuccess sends a page of results. total is unknown ahead of
// time for most list queries here, so has_more is derived from whether a
// full page was returned rather than from a count query.
func sendPaginatedSuccess(c *gin.Context, statusCode int, data interface{}, page, limit, returned int) {
	c.JSON(statusCode, PaginatedResponse{
		Data:    data,
		Object:  "list",
		HasMore: returned == limit,
		Pagination: Pagination{
			CurrentPage: page,
			PerPage:     limit,
		},
	})
}

// validatePaginationParams reads limit/page query params with sane
// defaults and an upper bound.
func validatePaginationParams(c *gin.Context) (limit int32, page int32, err error) {
	const maxLimit int32 = 100
	limit = 20
	page = 1

	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.ParseInt(limitStr, 10, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid limit parameter")
		}
		if parsed > int64(maxLimit) {
			limit = maxLimit
		} else if parsed > 0 {
			limit = int32(parsed)
		}
	}

	if pageStr := c.Query("page"); pageStr != "" {
		parsed, err := strconv.ParseInt(pageStr, 10, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid page parameter")
		}
		if parsed > 0 {
			page = int32(parsed)
		}
	}

	return limit, page, nil
}

// callerPubkey reads the authenticated caller's active public key set by
// the signature-auth middleware. Handlers mounted behind that middleware
// can assume it is always present.
func callerPubkey(c *gin.Context) ([32]byte, bool) {
	user, ok := middleware.GetAuthedUser(c)
	if !ok {
		return [32]byte{}, false
	}
	return user.ActiveKey.PublicKey, true
}

// parseUUIDParam parses a named path parameter as a UUID.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.UUID{}, apierr.New(apierr.InvalidArgument, name+" must be a valid uuid")
	}
	return id, nil
}
