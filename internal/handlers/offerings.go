package handlers

import (
	"net/http"
	"time"

	"github.com/decent-cloud/backend/internal/apierr"
	"github.com/decent-cloud/backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createOfferingRequest struct {
	OfferingID        string  `json:"offering_id" validate:"required,max=128"`
	Name              string  `json:"offer_name" validate:"required,max=256"`
	Description       string  `json:"description"`
	MonthlyPrice      float64 `json:"monthly_price" validate:"required,gt=0"`
	Currency          string  `json:"currency" validate:"required,len=3"`
	ProductType       string  `json:"product_type"`
	StockStatus       string  `json:"stock_status"`
	DatacenterCountry string  `json:"datacenter_country"`
	ProcessorCores    int32   `json:"processor_cores"`
	MemoryGiB         int32   `json:"memory_gib"`
	GPUModel          string  `json:"gpu_model"`
	Features          string  `json:"features"`
	Visibility        string  `json:"visibility"`
}

// CreateOffering handles POST /offerings (spec §4.D, §6).
func CreateOffering(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerPubkey(c)
		if !ok {
			sendError(c, apierr.New(apierr.Unauthenticated, "authentication required"))
			return
		}
		var req createOfferingRequest
		if err := bindJSON(c, &req); err != nil {
			sendError(c, err)
			return
		}
		visibility := db.VisibilityPublic
		if req.Visibility != "" {
			visibility = db.Visibility(req.Visibility)
		}

		offering, err := s.Offerings.Create(c.Request.Context(), db.CreateOfferingParams{
			ID:                uuid.New(),
			OwnerPubkey:       caller,
			OfferingID:        req.OfferingID,
			Name:              req.Name,
			Description:       req.Description,
			MonthlyPrice:      req.MonthlyPrice,
			StockStatus:       req.StockStatus,
			ProductType:       req.ProductType,
			DatacenterCountry: req.DatacenterCountry,
			ProcessorCores:    req.ProcessorCores,
			MemoryGiB:         req.MemoryGiB,
			GPUModel:          req.GPUModel,
			Features:          req.Features,
			Visibility:        visibility,
			Currency:          req.Currency,
			CreatedAtNs:       time.Now().UnixNano(),
		})
		if err != nil {
			sendError(c, err)
			return
		}
		sendSuccess(c, http.StatusCreated, offering)
	}
}

// GetOffering handles GET /providers/:ownerPubkey/offerings/:offeringID.
func GetOffering(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerPubkey, err := decodePubkeyHex(c.Param("ownerPubkey"))
		if err != nil {
			sendError(c, err)
			return
		}
		var caller *[32]byte
		if key, ok := callerPubkey(c); ok {
			caller = &key
		}

		offering, err := s.Offerings.GetVisible(c.Request.Context(), ownerPubkey, c.Param("offeringID"), caller)
		if err != nil {
			sendError(c, err)
			return
		}
		sendSuccess(c, http.StatusOK, offering)
	}
}

// QueryOfferings handles GET /offerings?q=... — the DSL search endpoint
// (spec §4.C, §4.D).
func QueryOfferings(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, page, err := validatePaginationParams(c)
		if err != nil {
			sendError(c, apierr.Wrap(apierr.InvalidArgument, err.Error(), err))
			return
		}
		offset := (page - 1) * limit

		results, err := s.Offerings.Query(c.Request.Context(), c.Query("q"), limit, offset)
		if err != nil {
			sendError(c, err)
			return
		}
		sendPaginatedSuccess(c, http.StatusOK, results, int(page), int(limit), len(results))
	}
}

// ImportOfferingsCSV handles POST /providers/me/offerings/import.
func ImportOfferingsCSV(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerPubkey(c)
		if !ok {
			sendError(c, apierr.New(apierr.Unauthenticated, "authentication required"))
			return
		}
		file, _, err := c.Request.FormFile("file")
		if err != nil {
			sendError(c, apierr.Wrap(apierr.InvalidArgument, "missing file upload", err))
			return
		}
		defer file.Close()

		upsert := c.Query("upsert") == "true"
		result, err := s.Offerings.ImportCSV(c.Request.Context(), caller, file, upsert)
		if err != nil {
			sendError(c, err)
			return
		}
		sendSuccess(c, http.StatusOK, result)
	}
}

// ExportOfferingsCSV handles GET /providers/me/offerings/export.
func ExportOfferingsCSV(s *CommonServices) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerPubkey(c)
		if !ok {
			sendError(c, apierr.New(apierr.Unauthenticated, "authentication required"))
			return
		}
		offerings, err := s.Offerings.ListOwn(c.Request.Context(), caller, 1000, 0)
		if err != nil {
			sendError(c, err)
			return
		}
		csvBytes, err := s.Offerings.ExportCSV(c.Request.Context(), offerings)
		if err != nil {
			sendError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/csv", csvBytes)
	}
}
