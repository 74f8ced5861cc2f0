package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/decent-cloud/backend/internal/apierr"
	"github.com/decent-cloud/backend/internal/db"
	"github.com/decent-cloud/backend/internal/dsl"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OfferingService implements the offering catalogue (spec §4.D): CRUD keyed
// by (owner_pubkey, offering_id), visibility enforcement, CSV import/export,
// and the DSL-backed search endpoint.
type OfferingService struct {
	queries db.Querier
}

func NewOfferingService(queries db.Querier) *OfferingService {
	return &OfferingService{queries: queries}
}

// csvColumns is the fixed header order for import/export (spec §6).
var csvColumns = []string{
	"offering_id", "offer_name", "description", "currency", "monthly_price",
	"product_type", "visibility", "stock_status", "datacenter_country",
	"processor_cores", "memory_gib", "gpu_model", "features",
}

func isValidCurrency(currency string) bool {
	return currency != "" && currency != "???"
}

// Create inserts a new offering owned by ownerPubkey.
func (s *OfferingService) Create(ctx context.Context, arg db.CreateOfferingParams) (db.Offering, error) {
	if !isValidCurrency(arg.Currency) {
		return db.Offering{}, apierr.New(apierr.InvalidArgument, "invalid currency")
	}
	if arg.ID == uuid.Nil {
		arg.ID = uuid.New()
	}
	if arg.CreatedAtNs == 0 {
		arg.CreatedAtNs = time.Now().UnixNano()
	}
	offering, err := s.queries.CreateOffering(ctx, arg)
	if err != nil {
		return db.Offering{}, apierr.Wrap(apierr.Internal, "failed to create offering", err)
	}
	return offering, nil
}

// GetVisible returns an offering if it exists and is visible to the caller
// (spec §4.D visibility rule).
func (s *OfferingService) GetVisible(ctx context.Context, ownerPubkey [32]byte, offeringID string, callerPubkey *[32]byte) (db.Offering, error) {
	offering, err := s.queries.GetOfferingByOwnerAndID(ctx, ownerPubkey, offeringID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.Offering{}, apierr.New(apierr.NotFound, "offering not found")
		}
		return db.Offering{}, apierr.Wrap(apierr.Internal, "failed to look up offering", err)
	}
	if !s.isVisibleTo(ctx, offering, callerPubkey) {
		return db.Offering{}, apierr.New(apierr.NotFound, "offering not found")
	}
	return offering, nil
}

func (s *OfferingService) isVisibleTo(ctx context.Context, offering db.Offering, callerPubkey *[32]byte) bool {
	if offering.Visibility == db.VisibilityPublic {
		return true
	}
	if callerPubkey == nil {
		return false
	}
	if *callerPubkey == offering.OwnerPubkey {
		return true
	}
	allowed, err := s.queries.IsAllowlisted(ctx, offering.OfferingID, *callerPubkey)
	return err == nil && allowed
}

// Query compiles a DSL search string and returns matching offerings. Only
// the caller-visible subset is meaningful to expose; visibility filtering
// beyond "public" is intentionally not pushed into SQL since the allowlist
// relation is per-offering, not expressible as a static WHERE clause
// fragment composed with arbitrary caller DSL terms.
func (s *OfferingService) Query(ctx context.Context, query string, limit, offset int32) ([]db.Offering, error) {
	where, binds, err := dsl.Compile(query)
	if err != nil {
		var derr *dsl.Error
		if errors.As(err, &derr) {
			return nil, apierr.New(apierr.InvalidArgument, derr.Message)
		}
		return nil, apierr.Wrap(apierr.Internal, "failed to compile query", err)
	}

	visibilityFilter := "visibility = 'public'"
	if where == "" {
		where = visibilityFilter
	} else {
		where = visibilityFilter + " AND " + where
	}

	offerings, err := s.queries.QueryOfferings(ctx, where, binds, limit, offset)
	if err != nil {
		return nil, apierr.Wrap(apierr.Internal, "failed to query offerings", err)
	}
	return offerings, nil
}

// ImportCSV parses rows per the fixed header (spec §6) and upserts or
// creates each offering. One bad row does not abort the batch; the result
// reports a per-row error list (spec §4.D).
type ImportRowError struct {
	Row     int
	Message string
}

type ImportResult struct {
	SuccessCount int
	Errors       []ImportRowError
}

func (s *OfferingService) ImportCSV(ctx context.Context, ownerPubkey [32]byte, r io.Reader, upsert bool) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ImportResult{}, apierr.New(apierr.InvalidArgument, "empty CSV file")
		}
		return ImportResult{}, apierr.Wrap(apierr.InvalidArgument, "failed to read CSV header", err)
	}
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[name] = i
	}

	result := ImportResult{}
	rowNum := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: err.Error()})
			continue
		}

		arg, err := parseOfferingRow(ownerPubkey, colIndex, record)
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: err.Error()})
			continue
		}

		if upsert {
			_, err = s.queries.UpsertOffering(ctx, arg)
		} else {
			_, err = s.queries.CreateOffering(ctx, arg)
		}
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: err.Error()})
			continue
		}
		result.SuccessCount++
	}
	return result, nil
}

func parseOfferingRow(ownerPubkey [32]byte, colIndex map[string]int, record []string) (db.CreateOfferingParams, error) {
	get := func(col string) string {
		if i, ok := colIndex[col]; ok && i < len(record) {
			return record[i]
		}
		return ""
	}

	offeringID := get("offering_id")
	if offeringID == "" {
		return db.CreateOfferingParams{}, fmt.Errorf("offering_id is required")
	}
	currency := get("currency")
	if !isValidCurrency(currency) {
		return db.CreateOfferingParams{}, fmt.Errorf("invalid currency %q", currency)
	}
	price, err := strconv.ParseFloat(get("monthly_price"), 64)
	if err != nil {
		return db.CreateOfferingParams{}, fmt.Errorf("invalid monthly_price: %w", err)
	}
	cores, _ := strconv.ParseInt(get("processor_cores"), 10, 32)
	memory, _ := strconv.ParseInt(get("memory_gib"), 10, 32)

	visibility := db.Visibility(get("visibility"))
	if visibility != db.VisibilityPrivate {
		visibility = db.VisibilityPublic
	}

	return db.CreateOfferingParams{
		ID:                uuid.New(),
		OwnerPubkey:       ownerPubkey,
		OfferingID:        offeringID,
		Name:              get("offer_name"),
		Description:       get("description"),
		MonthlyPrice:      price,
		StockStatus:       get("stock_status"),
		ProductType:       get("product_type"),
		DatacenterCountry: get("datacenter_country"),
		ProcessorCores:    int32(cores),
		MemoryGiB:         int32(memory),
		GPUModel:          get("gpu_model"),
		Features:          get("features"),
		Visibility:        visibility,
		Currency:          currency,
		CreatedAtNs:       time.Now().UnixNano(),
	}, nil
}

// ListOwn returns every offering owned by ownerPubkey regardless of
// visibility — unlike Query, which always scopes to public offerings,
// this is for the owner's own management views (export, dashboard).
func (s *OfferingService) ListOwn(ctx context.Context, ownerPubkey [32]byte, limit, offset int32) ([]db.Offering, error) {
	offerings, err := s.queries.QueryOfferings(ctx, "owner_pubkey = $1", []interface{}{ownerPubkey[:]}, limit, offset)
	if err != nil {
		return nil, apierr.Wrap(apierr.Internal, "failed to list offerings", err)
	}
	return offerings, nil
}

// ExportCSV renders offerings owned by ownerPubkey into the fixed CSV
// column order (spec §6).
func (s *OfferingService) ExportCSV(ctx context.Context, offerings []db.Offering) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvColumns); err != nil {
		return nil, apierr.Wrap(apierr.Internal, "failed to write CSV header", err)
	}

	for _, o := range offerings {
		record := []string{
			o.OfferingID,
			o.Name,
			o.Description,
			o.Currency,
			strconv.FormatFloat(o.MonthlyPrice, 'f', -1, 64),
			o.ProductType,
			string(o.Visibility),
			o.StockStatus,
			o.DatacenterCountry,
			strconv.Itoa(int(o.ProcessorCores)),
			strconv.Itoa(int(o.MemoryGiB)),
			o.GPUModel,
			o.Features,
		}
		if err := w.Write(record); err != nil {
			return nil, apierr.Wrap(apierr.Internal, "failed to write CSV row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apierr.Wrap(apierr.Internal, "failed to flush CSV", err)
	}
	return buf.Bytes(), nil
}

// ParsePubkeyHex decodes a hex-encoded 32-byte public key, rejecting any
// value that does not decode to exactly 32 bytes.
func ParsePubkeyHex(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		return out, apierr.New(apierr.InvalidArgument, "invalid public key")
	}
	copy(out[:], b)
	return out, nil
}
