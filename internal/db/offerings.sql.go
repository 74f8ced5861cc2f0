package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const offeringColumns = `id, owner_pubkey, offering_id, name, description, monthly_price, stock_status,
       product_type, datacenter_country, processor_cores, memory_gib, gpu_model, features,
       visibility, currency, created_at_ns`

const createOfferingSQL = `
INSERT INTO offerings (` + offeringColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
RETURNING ` + offeringColumns

func (q *Queries) CreateOffering(ctx context.Context, arg CreateOfferingParams) (Offering, error) {
	row := q.db.QueryRow(ctx, createOfferingSQL, offeringArgs(arg)...)
	return scanOffering(row)
}

const upsertOfferingSQL = `
INSERT INTO offerings (` + offeringColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
ON CONFLICT (owner_pubkey, offering_id) DO UPDATE SET
  name = EXCLUDED.name, description = EXCLUDED.description,
  monthly_price = EXCLUDED.monthly_price, stock_status = EXCLUDED.stock_status,
  product_type = EXCLUDED.product_type, datacenter_country = EXCLUDED.datacenter_country,
  processor_cores = EXCLUDED.processor_cores, memory_gib = EXCLUDED.memory_gib,
  gpu_model = EXCLUDED.gpu_model, features = EXCLUDED.features,
  visibility = EXCLUDED.visibility, currency = EXCLUDED.currency
RETURNING ` + offeringColumns

func (q *Queries) UpsertOffering(ctx context.Context, arg CreateOfferingParams) (Offering, error) {
	row := q.db.QueryRow(ctx, upsertOfferingSQL, offeringArgs(arg)...)
	return scanOffering(row)
}

func offeringArgs(arg CreateOfferingParams) []interface{} {
	return []interface{}{
		arg.ID, arg.OwnerPubkey[:], arg.OfferingID, arg.Name, arg.Description, arg.MonthlyPrice,
		arg.StockStatus, arg.ProductType, arg.DatacenterCountry, arg.ProcessorCores, arg.MemoryGiB,
		arg.GPUModel, arg.Features, string(arg.Visibility), arg.Currency, arg.CreatedAtNs,
	}
}

const getOfferingByOwnerAndIDSQL = `
SELECT ` + offeringColumns + ` FROM offerings WHERE owner_pubkey = $1 AND offering_id = $2`

func (q *Queries) GetOfferingByOwnerAndID(ctx context.Context, ownerPubkey [32]byte, offeringID string) (Offering, error) {
	row := q.db.QueryRow(ctx, getOfferingByOwnerAndIDSQL, ownerPubkey[:], offeringID)
	return scanOffering(row)
}

const getOfferingByDBIDSQL = `SELECT ` + offeringColumns + ` FROM offerings WHERE id = $1`

func (q *Queries) GetOfferingByDBID(ctx context.Context, id uuid.UUID) (Offering, error) {
	row := q.db.QueryRow(ctx, getOfferingByDBIDSQL, id)
	return scanOffering(row)
}

// QueryOfferings runs the DSL-compiled WHERE fragment (§4.C) against the
// offerings table. whereClause is never string-interpolated with user
// input; binds carries every literal as a bound parameter.
func (q *Queries) QueryOfferings(ctx context.Context, whereClause string, binds []interface{}, limit, offset int32) ([]Offering, error) {
	sql := `SELECT ` + offeringColumns + ` FROM offerings`
	args := append([]interface{}{}, binds...)
	// dsl.Compile emits '?' placeholders; number them $1..$n in order so
	// they line up with binds.
	var numbered strings.Builder
	n := 0
	for _, r := range whereClause {
		if r == '?' {
			n++
			fmt.Fprintf(&numbered, "$%d", n)
			continue
		}
		numbered.WriteRune(r)
	}
	whereClause = numbered.String()
	if whereClause != "" {
		sql += " WHERE " + whereClause
	}
	sql += fmt.Sprintf(" ORDER BY created_at_ns DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Offering
	for rows.Next() {
		o, err := scanOffering(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

const isAllowlistedSQL = `SELECT EXISTS(SELECT 1 FROM offering_allowlist WHERE offering_id = $1 AND allowed_pubkey = $2)`

func (q *Queries) IsAllowlisted(ctx context.Context, offeringID string, pubkey [32]byte) (bool, error) {
	var ok bool
	err := q.db.QueryRow(ctx, isAllowlistedSQL, offeringID, pubkey[:]).Scan(&ok)
	return ok, err
}

const addAllowlistEntrySQL = `
INSERT INTO offering_allowlist (offering_id, allowed_pubkey) VALUES ($1, $2)
ON CONFLICT DO NOTHING`

func (q *Queries) AddAllowlistEntry(ctx context.Context, offeringID string, pubkey [32]byte) error {
	_, err := q.db.Exec(ctx, addAllowlistEntrySQL, offeringID, pubkey[:])
	return err
}

func scanOffering(row rowScanner) (Offering, error) {
	var o Offering
	var owner []byte
	var vis string
	err := row.Scan(&o.ID, &owner, &o.OfferingID, &o.Name, &o.Description, &o.MonthlyPrice,
		&o.StockStatus, &o.ProductType, &o.DatacenterCountry, &o.ProcessorCores, &o.MemoryGiB,
		&o.GPUModel, &o.Features, &vis, &o.Currency, &o.CreatedAtNs)
	if err != nil {
		return Offering{}, err
	}
	copy(o.OwnerPubkey[:], owner)
	o.Visibility = Visibility(vis)
	return o, nil
}
