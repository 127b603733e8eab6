package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/model"
)

// ListingRepo persists carbon credit listings in the 'listings' table.
type ListingRepo struct{ DB *sql.DB }

func NewListingRepo(db *sql.DB) *ListingRepo { return &ListingRepo{DB: db} }

const listingColumns = "id,supplier_id,project,location,credits,price_cents,verified,image_url,created_at,updated_at"

// Create inserts a listing for a supplier and returns it with the assigned
// uuid.
func (r *ListingRepo) Create(ctx context.Context, l model.CreditListing) (model.CreditListing, error) {
	l.ID = uuid.New().String()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO listings (id, supplier_id, project, location, credits, price_cents, verified, image_url) VALUES (?,?,?,?,?,?,?,?)",
		l.ID, l.SupplierID, l.Project, l.Location, l.Credits, l.PriceCents, l.Verified, l.ImageURL)
	if err != nil {
		return model.CreditListing{}, err
	}
	return l, nil
}

// ListOpen returns listings that still have credits for sale, newest first.
func (r *ListingRepo) ListOpen(ctx context.Context) ([]model.CreditListing, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE credits > 0 ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CreditListing
	for rows.Next() {
		var l model.CreditListing
		if err := rows.Scan(&l.ID, &l.SupplierID, &l.Project, &l.Location, &l.Credits, &l.PriceCents, &l.Verified, &l.ImageURL, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ListBySupplier returns all listings a supplier owns, sold out included.
func (r *ListingRepo) ListBySupplier(ctx context.Context, supplierID uint64) ([]model.CreditListing, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE supplier_id=? ORDER BY created_at DESC", supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CreditListing
	for rows.Next() {
		var l model.CreditListing
		if err := rows.Scan(&l.ID, &l.SupplierID, &l.Project, &l.Location, &l.Credits, &l.PriceCents, &l.Verified, &l.ImageURL, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Get fetches a single listing by id.
func (r *ListingRepo) Get(ctx context.Context, id string) (model.CreditListing, error) {
	var l model.CreditListing
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE id=? LIMIT 1", id).
		Scan(&l.ID, &l.SupplierID, &l.Project, &l.Location, &l.Credits, &l.PriceCents, &l.Verified, &l.ImageURL, &l.CreatedAt, &l.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.CreditListing{}, ErrNotFound
	}
	return l, err
}
