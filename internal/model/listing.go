package model

import "time"

// CreditListing is a batch of carbon credits offered for sale by a
// supplier.  Prices are stored in cents to avoid floating point in the
// database.
type CreditListing struct {
	ID             string    // listings.id (uuid)
	SupplierID     uint64    // listings.supplier_id
	Project        string    // listings.project
	Location       string    // listings.location
	Credits        uint64    // listings.credits (remaining for sale)
	PriceCents     uint64    // listings.price_cents (per credit)
	Verified       bool      // listings.verified
	ImageURL       string    // listings.image_url
	CreatedAt      time.Time // listings.created_at
	UpdatedAt      time.Time // listings.updated_at
}
