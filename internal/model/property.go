package model

// Property type identifiers used by the content store. The set is open:
// unknown types pass through untouched, filters simply never match them.
const (
	TypeSale     = "sale"
	TypeRent     = "rent"
	TypeLand     = "land"
	TypeShortlet = "shortlet"
)

// Location is a resolved location reference carrying the display name and
// its parent city/state. References are expanded at fetch time, so this is
// always a fully materialized value.
type Location struct {
	ID    string `json:"id"`
	Slug  string `json:"slug,omitempty"`
	Name  string `json:"name"`
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
}

// Image is an ordered gallery entry. AssetRef is an opaque handle into the
// content store's asset pipeline.
type Image struct {
	AssetRef string `json:"asset_ref"`
	Caption  string `json:"caption,omitempty"`
	Alt      string `json:"alt,omitempty"`
}

// Property represents a single listing as returned by the content store.
// Bedrooms, bathrooms and furnished are meaningful only for dwelling types
// and are nil for land; consumers must tolerate their absence.
type Property struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Structure   string   `json:"structure,omitempty"`
	Status      string   `json:"status,omitempty"`
	Location    Location `json:"location"`
	Price       int64    `json:"price"`
	Bedrooms    *int     `json:"bedrooms,omitempty"`
	Bathrooms   *int     `json:"bathrooms,omitempty"`
	AreaSqm     float64  `json:"area_sqm"`
	Furnished   *bool    `json:"furnished,omitempty"`
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
	Images      []Image  `json:"images,omitempty"`
	IsFeatured  bool     `json:"is_featured"`
}

// Reference is a raw reference entity (location, property type, structure)
// as fetched for building selection controls. Label may be blank or a
// near-duplicate of another entity; the option builder cleans that up.
type Reference struct {
	ID    string `json:"id"`
	Slug  string `json:"slug,omitempty"`
	Label string `json:"label"`
}

// Option is a deduplicated {value, label} pair for a selection control.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
