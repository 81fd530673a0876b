package model

// FilterAll is the disabled marker for single-value criteria. An empty
// string is treated the same way so zero values stay harmless.
const FilterAll = "all"

// NoPriceCap is the sentinel upper bound meaning "no cap". Prices are
// currency-agnostic integers, so the sentinel just has to sit above any
// realistic listing price.
const NoPriceCap int64 = 1_000_000_000_000

// Purpose values. Purpose is a coarse pre-filter tied to property-type
// groupings rather than a property field of its own.
const (
	PurposeBuy      = "buy"
	PurposeRent     = "rent"
	PurposeShortlet = "shortlet"
)

// Furnished criterion values.
const (
	FurnishedYes = "furnished"
	FurnishedNo  = "unfurnished"
)

// FilterCriteria is the full set of filter controls for a catalog view.
// Every criterion composes with every other via logical AND. Nil pointers
// and FilterAll (or empty) strings mean "criterion disabled", never a
// literal value to match.
type FilterCriteria struct {
	Purpose   string `json:"purpose,omitempty"`
	Search    string `json:"search,omitempty"`
	Type      string `json:"type,omitempty"`
	Location  string `json:"location,omitempty"`
	Structure string `json:"structure,omitempty"`
	Bedrooms  *int   `json:"bedrooms,omitempty"`
	Bathrooms *int   `json:"bathrooms,omitempty"`
	Furnished string `json:"furnished,omitempty"`
	PriceMin  int64  `json:"price_min"`
	PriceMax  int64  `json:"price_max"`
}

// DefaultCriteria returns criteria with every field disabled. Filtering
// with it returns the input unchanged.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Purpose:   FilterAll,
		Furnished: FilterAll,
		PriceMin:  0,
		PriceMax:  NoPriceCap,
	}
}

// Reset restores every field to its default simultaneously.
func (c *FilterCriteria) Reset() {
	*c = DefaultCriteria()
}

// CriterionDisabled reports whether a string criterion value means
// "no constraint".
func CriterionDisabled(v string) bool {
	return v == "" || v == FilterAll
}
