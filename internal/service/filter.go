package service

import (
	"strings"

	"github.com/chukwudobemicah/limer-properties-sub000/internal/model"
)

// purposeTypes maps a purpose pre-filter to the property types it covers.
var purposeTypes = map[string][]string{
	model.PurposeBuy:      {model.TypeSale, model.TypeLand},
	model.PurposeRent:     {model.TypeRent},
	model.PurposeShortlet: {model.TypeShortlet},
}

// Filter returns the subset of records satisfying every active criterion,
// preserving the input's relative order. It is pure and never errors on
// records with absent optional fields: a nil bedrooms/bathrooms/furnished
// field fails only when the corresponding criterion is active, so land
// records drop out of furnished-constrained views.
func Filter(records []model.Property, c model.FilterCriteria) []model.Property {
	out := make([]model.Property, 0, len(records))
	for _, p := range records {
		if matches(p, c) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p model.Property, c model.FilterCriteria) bool {
	if !model.CriterionDisabled(c.Purpose) {
		if !containsString(purposeTypes[c.Purpose], p.Type) {
			return false
		}
	}
	if !model.CriterionDisabled(c.Type) && p.Type != c.Type {
		return false
	}
	if !model.CriterionDisabled(c.Location) && p.Location.ID != c.Location {
		return false
	}
	if !model.CriterionDisabled(c.Structure) && p.Structure != c.Structure {
		return false
	}
	if c.Bedrooms != nil {
		if p.Bedrooms == nil || *p.Bedrooms != *c.Bedrooms {
			return false
		}
	}
	if c.Bathrooms != nil {
		if p.Bathrooms == nil || *p.Bathrooms != *c.Bathrooms {
			return false
		}
	}
	if !model.CriterionDisabled(c.Furnished) {
		want := c.Furnished == model.FurnishedYes
		if p.Furnished == nil || *p.Furnished != want {
			return false
		}
	}
	if p.Price < c.PriceMin || p.Price > c.PriceMax {
		return false
	}
	if term := strings.TrimSpace(c.Search); term != "" {
		if !matchesSearch(p.Location, term) {
			return false
		}
	}
	return true
}

// matchesSearch matches the term case-insensitively against the
// location-derived text (name/city/state concatenation).
func matchesSearch(loc model.Location, term string) bool {
	haystack := strings.ToLower(loc.Name + " " + loc.City + " " + loc.State)
	return strings.Contains(haystack, strings.ToLower(term))
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
