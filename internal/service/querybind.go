package service

import (
	"net/url"
	"strconv"

	"github.com/chukwudobemicah/limer-properties-sub000/internal/model"
)

// Recognized query parameter names.
const (
	paramPurpose   = "purpose"
	paramSearch    = "search"
	paramType      = "type"
	paramLocation  = "location"
	paramStructure = "structure"
	paramBedrooms  = "bedrooms"
	paramBathrooms = "bathrooms"
	paramFurnished = "furnished"
	paramMinPrice  = "minPrice"
	paramMaxPrice  = "maxPrice"
)

var validPurposes = map[string]bool{
	model.PurposeBuy:      true,
	model.PurposeRent:     true,
	model.PurposeShortlet: true,
	model.FilterAll:       true,
}

var validFurnished = map[string]bool{
	model.FurnishedYes: true,
	model.FurnishedNo:  true,
	model.FilterAll:    true,
}

// ParseCriteria hydrates filter criteria from navigation query parameters.
// It is a one-shot read: callers apply it once per page load, never as a
// continuous sync. Each recognized parameter is applied only when
// syntactically valid; invalid or absent values leave the corresponding
// criterion at its default. minPrice/maxPrice are folded into a single
// combined range update when at least one of the pair is present, so a
// lone bound never clobbers the other back to its default.
func ParseCriteria(values url.Values) model.FilterCriteria {
	c := model.DefaultCriteria()

	if v := values.Get(paramPurpose); validPurposes[v] {
		c.Purpose = v
	}
	if v := values.Get(paramSearch); v != "" {
		c.Search = v
	}
	if v := values.Get(paramType); v != "" {
		c.Type = v
	}
	if v := values.Get(paramLocation); v != "" {
		c.Location = v
	}
	if v := values.Get(paramStructure); v != "" {
		c.Structure = v
	}
	if n, ok := parseCount(values.Get(paramBedrooms)); ok {
		c.Bedrooms = &n
	}
	if n, ok := parseCount(values.Get(paramBathrooms)); ok {
		c.Bathrooms = &n
	}
	if v := values.Get(paramFurnished); validFurnished[v] {
		c.Furnished = v
	}

	minPrice, minOK := parsePrice(values.Get(paramMinPrice))
	maxPrice, maxOK := parsePrice(values.Get(paramMaxPrice))
	if minOK || maxOK {
		rangeMin, rangeMax := int64(0), model.NoPriceCap
		if minOK {
			rangeMin = minPrice
		}
		if maxOK {
			rangeMax = maxPrice
		}
		c.PriceMin = rangeMin
		c.PriceMax = rangeMax
	}

	return c
}

// EncodeCriteria serializes criteria to query parameters, omitting every
// field still at its disabled/default sentinel so the resulting URL
// carries only active constraints. Purpose is the one exception: it is
// emitted whenever set, "all" included, so a shared link always states
// which tab it came from.
func EncodeCriteria(c model.FilterCriteria) url.Values {
	values := url.Values{}

	if c.Purpose != "" {
		values.Set(paramPurpose, c.Purpose)
	}
	if c.Search != "" {
		values.Set(paramSearch, c.Search)
	}
	if !model.CriterionDisabled(c.Type) {
		values.Set(paramType, c.Type)
	}
	if !model.CriterionDisabled(c.Location) {
		values.Set(paramLocation, c.Location)
	}
	if !model.CriterionDisabled(c.Structure) {
		values.Set(paramStructure, c.Structure)
	}
	if c.Bedrooms != nil {
		values.Set(paramBedrooms, strconv.Itoa(*c.Bedrooms))
	}
	if c.Bathrooms != nil {
		values.Set(paramBathrooms, strconv.Itoa(*c.Bathrooms))
	}
	if !model.CriterionDisabled(c.Furnished) {
		values.Set(paramFurnished, c.Furnished)
	}
	if c.PriceMin > 0 {
		values.Set(paramMinPrice, strconv.FormatInt(c.PriceMin, 10))
	}
	if c.PriceMax < model.NoPriceCap {
		values.Set(paramMaxPrice, strconv.FormatInt(c.PriceMax, 10))
	}

	return values
}

// parseCount parses a non-negative integer criterion value. "all", empty
// and anything non-numeric count as absent.
func parseCount(v string) (int, bool) {
	if model.CriterionDisabled(v) {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func parsePrice(v string) (int64, bool) {
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
