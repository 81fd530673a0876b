package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/chukwudobemicah/limer-properties-sub000/internal/config"
	"github.com/chukwudobemicah/limer-properties-sub000/internal/model"
)

// GROQ projections. References are expanded inline so every response is a
// fully materialized value; nothing is resolved lazily.
const (
	propertyProjection = `{
		"id": _id,
		"slug": slug.current,
		title,
		"type": propertyType,
		structure,
		status,
		price,
		bedrooms,
		bathrooms,
		"areaSqm": area,
		furnished,
		description,
		features,
		isFeatured,
		"location": location->{"id": _id, "slug": slug.current, name, city, state},
		"images": images[]{"assetRef": asset._ref, caption, alt}
	}`

	queryProperties     = `*[_type == "property"] | order(_createdAt desc) ` + propertyProjection
	queryPropertyBySlug = `*[_type == "property" && slug.current == $slug][0] ` + propertyProjection

	queryLocations = `*[_type == "location"] | order(name asc) {"id": _id, "slug": slug.current, "label": name}`
	queryTypes     = `*[_type == "propertyType"] {"id": _id, "slug": slug.current, "label": title}`
	queryStructs   = `*[_type == "structure"] {"id": _id, "slug": slug.current, "label": title}`
)

// Client is a read-only query client for the headless content store.
type Client struct {
	config     *config.CMSConfig
	httpClient *http.Client
}

// NewClient creates a content store client.
func NewClient(cfg *config.CMSConfig) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// queryResponse wraps every content store response.
type queryResponse struct {
	Result json.RawMessage `json:"result"`
	Ms     int64           `json:"ms"`
}

// rawProperty mirrors the property projection. Numeric fields decode as
// float64 because the store does not distinguish integer literals.
type rawProperty struct {
	ID          string       `json:"id"`
	Slug        string       `json:"slug"`
	Title       string       `json:"title"`
	Type        string       `json:"type"`
	Structure   string       `json:"structure"`
	Status      string       `json:"status"`
	Price       float64      `json:"price"`
	Bedrooms    *int         `json:"bedrooms"`
	Bathrooms   *int         `json:"bathrooms"`
	AreaSqm     float64      `json:"areaSqm"`
	Furnished   *bool        `json:"furnished"`
	Description string       `json:"description"`
	Features    []string     `json:"features"`
	IsFeatured  bool         `json:"isFeatured"`
	Location    *rawLocation `json:"location"`
	Images      []rawImage   `json:"images"`
}

type rawLocation struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

type rawImage struct {
	AssetRef string `json:"assetRef"`
	Caption  string `json:"caption"`
	Alt      string `json:"alt"`
}

// Properties fetches the full denormalized property list.
func (c *Client) Properties(ctx context.Context) ([]model.Property, error) {
	var raw []rawProperty
	if err := c.query(ctx, queryProperties, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}
	out := make([]model.Property, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.toModel())
	}
	return out, nil
}

// PropertyBySlug fetches a single property. Returns (nil, nil) when no
// document matches.
func (c *Client) PropertyBySlug(ctx context.Context, slug string) (*model.Property, error) {
	var raw *rawProperty
	params := url.Values{"$slug": []string{quoteParam(slug)}}
	if err := c.query(ctx, queryPropertyBySlug, params, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch property %q: %w", slug, err)
	}
	if raw == nil {
		return nil, nil
	}
	p := raw.toModel()
	return &p, nil
}

// Locations fetches location reference entities.
func (c *Client) Locations(ctx context.Context) ([]model.Reference, error) {
	return c.references(ctx, queryLocations, "locations")
}

// PropertyTypes fetches property-type reference entities.
func (c *Client) PropertyTypes(ctx context.Context) ([]model.Reference, error) {
	return c.references(ctx, queryTypes, "property types")
}

// Structures fetches structure reference entities.
func (c *Client) Structures(ctx context.Context) ([]model.Reference, error) {
	return c.references(ctx, queryStructs, "structures")
}

func (c *Client) references(ctx context.Context, groq, kind string) ([]model.Reference, error) {
	var refs []model.Reference
	if err := c.query(ctx, groq, nil, &refs); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", kind, err)
	}
	return refs, nil
}

// query executes a GROQ query against the store's query endpoint and
// decodes the result into dest.
func (c *Client) query(ctx context.Context, groq string, params url.Values, dest any) error {
	values := url.Values{}
	values.Set("query", groq)
	for k, vs := range params {
		for _, v := range vs {
			values.Add(k, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.QueryURL()+"?"+values.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("content store request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read content store response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("content store returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var wrapper queryResponse
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return fmt.Errorf("failed to decode content store response: %w", err)
	}
	if len(wrapper.Result) == 0 || string(wrapper.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(wrapper.Result, dest); err != nil {
		return fmt.Errorf("failed to decode query result: %w", err)
	}
	return nil
}

func (r rawProperty) toModel() model.Property {
	p := model.Property{
		ID:          r.ID,
		Slug:        r.Slug,
		Title:       r.Title,
		Type:        r.Type,
		Structure:   r.Structure,
		Status:      r.Status,
		Price:       int64(r.Price),
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		AreaSqm:     r.AreaSqm,
		Furnished:   r.Furnished,
		Description: r.Description,
		Features:    r.Features,
		IsFeatured:  r.IsFeatured,
	}
	if r.Location != nil {
		p.Location = model.Location{
			ID:    r.Location.ID,
			Slug:  r.Location.Slug,
			Name:  r.Location.Name,
			City:  r.Location.City,
			State: r.Location.State,
		}
	}
	for _, img := range r.Images {
		p.Images = append(p.Images, model.Image{
			AssetRef: img.AssetRef,
			Caption:  img.Caption,
			Alt:      img.Alt,
		})
	}
	return p
}

// quoteParam quotes a GROQ string parameter value.
func quoteParam(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
