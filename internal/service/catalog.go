package service

import (
	"context"
	"log"
	"sync"

	"github.com/chukwudobemicah/limer-properties-sub000/internal/cache"
	"github.com/chukwudobemicah/limer-properties-sub000/internal/model"
)

// Cache keys for content store responses. The queries are fixed, so the
// keys can be too.
const (
	cacheKeyProperties = "cms:properties"
	cacheKeyLocations  = "cms:locations"
	cacheKeyTypes      = "cms:types"
	cacheKeyStructures = "cms:structures"
)

// ContentSource is the read-only query interface of the headless content
// store. Every call returns fully materialized values.
type ContentSource interface {
	Properties(ctx context.Context) ([]model.Property, error)
	PropertyBySlug(ctx context.Context, slug string) (*model.Property, error)
	Locations(ctx context.Context) ([]model.Reference, error)
	PropertyTypes(ctx context.Context) ([]model.Reference, error)
	Structures(ctx context.Context) ([]model.Reference, error)
}

// ContentCache is an optional read-through cache in front of the content
// store. Errors are treated as misses.
type ContentCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// Catalog serves filtered property views from the content store.
type Catalog struct {
	source ContentSource
	cache  ContentCache
}

// NewCatalog creates a catalog service. cache may be nil.
func NewCatalog(source ContentSource, cache ContentCache) *Catalog {
	return &Catalog{source: source, cache: cache}
}

// Search fetches the full record list and evaluates the criteria against
// it. The returned total counts every match before any slicing the
// handler applies.
func (s *Catalog) Search(ctx context.Context, criteria model.FilterCriteria) ([]model.Property, error) {
	records, err := s.properties(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(records, criteria), nil
}

// Featured returns the records flagged as featured, in store order.
func (s *Catalog) Featured(ctx context.Context) ([]model.Property, error) {
	records, err := s.properties(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Property, 0, len(records))
	for _, p := range records {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out, nil
}

// BySlug returns a single property or nil when none matches. Hits are
// cached per slug; misses are not, so newly published listings appear
// without waiting for a TTL.
func (s *Catalog) BySlug(ctx context.Context, slug string) (*model.Property, error) {
	key := cache.Key("cms:property", slug)
	if s.cache != nil {
		var cached model.Property
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("Warning: property cache read failed: %v", err)
		} else if hit {
			return &cached, nil
		}
	}

	property, err := s.source.PropertyBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if property != nil && s.cache != nil {
		if err := s.cache.Set(ctx, key, property); err != nil {
			log.Printf("Warning: property cache write failed: %v", err)
		}
	}
	return property, nil
}

// FilterOptions fetches the three reference lists as independent,
// best-effort parallel reads. Each source degrades on its own: a failed
// fetch yields an empty option list and an entry in Errors, never an
// overall failure.
func (s *Catalog) FilterOptions(ctx context.Context) *model.FilterOptionsResponse {
	resp := &model.FilterOptionsResponse{
		Locations:  []model.Option{},
		Types:      []model.Option{},
		Structures: []model.Option{},
	}

	type fetch struct {
		name  string
		key   string
		run   func(context.Context) ([]model.Reference, error)
		apply func([]model.Option)
	}
	fetches := []fetch{
		{"locations", cacheKeyLocations, s.source.Locations, func(o []model.Option) { resp.Locations = o }},
		{"types", cacheKeyTypes, s.source.PropertyTypes, func(o []model.Option) { resp.Types = o }},
		{"structures", cacheKeyStructures, s.source.Structures, func(o []model.Option) { resp.Structures = o }},
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, f := range fetches {
		f := f
		wg.Add(1)
		go func() {
			defer wg.Done()
			refs, err := s.references(ctx, f.key, f.run)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("Warning: failed to fetch %s options: %v", f.name, err)
				if resp.Errors == nil {
					resp.Errors = make(map[string]string)
				}
				resp.Errors[f.name] = err.Error()
				return
			}
			f.apply(BuildOptions(refs))
		}()
	}
	wg.Wait()

	return resp
}

// properties returns the full record list, read through the cache when
// one is configured.
func (s *Catalog) properties(ctx context.Context) ([]model.Property, error) {
	if s.cache != nil {
		var cached []model.Property
		hit, err := s.cache.Get(ctx, cacheKeyProperties, &cached)
		if err != nil {
			log.Printf("Warning: property cache read failed: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	records, err := s.source.Properties(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyProperties, records); err != nil {
			log.Printf("Warning: property cache write failed: %v", err)
		}
	}
	return records, nil
}

func (s *Catalog) references(ctx context.Context, key string, run func(context.Context) ([]model.Reference, error)) ([]model.Reference, error) {
	if s.cache != nil {
		var cached []model.Reference
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("Warning: reference cache read failed: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	refs, err := run(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, refs); err != nil {
			log.Printf("Warning: reference cache write failed: %v", err)
		}
	}
	return refs, nil
}
