package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/chukwudobemicah/limer-properties-sub000/internal/model"
)

type fakeSource struct {
	properties    []model.Property
	propertyCalls int
	slugCalls     int
}

func (f *fakeSource) Properties(ctx context.Context) ([]model.Property, error) {
	f.propertyCalls++
	return f.properties, nil
}

func (f *fakeSource) PropertyBySlug(ctx context.Context, slug string) (*model.Property, error) {
	f.slugCalls++
	for i := range f.properties {
		if f.properties[i].Slug == slug {
			return &f.properties[i], nil
		}
	}
	return nil, nil
}

func (f *fakeSource) Locations(ctx context.Context) ([]model.Reference, error) {
	return []model.Reference{{ID: "loc-1", Slug: "lekki", Label: "Lekki"}}, nil
}

func (f *fakeSource) PropertyTypes(ctx context.Context) ([]model.Reference, error) {
	return nil, errors.New("types query failed")
}

func (f *fakeSource) Structures(ctx context.Context) ([]model.Reference, error) {
	return []model.Reference{{ID: "s1", Slug: "duplex", Label: "Duplex"}}, nil
}

type memCache struct {
	store  map[string][]byte
	getErr error
}

func newMemCache() *memCache {
	return &memCache{store: make(map[string][]byte)}
}

func (m *memCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	data, ok := m.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (m *memCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = data
	return nil
}

func TestCatalog_SearchReadsThroughCache(t *testing.T) {
	source := &fakeSource{properties: sampleRecords()}
	catalog := NewCatalog(source, newMemCache())

	criteria := model.DefaultCriteria()
	criteria.Purpose = model.PurposeRent

	first, err := catalog.Search(context.Background(), criteria)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := catalog.Search(context.Background(), criteria)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(first) != 1 || len(second) != 1 || first[0].ID != "p2" {
		t.Errorf("Unexpected results: %v / %v", ids(first), ids(second))
	}
	if source.propertyCalls != 1 {
		t.Errorf("Expected second search served from cache, source called %d times", source.propertyCalls)
	}
}

func TestCatalog_CacheErrorIsAMiss(t *testing.T) {
	source := &fakeSource{properties: sampleRecords()}
	broken := newMemCache()
	broken.getErr = errors.New("connection refused")
	catalog := NewCatalog(source, broken)

	results, err := catalog.Search(context.Background(), model.DefaultCriteria())
	if err != nil {
		t.Fatalf("Broken cache must not fail the catalog: %v", err)
	}
	if len(results) != len(sampleRecords()) {
		t.Errorf("Expected full result set, got %d", len(results))
	}
}

func TestCatalog_BySlugCachesHitsOnly(t *testing.T) {
	source := &fakeSource{properties: sampleRecords()}
	catalog := NewCatalog(source, newMemCache())

	for i := 0; i < 2; i++ {
		p, err := catalog.BySlug(context.Background(), "lekki-duplex")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if p == nil || p.ID != "p1" {
			t.Fatalf("Expected p1, got %+v", p)
		}
	}
	if source.slugCalls != 1 {
		t.Errorf("Expected cached hit on second lookup, source called %d times", source.slugCalls)
	}

	// Misses go back to the source every time.
	for i := 0; i < 2; i++ {
		if p, err := catalog.BySlug(context.Background(), "missing"); err != nil || p != nil {
			t.Fatalf("Expected nil miss, got %v / %v", p, err)
		}
	}
	if source.slugCalls != 3 {
		t.Errorf("Expected misses not cached, source called %d times", source.slugCalls)
	}
}

func TestCatalog_FilterOptionsDegradePerSource(t *testing.T) {
	catalog := NewCatalog(&fakeSource{}, nil)

	resp := catalog.FilterOptions(context.Background())

	if len(resp.Locations) != 1 || resp.Locations[0].Value != "lekki" {
		t.Errorf("Expected location options, got %+v", resp.Locations)
	}
	if len(resp.Structures) != 1 {
		t.Errorf("Expected structure options, got %+v", resp.Structures)
	}
	if len(resp.Types) != 0 {
		t.Errorf("Expected failed source to yield empty list, got %+v", resp.Types)
	}
	if resp.Errors["types"] == "" {
		t.Error("Expected types failure recorded")
	}
}
