package services

import (
	"context"
	"errors"
	"testing"

	"lokalBack/internal/models"
)

func result(id int, dist float64) models.ProviderSearchResult {
	r := models.ProviderSearchResult{DistanceKm: dist}
	r.ID = id
	return r
}

func TestSortSearchResults(t *testing.T) {
	results := []models.ProviderSearchResult{
		result(3, 5.0),
		result(1, 1.2),
		result(2, 5.0),
		result(4, 0.3),
	}

	sortSearchResults(results)

	wantOrder := []int{4, 1, 2, 3}
	for i, want := range wantOrder {
		if results[i].ID != want {
			t.Fatalf("position %d: got provider %d, want %d", i, results[i].ID, want)
		}
	}
}

func TestPaginateSearchResults(t *testing.T) {
	results := []models.ProviderSearchResult{
		result(1, 1), result(2, 2), result(3, 3), result(4, 4), result(5, 5),
	}

	page := paginateSearchResults(results, 2, 2)
	if len(page) != 2 || page[0].ID != 3 || page[1].ID != 4 {
		t.Fatalf("unexpected page: %+v", page)
	}

	tail := paginateSearchResults(results, 10, 4)
	if len(tail) != 1 || tail[0].ID != 5 {
		t.Fatalf("unexpected tail page: %+v", tail)
	}

	empty := paginateSearchResults(results, 2, 10)
	if len(empty) != 0 {
		t.Fatalf("offset past the end should return an empty page, got %+v", empty)
	}
}

func TestSearchViaIndexWithoutLocator(t *testing.T) {
	s := &ProviderService{}
	req := models.ProviderSearchRequest{Latitude: 43.25, Longitude: 76.9, RadiusKm: 10}
	if _, err := s.searchViaIndex(context.Background(), req); !errors.Is(err, errNoLocator) {
		t.Fatalf("expected errNoLocator without a configured index, got %v", err)
	}
}

func TestValidateSearch(t *testing.T) {
	base := models.ProviderSearchRequest{Latitude: 43.25, Longitude: 76.9, RadiusKm: 10}

	req := base
	if err := validateSearch(&req); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	if req.Limit != defaultSearchSize {
		t.Fatalf("limit default: got %d, want %d", req.Limit, defaultSearchSize)
	}

	req = base
	req.Limit = 500
	if err := validateSearch(&req); err != nil {
		t.Fatalf("oversized limit should clamp, got error: %v", err)
	}
	if req.Limit != maxSearchSize {
		t.Fatalf("limit clamp: got %d, want %d", req.Limit, maxSearchSize)
	}

	bad := []models.ProviderSearchRequest{
		{Latitude: 91, Longitude: 0, RadiusKm: 10},
		{Latitude: 0, Longitude: 181, RadiusKm: 10},
		{Latitude: 0, Longitude: 0, RadiusKm: 0},
		{Latitude: 0, Longitude: 0, RadiusKm: 101},
	}
	for i, req := range bad {
		if err := validateSearch(&req); err != models.ErrInvalidRange {
			t.Fatalf("case %d: got %v, want ErrInvalidRange", i, err)
		}
	}
}
