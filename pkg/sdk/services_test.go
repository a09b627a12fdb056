package naveeka

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/entity"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/geo"
	domfacet "github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/facet"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/filter"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/page"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/result"
	reviewuc "github.com/VishwanathArchakMR/Naveeka-sub002/internal/usecase/review"
)

func domainEntity() entity.Entity {
	return entity.Entity{
		ID:          "r-1",
		Kind:        entity.KindRestaurant,
		Name:        "Spice Route",
		Slug:        "spice-route",
		City:        "Panjim",
		Country:     "IN",
		Location:    &geo.Point{Lng: 73.8278, Lat: 15.4989},
		Cuisines:    []string{"goan", "seafood"},
		Price:       650,
		Rating:      4.5,
		ReviewCount: 120,
		Active:      true,
		CreatedAt:   time.Unix(1_690_000_000, 0).UTC(),
	}
}

// --- SearchService ---

func TestSearchService_List(t *testing.T) {
	mock := &mockSearchUC{
		listFn: func(_ context.Context, opts filter.Options, sort page.Sort, pageNum, limit int) (result.Page, error) {
			if opts.Kind != "restaurant" {
				t.Errorf("Kind = %q, want restaurant", opts.Kind)
			}
			if sort != page.SortRatingDesc {
				t.Errorf("sort = %q, want %q", sort, page.SortRatingDesc)
			}
			if pageNum != 2 || limit != 10 {
				t.Errorf("page/limit = %d/%d, want 2/10", pageNum, limit)
			}
			return result.NewPage([]entity.Entity{domainEntity()}, 2, 10, 11), nil
		},
	}

	svc := &SearchService{svc: mock}
	pg, err := svc.List(context.Background(), Query{
		Filter: Filter{Kind: KindRestaurant},
		Sort:   SortRatingDesc,
		Page:   2,
		Limit:  10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pg.Total != 11 || len(pg.Items) != 1 {
		t.Fatalf("Total/Items = %d/%d, want 11/1", pg.Total, len(pg.Items))
	}
	if pg.HasMore {
		t.Error("HasMore = true, want false (page 2 of 11 at limit 10)")
	}
	got := pg.Items[0]
	if got.Name != "Spice Route" || got.Kind != KindRestaurant {
		t.Errorf("item = %+v", got)
	}
	if got.Location == nil || got.Location.Lng != 73.8278 {
		t.Errorf("Location = %+v, want lng 73.8278", got.Location)
	}
}

func TestSearchService_List_Error(t *testing.T) {
	mock := &mockSearchUC{
		listFn: func(context.Context, filter.Options, page.Sort, int, int) (result.Page, error) {
			return result.Page{}, errors.New("db down")
		},
	}

	svc := &SearchService{svc: mock}
	if _, err := svc.List(context.Background(), Query{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestSearchService_Near(t *testing.T) {
	mock := &mockSearchUC{
		nearFn: func(_ context.Context, _ filter.Options, lng, lat, radiusKm float64, limit int) ([]result.Hit, error) {
			if lng != 73.83 || lat != 15.50 || radiusKm != 5 {
				t.Errorf("center/radius = %v/%v/%v", lng, lat, radiusKm)
			}
			if limit != 25 {
				t.Errorf("limit = %d, want 25", limit)
			}
			return []result.Hit{result.NewHitWithDistance(domainEntity(), 1250.5)}, nil
		},
	}

	svc := &SearchService{svc: mock}
	hits, err := svc.Near(context.Background(), Filter{}, 73.83, 15.50, 5, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("len(hits) = %d, want 1", len(hits))
	}
	if hits[0].DistanceMeters == nil || *hits[0].DistanceMeters != 1250.5 {
		t.Errorf("DistanceMeters = %v, want 1250.5", hits[0].DistanceMeters)
	}
}

func TestSearchService_Within_NoDistance(t *testing.T) {
	mock := &mockSearchUC{
		withinFn: func(_ context.Context, _ filter.Options, minLng, minLat, maxLng, maxLat float64, _ int) ([]result.Hit, error) {
			if minLng != 73.80 || maxLat != 15.51 {
				t.Errorf("box = %v,%v,%v,%v", minLng, minLat, maxLng, maxLat)
			}
			return []result.Hit{result.NewHit(domainEntity())}, nil
		},
	}

	svc := &SearchService{svc: mock}
	hits, err := svc.Within(context.Background(), Filter{}, 73.80, 15.49, 73.84, 15.51, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hits[0].DistanceMeters != nil {
		t.Errorf("DistanceMeters = %v, want nil", *hits[0].DistanceMeters)
	}
}

func TestSearchService_Get_NotFound(t *testing.T) {
	mock := &mockSearchUC{
		getFn: func(context.Context, string) (entity.Entity, error) {
			return entity.Entity{}, ErrNotFound
		},
	}

	svc := &SearchService{svc: mock}
	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSearchService_GeoJSON(t *testing.T) {
	mock := &mockSearchUC{
		listFn: func(context.Context, filter.Options, page.Sort, int, int) (result.Page, error) {
			return result.NewPage([]entity.Entity{domainEntity()}, 1, 20, 1), nil
		},
	}

	svc := &SearchService{svc: mock}
	raw, err := svc.GeoJSON(context.Background(), Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := string(raw)
	if !strings.Contains(body, `"FeatureCollection"`) || !strings.Contains(body, `"Point"`) {
		t.Errorf("unexpected GeoJSON: %s", body)
	}
}

// --- ReviewService ---

func TestReviewService_Add(t *testing.T) {
	mock := &mockReviewUC{
		addFn: func(_ context.Context, entityID string, rating float64, text string) (reviewuc.Review, error) {
			if entityID != "r-1" || rating != 4.0 {
				t.Errorf("args = %q/%v", entityID, rating)
			}
			return reviewuc.Review{ID: "rev-1", EntityID: entityID, Rating: rating, Text: text}, nil
		},
	}

	svc := &ReviewService{svc: mock}
	rev, err := svc.Add(context.Background(), "r-1", 4.0, "great food")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rev.ID != "rev-1" || rev.Text != "great food" {
		t.Errorf("review = %+v", rev)
	}
}

func TestReviewService_Add_InvalidRating(t *testing.T) {
	mock := &mockReviewUC{
		addFn: func(context.Context, string, float64, string) (reviewuc.Review, error) {
			return reviewuc.Review{}, ErrInvalidRange
		},
	}

	svc := &ReviewService{svc: mock}
	_, err := svc.Add(context.Background(), "r-1", 9, "")
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}

func TestReviewService_RecordView(t *testing.T) {
	mock := &mockReviewUC{
		recordViewFn: func(context.Context, string) (int64, error) { return 42, nil },
	}

	svc := &ReviewService{svc: mock}
	views, err := svc.RecordView(context.Background(), "r-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if views != 42 {
		t.Errorf("views = %d, want 42", views)
	}
}

// --- Client.Facets ---

func TestClient_Facets(t *testing.T) {
	mock := &mockFacetUC{
		aggregateFn: func(_ context.Context, opts filter.Options) (domfacet.Result, error) {
			if opts.City != "Panjim" {
				t.Errorf("City = %q, want Panjim", opts.City)
			}
			return domfacet.NewResult(
				map[string][]domfacet.Bucket{
					"cuisines": {{Value: "goan", Count: 3}},
				},
				domfacet.PriceRange{Min: 300, Max: 650},
			), nil
		},
	}

	c := &Client{facetSvc: mock}
	facets, err := c.Facets(context.Background(), Filter{City: "Panjim"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := facets.Categories["cuisines"]; len(got) != 1 || got[0].Count != 3 {
		t.Errorf("cuisines = %+v", got)
	}
	if facets.Price.Max != 650 {
		t.Errorf("Price.Max = %v, want 650", facets.Price.Max)
	}
}
