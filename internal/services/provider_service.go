package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"lokalBack/internal/geo"
	"lokalBack/internal/models"
	"lokalBack/internal/repositories"
	"lokalBack/utils"
)

const (
	maxSearchRadiusKm = 100.0
	defaultSearchSize = 20
	maxSearchSize     = 100
	profileReviews    = 10
)

var errNoLocator = errors.New("geo locator not configured")

type ProviderService struct {
	ProviderRepo     *repositories.ProviderRepository
	AvailabilityRepo *repositories.AvailabilityRepository
	ReviewRepo       *repositories.ReviewRepository
	BookingRepo      *repositories.BookingRepository
	Locator          *geo.ProviderLocator
	Uploader         *utils.Uploader
}

func (s *ProviderService) GetProvider(ctx context.Context, id int) (models.Provider, error) {
	return s.ProviderRepo.GetByID(ctx, id)
}

func (s *ProviderService) GetProviderByUserID(ctx context.Context, userID int) (models.Provider, error) {
	return s.ProviderRepo.GetByUserID(ctx, userID)
}

// GetProfilePage assembles the public profile: the provider row, the weekly
// schedule and the latest reviews.
func (s *ProviderService) GetProfilePage(ctx context.Context, id int) (models.ProviderProfile, error) {
	provider, err := s.ProviderRepo.GetByID(ctx, id)
	if err != nil {
		return models.ProviderProfile{}, err
	}
	availability, err := s.AvailabilityRepo.ListForProvider(ctx, id)
	if err != nil {
		return models.ProviderProfile{}, err
	}
	reviews, err := s.ReviewRepo.ListByProvider(ctx, id, profileReviews, 0)
	if err != nil {
		return models.ProviderProfile{}, err
	}
	return models.ProviderProfile{
		Provider:     provider,
		Availability: availability,
		Reviews:      reviews,
	}, nil
}

// UpdateProfile patches the provider's own profile and keeps the geo index in
// step when coordinates change.
func (s *ProviderService) UpdateProfile(ctx context.Context, userID int, req models.ProviderUpdateRequest) (models.Provider, error) {
	provider, err := s.ProviderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.Provider{}, err
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return models.Provider{}, models.ErrInvalidRange
	}

	updated, err := s.ProviderRepo.UpdateProfile(ctx, provider.ID, req)
	if err != nil {
		return models.Provider{}, err
	}
	s.syncLocator(ctx, updated)
	return updated, nil
}

func (s *ProviderService) SetVerified(ctx context.Context, providerID int, verified bool) (models.Provider, error) {
	provider, err := s.ProviderRepo.SetVerified(ctx, providerID, verified)
	if err != nil {
		return models.Provider{}, err
	}
	s.syncLocator(ctx, provider)
	return provider, nil
}

// syncLocator mirrors the provider into the Redis index. Only verified,
// active, located providers belong there; index errors are logged, never
// surfaced, because search falls back to SQL anyway.
func (s *ProviderService) syncLocator(ctx context.Context, p models.Provider) {
	if s.Locator == nil {
		return
	}
	if p.IsVerified && p.IsActive && p.Latitude != nil && p.Longitude != nil {
		if err := s.Locator.Sync(ctx, p.ID, *p.Longitude, *p.Latitude); err != nil {
			log.Printf("geo index sync for provider %d: %v", p.ID, err)
		}
		return
	}
	if err := s.Locator.Remove(ctx, p.ID); err != nil {
		log.Printf("geo index remove for provider %d: %v", p.ID, err)
	}
}

// UploadDocument stores the provider's verification document and records its
// URL on the profile for admin review.
func (s *ProviderService) UploadDocument(ctx context.Context, userID int, file []byte, fileName, contentType string) (models.Provider, error) {
	provider, err := s.ProviderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.Provider{}, err
	}
	url, err := s.Uploader.UploadFile(file, fileName, "provider-documents", contentType)
	if err != nil {
		return models.Provider{}, err
	}
	if err := s.ProviderRepo.SetDocumentURL(ctx, provider.ID, url); err != nil {
		return models.Provider{}, err
	}
	return s.ProviderRepo.GetByID(ctx, provider.ID)
}

func (s *ProviderService) ListPending(ctx context.Context) ([]models.Provider, error) {
	return s.ProviderRepo.ListPending(ctx)
}

func validateSearch(req *models.ProviderSearchRequest) error {
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		return models.ErrInvalidRange
	}
	if req.RadiusKm <= 0 || req.RadiusKm > maxSearchRadiusKm {
		return models.ErrInvalidRange
	}
	if req.MinRating != nil && (*req.MinRating < 0 || *req.MinRating > 5) {
		return models.ErrInvalidRange
	}
	if req.Limit <= 0 {
		req.Limit = defaultSearchSize
	}
	if req.Limit > maxSearchSize {
		req.Limit = maxSearchSize
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	return nil
}

// Search finds verified providers within the radius, nearest first. The Redis
// GEO index supplies candidates when available; otherwise every located
// candidate row is ranked by haversine distance in process. Pagination is
// applied after filtering and ranking so page boundaries stay stable.
func (s *ProviderService) Search(ctx context.Context, req models.ProviderSearchRequest) ([]models.ProviderSearchResult, error) {
	if err := validateSearch(&req); err != nil {
		return nil, err
	}

	results, err := s.searchViaIndex(ctx, req)
	if err != nil {
		// Running without redis is a supported mode; only log real failures.
		if !errors.Is(err, errNoLocator) {
			log.Printf("geo index search unavailable, falling back to sql: %v", err)
		}
		results, err = s.searchViaScan(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	sortSearchResults(results)
	return paginateSearchResults(results, req.Limit, req.Offset), nil
}

func (s *ProviderService) searchViaIndex(ctx context.Context, req models.ProviderSearchRequest) ([]models.ProviderSearchResult, error) {
	if s.Locator == nil {
		return nil, errNoLocator
	}
	hits, err := s.Locator.Nearby(ctx, req.Longitude, req.Latitude, req.RadiusKm)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return []models.ProviderSearchResult{}, nil
	}

	ids := make([]int, len(hits))
	distByID := make(map[int]float64, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
		distByID[h.ID] = h.DistKm
	}

	candidates, err := s.ProviderRepo.GetCandidatesByIDs(ctx, ids, req)
	if err != nil {
		return nil, err
	}

	results := make([]models.ProviderSearchResult, 0, len(candidates))
	for _, p := range candidates {
		results = append(results, models.ProviderSearchResult{
			Provider:   p,
			DistanceKm: distByID[p.ID],
		})
	}
	return results, nil
}

func (s *ProviderService) searchViaScan(ctx context.Context, req models.ProviderSearchRequest) ([]models.ProviderSearchResult, error) {
	candidates, err := s.ProviderRepo.SearchCandidates(ctx, req)
	if err != nil {
		return nil, err
	}

	results := []models.ProviderSearchResult{}
	for _, p := range candidates {
		dist := repositories.HaversineDistanceKm(req.Latitude, req.Longitude, *p.Latitude, *p.Longitude)
		if dist > req.RadiusKm {
			continue
		}
		results = append(results, models.ProviderSearchResult{
			Provider:   p,
			DistanceKm: dist,
		})
	}
	return results, nil
}

// sortSearchResults orders by distance ascending with provider id as the
// deterministic tie-breaker.
func sortSearchResults(results []models.ProviderSearchResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].DistanceKm != results[j].DistanceKm {
			return results[i].DistanceKm < results[j].DistanceKm
		}
		return results[i].ID < results[j].ID
	})
}

func paginateSearchResults(results []models.ProviderSearchResult, limit, offset int) []models.ProviderSearchResult {
	if offset >= len(results) {
		return []models.ProviderSearchResult{}
	}
	end := offset + limit
	if end > len(results) {
		end = len(results)
	}
	return results[offset:end]
}

// Dashboard aggregates the provider's booking counters, earnings, rating and
// the next confirmed visits.
func (s *ProviderService) Dashboard(ctx context.Context, userID int) (models.ProviderDashboard, error) {
	provider, err := s.ProviderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return models.ProviderDashboard{}, err
	}

	dashboard, err := s.ProviderRepo.Dashboard(ctx, provider.ID)
	if err != nil {
		return models.ProviderDashboard{}, err
	}

	upcoming, err := s.BookingRepo.ListForProvider(ctx, provider.ID, "confirmed")
	if err != nil {
		return models.ProviderDashboard{}, err
	}
	now := time.Now()
	dashboard.Upcoming = []models.Booking{}
	for _, b := range upcoming {
		if b.ScheduledFor.After(now) {
			dashboard.Upcoming = append(dashboard.Upcoming, b)
		}
	}

	dashboard.RecentReviews, err = s.ReviewRepo.ListByProvider(ctx, provider.ID, 5, 0)
	if err != nil {
		return models.ProviderDashboard{}, err
	}
	return dashboard, nil
}

func (s *ProviderService) AdminDashboard(ctx context.Context) (models.AdminDashboard, error) {
	return s.ProviderRepo.AdminDashboard(ctx)
}
