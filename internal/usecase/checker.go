package usecase

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/myang/missa-kala/internal/domain"
	"github.com/myang/missa-kala/internal/infrastructure/fetch"
)

// latestReportKey is the cache key under which the most recent check
// report is stored.
const latestReportKey = "fishcheck:latest"

// CheckServiceConfig holds configuration for the check service
type CheckServiceConfig struct {
	Restaurants []domain.Restaurant
	Keywords    domain.KeywordSet
	WindowDays  int
	CacheTTL    time.Duration
}

// CheckService runs the fish check over all configured restaurants:
// fetch each menu page, hand the text to the detector, escalate to a
// rendered fetch when a dynamic-looking page yields nothing, and cache
// the final report.
type CheckService struct {
	cache       domain.CacheRepository
	static      domain.StaticFetcher
	rendered    domain.RenderedFetcher
	detector    *Detector
	restaurants []domain.Restaurant
	keywords    domain.KeywordSet
	cacheTTL    time.Duration
	now         func() time.Time
}

// NewCheckService creates a check service with its dependencies.
// rendered may be nil, in which case no escalation happens.
func NewCheckService(
	cache domain.CacheRepository,
	static domain.StaticFetcher,
	rendered domain.RenderedFetcher,
	config CheckServiceConfig,
) *CheckService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	return &CheckService{
		cache:       cache,
		static:      static,
		rendered:    rendered,
		detector:    NewDetector(DefaultDayPatterns(), config.WindowDays),
		restaurants: config.Restaurants,
		keywords:    config.Keywords,
		cacheTTL:    cacheTTL,
		now:         time.Now,
	}
}

// Latest returns the cached report from the most recent run, or
// domain.ErrCacheMiss when no run has completed within the TTL.
func (s *CheckService) Latest(ctx context.Context) (*domain.CheckReport, error) {
	value, err := s.cache.Get(ctx, latestReportKey)
	if err != nil {
		return nil, err
	}
	report, ok := value.(*domain.CheckReport)
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return report, nil
}

// Run checks every configured restaurant concurrently against a single
// "today" taken at the start of the run, caches the report and returns
// it. A failing site only marks its own record; the batch always
// completes.
func (s *CheckService) Run(ctx context.Context) (*domain.CheckReport, error) {
	if len(s.restaurants) == 0 {
		return nil, domain.ErrNoRestaurants
	}

	day := domain.NewDayIdentity(s.now())
	results := make([]domain.RestaurantResult, len(s.restaurants))

	var wg sync.WaitGroup
	for i, r := range s.restaurants {
		wg.Add(1)
		go func(i int, r domain.Restaurant) {
			defer wg.Done()
			results[i] = s.checkOne(ctx, r, day)
		}(i, r)
	}
	wg.Wait()

	// Fish-positive results first, otherwise configured order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].HasFish && !results[j].HasFish
	})

	report := &domain.CheckReport{Results: results, LastChecked: s.now()}
	if err := s.cache.Set(ctx, latestReportKey, report, s.cacheTTL); err != nil {
		log.Printf("[CHECK] failed to cache report: %v", err)
	}
	return report, nil
}

// checkOne runs the full pipeline for a single restaurant.
func (s *CheckService) checkOne(ctx context.Context, r domain.Restaurant, day domain.DayIdentity) domain.RestaurantResult {
	result := domain.RestaurantResult{Name: r.Name, URL: r.URL}

	html, err := s.static.FetchHTML(ctx, r.URL)
	if err != nil {
		log.Printf("[CHECK] %s: static fetch failed: %v", r.Name, err)
		result.Error = err.Error()
		return result
	}

	detection := s.detector.Detect(fetch.ExtractText(html), day, s.keywords)

	// A dynamic-looking page that yielded nothing may only carry its
	// menu after client-side scripts run.
	if len(detection.FishItems) == 0 && s.rendered != nil && fetch.LooksDynamic(html) {
		if rendered := s.detectRendered(ctx, r, day); rendered != nil {
			detection = *rendered
		}
	}

	result.FishItems = detection.FishItems
	result.HasFish = len(detection.FishItems) > 0
	result.Confidence = detection.Confidence
	return result
}

func (s *CheckService) detectRendered(ctx context.Context, r domain.Restaurant, day domain.DayIdentity) *domain.KeywordMatchResult {
	log.Printf("[CHECK] %s: static pass empty on dynamic-looking page, rendering", r.Name)
	text, err := s.rendered.FetchRenderedText(ctx, r.URL)
	if err != nil {
		log.Printf("[CHECK] %s: rendered fetch failed, keeping static result: %v", r.Name, err)
		return nil
	}
	detection := s.detector.Detect(text, day, s.keywords)
	return &detection
}
