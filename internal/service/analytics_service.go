package service

import (
	"context"
	"encoding/hex"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/suratdiamond/storefront/internal/config"
	"github.com/suratdiamond/storefront/internal/domain"
	"github.com/suratdiamond/storefront/internal/repository"
	"github.com/suratdiamond/storefront/pkg/errors"
)

const (
	topLocations    = 5
	unknownLocation = "Unknown"
)

type analyticsService struct {
	events repository.AnalyticsRepository
	key    []byte
	logger *zap.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(events repository.AnalyticsRepository, cfg config.AnalyticsConfig, logger *zap.Logger) *analyticsService {
	// blake2b keys are limited to 64 bytes, so the salt is condensed first
	key := blake2b.Sum256([]byte(cfg.HashSalt))
	return &analyticsService{
		events: events,
		key:    key[:],
		logger: logger,
	}
}

// Track records one storefront event. The client IP is stored only as a keyed hash.
func (s *analyticsService) Track(ctx context.Context, req AnalyticsEventRequest, userID *string, clientIP string) (*domain.AnalyticsEvent, error) {
	if strings.TrimSpace(req.PagePath) == "" {
		return nil, &errors.ValidationError{Field: "page_path", Message: "page_path is required"}
	}
	if strings.TrimSpace(req.SessionID) == "" {
		return nil, &errors.ValidationError{Field: "session_id", Message: "session_id is required"}
	}

	eventType := req.EventType
	if eventType == "" {
		eventType = domain.EventTypePageView
	}

	event := &domain.AnalyticsEvent{
		EventType:   eventType,
		PagePath:    req.PagePath,
		Metadata:    req.Metadata,
		UserID:      userID,
		SessionID:   req.SessionID,
		VisitorHash: s.visitorHash(clientIP),
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// Summary aggregates all events for the back-office dashboard
func (s *analyticsService) Summary(ctx context.Context) (*domain.AnalyticsSummary, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}

	sessions := make(map[string]struct{})
	countries := make(map[string]int)
	cities := make(map[string]int)
	for _, e := range events {
		sessions[e.SessionID] = struct{}{}

		country, city := unknownLocation, unknownLocation
		if loc := e.Metadata.Location; loc != nil {
			if loc.Country != "" {
				country = loc.Country
			}
			if loc.City != "" {
				city = loc.City
			}
		}
		countries[country]++
		cities[city]++
	}

	return &domain.AnalyticsSummary{
		TotalViews:     len(events),
		UniqueVisitors: len(sessions),
		TopCountries:   topCounts(countries, topLocations),
		TopCities:      topCounts(cities, topLocations),
	}, nil
}

func (s *analyticsService) visitorHash(ip string) string {
	if ip == "" {
		return ""
	}
	h, err := blake2b.New256(s.key)
	if err != nil {
		s.logger.Warn("Failed to create visitor hash", zap.Error(err))
		return ""
	}
	h.Write([]byte(ip))
	return hex.EncodeToString(h.Sum(nil))
}

// topCounts orders by count descending, then name, and keeps the first n
func topCounts(counts map[string]int, n int) []domain.LocationCount {
	result := make([]domain.LocationCount, 0, len(counts))
	for name, count := range counts {
		result = append(result, domain.LocationCount{Name: name, Count: count})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})

	if len(result) > n {
		result = result[:n]
	}
	return result
}
