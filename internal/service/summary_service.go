package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ncc-parade-api/internal/models"
	appErrors "github.com/noah-isme/ncc-parade-api/pkg/errors"
)

type summaryCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// SummaryService computes the review aggregations over already-persisted
// attendance. The reductions themselves are pure; the service adds loading,
// filter scoping and short-lived caching.
type SummaryService struct {
	parades    paradeRepository
	cadets     rosterReader
	attendance attendanceRepository
	cache      summaryCache
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewSummaryService constructs the summary service. cache may be nil.
func NewSummaryService(parades paradeRepository, cadets rosterReader, attendance attendanceRepository, cache summaryCache, cacheTTL time.Duration, logger *zap.Logger) *SummaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &SummaryService{
		parades:    parades,
		cadets:     cadets,
		attendance: attendance,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// BuildRankSummary reduces (roster, attendance) into per-rank totals and
// present counts. Keys match rank values exactly as stored; display ordering
// is the caller's concern.
func BuildRankSummary(roster []models.Cadet, records []models.AttendanceRecord) models.RankSummary {
	summary := make(models.RankSummary)
	byID := make(map[string]*models.Cadet, len(roster))

	for i := range roster {
		cadet := &roster[i]
		byID[cadet.ID] = cadet
		count := summary[cadet.Rank]
		count.Total++
		summary[cadet.Rank] = count
	}

	for _, record := range records {
		if record.Status != models.AttendancePresent {
			continue
		}
		cadet, ok := byID[record.CadetID]
		if !ok {
			continue
		}
		count := summary[cadet.Rank]
		count.Present++
		summary[cadet.Rank] = count
	}

	return summary
}

// BuildStatusBreakdown partitions the scoped roster into exactly one of the
// three classifications. A cadet without a record counts as absent without
// permission, matching the reconciler default. Percentages are 0.0 for an
// empty scope.
func BuildStatusBreakdown(roster []models.Cadet, records []models.AttendanceRecord) models.StatusBreakdown {
	statusByCadet := make(map[string]models.AttendanceStatus, len(records))
	for _, record := range records {
		statusByCadet[record.CadetID] = record.Status
	}

	breakdown := models.StatusBreakdown{Total: len(roster)}
	for _, cadet := range roster {
		switch statusByCadet[cadet.ID] {
		case models.AttendancePresent:
			breakdown.Present++
		case models.AttendanceWithPermission:
			breakdown.Permission++
		default:
			breakdown.Absent++
		}
	}

	breakdown.PresentPercent = percent(breakdown.Present, breakdown.Total)
	breakdown.PermissionPercent = percent(breakdown.Permission, breakdown.Total)
	breakdown.AbsentPercent = percent(breakdown.Absent, breakdown.Total)
	return breakdown
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// DetectPendingSlots returns every (category, division) pair with at least
// one active roster cadet and no attendance record among its members. A
// single recorded cadet satisfies the whole slot: the check is group-level by
// design, not per-cadet.
func DetectPendingSlots(roster []models.Cadet, records []models.AttendanceRecord) []models.PendingSlot {
	recorded := make(map[string]struct{}, len(records))
	for _, record := range records {
		recorded[record.CadetID] = struct{}{}
	}

	type slotKey struct{ category, division string }
	seen := make(map[slotKey]bool)
	var order []slotKey

	for _, cadet := range roster {
		key := slotKey{cadet.Category, cadet.Division}
		if _, ok := seen[key]; !ok {
			seen[key] = false
			order = append(order, key)
		}
		if _, ok := recorded[cadet.ID]; ok {
			seen[key] = true
		}
	}

	var pending []models.PendingSlot
	for _, key := range order {
		if !seen[key] {
			pending = append(pending, models.PendingSlot{Category: key.category, Division: key.division})
		}
	}
	return pending
}

func (s *SummaryService) load(ctx context.Context, paradeID string, filter models.SummaryFilter) (*models.Parade, []models.Cadet, []models.AttendanceRecord, error) {
	parade, err := s.parades.FindByID(ctx, paradeID)
	if err != nil {
		return nil, nil, nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to fetch parade")
	}

	roster, err := s.cadets.ListActive(ctx, models.CadetFilter{
		Categories: parade.Categories,
		Category:   filter.Category,
		Division:   filter.Division,
	})
	if err != nil {
		return nil, nil, nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load roster")
	}

	records, err := s.attendance.ListByParade(ctx, paradeID, models.AttendanceFilter{
		Category: filter.Category,
		Division: filter.Division,
		Status:   filter.Status,
	})
	if err != nil {
		return nil, nil, nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load attendance")
	}

	return parade, roster, records, nil
}

// summaryCacheKey scopes cache entries by every filter dimension the load
// honors, so differently filtered requests never share an entry.
func summaryCacheKey(paradeID, kind string, filter models.SummaryFilter) string {
	status := ""
	if filter.Status != nil {
		status = string(*filter.Status)
	}
	return fmt.Sprintf("summary:%s:%s:%s:%s:%s", paradeID, kind, filter.Category, filter.Division, status)
}

// RankSummary returns per-rank totals for the parade scope.
func (s *SummaryService) RankSummary(ctx context.Context, paradeID string, filter models.SummaryFilter) (models.RankSummary, error) {
	key := summaryCacheKey(paradeID, "ranks", filter)
	var cached models.RankSummary
	if s.cache != nil && s.cache.Get(ctx, key, &cached) == nil {
		return cached, nil
	}

	_, roster, records, err := s.load(ctx, paradeID, filter)
	if err != nil {
		return nil, err
	}

	summary := BuildRankSummary(roster, records)
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, summary, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache rank summary", zap.Error(err))
		}
	}
	return summary, nil
}

// StatusBreakdown returns classification counts and percentages for the
// parade scope.
func (s *SummaryService) StatusBreakdown(ctx context.Context, paradeID string, filter models.SummaryFilter) (*models.StatusBreakdown, error) {
	// The breakdown partitions by status itself; a status scope is degenerate
	// and is dropped before loading and keying.
	scope := models.SummaryFilter{Category: filter.Category, Division: filter.Division}
	key := summaryCacheKey(paradeID, "status", scope)
	var cached models.StatusBreakdown
	if s.cache != nil && s.cache.Get(ctx, key, &cached) == nil {
		return &cached, nil
	}

	_, roster, records, err := s.load(ctx, paradeID, scope)
	if err != nil {
		return nil, err
	}

	breakdown := BuildStatusBreakdown(roster, records)
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, breakdown, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache status breakdown", zap.Error(err))
		}
	}
	return &breakdown, nil
}

// PendingSlots returns the (category, division) groupings still lacking any
// attendance record for the parade.
func (s *SummaryService) PendingSlots(ctx context.Context, paradeID string) ([]models.PendingSlot, error) {
	_, roster, records, err := s.load(ctx, paradeID, models.SummaryFilter{})
	if err != nil {
		return nil, err
	}
	return DetectPendingSlots(roster, records), nil
}

// InvalidateParade drops cached summaries after an attendance write.
func (s *SummaryService) InvalidateParade(ctx context.Context, paradeID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, fmt.Sprintf("summary:%s:*", paradeID)); err != nil {
		s.logger.Warn("failed to invalidate summary cache", zap.String("parade_id", paradeID), zap.Error(err))
	}
}
