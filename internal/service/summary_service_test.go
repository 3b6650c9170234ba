package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/ncc-parade-api/internal/models"
)

func summaryRoster() []models.Cadet {
	return []models.Cadet{
		{ID: "c1", Rank: "SUO", Category: "A", Division: "SD", IsActive: true},
		{ID: "c2", Rank: "SGT", Category: "A", Division: "SD", IsActive: true},
		{ID: "c3", Rank: "SGT", Category: "B", Division: "SW", IsActive: true},
		{ID: "c4", Rank: "CDT", Category: "B", Division: "SW", IsActive: true},
	}
}

func TestBuildRankSummary(t *testing.T) {
	records := []models.AttendanceRecord{
		{CadetID: "c1", Status: models.AttendancePresent},
		{CadetID: "c2", Status: models.AttendanceWithPermission},
		{CadetID: "c3", Status: models.AttendancePresent},
	}

	summary := BuildRankSummary(summaryRoster(), records)

	assert.Equal(t, models.RankCount{Total: 1, Present: 1}, summary["SUO"])
	assert.Equal(t, models.RankCount{Total: 2, Present: 1}, summary["SGT"])
	assert.Equal(t, models.RankCount{Total: 1, Present: 0}, summary["CDT"])
}

func TestBuildRankSummaryIgnoresRecordsOutsideRoster(t *testing.T) {
	records := []models.AttendanceRecord{
		{CadetID: "stranger", Status: models.AttendancePresent},
	}
	summary := BuildRankSummary(summaryRoster(), records)
	assert.Equal(t, models.RankCount{Total: 1, Present: 0}, summary["SUO"])
}

func TestBuildStatusBreakdownUnrecordedCountsAbsent(t *testing.T) {
	records := []models.AttendanceRecord{
		{CadetID: "c1", Status: models.AttendancePresent},
		{CadetID: "c2", Status: models.AttendanceWithPermission},
		{CadetID: "c3", Status: models.AttendancePresent},
		// c4 has no record and must fall into absent without permission.
	}

	breakdown := BuildStatusBreakdown(summaryRoster(), records)

	assert.Equal(t, 4, breakdown.Total)
	assert.Equal(t, 2, breakdown.Present)
	assert.Equal(t, 1, breakdown.Permission)
	assert.Equal(t, 1, breakdown.Absent)
	assert.InDelta(t, 50.0, breakdown.PresentPercent, 0.01)
	assert.InDelta(t, 25.0, breakdown.PermissionPercent, 0.01)
	assert.InDelta(t, 25.0, breakdown.AbsentPercent, 0.01)
}

func TestBuildStatusBreakdownRoundsToOneDecimal(t *testing.T) {
	roster := []models.Cadet{
		{ID: "c1", Rank: "CDT"},
		{ID: "c2", Rank: "CDT"},
		{ID: "c3", Rank: "CDT"},
	}
	records := []models.AttendanceRecord{{CadetID: "c1", Status: models.AttendancePresent}}

	breakdown := BuildStatusBreakdown(roster, records)
	assert.InDelta(t, 33.3, breakdown.PresentPercent, 0.001)
	assert.InDelta(t, 66.7, breakdown.AbsentPercent, 0.001)
}

func TestBuildStatusBreakdownEmptyScope(t *testing.T) {
	breakdown := BuildStatusBreakdown(nil, nil)
	assert.Equal(t, 0, breakdown.Total)
	assert.Equal(t, 0.0, breakdown.PresentPercent)
	assert.Equal(t, 0.0, breakdown.PermissionPercent)
	assert.Equal(t, 0.0, breakdown.AbsentPercent)
}

func TestDetectPendingSlots(t *testing.T) {
	records := []models.AttendanceRecord{
		{CadetID: "c1", Status: models.AttendancePresent},
	}

	pending := DetectPendingSlots(summaryRoster(), records)

	// Group A/SD has a record, group B/SW has none.
	require.Len(t, pending, 1)
	assert.Equal(t, models.PendingSlot{Category: "B", Division: "SW"}, pending[0])
}

func TestDetectPendingSlotsGroupLevelCheck(t *testing.T) {
	// One recorded cadet satisfies the whole group even though its second
	// member is unrecorded.
	records := []models.AttendanceRecord{
		{CadetID: "c2", Status: models.AttendanceWithoutPermission},
		{CadetID: "c3", Status: models.AttendancePresent},
	}

	pending := DetectPendingSlots(summaryRoster(), records)
	assert.Empty(t, pending)
}

func TestDetectPendingSlotsNoRecords(t *testing.T) {
	pending := DetectPendingSlots(summaryRoster(), nil)
	require.Len(t, pending, 2)
	assert.Equal(t, models.PendingSlot{Category: "A", Division: "SD"}, pending[0])
	assert.Equal(t, models.PendingSlot{Category: "B", Division: "SW"}, pending[1])
}

func TestDetectPendingSlotsEmptyRoster(t *testing.T) {
	assert.Empty(t, DetectPendingSlots(nil, nil))
}

type stubSummaryStores struct {
	parade  *models.Parade
	roster  []models.Cadet
	records []models.AttendanceRecord
}

func (s *stubSummaryStores) Create(ctx context.Context, parade *models.Parade) (*models.Parade, error) {
	return parade, nil
}

func (s *stubSummaryStores) FindByID(ctx context.Context, id string) (*models.Parade, error) {
	return s.parade, nil
}

func (s *stubSummaryStores) FindOpen(ctx context.Context) (*models.Parade, error) {
	return s.parade, nil
}

func (s *stubSummaryStores) LastCompletedTypeMap(ctx context.Context) (models.ParadeTypeMap, error) {
	return nil, nil
}

func (s *stubSummaryStores) UpdateRemarks(ctx context.Context, id, remarks string) error {
	return nil
}

func (s *stubSummaryStores) Close(ctx context.Context, actorID, paradeID string) error {
	return nil
}

func (s *stubSummaryStores) ListActive(ctx context.Context, filter models.CadetFilter) ([]models.Cadet, error) {
	return s.roster, nil
}

func (s *stubSummaryStores) WriteBatch(ctx context.Context, actorID, paradeID string, records []models.AttendanceInput) (*models.BatchResult, error) {
	return &models.BatchResult{}, nil
}

func (s *stubSummaryStores) ListByParade(ctx context.Context, paradeID string, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	if filter.Status == nil {
		return s.records, nil
	}
	var scoped []models.AttendanceRecord
	for _, record := range s.records {
		if record.Status == *filter.Status {
			scoped = append(scoped, record)
		}
	}
	return scoped, nil
}

type mapSummaryCache struct {
	entries map[string][]byte
}

func newMapSummaryCache() *mapSummaryCache {
	return &mapSummaryCache{entries: make(map[string][]byte)}
}

func (m *mapSummaryCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, ok := m.entries[key]
	if !ok {
		return errors.New("cache miss")
	}
	return json.Unmarshal(data, dest)
}

func (m *mapSummaryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = data
	return nil
}

func (m *mapSummaryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

func TestSummaryServicePendingSlots(t *testing.T) {
	stores := &stubSummaryStores{
		parade: testParade(),
		roster: summaryRoster(),
		records: []models.AttendanceRecord{
			{CadetID: "c1", Status: models.AttendancePresent},
		},
	}
	svc := NewSummaryService(stores, stores, stores, nil, 0, zap.NewNop())

	pending, err := svc.PendingSlots(context.Background(), "parade-1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "B", pending[0].Category)
}

func TestSummaryServiceRankSummaryWithoutCache(t *testing.T) {
	stores := &stubSummaryStores{
		parade: testParade(),
		roster: summaryRoster(),
		records: []models.AttendanceRecord{
			{CadetID: "c1", Status: models.AttendancePresent},
		},
	}
	svc := NewSummaryService(stores, stores, stores, nil, 0, zap.NewNop())

	summary, err := svc.RankSummary(context.Background(), "parade-1", models.SummaryFilter{})
	require.NoError(t, err)
	assert.Equal(t, models.RankCount{Total: 1, Present: 1}, summary["SUO"])
}

func TestSummaryServiceRankSummaryCacheScopedByStatus(t *testing.T) {
	stores := &stubSummaryStores{
		parade: testParade(),
		roster: summaryRoster(),
		records: []models.AttendanceRecord{
			{CadetID: "c1", Status: models.AttendancePresent},
		},
	}
	cache := newMapSummaryCache()
	svc := NewSummaryService(stores, stores, stores, cache, time.Minute, zap.NewNop())

	// A status-scoped request caches its own entry and must not shadow the
	// unfiltered one.
	permission := models.AttendanceWithPermission
	scoped, err := svc.RankSummary(context.Background(), "parade-1", models.SummaryFilter{Status: &permission})
	require.NoError(t, err)
	assert.Equal(t, models.RankCount{Total: 1, Present: 0}, scoped["SUO"])

	unfiltered, err := svc.RankSummary(context.Background(), "parade-1", models.SummaryFilter{})
	require.NoError(t, err)
	assert.Equal(t, models.RankCount{Total: 1, Present: 1}, unfiltered["SUO"])

	// The unfiltered result is now cached under its own key; emptying the
	// store must not change what it serves.
	stores.records = nil
	cached, err := svc.RankSummary(context.Background(), "parade-1", models.SummaryFilter{})
	require.NoError(t, err)
	assert.Equal(t, models.RankCount{Total: 1, Present: 1}, cached["SUO"])
}

func TestSummaryServiceInvalidateParadeDropsEntries(t *testing.T) {
	stores := &stubSummaryStores{
		parade: testParade(),
		roster: summaryRoster(),
		records: []models.AttendanceRecord{
			{CadetID: "c1", Status: models.AttendancePresent},
		},
	}
	cache := newMapSummaryCache()
	svc := NewSummaryService(stores, stores, stores, cache, time.Minute, zap.NewNop())

	_, err := svc.RankSummary(context.Background(), "parade-1", models.SummaryFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, cache.entries)

	svc.InvalidateParade(context.Background(), "parade-1")
	assert.Empty(t, cache.entries)
}
