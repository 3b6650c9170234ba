package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/ncc-parade-api/internal/models"
	appErrors "github.com/noah-isme/ncc-parade-api/pkg/errors"
	"github.com/noah-isme/ncc-parade-api/pkg/export"
)

// ExportFormat selects the rendered output.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ExportResult carries rendered bytes plus HTTP metadata.
type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportService renders a parade's review summary as a downloadable file.
type ExportService struct {
	parades   *ParadeService
	summaries *SummaryService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	logger    *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(parades *ParadeService, summaries *SummaryService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		parades:   parades,
		summaries: summaries,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
	}
}

// ParadeSummary renders the rank summary plus the overall status breakdown.
func (s *ExportService) ParadeSummary(ctx context.Context, paradeID string, format ExportFormat) (*ExportResult, error) {
	parade, err := s.parades.Get(ctx, paradeID)
	if err != nil {
		return nil, err
	}

	rankSummary, err := s.summaries.RankSummary(ctx, paradeID, models.SummaryFilter{})
	if err != nil {
		return nil, err
	}
	breakdown, err := s.summaries.StatusBreakdown(ctx, paradeID, models.SummaryFilter{})
	if err != nil {
		return nil, err
	}

	dataset := buildSummaryDataset(rankSummary, breakdown)
	date := parade.ParadeDate.Format("2006-01-02")

	switch format {
	case ExportCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "csv render failed")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("parade-summary-%s.csv", date),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case ExportPDF:
		title := fmt.Sprintf("Parade Summary %s (%s)", date, parade.Session)
		content, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "pdf render failed")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("parade-summary-%s.pdf", date),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func buildSummaryDataset(rankSummary models.RankSummary, breakdown *models.StatusBreakdown) export.Dataset {
	dataset := export.Dataset{Headers: []string{"Section", "Key", "Total", "Present", "Percent"}}

	for _, rank := range models.RankOrder {
		count, ok := rankSummary[rank]
		if !ok {
			continue
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Section": "Rank",
			"Key":     rank,
			"Total":   strconv.Itoa(count.Total),
			"Present": strconv.Itoa(count.Present),
			"Percent": "",
		})
	}
	// Ranks outside the canonical order still export, after the known ones.
	for rank, count := range rankSummary {
		if containsRank(models.RankOrder, rank) {
			continue
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Section": "Rank",
			"Key":     rank,
			"Total":   strconv.Itoa(count.Total),
			"Present": strconv.Itoa(count.Present),
			"Percent": "",
		})
	}

	dataset.Rows = append(dataset.Rows,
		map[string]string{
			"Section": "Status",
			"Key":     "Present",
			"Total":   strconv.Itoa(breakdown.Total),
			"Present": strconv.Itoa(breakdown.Present),
			"Percent": fmt.Sprintf("%.1f", breakdown.PresentPercent),
		},
		map[string]string{
			"Section": "Status",
			"Key":     "Absent with Permission",
			"Total":   strconv.Itoa(breakdown.Total),
			"Present": strconv.Itoa(breakdown.Permission),
			"Percent": fmt.Sprintf("%.1f", breakdown.PermissionPercent),
		},
		map[string]string{
			"Section": "Status",
			"Key":     "Absent without Permission",
			"Total":   strconv.Itoa(breakdown.Total),
			"Present": strconv.Itoa(breakdown.Absent),
			"Percent": fmt.Sprintf("%.1f", breakdown.AbsentPercent),
		},
	)

	return dataset
}

func containsRank(ranks []string, rank string) bool {
	for _, r := range ranks {
		if r == rank {
			return true
		}
	}
	return false
}
