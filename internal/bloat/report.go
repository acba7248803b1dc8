package bloat

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"
)

const (
	csvHeaderPath       = "path"
	csvHeaderIdentifier = "identifier"
	csvHeaderCategory   = "category"
	csvHeaderSizeBytes  = "size_bytes"

	textReportHeaderTemplate      = "Repository: %s (scope: %s)\n"
	textObjectRowTemplate         = "  %s  %s  %s  %s\n"
	textSummaryObjectsTemplate    = "Objects: %d resolved, %d at or above threshold, total %s\n"
	textSummaryHistoryTemplate    = "History store: %s\n"
	textSummaryWorkingTemplate    = "Working tree: %s\n"
	textSummaryDegradedTemplate   = "Degraded: %d failed batches, %d unresolved identifiers\n"
	textCategoryHeaderConstant    = "Category totals:\n"
	textCategoryRowTemplate       = "  %-12s %s\n"
	textRecommendationsHeader     = "Recommendations:\n"
	textRecommendationRowTemplate = "  - %s\n"
	textUnknownMeasurementValue   = "unknown"
	textMissingPathPlaceholder    = "(no path)"
)

// renderReport writes one analysis report in the requested format.
func renderReport(outputWriter io.Writer, format OutputFormat, report AnalysisReport) error {
	if format == OutputFormatCSV {
		return renderCSVReport(outputWriter, report)
	}
	return renderTextReport(outputWriter, report)
}

func renderCSVReport(outputWriter io.Writer, report AnalysisReport) error {
	csvWriter := csv.NewWriter(outputWriter)

	header := []string{csvHeaderPath, csvHeaderIdentifier, csvHeaderCategory, csvHeaderSizeBytes}
	if writeError := csvWriter.Write(header); writeError != nil {
		return writeError
	}

	for _, sizedObject := range report.InventorySubset {
		record := []string{
			sizedObject.LogicalPath,
			sizedObject.Identifier,
			string(sizedObject.Category),
			strconv.FormatUint(sizedObject.SizeBytes, 10),
		}
		if writeError := csvWriter.Write(record); writeError != nil {
			return writeError
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

func renderTextReport(outputWriter io.Writer, report AnalysisReport) error {
	if _, writeError := fmt.Fprintf(outputWriter, textReportHeaderTemplate, report.RepositoryPath, report.Scope); writeError != nil {
		return writeError
	}

	for _, sizedObject := range report.InventorySubset {
		logicalPath := sizedObject.LogicalPath
		if len(logicalPath) == 0 {
			logicalPath = textMissingPathPlaceholder
		}
		if _, writeError := fmt.Fprintf(outputWriter, textObjectRowTemplate,
			humanize.Bytes(sizedObject.SizeBytes), sizedObject.Category, sizedObject.Identifier, logicalPath); writeError != nil {
			return writeError
		}
	}

	if _, writeError := fmt.Fprintf(outputWriter, textSummaryObjectsTemplate,
		report.Summary.ObjectCount, report.Summary.FilteredCount, humanize.Bytes(report.Summary.TotalObjectSizeBytes)); writeError != nil {
		return writeError
	}
	if _, writeError := fmt.Fprintf(outputWriter, textSummaryHistoryTemplate, describeMeasurement(report.Summary.HistoryStore)); writeError != nil {
		return writeError
	}
	if _, writeError := fmt.Fprintf(outputWriter, textSummaryWorkingTemplate, describeMeasurement(report.Summary.WorkingTree)); writeError != nil {
		return writeError
	}
	if report.Summary.FailedBatchCount > 0 || report.Summary.UnresolvedIdentifierCount > 0 {
		if _, writeError := fmt.Fprintf(outputWriter, textSummaryDegradedTemplate,
			report.Summary.FailedBatchCount, report.Summary.UnresolvedIdentifierCount); writeError != nil {
			return writeError
		}
	}

	if writeError := renderCategoryTotals(outputWriter, report.CategoryTotals); writeError != nil {
		return writeError
	}

	if _, writeError := fmt.Fprint(outputWriter, textRecommendationsHeader); writeError != nil {
		return writeError
	}
	for _, recommendation := range report.Recommendations {
		if _, writeError := fmt.Fprintf(outputWriter, textRecommendationRowTemplate, recommendation); writeError != nil {
			return writeError
		}
	}

	return nil
}

// renderCategoryTotals prints non-empty categories largest first, ties broken
// by category name for deterministic output.
func renderCategoryTotals(outputWriter io.Writer, categoryTotals map[Category]uint64) error {
	if len(categoryTotals) == 0 {
		return nil
	}

	categories := make([]Category, 0, len(categoryTotals))
	for category := range categoryTotals {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(firstIndex int, secondIndex int) bool {
		firstTotal := categoryTotals[categories[firstIndex]]
		secondTotal := categoryTotals[categories[secondIndex]]
		if firstTotal != secondTotal {
			return firstTotal > secondTotal
		}
		return categories[firstIndex] < categories[secondIndex]
	})

	if _, writeError := fmt.Fprint(outputWriter, textCategoryHeaderConstant); writeError != nil {
		return writeError
	}
	for _, category := range categories {
		if _, writeError := fmt.Fprintf(outputWriter, textCategoryRowTemplate, category, humanize.Bytes(categoryTotals[category])); writeError != nil {
			return writeError
		}
	}
	return nil
}

func describeMeasurement(measurement DirectoryMeasurement) string {
	if !measurement.Known {
		return textUnknownMeasurementValue
	}
	return humanize.Bytes(measurement.Bytes)
}
