// Package export renders stored crawl results as spreadsheets.
package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/fuzumoe/siteinsight-backend/internal/model"
)

const (
	summarySheet = "Summary"
	pagesSheet   = "Pages"
	signalsSheet = "Signals"
)

// ContentType is the MIME type of the workbook written by WriteWorkbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteWorkbook writes a three-sheet workbook for res: a summary, the crawled
// pages in crawl order and the enterprise signals.
func WriteWorkbook(w io.Writer, res *model.CrawlResultDTO) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	summary := [][]any{
		{"Company", res.CompanyName},
		{"Seed", res.Seed},
		{"Base URL", res.BaseURL},
		{"Status", res.Status},
		{"Pages crawled", res.PageCount},
		{"Max pages", res.MaxPages},
		{"Elapsed (ms)", res.ElapsedMS},
		{"Error", res.ErrorMessage},
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return err
	}

	if _, err := f.NewSheet(pagesSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", pagesSheet, err)
	}
	pages := [][]any{{"#", "URL", "Label", "Text length"}}
	for _, p := range res.Pages {
		pages = append(pages, []any{p.Position, p.URL, p.Label, p.TextLength})
	}
	if err := writeRows(f, pagesSheet, pages); err != nil {
		return err
	}

	if _, err := f.NewSheet(signalsSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", signalsSheet, err)
	}
	names := make([]string, 0, len(res.Signals))
	for name := range res.Signals {
		names = append(names, name)
	}
	sort.Strings(names)
	signals := [][]any{{"Signal", "Match"}}
	for _, name := range names {
		for _, m := range res.Signals[name] {
			signals = append(signals, []any{name, m})
		}
	}
	if err := writeRows(f, signalsSheet, signals); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
