package excel

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/sozluk/pkg/models"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Repository is the storage the importer writes to.
type Repository interface {
	FindByWordAndBook(ctx context.Context, word, book string) (models.Word, bool, error)
	Create(ctx context.Context, in models.WordInput) (models.Word, error)
	Update(ctx context.Context, id int, in models.WordInput) (models.Word, error)
}

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath       string // Path to the Excel or CSV file
	WordColumn     string // Column with the headword
	MeaningColumn  string // Column with the meaning
	BookColumn     string // Column with the source book
	QuoteColumn    string // Column with the quote
	CategoryColumn string // Column with the category
	SheetName      string // Sheet to import, the first one when empty
	StartRow       int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:     "A",
		MeaningColumn:  "B",
		BookColumn:     "C",
		QuoteColumn:    "D",
		CategoryColumn: "E",
		StartRow:       2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// Importer loads words in bulk, matching existing entries by headword and book.
type Importer struct {
	repo Repository
}

// NewImporter creates an importer writing to repo.
func NewImporter(repo Repository) *Importer {
	return &Importer{repo: repo}
}

// ImportFile imports words from an Excel or CSV file
func (im *Importer) ImportFile(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(config.FilePath)); ext {
	case ".csv":
		rows, err = readCSV(config.FilePath)
	case ".xlsx", ".xlsm":
		rows, err = readExcel(config.FilePath, config.SheetName)
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
	if err != nil {
		return nil, err
	}

	startRow := config.StartRow
	if startRow < 1 {
		startRow = 1
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		rowNum := i + 1
		// Skip header rows
		if rowNum < startRow || blank(row) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		result.TotalProcessed++
		if _, err := im.upsert(ctx, rowInput(row, config), result); err != nil {
			if errors.Is(err, models.ErrStorageUnavailable) {
				return result, err
			}
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	logrus.WithFields(logrus.Fields{
		"file":    config.FilePath,
		"created": result.Created,
		"updated": result.Updated,
		"skipped": result.Skipped,
		"errors":  len(result.Errors),
	}).Info("Import finished")
	return result, nil
}

// Seed loads words, typically the built-in dataset, with the same matching rules.
// Relations in words refer to the ids in words; they are rewritten to the
// stored ids once every word exists, and targets that could not be stored are
// dropped.
func (im *Importer) Seed(ctx context.Context, words []models.Word) (*ImportResult, error) {
	result := &ImportResult{Errors: make([]string, 0)}
	stored := make(map[int]models.Word, len(words))
	for _, w := range words {
		result.TotalProcessed++
		saved, err := im.upsert(ctx, seedInput(w), result)
		if err != nil {
			if errors.Is(err, models.ErrStorageUnavailable) {
				return result, err
			}
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", w.Word, err))
			continue
		}
		stored[w.ID] = saved
	}

	for _, w := range words {
		target, ok := stored[w.ID]
		if !ok || len(w.Relations) == 0 {
			continue
		}
		relations := make(models.IDList, 0, len(w.Relations))
		for _, id := range w.Relations {
			if rel, ok := stored[id]; ok {
				relations = append(relations, rel.ID)
			}
		}
		if sameIDs(target.Relations, relations) {
			continue
		}
		in := seedInput(w)
		in.Category = target.Category
		in.Relations = &relations
		if _, err := im.repo.Update(ctx, target.ID, in); err != nil {
			if errors.Is(err, models.ErrStorageUnavailable) {
				return result, err
			}
			result.Errors = append(result.Errors, fmt.Sprintf("%s: failed to link relations: %v", w.Word, err))
		}
	}
	return result, nil
}

func seedInput(w models.Word) models.WordInput {
	return models.WordInput{
		Word:     w.Word,
		Meaning:  w.Meaning,
		Book:     w.Book,
		Quote:    w.Quote,
		Category: w.Category,
	}
}

// upsert creates in, or updates the entry with the same headword and book, and
// returns the stored word. An empty category or unset relations in the input
// keep the stored ones.
func (im *Importer) upsert(ctx context.Context, in models.WordInput, result *ImportResult) (models.Word, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		result.Skipped++
		return models.Word{}, err
	}

	existing, found, err := im.repo.FindByWordAndBook(ctx, in.Word, in.Book)
	if err != nil {
		return models.Word{}, err
	}
	if !found {
		created, err := im.repo.Create(ctx, in)
		if err != nil {
			return models.Word{}, fmt.Errorf("failed to create word: %w", err)
		}
		result.Created++
		return created, nil
	}

	if in.Category == nil {
		in.Category = existing.Category
	}
	if unchanged(existing, in) {
		result.Skipped++
		return existing, nil
	}
	updated, err := im.repo.Update(ctx, existing.ID, in)
	if err != nil {
		return models.Word{}, fmt.Errorf("failed to update word: %w", err)
	}
	result.Updated++
	return updated, nil
}

func unchanged(w models.Word, in models.WordInput) bool {
	if w.Meaning != in.Meaning || w.Quote != in.Quote || w.CategoryName() != stringValue(in.Category) {
		return false
	}
	return in.Relations == nil || sameIDs(w.Relations, *in.Relations)
}

func sameIDs(a, b models.IDList) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func rowInput(row []string, config ImportConfig) models.WordInput {
	in := models.WordInput{
		Word:    cell(row, config.WordColumn),
		Meaning: cell(row, config.MeaningColumn),
		Book:    cell(row, config.BookColumn),
		Quote:   cell(row, config.QuoteColumn),
	}
	if category := cell(row, config.CategoryColumn); category != "" {
		in.Category = &category
	}
	return in
}

// readExcel returns the rows of sheet, or of the first sheet when sheet is empty.
func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		// Spreadsheet exports often start with a byte order mark.
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func cell(row []string, column string) string {
	if column == "" {
		return ""
	}
	if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
