package utils

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ArowuTest/quizseason-admin/internal/models"
	"github.com/xuri/excelize/v2"
)

// listSeparator separates options and alternative answers inside one cell
const listSeparator = "|"

// PoolImportResult summarises one pool import
type PoolImportResult struct {
	TotalRows int      `json:"totalRows"`
	Imported  int      `json:"imported"`
	Errors    []string `json:"errors"`
}

// QuestionPoolImporter loads the shared question pools from CSV or XLSX files
type QuestionPoolImporter struct{}

// NewQuestionPoolImporter creates a new QuestionPoolImporter
func NewQuestionPoolImporter() *QuestionPoolImporter {
	return &QuestionPoolImporter{}
}

// ImportAdminFile reads an admin objective pool from disk
func (i *QuestionPoolImporter) ImportAdminFile(path string) ([]*models.AdminQuestion, *PoolImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	return i.ImportAdminQuestions(filepath.Base(path), data)
}

// ImportMerchantFile reads a merchant pool from disk
func (i *QuestionPoolImporter) ImportMerchantFile(path string) ([]*models.MerchantQuestion, *PoolImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	return i.ImportMerchantQuestions(filepath.Base(path), data)
}

// ImportAdminQuestions parses admin pool rows. Rows that fail to parse are
// skipped and reported in the result.
func (i *QuestionPoolImporter) ImportAdminQuestions(filename string, data []byte) ([]*models.AdminQuestion, *PoolImportResult, error) {
	rows, err := readRows(filename, data)
	if err != nil {
		return nil, nil, err
	}
	header := rows[0]

	idIdx := findColumnIndex(header, []string{"ID", "Question ID"})
	questionIdx := findColumnIndex(header, []string{"Question", "Question Text"})
	optionsIdx := findColumnIndex(header, []string{"Options", "Choices"})
	correctIdx := findColumnIndex(header, []string{"Correct Answer Index", "Correct Answer", "Answer Index"})
	categoryIdx := findColumnIndex(header, []string{"Category"})
	difficultyIdx := findColumnIndex(header, []string{"Difficulty"})
	timeLimitIdx := findColumnIndex(header, []string{"Time Limit", "Time Limit (s)"})
	pointsIdx := findColumnIndex(header, []string{"Points"})
	statusIdx := findColumnIndex(header, []string{"Status"})

	if idIdx == -1 || questionIdx == -1 {
		return nil, nil, fmt.Errorf("ID and Question columns are required")
	}

	result := &PoolImportResult{Errors: []string{}}
	seen := make(map[string]bool)
	questions := []*models.AdminQuestion{}

	for n, row := range rows[1:] {
		line := n + 2
		result.TotalRows++

		q := &models.AdminQuestion{
			ID:         cell(row, idIdx),
			Question:   cell(row, questionIdx),
			Options:    splitList(cell(row, optionsIdx)),
			Category:   cell(row, categoryIdx),
			Difficulty: cell(row, difficultyIdx),
			Status:     strings.ToLower(cell(row, statusIdx)),
		}
		if q.Status == "" {
			q.Status = models.AdminQuestionStatusActive
		}
		if q.ID == "" || q.Question == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing ID or question", line))
			continue
		}
		if seen[q.ID] {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: duplicate ID %s", line, q.ID))
			continue
		}

		var parseErr error
		if q.CorrectAnswerIndex, parseErr = parseIntCell(row, correctIdx); parseErr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid correct answer index: %v", line, parseErr))
			continue
		}
		if q.CorrectAnswerIndex < 0 || (len(q.Options) > 0 && q.CorrectAnswerIndex >= len(q.Options)) {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: correct answer index %d out of range", line, q.CorrectAnswerIndex))
			continue
		}
		if q.TimeLimit, parseErr = parseIntCell(row, timeLimitIdx); parseErr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid time limit: %v", line, parseErr))
			continue
		}
		if q.Points, parseErr = parseIntCell(row, pointsIdx); parseErr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid points: %v", line, parseErr))
			continue
		}

		seen[q.ID] = true
		questions = append(questions, q)
		result.Imported++
	}

	return questions, result, nil
}

// ImportMerchantQuestions parses merchant pool rows. A missing Type column
// defaults every row to non_objective.
func (i *QuestionPoolImporter) ImportMerchantQuestions(filename string, data []byte) ([]*models.MerchantQuestion, *PoolImportResult, error) {
	rows, err := readRows(filename, data)
	if err != nil {
		return nil, nil, err
	}
	header := rows[0]

	idIdx := findColumnIndex(header, []string{"ID", "Question ID"})
	questionIdx := findColumnIndex(header, []string{"Question", "Question Text"})
	typeIdx := findColumnIndex(header, []string{"Type", "Question Type"})
	optionsIdx := findColumnIndex(header, []string{"Options", "Choices"})
	correctIdx := findColumnIndex(header, []string{"Correct Answer Index", "Correct Answer", "Answer Index"})
	alternativesIdx := findColumnIndex(header, []string{"Alternative Answers", "Alternatives"})
	categoryIdx := findColumnIndex(header, []string{"Category"})
	difficultyIdx := findColumnIndex(header, []string{"Difficulty"})
	timeLimitIdx := findColumnIndex(header, []string{"Time Limit", "Time Limit (s)"})

	if idIdx == -1 || questionIdx == -1 {
		return nil, nil, fmt.Errorf("ID and Question columns are required")
	}

	result := &PoolImportResult{Errors: []string{}}
	seen := make(map[string]bool)
	questions := []*models.MerchantQuestion{}

	for n, row := range rows[1:] {
		line := n + 2
		result.TotalRows++

		q := &models.MerchantQuestion{
			ID:                 cell(row, idIdx),
			Question:           cell(row, questionIdx),
			Type:               models.QuestionType(strings.ToLower(cell(row, typeIdx))),
			Options:            splitList(cell(row, optionsIdx)),
			AlternativeAnswers: splitList(cell(row, alternativesIdx)),
			Category:           cell(row, categoryIdx),
			Difficulty:         cell(row, difficultyIdx),
		}
		if q.Type == "" {
			q.Type = models.QuestionTypeNonObjective
		}
		if q.ID == "" || q.Question == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing ID or question", line))
			continue
		}
		if seen[q.ID] {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: duplicate ID %s", line, q.ID))
			continue
		}
		if q.Type != models.QuestionTypeNonObjective && q.Type != models.QuestionTypeBonusObjective {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: unsupported merchant question type %q", line, q.Type))
			continue
		}
		if raw := cell(row, correctIdx); raw != "" {
			idx, parseErr := strconv.Atoi(raw)
			if parseErr != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid correct answer index: %v", line, parseErr))
				continue
			}
			if idx < 0 || (len(q.Options) > 0 && idx >= len(q.Options)) {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: correct answer index %d out of range", line, idx))
				continue
			}
			q.CorrectAnswerIndex = &idx
		}
		var parseErr error
		if q.TimeLimit, parseErr = parseIntCell(row, timeLimitIdx); parseErr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid time limit: %v", line, parseErr))
			continue
		}

		seen[q.ID] = true
		questions = append(questions, q)
		result.Imported++
	}

	return questions, result, nil
}

// readRows picks a reader by file extension and returns the non-empty rows,
// header first
func readRows(filename string, data []byte) ([][]string, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		rows, err = readCSVRows(data)
	case ".xlsx":
		rows, err = readXLSXRows(data)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.New("file is empty or has only header")
	}
	return rows, nil
}

func readCSVRows(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if isBlankRow(record) {
			continue
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func readXLSXRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("XLSX file has no sheets")
	}
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	rows := make([][]string, 0, len(all))
	for _, row := range all {
		if !isBlankRow(row) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// findColumnIndex finds the index of a column by possible names
func findColumnIndex(header []string, possibleNames []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, name := range possibleNames {
			if strings.ToLower(name) == h {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseIntCell(row []string, idx int) (int, error) {
	raw := cell(row, idx)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func splitList(raw string) []string {
	items := []string{}
	for _, part := range strings.Split(raw, listSeparator) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
