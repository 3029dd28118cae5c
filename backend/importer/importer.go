package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"skillcert/backend/models"
)

// Row layout for question bank files, xlsx and csv alike:
// role | question text | option a | option b | option c | option d | correct option (A-D)
const columnsPerRow = 7

// ImportResult summarizes one import run.
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// ImportQuestions seeds the question bank from an xlsx or csv file. Rows that
// already exist (same role and question text) are skipped, so re-running an
// import is harmless.
func ImportQuestions(db *gorm.DB, filePath string) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	if ext == ".csv" {
		return importFromCSV(db, filePath)
	}
	return importFromExcel(db, filePath)
}

func importFromExcel(db *gorm.DB, filePath string) (*ImportResult, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		// Skip the header row
		if i == 0 {
			continue
		}
		result.TotalProcessed++
		if err := processRow(db, row, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}
	return result, nil
}

func importFromCSV(db *gorm.DB, filePath string) (*ImportResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	result := &ImportResult{Errors: make([]string, 0)}
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++
		if rowNum == 1 {
			continue
		}
		result.TotalProcessed++
		if err := processRow(db, row, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}
	return result, nil
}

func processRow(db *gorm.DB, row []string, result *ImportResult) error {
	if len(row) < columnsPerRow {
		return fmt.Errorf("expected %d columns, got %d", columnsPerRow, len(row))
	}

	question := models.Question{
		Role:          strings.TrimSpace(row[0]),
		QuestionText:  strings.TrimSpace(row[1]),
		OptionA:       strings.TrimSpace(row[2]),
		OptionB:       strings.TrimSpace(row[3]),
		OptionC:       strings.TrimSpace(row[4]),
		OptionD:       strings.TrimSpace(row[5]),
		CorrectOption: strings.ToUpper(strings.TrimSpace(row[6])),
	}

	if question.Role == "" || question.QuestionText == "" {
		return fmt.Errorf("role and question text cannot be empty")
	}
	if question.OptionA == "" || question.OptionB == "" || question.OptionC == "" || question.OptionD == "" {
		return fmt.Errorf("all four options are required")
	}
	if !models.ValidOptionLabel(question.CorrectOption) {
		return fmt.Errorf("correct option must be one of A, B, C, D, got %q", row[6])
	}

	var count int64
	err := db.Model(&models.Question{}).
		Where("role = ? AND question_text = ?", question.Role, question.QuestionText).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check for existing question: %v", err)
	}
	if count > 0 {
		result.Skipped++
		return nil
	}

	if err := db.Create(&question).Error; err != nil {
		return fmt.Errorf("failed to create question: %v", err)
	}
	result.Created++
	return nil
}
