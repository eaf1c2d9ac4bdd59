// Package wqx parses delimited water-quality record exports (Water Quality
// Portal style) into the engine's concentration table.
package wqx

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/crestgauge/loadduration/internal/ldc"
	"go.uber.org/zap"
)

// Default column names match the Water Quality Portal result export.
const (
	DefaultDateColumn           = "ActivityStartDate"
	DefaultResultColumn         = "ResultMeasureValue"
	DefaultCharacteristicColumn = "CharacteristicName"
)

var dateLayouts = []string{"2006-01-02", "01/02/2006", "2006/01/02"}

// Parser reads {date, concentration} pairs out of a delimited export. Rows
// with a blank or non-numeric result are skipped and counted; column selection
// and characteristic filtering happen here so the engine only ever sees clean
// pairs.
type Parser struct {
	// DateColumn and ResultColumn name the columns to read. Defaults apply
	// when empty.
	DateColumn   string
	ResultColumn string

	// Characteristic, when non-empty, keeps only rows whose characteristic
	// column matches it (e.g. "Escherichia coli").
	Characteristic       string
	CharacteristicColumn string

	// Comma is the field delimiter; zero selects comma. Water Quality Portal
	// tab-separated exports use '\t'.
	Comma rune

	logger *zap.SugaredLogger
}

// NewParser creates a parser with default WQP column names.
func NewParser(logger *zap.SugaredLogger) *Parser {
	return &Parser{logger: logger}
}

// ParseFile parses the export at path.
func (p *Parser) ParseFile(path string) ([]ldc.ConcentrationRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening water-quality export: %v", err)
	}
	defer f.Close()
	return p.Parse(f)
}

// Parse parses a delimited export. The first row must be a header containing
// the configured date and result columns.
func (p *Parser) Parse(r io.Reader) ([]ldc.ConcentrationRecord, error) {
	dateCol := p.DateColumn
	if dateCol == "" {
		dateCol = DefaultDateColumn
	}
	resultCol := p.ResultColumn
	if resultCol == "" {
		resultCol = DefaultResultColumn
	}
	charCol := p.CharacteristicColumn
	if charCol == "" {
		charCol = DefaultCharacteristicColumn
	}

	reader := csv.NewReader(r)
	if p.Comma != 0 {
		reader.Comma = p.Comma
	}
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading export header: %v", err)
	}

	dateIdx, resultIdx, charIdx := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case dateCol:
			dateIdx = i
		case resultCol:
			resultIdx = i
		case charCol:
			charIdx = i
		}
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("export is missing date column %q", dateCol)
	}
	if resultIdx < 0 {
		return nil, fmt.Errorf("export is missing result column %q", resultCol)
	}
	if p.Characteristic != "" && charIdx < 0 {
		return nil, fmt.Errorf("export is missing characteristic column %q", charCol)
	}

	var records []ldc.ConcentrationRecord
	skipped := 0
	row := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading export row %d: %v", row, err)
		}
		row++

		if p.Characteristic != "" {
			if charIdx >= len(fields) || strings.TrimSpace(fields[charIdx]) != p.Characteristic {
				continue
			}
		}
		if dateIdx >= len(fields) || resultIdx >= len(fields) {
			skipped++
			continue
		}

		raw := strings.TrimSpace(fields[resultIdx])
		if raw == "" {
			skipped++
			continue
		}
		concentration, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			skipped++
			continue
		}

		date, err := parseDate(strings.TrimSpace(fields[dateIdx]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %v", row, err)
		}

		records = append(records, ldc.ConcentrationRecord{
			Date:          date,
			Concentration: concentration,
		})
	}

	if skipped > 0 && p.logger != nil {
		p.logger.Warnf("water-quality export: skipped %d rows with blank or non-numeric results", skipped)
	}
	return records, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable sample date %q", s)
}
