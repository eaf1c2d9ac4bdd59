package wqx

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"ActivityStartDate,CharacteristicName,ResultMeasureValue",
		"2022-03-01,Escherichia coli,240",
		"2022-03-08,Escherichia coli,",
		"2022-03-15,Escherichia coli,1600",
		"2022-03-15,Dissolved oxygen,8.2",
		"2022-03-22,Escherichia coli,not detected",
	}, "\n")

	p := NewParser(zap.NewNop().Sugar())
	p.Characteristic = "Escherichia coli"

	records, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Blank and non-numeric results skipped; other characteristics filtered.
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Concentration != 240 {
		t.Errorf("expected concentration 240, got %v", records[0].Concentration)
	}
	if !records[0].Date.Equal(time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected date %v", records[0].Date)
	}
	if records[1].Concentration != 1600 {
		t.Errorf("expected concentration 1600, got %v", records[1].Concentration)
	}
}

func TestParseTabDelimited(t *testing.T) {
	input := "ActivityStartDate\tResultMeasureValue\n03/01/2022\t95\n"

	p := NewParser(zap.NewNop().Sugar())
	p.Comma = '\t'

	records, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Concentration != 95 {
		t.Fatalf("expected one record with concentration 95, got %v", records)
	}
	if !records[0].Date.Equal(time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected date %v", records[0].Date)
	}
}

func TestParseCustomColumns(t *testing.T) {
	input := "sample_date,ecoli\n2022-03-01,410\n"

	p := NewParser(zap.NewNop().Sugar())
	p.DateColumn = "sample_date"
	p.ResultColumn = "ecoli"

	records, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Concentration != 410 {
		t.Fatalf("expected one record with concentration 410, got %v", records)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		setup func(*Parser)
	}{
		{
			name:  "missing result column",
			input: "ActivityStartDate,SomethingElse\n2022-03-01,5\n",
		},
		{
			name:  "missing date column",
			input: "When,ResultMeasureValue\n2022-03-01,5\n",
		},
		{
			name:  "bad date",
			input: "ActivityStartDate,ResultMeasureValue\nMarch 1st,5\n",
		},
		{
			name:  "missing characteristic column with filter",
			input: "ActivityStartDate,ResultMeasureValue\n2022-03-01,5\n",
			setup: func(p *Parser) { p.Characteristic = "Escherichia coli" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(zap.NewNop().Sugar())
			if tt.setup != nil {
				tt.setup(p)
			}
			if _, err := p.Parse(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseDuplicateDatesPassedThrough(t *testing.T) {
	// Duplicate-date handling belongs to the load-conversion join, not the
	// parser: both rows come through.
	input := "ActivityStartDate,ResultMeasureValue\n2022-03-01,100\n2022-03-01,900\n"

	p := NewParser(zap.NewNop().Sugar())
	records, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}
