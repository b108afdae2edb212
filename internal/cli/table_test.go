package cli

import (
	"strings"
	"testing"

	"github.com/jmylchreest/colorsense/internal/colour"
)

func TestNewTable(t *testing.T) {
	table := NewTable([]string{"Colour", "Red", "Green"})

	if table == nil {
		t.Fatal("NewTable returned nil")
	}
	if len(table.headers) != 3 {
		t.Errorf("Expected 3 headers, got %d", len(table.headers))
	}
	if table.padding != 2 {
		t.Errorf("Expected padding of 2, got %d", table.padding)
	}
}

func TestTableAddRow(t *testing.T) {
	table := NewTable([]string{"Colour", "Confidence"})

	table.AddRow([]string{"Red", "0.98"})
	table.AddRow([]string{"Green"})
	table.AddRow([]string{"Blue", "0.40", "extra"})

	if len(table.rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(table.rows))
	}
	if len(table.rows[1]) != 2 || table.rows[1][1] != "" {
		t.Errorf("Expected short row to be padded, got %q", table.rows[1])
	}
	if len(table.rows[2]) != 2 {
		t.Errorf("Expected long row to be truncated, got %q", table.rows[2])
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"Colour", "Confidence"})
	table.SetAlignRight(1)
	table.AddRow([]string{"Red", "0.9812"})
	table.AddRow([]string{"Yellow", "0.51"})

	want := strings.Join([]string{
		"Colour  Confidence",
		"------  ----------",
		"Red         0.9812",
		"Yellow        0.51",
		"",
	}, "\n")
	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderIgnoresANSIWidth(t *testing.T) {
	table := NewTable([]string{"Colour", "Swatch"})
	table.AddRow([]string{"Blue", colour.Preview(colour.Blue.Swatch(), 6)})

	lines := strings.Split(table.Render(), "\n")
	if lines[1] != "------  ------" {
		t.Errorf("separator = %q, want swatch column 6 wide", lines[1])
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Render() with no headers = %q, want empty", got)
	}
}
