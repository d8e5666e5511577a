package sales

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"stockroom/internal/database"
)

func TestWriteCSV(t *testing.T) {
	records := []database.SaleRecord{
		{
			ProductName: "Denim Jacket",
			Quantity:    2,
			UnitPrice:   8500,
			TotalAmount: 17000,
			CreatedAt:   time.Date(2024, 7, 26, 9, 30, 0, 0, time.UTC),
		},
		{
			ProductName: "Basic T-Shirt, Blue",
			Quantity:    1,
			UnitPrice:   2500,
			TotalAmount: 2500,
			CreatedAt:   time.Date(2024, 7, 25, 14, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines; want 3", len(lines))
	}
	if lines[0] != "date,product_name,quantity,unit_price,total_amount" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "2024-07-26 09:30:00,Denim Jacket,2,8500,17000" {
		t.Errorf("unexpected row: %q", lines[1])
	}
	if !strings.Contains(lines[2], `"Basic T-Shirt, Blue"`) {
		t.Errorf("comma in product name not quoted: %q", lines[2])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	if got := strings.TrimSpace(buf.String()); got != "date,product_name,quantity,unit_price,total_amount" {
		t.Errorf("empty export should contain only the header, got %q", got)
	}
}
