package sales

import (
	"encoding/csv"
	"io"
	"strconv"

	"stockroom/internal/database"
)

// WriteCSV renders sale records in export column order, newest first as
// provided by the caller.
func WriteCSV(w io.Writer, records []database.SaleRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"date", "product_name", "quantity", "unit_price", "total_amount"}); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.ProductName,
			strconv.Itoa(r.Quantity),
			strconv.Itoa(r.UnitPrice),
			strconv.Itoa(r.TotalAmount),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
