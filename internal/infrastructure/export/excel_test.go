package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/furniture-store/storefront/internal/core/domain"
)

func TestWriteProducts(t *testing.T) {
	c := Catalog{
		Products: []domain.Product{
			{ID: "product-1", Name: "Cadeira", Description: "Madeira", BasePrice: 100, CategoryID: "cat-1", Colors: []string{"color-1", "color-2"}, IsActive: true},
		},
		Categories:    []domain.Category{{ID: "cat-1", Name: "Cadeiras"}},
		Colors:        []domain.Color{{ID: "color-1", Name: "Preto"}, {ID: "color-2", Name: "Branco"}},
		PricingTables: []domain.PricingTable{{ID: "pricing-1", Name: "Loja", Multiplier: 1.5}},
	}

	var buf bytes.Buffer
	if err := WriteProducts(&buf, c); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header and one product row, got %d rows", len(rows))
	}
	if rows[0][7] != "Loja" {
		t.Errorf("expected pricing table column, got %q", rows[0][7])
	}
	row := rows[1]
	if row[0] != "product-1" || row[3] != "Cadeiras" || row[4] != "Preto, Branco" {
		t.Errorf("unexpected row %q", row)
	}
	if row[7] != "150" {
		t.Errorf("expected priced column 150, got %q", row[7])
	}
}
