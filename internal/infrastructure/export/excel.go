package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/furniture-store/storefront/internal/core/domain"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sheetName   = "Produtos"
)

// Catalog is the data a product sheet is rendered from.
type Catalog struct {
	Products      []domain.Product
	Categories    []domain.Category
	Colors        []domain.Color
	PricingTables []domain.PricingTable
}

// WriteProducts renders one row per product with one price column per
// pricing table and writes the workbook to w.
func WriteProducts(w io.Writer, c Catalog) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"ID", "Nome", "Descrição", "Categoria", "Cores", "Preço Base", "Ativo"}
	for _, t := range c.PricingTables {
		header = append(header, t.Name)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	categories := make(map[string]string, len(c.Categories))
	for _, cat := range c.Categories {
		categories[cat.ID] = cat.Name
	}
	colors := make(map[string]string, len(c.Colors))
	for _, col := range c.Colors {
		colors[col.ID] = col.Name
	}

	for i, p := range c.Products {
		names := make([]string, 0, len(p.Colors))
		for _, id := range p.Colors {
			if n, ok := colors[id]; ok {
				names = append(names, n)
			}
		}
		row := []any{p.ID, p.Name, p.Description, categories[p.CategoryID], strings.Join(names, ", "), p.BasePrice, p.IsActive}
		for _, t := range c.PricingTables {
			row = append(row, t.Price(p.BasePrice))
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
