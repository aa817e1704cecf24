package workbook

import (
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "tally/internal/errors"
	"tally/internal/models"
	"tally/internal/selectors"
)

// Export writes the two-sheet workbook for the given entity lists. Category
// names are resolved through the category map; transactions with dangling
// references export under the unknown-category label.
func Export(w io.Writer, transactions []models.Transaction, categories []models.Category) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), transactionsSheet); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := writeTransactionsSheet(f, transactions, categories); err != nil {
		return err
	}

	if _, err := f.NewSheet(categoriesSheet); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := writeCategoriesSheet(f, categories); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func writeTransactionsSheet(f *excelize.File, transactions []models.Transaction, categories []models.Category) error {
	header := []interface{}{colDate, colCategory, colAmount, colType, colNote, colCreatedAt}
	if err := f.SetSheetRow(transactionsSheet, "A1", &header); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byID := selectors.CategoryMap(categories)
	for i, t := range transactions {
		categoryName := unknownCategoryName
		if c, ok := byID[t.CategoryID]; ok {
			categoryName = c.Name
		}
		label := labelExpense
		if t.IsIncome() {
			label = labelIncome
		}

		// The amount is written as its exact decimal string; a float cell
		// would round-trip through binary and lose precision.
		row := []interface{}{
			t.Date,
			categoryName,
			t.Amount.String(),
			label,
			t.Note,
			t.CreatedAt.Format(time.RFC3339),
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := f.SetSheetRow(transactionsSheet, addr, &row); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

func writeCategoriesSheet(f *excelize.File, categories []models.Category) error {
	header := []interface{}{colCategoryName, colIcon, colType, colColor}
	if err := f.SetSheetRow(categoriesSheet, "A1", &header); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for i, c := range categories {
		label := labelExpense
		if c.Type == models.CategoryTypeIncome {
			label = labelIncome
		}
		row := []interface{}{c.Name, c.Icon, label, c.Color}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := f.SetSheetRow(categoriesSheet, addr, &row); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}
