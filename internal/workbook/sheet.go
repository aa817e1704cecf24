// Package workbook implements the two-sheet spreadsheet codec used for data
// export and import. Sheet and column names match the workbooks produced by
// earlier releases so exports and imports stay interchangeable.
package workbook

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	apperrors "tally/internal/errors"
	"tally/internal/models"
)

const (
	transactionsSheet = "记账记录"
	categoriesSheet   = "分类设置"

	colDate         = "日期"
	colCategory     = "分类"
	colAmount       = "金额"
	colType         = "类型"
	colNote         = "备注"
	colCreatedAt    = "创建时间"
	colCategoryName = "分类名称"
	colIcon         = "图标"
	colColor        = "颜色"

	labelIncome  = "收入"
	labelExpense = "支出"

	unknownCategoryName = "未知分类"
	defaultIcon         = "Tag"
	defaultColor        = "#666666"
)

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// TransactionRow is a validated transaction line from the import sheet.
type TransactionRow struct {
	Date         string
	CategoryName string
	Amount       decimal.Decimal
	Note         string
}

// CategoryRow is a validated category line from the import sheet.
type CategoryRow struct {
	Name  string
	Icon  string
	Color string
	Type  models.CategoryType
}

// Parsed holds the typed rows of a workbook plus the per-row errors
// collected while reading it. Rows that fail validation are dropped; parsing
// never aborts on a bad row.
type Parsed struct {
	Transactions []TransactionRow
	Categories   []CategoryRow
	Errors       []string
}

// Parse reads a workbook and validates each row into its typed form.
// It fails outright only when the file is not a workbook or the transactions
// sheet is missing.
func Parse(r io.Reader) (*Parsed, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrWorkbookFormat, err)
	}
	defer f.Close()

	parsed := &Parsed{}

	txRows, err := f.GetRows(transactionsSheet)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrWorkbookFormat, "Missing sheet: "+transactionsSheet)
	}
	parsed.parseTransactions(txRows)

	// The categories sheet is optional; older exports may omit it.
	if catRows, err := f.GetRows(categoriesSheet); err == nil {
		parsed.parseCategories(catRows)
	}

	return parsed, nil
}

func (p *Parsed) parseCategories(rows [][]string) {
	if len(rows) == 0 {
		return
	}
	cols := headerIndex(rows[0])
	for i, row := range rows[1:] {
		line := i + 2

		name := strings.TrimSpace(cols.cell(row, colCategoryName))
		if name == "" {
			p.Errors = append(p.Errors, fmt.Sprintf("%s row %d: empty category name, skipped", categoriesSheet, line))
			continue
		}

		typ := models.CategoryTypeExpense
		if strings.TrimSpace(cols.cell(row, colType)) == labelIncome {
			typ = models.CategoryTypeIncome
		}

		icon := strings.TrimSpace(cols.cell(row, colIcon))
		if icon == "" {
			icon = defaultIcon
		}
		color := strings.TrimSpace(cols.cell(row, colColor))
		if !hexColorRe.MatchString(color) {
			color = defaultColor
		}

		p.Categories = append(p.Categories, CategoryRow{Name: name, Icon: icon, Color: color, Type: typ})
	}
}

func (p *Parsed) parseTransactions(rows [][]string) {
	if len(rows) == 0 {
		return
	}
	cols := headerIndex(rows[0])
	for i, row := range rows[1:] {
		line := i + 2

		date := strings.TrimSpace(cols.cell(row, colDate))
		categoryName := strings.TrimSpace(cols.cell(row, colCategory))
		amountText := strings.TrimSpace(cols.cell(row, colAmount))
		if date == "" || categoryName == "" || amountText == "" {
			p.Errors = append(p.Errors, fmt.Sprintf("%s row %d: date, category, or amount missing", transactionsSheet, line))
			continue
		}

		amount, err := decimal.NewFromString(amountText)
		if err != nil {
			p.Errors = append(p.Errors, fmt.Sprintf("%s row %d: invalid amount %q", transactionsSheet, line, amountText))
			continue
		}
		if amount.IsZero() {
			p.Errors = append(p.Errors, fmt.Sprintf("%s row %d: amount must not be zero", transactionsSheet, line))
			continue
		}

		normalized, err := normalizeDate(date)
		if err != nil {
			p.Errors = append(p.Errors, fmt.Sprintf("%s row %d: invalid date %q", transactionsSheet, line, date))
			continue
		}

		p.Transactions = append(p.Transactions, TransactionRow{
			Date:         normalized,
			CategoryName: categoryName,
			Amount:       amount,
			Note:         strings.TrimSpace(cols.cell(row, colNote)),
		})
	}
}

// normalizeDate accepts YYYY-MM-DD as-is and reformats M/D/YYYY.
func normalizeDate(date string) (string, error) {
	if !strings.Contains(date, "/") {
		return date, nil
	}
	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("unsupported date format: %s", date)
	}
	month, day, year := parts[0], parts[1], parts[2]
	if month == "" || day == "" || year == "" || len(month) > 2 || len(day) > 2 {
		return "", fmt.Errorf("unsupported date format: %s", date)
	}
	return fmt.Sprintf("%s-%s-%s", year, pad2(month), pad2(day)), nil
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// columns maps header names to their sheet position.
type columns map[string]int

func headerIndex(header []string) columns {
	cols := make(columns, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	return cols
}

// cell returns the named column's value in the row, or "" when the header or
// the cell is absent.
func (c columns) cell(row []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}
