package engine

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/gostatement/internal/domain"
)

// ColumnLayout maps column positions to transaction fields for one known
// table-shaped statement format. Balance may be -1 when the layout has no
// running-balance column.
type ColumnLayout struct {
	Name        string
	MinCells    int
	Date        int
	Description int
	Debit       int
	Credit      int
	Balance     int
}

// CategoryRule assigns Label to transactions whose description contains
// Keyword (case-insensitive). Rules are evaluated in order; the first
// match wins.
type CategoryRule struct {
	Keyword string
	Label   string
}

// Cells holding these values mean "no amount in this column".
var blankCells = map[string]struct{}{
	"": {}, "-": {}, "0": {}, "0.00": {},
}

var (
	lineDatePattern    = regexp.MustCompile(`^(\d{1,2}[./-]\d{1,2}[./-]\d{2,4}|\d{4}[./-]\d{1,2}[./-]\d{1,2}|\d{1,2}\s+[A-Za-z]{3,9}\.?\s+\d{2,4})\s+(.+)$`)
	dateShapedPattern  = regexp.MustCompile(`^(?:\d{1,2}[./-]\d{1,2}[./-]\d{2,4}|\d{4}[./-]\d{1,2}[./-]\d{1,2}|\d{1,2}\s+[A-Za-z]{3,9}\.?\s+\d{2,4})$`)
	amountTokenPattern = regexp.MustCompile(`^\(?-?[\d.,]+\)?-?$`)
)

// Keywords in a description that mark a single unsigned line amount as
// money leaving the account.
var debitHints = []string{"withdraw", "debit", "charge", "fee", "purchase"}

// Classifier turns raw rows into candidate transactions. It tries a
// table-shaped interpretation against its known layouts first and falls
// back to a line-pattern interpretation.
type Classifier struct {
	norm    *Normalizer
	layouts []ColumnLayout
	rules   []CategoryRule
}

// NewClassifier creates a classifier using the given normalizer, ordered
// table layouts, and ordered category rules.
func NewClassifier(norm *Normalizer, layouts []ColumnLayout, rules []CategoryRule) *Classifier {
	return &Classifier{norm: norm, layouts: layouts, rules: rules}
}

// Classify maps one raw row to a transaction or a rejection. It never
// returns both.
//
// Table-shaped rows are matched against the known layouts first. The
// line-pattern fallback applies only when no layout matched
// structurally (cell count, date column): a layout that matched but
// yielded no movement, both a debit and a credit, or an amount cell
// that does not parse rejects the row outright rather than
// reinterpreting it as free text.
func (c *Classifier) Classify(row domain.RawRow) (*domain.Transaction, *domain.Rejected) {
	var hint domain.RejectReason

	if row.IsTabular() {
		tx, matched, reason := c.classifyCells(row)
		if tx != nil {
			tx.Category = c.categorize(tx.Description)
			return tx, nil
		}
		if matched {
			detail := "row carries neither a debit nor a credit amount"
			switch reason {
			case domain.ReasonAmbiguousClassification:
				detail = "row carries both a debit and a credit amount"
			case domain.ReasonUnparseableAmount:
				detail = "amount cell does not parse"
			}
			return nil, &domain.Rejected{Row: row, Reason: reason, Detail: detail}
		}
		hint = reason
	}

	line := row.Line
	if line == "" {
		line = strings.Join(row.Cells, " ")
	}
	tx, lineHint := c.classifyLine(line, row.Ref)
	if tx != nil {
		tx.Category = c.categorize(tx.Description)
		return tx, nil
	}
	if lineHint != "" {
		hint = lineHint
	}

	reason := domain.ReasonUnrecognizedFormat
	detail := "no table layout or line pattern matched"
	switch hint {
	case domain.ReasonUnparseableDate:
		reason, detail = hint, "date field does not parse"
	case domain.ReasonDateOutOfRange:
		reason, detail = hint, "date falls outside the plausible window"
	}
	return nil, &domain.Rejected{Row: row, Reason: reason, Detail: detail}
}

// classifyCells tries each known layout in order. matched reports
// whether any layout fit the row structurally; when it did but no
// transaction came out, reason says why. When no layout fit at all,
// reason may still carry a date diagnostic for the row's rejection.
func (c *Classifier) classifyCells(row domain.RawRow) (tx *domain.Transaction, matched bool, reason domain.RejectReason) {
	for _, layout := range c.layouts {
		if len(row.Cells) < layout.MinCells {
			continue
		}

		rawDate := dateCell(row.Cells[layout.Date])
		date, err := c.norm.ParseDate(rawDate)
		if err != nil {
			if reason == "" && dateShapedPattern.MatchString(rawDate) {
				reason = dateReason(err)
			}
			continue
		}

		debit, ok := c.amountCell(row.Cells, layout.Debit)
		if !ok {
			if !matched {
				matched, reason = true, domain.ReasonUnparseableAmount
			}
			continue
		}
		credit, ok := c.amountCell(row.Cells, layout.Credit)
		if !ok {
			if !matched {
				matched, reason = true, domain.ReasonUnparseableAmount
			}
			continue
		}

		if debit.Valid && credit.Valid {
			if !matched {
				matched, reason = true, domain.ReasonAmbiguousClassification
			}
			continue
		}
		if !debit.Valid && !credit.Valid {
			if !matched {
				matched, reason = true, domain.ReasonUnrecognizedFormat
			}
			continue
		}

		tx := &domain.Transaction{
			Date:        date,
			Description: collapseWhitespace(row.Cells[layout.Description]),
			Ref:         row.Ref,
		}
		if debit.Valid {
			tx.Debit = debit.Decimal.Abs()
		} else {
			tx.Credit = credit.Decimal.Abs()
		}
		if layout.Balance >= 0 && layout.Balance < len(row.Cells) {
			if bal, ok := c.amountCell(row.Cells, layout.Balance); ok && bal.Valid {
				tx.Balance = bal
			}
		}
		return tx, true, ""
	}

	return nil, matched, reason
}

// amountCell parses one optional amount column. The bool is false when
// the cell holds something that looks like an amount but does not parse.
func (c *Classifier) amountCell(cells []string, idx int) (decimal.NullDecimal, bool) {
	if idx < 0 || idx >= len(cells) {
		return decimal.NullDecimal{}, true
	}
	raw := strings.TrimSpace(cells[idx])
	if _, blank := blankCells[raw]; blank {
		return decimal.NullDecimal{}, true
	}
	d, err := c.norm.ParseAmount(raw)
	if err != nil {
		return decimal.NullDecimal{}, false
	}
	if d.IsZero() {
		return decimal.NullDecimal{}, true
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, true
}

// classifyLine interprets a free-text statement line: a leading date, a
// description, and one or two trailing amounts where the second is the
// running balance. The returned reason is a diagnostic hint when the
// line looked date-led but the date itself failed validation.
func (c *Classifier) classifyLine(line string, ref domain.SourceRef) (*domain.Transaction, domain.RejectReason) {
	m := lineDatePattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return nil, ""
	}

	date, err := c.norm.ParseDate(m[1])
	if err != nil {
		return nil, dateReason(err)
	}

	fields := strings.Fields(m[2])
	var amounts []decimal.Decimal
	for len(fields) > 0 && len(amounts) < 2 {
		token := fields[len(fields)-1]
		if !amountTokenPattern.MatchString(token) {
			break
		}
		d, err := c.norm.ParseAmount(token)
		if err != nil {
			break
		}
		amounts = append([]decimal.Decimal{d}, amounts...)
		fields = fields[:len(fields)-1]
	}
	if len(amounts) == 0 || len(fields) == 0 {
		return nil, ""
	}

	desc := collapseWhitespace(strings.Join(fields, " "))
	tx := &domain.Transaction{Date: date, Description: desc, Ref: ref}

	movement := amounts[0]
	if len(amounts) == 2 {
		tx.Balance = decimal.NullDecimal{Decimal: amounts[1], Valid: true}
	}

	switch {
	case movement.IsZero():
		return nil, ""
	case movement.IsNegative():
		tx.Debit = movement.Abs()
	case hasDebitHint(desc):
		tx.Debit = movement
	default:
		tx.Credit = movement
	}
	return tx, ""
}

// dateReason maps a normalizer date error to its rejection reason.
func dateReason(err error) domain.RejectReason {
	if errors.Is(err, domain.ErrDateOutOfRange) {
		return domain.ReasonDateOutOfRange
	}
	return domain.ReasonUnparseableDate
}

func (c *Classifier) categorize(description string) string {
	lower := strings.ToLower(description)
	for _, rule := range c.rules {
		if strings.Contains(lower, strings.ToLower(rule.Keyword)) {
			return rule.Label
		}
	}
	return ""
}

// dateCell drops a trailing time component ("12/01/2024 10:33:05").
func dateCell(cell string) string {
	cell = strings.TrimSpace(cell)
	if i := strings.IndexByte(cell, ' '); i > 0 && strings.Contains(cell[i+1:], ":") {
		return cell[:i]
	}
	return cell
}

func hasDebitHint(description string) bool {
	lower := strings.ToLower(description)
	for _, hint := range debitHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
