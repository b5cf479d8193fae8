package engine

import "time"

// Defaults for the parsing and summarization policy.
const (
	DefaultTopN        = 10
	DefaultMaxAgeYears = 100
)

// Config controls parsing policy and summary shape for one pipeline.
// It is plain data passed at construction, never process-wide state, so
// documents with different layouts can be processed concurrently.
type Config struct {
	// DayFirst resolves ambiguous numeric dates as day/month/year.
	DayFirst bool
	// AsOf anchors the plausible-date window; dates after it are
	// rejected. Zero means time.Now.
	AsOf time.Time
	// MaxDateAgeYears is how far before AsOf a date may lie.
	MaxDateAgeYears int
	// TopN is the number of highlighted transactions per month and
	// overall.
	TopN int
	// Layouts are the known table column-role presets, tried in order.
	Layouts []ColumnLayout
	// CategoryRules is the ordered keyword rule list; the first match
	// labels the transaction.
	CategoryRules []CategoryRule
}

// DefaultConfig returns the stock policy: day-first dates, a 100-year
// window ending today, top 10 movements, the built-in layouts, and the
// built-in category rules.
func DefaultConfig() Config {
	return Config{
		DayFirst:        true,
		AsOf:            time.Now().UTC(),
		MaxDateAgeYears: DefaultMaxAgeYears,
		TopN:            DefaultTopN,
		Layouts:         DefaultLayouts(),
		CategoryRules:   DefaultCategoryRules(),
	}
}

// DefaultLayouts returns the built-in table presets, most specific
// first. The mobile-money preset matches seven-column exports with a
// completion-time column; the generic preset matches the common
// date/description/debit/credit/balance shape; the compact preset the
// same without a balance column.
func DefaultLayouts() []ColumnLayout {
	return []ColumnLayout{
		{Name: "mobile-money", MinCells: 7, Date: 1, Description: 2, Credit: 4, Debit: 5, Balance: 6},
		{Name: "generic", MinCells: 5, Date: 0, Description: 1, Debit: 2, Credit: 3, Balance: 4},
		{Name: "compact", MinCells: 4, Date: 0, Description: 1, Debit: 2, Credit: 3, Balance: -1},
	}
}

// DefaultCategoryRules returns the built-in ordered keyword rules.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{Keyword: "transfer", Label: "transfer"},
		{Keyword: "airtime", Label: "airtime"},
		{Keyword: "withdraw", Label: "withdrawal"},
		{Keyword: "atm", Label: "withdrawal"},
		{Keyword: "salary", Label: "salary"},
		{Keyword: "payroll", Label: "salary"},
		{Keyword: "wage", Label: "salary"},
		{Keyword: "electric", Label: "utilities"},
		{Keyword: "water", Label: "utilities"},
		{Keyword: "utility", Label: "utilities"},
		{Keyword: "restaurant", Label: "food"},
		{Keyword: "grocery", Label: "food"},
		{Keyword: "cafe", Label: "food"},
		{Keyword: "food", Label: "food"},
		{Keyword: "fuel", Label: "transport"},
		{Keyword: "taxi", Label: "transport"},
		{Keyword: "uber", Label: "transport"},
		{Keyword: "bus fare", Label: "transport"},
		{Keyword: "amazon", Label: "shopping"},
		{Keyword: "retail", Label: "shopping"},
		{Keyword: "store", Label: "shopping"},
		{Keyword: "fee", Label: "banking"},
		{Keyword: "charge", Label: "banking"},
		{Keyword: "interest", Label: "banking"},
	}
}

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if c.AsOf.IsZero() {
		c.AsOf = time.Now().UTC()
	}
	if c.MaxDateAgeYears <= 0 {
		c.MaxDateAgeYears = DefaultMaxAgeYears
	}
	if c.TopN <= 0 {
		c.TopN = DefaultTopN
	}
	if c.Layouts == nil {
		c.Layouts = DefaultLayouts()
	}
	if c.CategoryRules == nil {
		c.CategoryRules = DefaultCategoryRules()
	}
	return c
}
