package importer

// Canonical column names, in canonical order.
const (
	ColDate        = "date"
	ColDescription = "description"
	ColAmount      = "amount"
	ColCategory    = "category"
	ColAccount     = "account"
)

// CanonicalColumns is the column set of every normalized table.
var CanonicalColumns = []string{ColDate, ColDescription, ColAmount, ColCategory, ColAccount}

// Layout describes one bank export: canonical column name -> the header the
// bank uses for it.
type Layout struct {
	Name    string
	Headers map[string]string
}

// Matches reports whether every header the layout declares is present in t.
func (l Layout) Matches(t *Table) bool {
	if len(l.Headers) == 0 {
		return false
	}
	for _, src := range l.Headers {
		if !t.HasColumn(src) {
			return false
		}
	}
	return true
}

// Apply returns a copy of t with the layout's source headers renamed to
// their canonical names. Rows are shared with t.
func (l Layout) Apply(t *Table) *Table {
	rename := make(map[string]string, len(l.Headers))
	for canonical, src := range l.Headers {
		rename[src] = canonical
	}
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		if canonical, ok := rename[c]; ok {
			cols[i] = canonical
		} else {
			cols[i] = c
		}
	}
	return &Table{Columns: cols, Rows: t.Rows}
}

// Layouts is an ordered list of known export layouts. The first layout
// whose headers are all present wins; layouts are never mixed.
type Layouts []Layout

// DefaultLayouts returns the built-in layouts in match order.
func DefaultLayouts() Layouts {
	return Layouts{
		{
			Name: "generic",
			Headers: map[string]string{
				ColDate:        "Date",
				ColDescription: "Description",
				ColAmount:      "Amount",
				ColCategory:    "Category",
				ColAccount:     "Account",
			},
		},
		{
			Name: "details",
			Headers: map[string]string{
				ColDate:        "Transaction Date",
				ColDescription: "Details",
				ColAmount:      "Debit/Credit",
				ColCategory:    "Category",
				ColAccount:     "Account Name",
			},
		},
		{
			Name: "payee",
			Headers: map[string]string{
				ColDate:        "Posted Date",
				ColDescription: "Payee",
				ColAmount:      "Amount",
				ColCategory:    "Category",
				ColAccount:     "Account",
			},
		},
	}
}

// Detect returns the first layout matching t.
func (ls Layouts) Detect(t *Table) (Layout, bool) {
	for _, l := range ls {
		if l.Matches(t) {
			return l, true
		}
	}
	return Layout{}, false
}

// Map renames t's columns using the first matching layout. When nothing
// matches, t is returned unchanged along with an empty layout name.
func (ls Layouts) Map(t *Table) (*Table, string) {
	l, ok := ls.Detect(t)
	if !ok {
		return t, ""
	}
	return l.Apply(t), l.Name
}
