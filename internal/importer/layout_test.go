package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayouts_Map(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		layout  string
		want    []string
	}{
		{
			name:    "generic",
			columns: []string{"Date", "Description", "Amount", "Category", "Account"},
			layout:  "generic",
			want:    []string{"date", "description", "amount", "category", "account"},
		},
		{
			name:    "details with extra column",
			columns: []string{"Transaction Date", "Details", "Debit/Credit", "Category", "Account Name", "Reference"},
			layout:  "details",
			want:    []string{"date", "description", "amount", "category", "account", "Reference"},
		},
		{
			name:    "payee",
			columns: []string{"Account", "Posted Date", "Payee", "Amount", "Category"},
			layout:  "payee",
			want:    []string{"account", "date", "description", "amount", "category"},
		},
		{
			name:    "partial match is no match",
			columns: []string{"Date", "Description", "Amount"},
			layout:  "",
			want:    []string{"Date", "Description", "Amount"},
		},
		{
			name:    "case sensitive",
			columns: []string{"date", "description", "amount", "category", "account"},
			layout:  "",
			want:    []string{"date", "description", "amount", "category", "account"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &Table{Columns: tt.columns, Rows: [][]string{make([]string, len(tt.columns))}}
			out, layout := DefaultLayouts().Map(in)
			assert.Equal(t, tt.layout, layout)
			assert.Equal(t, tt.want, out.Columns)
			assert.Len(t, out.Rows, 1)
		})
	}
}

func TestLayouts_FirstMatchWins(t *testing.T) {
	ls := Layouts{
		{Name: "first", Headers: map[string]string{ColDate: "When"}},
		{Name: "second", Headers: map[string]string{ColDate: "When", ColAmount: "How Much"}},
	}
	_, layout := ls.Map(&Table{Columns: []string{"When", "How Much"}})
	assert.Equal(t, "first", layout)
}

func TestLayout_EmptyNeverMatches(t *testing.T) {
	assert.False(t, Layout{Name: "empty"}.Matches(&Table{Columns: []string{"Date"}}))
}

func TestLayout_ApplyLeavesInputAlone(t *testing.T) {
	in := &Table{Columns: []string{"Posted Date", "Payee", "Amount", "Category", "Account"}}
	_, _ = DefaultLayouts().Map(in)
	assert.Equal(t, "Posted Date", in.Columns[0])
}
