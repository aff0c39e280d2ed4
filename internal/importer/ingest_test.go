package importer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financellm/financellm/internal/importer"
	"github.com/financellm/financellm/internal/logger"
	"github.com/financellm/financellm/internal/model"
	"github.com/financellm/financellm/internal/store"
)

type fakeStore struct {
	rules     []model.BudgetRule
	rulesErr  error
	insertErr error
	inserted  [][]model.Transaction
	listCalls int
}

func (f *fakeStore) ListRules(context.Context) ([]model.BudgetRule, error) {
	f.listCalls++
	return f.rules, f.rulesErr
}

func (f *fakeStore) InsertTransactions(_ context.Context, txns []model.Transaction) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, txns)
	return nil
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	return data
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "finance.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestIngest_Generic(t *testing.T) {
	fs := &fakeStore{rules: []model.BudgetRule{{ID: 1, Pattern: "coffee", Category: "Dining"}}}
	svc := importer.NewService(fs, logger.Nop())

	n, err := svc.Ingest(context.Background(), readFixture(t, "generic.csv"), "")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	require.Len(t, fs.inserted, 1)

	txns := fs.inserted[0]
	require.Len(t, txns, 4)
	assert.Equal(t, "Coffee Shop", txns[0].Description)
	require.NotNil(t, txns[0].Category)
	assert.Equal(t, "Dining", *txns[0].Category)
	assert.Equal(t, "-4.5", txns[0].Amount.String())
	assert.Equal(t, "Income", *txns[1].Category)
	assert.Nil(t, txns[2].Category)
	for _, tx := range txns {
		assert.Nil(t, tx.Raw)
		assert.Equal(t, "Checking", *tx.Account)
	}
}

func TestIngest_DetailsLayout(t *testing.T) {
	fs := &fakeStore{}
	svc := importer.NewService(fs, logger.Nop())

	n, err := svc.Ingest(context.Background(), readFixture(t, "details.csv"), "")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	txns := fs.inserted[0]
	assert.Equal(t, "NETFLIX.COM", txns[0].Description)
	assert.Equal(t, "2024-01-15", txns[0].Date.Format("2006-01-02"))
	assert.Equal(t, "Visa", *txns[0].Account)
	assert.True(t, txns[2].Amount.IsZero(), "unparsable amount defaults to 0")
}

func TestIngest_PayeeLayout(t *testing.T) {
	fs := &fakeStore{}
	svc := importer.NewService(fs, logger.Nop())

	n, err := svc.Ingest(context.Background(), readFixture(t, "payee.csv"), "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "City Water", fs.inserted[0][0].Description)
	assert.Equal(t, "2024-03-03", fs.inserted[0][0].Date.Format("2006-01-02"))
}

func TestIngest_RuleOverridesSourceCategory(t *testing.T) {
	fs := &fakeStore{rules: []model.BudgetRule{
		{ID: 1, Pattern: "NETFLIX", Category: "Subscriptions"},
		{ID: 2, Pattern: "netflix.com", Category: "Streaming"},
	}}
	svc := importer.NewService(fs, logger.Nop())

	_, err := svc.Ingest(context.Background(), readFixture(t, "details.csv"), "")
	require.NoError(t, err)
	assert.Equal(t, "Subscriptions", *fs.inserted[0][0].Category)
}

func TestIngest_AccountHint(t *testing.T) {
	fs := &fakeStore{}
	svc := importer.NewService(fs, logger.Nop())

	blob := []byte("date,description,amount,account\n2024-01-01,a,1,\n2024-01-02,b,2,Savings\n")
	_, err := svc.Ingest(context.Background(), blob, "Checking")
	require.NoError(t, err)

	txns := fs.inserted[0]
	assert.Equal(t, "Checking", *txns[0].Account)
	assert.Equal(t, "Savings", *txns[1].Account)
}

func TestIngest_UnmatchedLayoutIsNull(t *testing.T) {
	fs := &fakeStore{}
	svc := importer.NewService(fs, logger.Nop())

	blob := []byte("date,Memo,Value\n2024-01-01,lunch,9.99\n")
	n, err := svc.Ingest(context.Background(), blob, "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	tx := fs.inserted[0][0]
	assert.Equal(t, "", tx.Description)
	assert.True(t, tx.Amount.IsZero())
	assert.Nil(t, tx.Category)
	assert.Nil(t, tx.Account)
}

func TestIngest_HeaderOnly(t *testing.T) {
	fs := &fakeStore{}
	svc := importer.NewService(fs, logger.Nop())

	n, err := svc.Ingest(context.Background(), readFixture(t, "header_only.csv"), "")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, fs.inserted)
	assert.Zero(t, fs.listCalls)
}

func TestIngest_BadDate(t *testing.T) {
	fs := &fakeStore{}
	svc := importer.NewService(fs, logger.Nop())

	_, err := svc.Ingest(context.Background(), readFixture(t, "bad_date.csv"), "")
	var perr *importer.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 4, perr.Row)
	assert.Empty(t, fs.inserted)
}

func TestIngest_ListRulesFails(t *testing.T) {
	fs := &fakeStore{rulesErr: errors.New("disk on fire")}
	svc := importer.NewService(fs, logger.Nop())

	_, err := svc.Ingest(context.Background(), readFixture(t, "generic.csv"), "")
	var perr *importer.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "listing rules", perr.Op)
}

func TestIngest_InsertFails(t *testing.T) {
	boom := errors.New("database is locked")
	fs := &fakeStore{insertErr: boom}
	svc := importer.NewService(fs, logger.Nop())

	_, err := svc.Ingest(context.Background(), readFixture(t, "generic.csv"), "")
	var perr *importer.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.ErrorIs(t, err, boom)
}

func TestIngest_CustomLayouts(t *testing.T) {
	fs := &fakeStore{}
	svc := importer.NewService(fs, logger.Nop()).WithLayouts(importer.Layouts{
		{Name: "bank", Headers: map[string]string{importer.ColDate: "Booked", importer.ColAmount: "Sum"}},
	})

	_, err := svc.Ingest(context.Background(), []byte("Booked,Sum\n2024-05-01,7.25\n"), "")
	require.NoError(t, err)
	assert.Equal(t, "7.25", fs.inserted[0][0].Amount.String())
}

func TestIngest_SQLite_RuleAddedLater(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	svc := importer.NewService(st, logger.Nop())
	blob := []byte("Date,Description,Amount,Category,Account\n2024-01-05,Coffee Shop,-4.50,,Checking\n")

	n, err := svc.Ingest(ctx, blob, "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = st.AddRule(ctx, "coffee", "Dining")
	require.NoError(t, err)

	_, err = svc.Ingest(ctx, blob, "")
	require.NoError(t, err)

	txns, err := st.ListTransactions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, txns, 2)

	var categories []*string
	for _, tx := range txns {
		categories = append(categories, tx.Category)
	}
	assert.Contains(t, categories, (*string)(nil), "stored rows are not recategorized")
	dining := 0
	for _, c := range categories {
		if c != nil && *c == "Dining" {
			dining++
		}
	}
	assert.Equal(t, 1, dining)
}

func TestIngest_SQLite_BadDateLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	svc := importer.NewService(st, logger.Nop())

	_, err := svc.Ingest(ctx, readFixture(t, "generic.csv"), "")
	require.NoError(t, err)
	before, err := st.CountTransactions(ctx)
	require.NoError(t, err)

	_, err = svc.Ingest(ctx, readFixture(t, "bad_date.csv"), "")
	var perr *importer.ParseError
	require.True(t, errors.As(err, &perr))

	after, err := st.CountTransactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
