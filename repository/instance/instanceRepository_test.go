package instancerepo

import (
	"testing"
	"time"

	"webbooks/model"

	"github.com/stretchr/testify/require"
)

func TestFilterWhere(t *testing.T) {
	require.Empty(t, filterWhere(model.InstanceFilter{}))

	status, borrower := int64(2), int64(7)
	on := model.NewDate(2025, time.March, 1)
	w := filterWhere(model.InstanceFilter{StatusID: &status, BorrowerID: &borrower, OverdueOn: &on})
	require.Len(t, w, 3)

	sql, args, err := selectQuery().Where(w...).ToSQL()
	require.NoError(t, err)
	require.Contains(t, sql, `"bi"."status_id" = $`)
	require.Contains(t, sql, `"bi"."borrower_id" = $`)
	require.Contains(t, sql, `"bi"."due_back" < $`)
	require.Contains(t, args, int64(2))
	require.Contains(t, args, int64(7))
}

func TestStatusSubquery(t *testing.T) {
	sql, args, err := statusID(model.StatusOnLoan).ToSQL()
	require.NoError(t, err)
	require.Contains(t, sql, `FROM "statuses"`)
	require.Contains(t, args, model.StatusOnLoan)
}

func TestRecordNulls(t *testing.T) {
	r := record(&model.BookInstance{Imprint: "Penguin, 1999"})
	require.Nil(t, r["book_id"])
	require.Nil(t, r["borrower_id"])
	require.Nil(t, r["due_back"])
	require.Nil(t, r["inventory_number"])

	inv := "INV-1"
	due := model.NewDate(2025, time.May, 2)
	r = record(&model.BookInstance{InventoryNumber: &inv, DueBack: &due, Borrower: &model.UserRef{ID: 4}})
	require.Equal(t, "INV-1", r["inventory_number"])
	require.Equal(t, due.Time, r["due_back"])
	require.Equal(t, int64(4), r["borrower_id"])
}
