package model_test

import (
	"testing"
	"time"

	"webbooks/model"

	"github.com/stretchr/testify/require"
)

func datePtr(y int, m time.Month, d int) *model.Date {
	v := model.NewDate(y, m, d)
	return &v
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)

	cases := []struct {
		name    string
		dueBack *model.Date
		want    bool
	}{
		{"unset", nil, false},
		{"yesterday", datePtr(2024, time.March, 9), true},
		{"long ago", datePtr(2023, time.December, 31), true},
		{"today", datePtr(2024, time.March, 10), false},
		{"tomorrow", datePtr(2024, time.March, 11), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bi := model.BookInstance{DueBack: tc.dueBack}
			require.Equal(t, tc.want, bi.IsOverdue(now))
		})
	}
}

func TestIsOverdue_UsesCalendarDateOfNow(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	// 2024-03-10 01:00 in UTC+5 is still 2024-03-09 in UTC.
	now := time.Date(2024, time.March, 10, 1, 0, 0, 0, loc)
	bi := model.BookInstance{DueBack: datePtr(2024, time.March, 9)}
	require.True(t, bi.IsOverdue(now))
}

func TestStamp(t *testing.T) {
	bi := model.BookInstance{DueBack: datePtr(2020, time.January, 1)}
	bi.Stamp(time.Now())
	require.True(t, bi.Overdue)
}

func TestBookInstanceString(t *testing.T) {
	inv := "INV-7"
	bi := model.BookInstance{InventoryNumber: &inv, BookTitle: "Dune", StatusName: model.StatusOnLoan}
	require.Equal(t, "INV-7 Dune On loan", bi.String())
}
