package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/books", "200"))
	RecordAPIRequest("GET", "/books", 200, 15*time.Millisecond)
	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/books", "200"))
	require.Equal(t, before+1, after)
}

func TestObserveQueryCountsErrors(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("select"))
	ObserveQuery("select", time.Millisecond, nil)
	ObserveQuery("select", time.Millisecond, errors.New("boom"))
	require.Equal(t, before+1, testutil.ToFloat64(DBQueryErrors.WithLabelValues("select")))
}

func TestSetOverdueCopies(t *testing.T) {
	SetOverdueCopies(3)
	require.Equal(t, 3.0, testutil.ToFloat64(OverdueCopies))
	SetOverdueCopies(0)
	require.Equal(t, 0.0, testutil.ToFloat64(OverdueCopies))
}

func TestRecordLoanEvent(t *testing.T) {
	before := testutil.ToFloat64(LoanEvents.WithLabelValues("lend"))
	RecordLoanEvent("lend")
	require.Equal(t, before+1, testutil.ToFloat64(LoanEvents.WithLabelValues("lend")))
}
