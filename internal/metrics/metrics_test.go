// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordSearch(t *testing.T) {
	before := testutil.ToFloat64(SearchRequests.WithLabelValues("ok"))
	RecordSearch("ok", 12*time.Millisecond, 7)
	after := testutil.ToFloat64(SearchRequests.WithLabelValues("ok"))

	if after-before != 1 {
		t.Errorf("search_requests_total{ok} delta = %v, want 1", after-before)
	}
}

func TestRecordSourceFetch(t *testing.T) {
	before := testutil.ToFloat64(SourceRecords.WithLabelValues("local"))
	RecordSourceFetch("local", time.Millisecond, 4, nil)
	RecordSourceFetch("local", time.Millisecond, 9, errors.New("boom"))
	after := testutil.ToFloat64(SourceRecords.WithLabelValues("local"))

	if after-before != 4 {
		t.Errorf("source_records_total{local} delta = %v, want 4 (failed fetch must not count)", after-before)
	}
}

func TestRecordMalformed(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want float64
	}{
		{"counts drops", 3, 3},
		{"ignores zero", 0, 0},
		{"ignores negative", -2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := MalformedRecords.WithLabelValues("primary", "menu_item")
			before := testutil.ToFloat64(c)
			RecordMalformed("primary", "menu_item", tt.n)
			if got := testutil.ToFloat64(c) - before; got != tt.want {
				t.Errorf("delta = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecordDegraded(t *testing.T) {
	before := testutil.ToFloat64(DegradedResponses.WithLabelValues("primary"))
	RecordDegraded("primary")
	if got := testutil.ToFloat64(DegradedResponses.WithLabelValues("primary")) - before; got != 1 {
		t.Errorf("delta = %v, want 1", got)
	}
}

func TestRecordDBQuery(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "restaurants"))
	RecordDBQuery("SELECT", "restaurants", time.Millisecond, nil)
	RecordDBQuery("SELECT", "restaurants", time.Millisecond, errors.New("io"))
	if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "restaurants")) - before; got != 1 {
		t.Errorf("errors delta = %v, want 1", got)
	}
}

func TestRecordEventHandled(t *testing.T) {
	RecordEventHandled("forkcast.local.changed", nil)
	RecordEventHandled("forkcast.local.changed", errors.New("x"))

	if testutil.ToFloat64(EventsHandled.WithLabelValues("forkcast.local.changed", "success")) < 1 {
		t.Error("success not recorded")
	}
	if testutil.ToFloat64(EventsHandled.WithLabelValues("forkcast.local.changed", "failure")) < 1 {
		t.Error("failure not recorded")
	}
}

func TestRecordAPIRequest(t *testing.T) {
	RecordAPIRequest("GET", "/api/v1/search", "200", 5*time.Millisecond)
	if testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/search", "200")) < 1 {
		t.Error("api request not recorded")
	}
}
