// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/dashboard/overview", "200"))
	ObserveAPIRequest("GET", "/api/v1/dashboard/overview", 200, 25*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/dashboard/overview", "200"))

	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestObserveIngest(t *testing.T) {
	before := testutil.ToFloat64(IngestRecords.WithLabelValues("firms"))
	ObserveIngest("firms", 42, time.Second, nil)
	after := testutil.ToFloat64(IngestRecords.WithLabelValues("firms"))
	if after != before+42 {
		t.Errorf("records counter = %v, want %v", after, before+42)
	}

	errBefore := testutil.ToFloat64(IngestFetchErrors.WithLabelValues("firms", "fetch"))
	ObserveIngest("firms", 0, time.Second, errors.New("timeout"))
	errAfter := testutil.ToFloat64(IngestFetchErrors.WithLabelValues("firms", "fetch"))
	if errAfter != errBefore+1 {
		t.Errorf("error counter = %v, want %v", errAfter, errBefore+1)
	}
}

func TestGaugesSettable(t *testing.T) {
	ThreatLevel.Set(0.65)
	if got := testutil.ToFloat64(ThreatLevel); got != 0.65 {
		t.Errorf("ThreatLevel = %v, want 0.65", got)
	}

	RegionsCritical.Set(3)
	if got := testutil.ToFloat64(RegionsCritical); got != 3 {
		t.Errorf("RegionsCritical = %v, want 3", got)
	}
}
