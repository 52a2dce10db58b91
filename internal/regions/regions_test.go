// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package regions

import (
	"testing"

	"github.com/tomtom215/borderwatch/internal/geo"
	"github.com/tomtom215/borderwatch/internal/models"
)

func TestDefaultRegistry(t *testing.T) {
	reg := Default()

	if reg.Len() != 21 {
		t.Fatalf("default registry has %d regions, want 21", reg.Len())
	}

	capital, ok := reg.Get("Birnin Kebbi")
	if !ok {
		t.Fatal("Birnin Kebbi missing from default registry")
	}
	if capital.Risk != models.RiskLow {
		t.Errorf("Birnin Kebbi baseline risk = %q, want low", capital.Risk)
	}

	for _, r := range reg.All() {
		if !r.Center.Valid() {
			t.Errorf("region %q has invalid center", r.Name)
		}
	}
}

func TestNewRegistryValidation(t *testing.T) {
	valid := Region{Name: "Testville", Center: geo.Point{Lat: 12, Lon: 4}, Risk: models.RiskLow}

	tests := []struct {
		name    string
		list    []Region
		wantErr bool
	}{
		{"valid single region", []Region{valid}, false},
		{"empty list", nil, true},
		{"empty name", []Region{{Center: geo.Point{Lat: 12, Lon: 4}, Risk: models.RiskLow}}, true},
		{"duplicate name", []Region{valid, valid}, true},
		{
			"invalid center",
			[]Region{{Name: "Bad", Center: geo.Point{Lat: 95, Lon: 4}, Risk: models.RiskLow}},
			true,
		},
		{
			"unknown risk level",
			[]Region{{Name: "Bad", Center: geo.Point{Lat: 12, Lon: 4}, Risk: "extreme"}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.list)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewRegistry error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTagsFor(t *testing.T) {
	reg := Default()

	tests := []struct {
		name string
		want Tags
	}{
		{"Dandi", Tags{Border: true}},
		{"Augie", Tags{Border: true}},
		{"Argungu", Tags{Border: true}},
		{"Bagudo", Tags{Border: true}},
		{"Fakai", Tags{Corridor: true, RiskCorridor: true}},
		{"Zuru", Tags{Corridor: true, RiskCorridor: true}},
		{"Wasagu/Danko", Tags{Corridor: true, RiskCorridor: true}},
		{"Sakaba", Tags{Corridor: true, RiskCorridor: true}},
		// The dynamic-risk southern set is wider than the predictor corridor.
		{"Shanga", Tags{RiskCorridor: true}},
		{"Koko/Besse", Tags{RiskCorridor: true}},
		{"Yauri", Tags{RiskCorridor: true}},
		// Untagged region.
		{"Birnin Kebbi", Tags{}},
		// Unknown name means no bonus, never an error.
		{"Atlantis", Tags{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reg.TagsFor(tt.name); got != tt.want {
				t.Errorf("TagsFor(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}
