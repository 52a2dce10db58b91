// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

// Package regions holds the static Region registry: the administrative
// subregions (LGAs) that form the scoring granularity of the system.
//
// The registry is reference data. It is loaded once at process start, either
// from configuration or from the built-in defaults, and is immutable
// afterwards. Scoring requests may read it concurrently without locking.
package regions

import (
	"fmt"

	"github.com/tomtom215/borderwatch/internal/geo"
	"github.com/tomtom215/borderwatch/internal/models"
)

// Region is one administrative subregion. Name is the unique key and is
// matched as a case-insensitive substring against intel report text.
type Region struct {
	Name   string           `json:"name" koanf:"name"`
	Center geo.Point        `json:"center" koanf:"center"`
	Risk   models.RiskLevel `json:"risk" koanf:"risk"`
}

// Tags marks a region's membership in the fixed geographic risk sets.
// A tagged lookup table replaces repeated set-membership checks scattered
// across the scoring functions.
type Tags struct {
	// Border regions sit on an international boundary and carry the 1.2x
	// predictor multiplier and the +0.15 dynamic-risk bonus.
	Border bool
	// Corridor regions form the predictor's southern corridor: the 1.3x
	// multiplier set.
	Corridor bool
	// RiskCorridor is the dynamic-risk model's southern set. It is a
	// superset of Corridor; the two sets are maintained independently and
	// intentionally differ.
	RiskCorridor bool
}

// Registry is the immutable set of regions plus their geographic tags.
type Registry struct {
	regions []Region
	tags    map[string]Tags
}

// Border and corridor membership. The predictor's corridor set and the
// dynamic-risk model's southern set are two distinct curated lists.
var (
	borderNames = []string{"Dandi", "Augie", "Argungu", "Bagudo"}

	corridorNames = []string{"Fakai", "Sakaba", "Wasagu/Danko", "Zuru"}

	riskCorridorNames = []string{
		"Fakai", "Sakaba", "Wasagu/Danko", "Zuru",
		"Shanga", "Koko/Besse", "Yauri",
	}
)

// NewRegistry builds a registry from the given regions, validating each
// record. Region names must be unique and non-empty; centers must be valid
// coordinates; risk labels must be one of the four known levels.
func NewRegistry(list []Region) (*Registry, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("region registry is empty")
	}

	seen := make(map[string]struct{}, len(list))
	for _, r := range list {
		if r.Name == "" {
			return nil, fmt.Errorf("region with empty name")
		}
		if _, dup := seen[r.Name]; dup {
			return nil, fmt.Errorf("duplicate region name %q", r.Name)
		}
		seen[r.Name] = struct{}{}
		if !r.Center.Valid() {
			return nil, fmt.Errorf("region %q has invalid center (%v, %v)", r.Name, r.Center.Lat, r.Center.Lon)
		}
		if !r.Risk.Valid() {
			return nil, fmt.Errorf("region %q has unknown risk level %q", r.Name, r.Risk)
		}
	}

	tags := make(map[string]Tags, len(list))
	for _, n := range borderNames {
		t := tags[n]
		t.Border = true
		tags[n] = t
	}
	for _, n := range corridorNames {
		t := tags[n]
		t.Corridor = true
		tags[n] = t
	}
	for _, n := range riskCorridorNames {
		t := tags[n]
		t.RiskCorridor = true
		tags[n] = t
	}

	regions := make([]Region, len(list))
	copy(regions, list)

	return &Registry{regions: regions, tags: tags}, nil
}

// All returns the regions in registry order. Callers must not mutate the
// returned slice.
func (reg *Registry) All() []Region {
	return reg.regions
}

// Len returns the number of regions.
func (reg *Registry) Len() int {
	return len(reg.regions)
}

// Get returns the region with the given name.
func (reg *Registry) Get(name string) (Region, bool) {
	for _, r := range reg.regions {
		if r.Name == name {
			return r, true
		}
	}
	return Region{}, false
}

// TagsFor returns the geographic tags for a region name. Names outside the
// fixed sets return the zero Tags value: membership lookups on unknown
// regions mean "no bonus", never an error.
func (reg *Registry) TagsFor(name string) Tags {
	return reg.tags[name]
}

// Default returns the built-in 21-region registry covering the target
// geography, with verified LGA centroids and configured baseline risk.
func Default() *Registry {
	reg, err := NewRegistry(defaultRegions)
	if err != nil {
		// The built-in table is validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return reg
}

var defaultRegions = []Region{
	{Name: "Aleiro", Center: geo.Point{Lat: 12.3167, Lon: 4.6833}, Risk: models.RiskMedium},
	{Name: "Arewa Dandi", Center: geo.Point{Lat: 12.6000, Lon: 4.4333}, Risk: models.RiskLow},
	{Name: "Argungu", Center: geo.Point{Lat: 12.7448, Lon: 4.5251}, Risk: models.RiskMedium},
	{Name: "Augie", Center: geo.Point{Lat: 12.8900, Lon: 4.2000}, Risk: models.RiskHigh},
	{Name: "Bagudo", Center: geo.Point{Lat: 11.4000, Lon: 4.2167}, Risk: models.RiskMedium},
	{Name: "Birnin Kebbi", Center: geo.Point{Lat: 12.4539, Lon: 4.1975}, Risk: models.RiskLow},
	{Name: "Bunza", Center: geo.Point{Lat: 12.6667, Lon: 4.0167}, Risk: models.RiskMedium},
	{Name: "Dandi", Center: geo.Point{Lat: 11.7333, Lon: 3.8833}, Risk: models.RiskHigh},
	{Name: "Fakai", Center: geo.Point{Lat: 11.5500, Lon: 4.4000}, Risk: models.RiskCritical},
	{Name: "Gwandu", Center: geo.Point{Lat: 12.5000, Lon: 4.4667}, Risk: models.RiskMedium},
	{Name: "Jega", Center: geo.Point{Lat: 12.2236, Lon: 4.3791}, Risk: models.RiskLow},
	{Name: "Kalgo", Center: geo.Point{Lat: 12.3167, Lon: 4.2000}, Risk: models.RiskLow},
	{Name: "Koko/Besse", Center: geo.Point{Lat: 11.4167, Lon: 4.1333}, Risk: models.RiskHigh},
	{Name: "Maiyama", Center: geo.Point{Lat: 12.0833, Lon: 4.6167}, Risk: models.RiskMedium},
	{Name: "Ngaski", Center: geo.Point{Lat: 10.9667, Lon: 4.0833}, Risk: models.RiskHigh},
	{Name: "Sakaba", Center: geo.Point{Lat: 11.0833, Lon: 5.6167}, Risk: models.RiskCritical},
	{Name: "Shanga", Center: geo.Point{Lat: 11.2000, Lon: 4.5833}, Risk: models.RiskHigh},
	{Name: "Suru", Center: geo.Point{Lat: 11.6667, Lon: 4.1667}, Risk: models.RiskMedium},
	{Name: "Wasagu/Danko", Center: geo.Point{Lat: 11.3500, Lon: 5.4500}, Risk: models.RiskCritical},
	{Name: "Yauri", Center: geo.Point{Lat: 10.8333, Lon: 4.7667}, Risk: models.RiskHigh},
	{Name: "Zuru", Center: geo.Point{Lat: 11.4308, Lon: 5.2309}, Risk: models.RiskCritical},
}
