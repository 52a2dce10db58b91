// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package ingest

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/borderwatch/internal/geo"
	"github.com/tomtom215/borderwatch/internal/logging"
	"github.com/tomtom215/borderwatch/internal/metrics"
	"github.com/tomtom215/borderwatch/internal/models"
)

// Sensors queried by FetchAllSensors, in query order.
var firmsSensors = []string{"VIIRS_SNPP_NRT", "VIIRS_NOAA20_NRT", "MODIS_NRT"}

// dedupeProximityDeg is the coordinate box (degrees) inside which two
// detections from different sensors count as the same fire.
const dedupeProximityDeg = 0.01

// maxResponseBytes caps the FIRMS response body read.
const maxResponseBytes = 10 << 20

// FIRMSOptions configures the thermal detection client.
type FIRMSOptions struct {
	BaseURL string
	APIKey  string

	// Area is the bounding box "west,south,east,north" passed to the API
	// and used to filter returned points.
	Area string

	// DayRange is how many days of detections to request.
	DayRange int

	Timeout time.Duration

	// RequestsPerMinute throttles upstream calls. Zero means 10.
	RequestsPerMinute int
}

// FIRMSClient fetches active fire detections from the NASA FIRMS area CSV
// API. All calls go through a circuit breaker so a failing upstream cannot
// pile up timed-out requests, and a rate limiter keeps within the API's
// usage policy.
type FIRMSClient struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]models.ThermalDetection]
	limiter    *rate.Limiter
	opts       FIRMSOptions
	bounds     *boundingBox
}

type boundingBox struct {
	west, south, east, north float64
}

func (b *boundingBox) contains(p geo.Point) bool {
	return p.Lat >= b.south && p.Lat <= b.north && p.Lon >= b.west && p.Lon <= b.east
}

// NewFIRMSClient builds the client. The area string is parsed once; an
// unparseable area disables the bounds filter rather than failing.
func NewFIRMSClient(opts FIRMSOptions) *FIRMSClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.DayRange <= 0 {
		opts.DayRange = 2
	}
	rpm := opts.RequestsPerMinute
	if rpm <= 0 {
		rpm = 10
	}

	breaker := gobreaker.NewCircuitBreaker[[]models.ThermalDetection](gobreaker.Settings{
		Name:    "firms",
		Timeout: time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			open := 0.0
			if to == gobreaker.StateOpen {
				open = 1.0
			}
			metrics.IngestBreakerState.WithLabelValues(name).Set(open)
			logging.Warn().Str("feed", name).Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})

	return &FIRMSClient{
		httpClient: &http.Client{Timeout: opts.Timeout},
		breaker:    breaker,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
		opts:       opts,
		bounds:     parseBounds(opts.Area),
	}
}

func parseBounds(area string) *boundingBox {
	parts := strings.Split(area, ",")
	if len(parts) != 4 {
		return nil
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil
		}
		vals[i] = v
	}
	return &boundingBox{west: vals[0], south: vals[1], east: vals[2], north: vals[3]}
}

// FetchHotspots fetches detections from one sensor.
func (c *FIRMSClient) FetchHotspots(ctx context.Context, sensor string) ([]models.ThermalDetection, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	detections, err := c.breaker.Execute(func() ([]models.ThermalDetection, error) {
		return c.fetch(ctx, sensor)
	})
	metrics.ObserveIngest("firms", len(detections), time.Since(start), err)
	return detections, err
}

func (c *FIRMSClient) fetch(ctx context.Context, sensor string) ([]models.ThermalDetection, error) {
	url := fmt.Sprintf("%s/%s/%s/%s/%d", c.opts.BaseURL, c.opts.APIKey, sensor, c.opts.Area, c.opts.DayRange)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("firms request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("firms fetch %s: %w", sensor, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("firms fetch %s: unexpected status %d", sensor, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("firms read %s: %w", sensor, err)
	}

	return c.parseCSV(string(body), sensor), nil
}

// parseCSV converts the FIRMS area CSV into detections. Malformed rows and
// rows outside the configured bounds are skipped and counted; a batch never
// fails because of individual bad rows.
func (c *FIRMSClient) parseCSV(body, sensor string) []models.ThermalDetection {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) < 2 {
		return nil
	}

	headers := strings.Split(lines[0], ",")
	col := make(map[string]int, len(headers))
	for i, h := range headers {
		col[strings.TrimSpace(h)] = i
	}

	field := func(values []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(values) {
			return ""
		}
		return strings.TrimSpace(values[i])
	}

	detections := make([]models.ThermalDetection, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := strings.Split(line, ",")
		if len(values) < len(headers) {
			metrics.IngestRecordsSkipped.WithLabelValues("firms", "short_row").Inc()
			continue
		}

		lat, latErr := strconv.ParseFloat(field(values, "latitude"), 64)
		lon, lonErr := strconv.ParseFloat(field(values, "longitude"), 64)
		if latErr != nil || lonErr != nil {
			metrics.IngestRecordsSkipped.WithLabelValues("firms", "bad_coords").Inc()
			continue
		}
		point := geo.Point{Lat: lat, Lon: lon}
		if !point.Valid() {
			metrics.IngestRecordsSkipped.WithLabelValues("firms", "bad_coords").Inc()
			continue
		}
		if c.bounds != nil && !c.bounds.contains(point) {
			metrics.IngestRecordsSkipped.WithLabelValues("firms", "out_of_bounds").Inc()
			continue
		}

		// VIIRS reports bright_ti4, MODIS reports brightness.
		brightStr := field(values, "bright_ti4")
		if brightStr == "" {
			brightStr = field(values, "brightness")
		}
		brightness, err := strconv.ParseFloat(brightStr, 64)
		if err != nil {
			metrics.IngestRecordsSkipped.WithLabelValues("firms", "bad_brightness").Inc()
			continue
		}

		confidence := field(values, "confidence")
		if confidence == "" {
			confidence = "nominal"
		}
		satellite := field(values, "satellite")
		if satellite == "" {
			satellite = sensor
		}

		d := models.ThermalDetection{
			Location:         point,
			BrightnessKelvin: brightness,
			Confidence:       confidence,
			AcquisitionDate:  field(values, "acq_date"),
			AcquisitionTime:  field(values, "acq_time"),
			SatelliteSource:  satellite,
			DayNight:         field(values, "daynight"),
		}
		if frp, err := strconv.ParseFloat(field(values, "frp"), 64); err == nil {
			d.FirePowerMW = &frp
		}

		detections = append(detections, d)
	}

	return detections
}

// FetchAllSensors queries every configured sensor and merges the results,
// deduplicating detections that fall within dedupeProximityDeg of an
// already-seen one. The brighter of two duplicates wins. A sensor failure
// degrades the batch instead of failing it; the error of the last failing
// sensor is returned alongside any merged detections.
func (c *FIRMSClient) FetchAllSensors(ctx context.Context) ([]models.ThermalDetection, error) {
	var merged []models.ThermalDetection
	var lastErr error

	for _, sensor := range firmsSensors {
		detections, err := c.FetchHotspots(ctx, sensor)
		if err != nil {
			logging.Err(err).Str("sensor", sensor).Msg("sensor fetch failed")
			lastErr = err
			continue
		}
		merged = mergeDetections(merged, detections)
	}

	return merged, lastErr
}

func mergeDetections(unique, incoming []models.ThermalDetection) []models.ThermalDetection {
	for _, h := range incoming {
		dup := false
		for i, u := range unique {
			if math.Abs(h.Location.Lat-u.Location.Lat) < dedupeProximityDeg &&
				math.Abs(h.Location.Lon-u.Location.Lon) < dedupeProximityDeg {
				if h.BrightnessKelvin > u.BrightnessKelvin {
					unique[i] = h
				}
				dup = true
				metrics.IngestRecordsSkipped.WithLabelValues("firms", "duplicate").Inc()
				break
			}
		}
		if !dup {
			unique = append(unique, h)
		}
	}
	return unique
}
