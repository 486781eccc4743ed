package qc

import (
	"math"
	"testing"
)

func TestComputeOnOffMetrics(t *testing.T) {
	spatial := SpatialTable{Rows: []SpatialRow{
		{Sequence: "a", Count: 10, OnOff: 1},
		{Sequence: "b", Count: 6, OnOff: 1},
		{Sequence: "c", Count: 4, OnOff: 0},
	}}
	m := ComputeOnOffMetrics(spatial)

	if m.TotalPix != 3 || m.TotalOn != 2 || m.TotalOff != 1 {
		t.Error("problem with pixel counts", m)
	}
	if m.CountsOn != 16 || m.CountsOff != 4 {
		t.Error("problem with summed counts", m)
	}
	if math.Abs(m.CountsPerPixOn-8) > 1e-12 || math.Abs(m.CountsPerPixOff-4) > 1e-12 {
		t.Error("problem with per-pixel counts", m)
	}
	if math.Abs(m.RatioOffOn-0.25) > 1e-12 || math.Abs(m.FracPerPixOffOn-0.5) > 1e-12 {
		t.Error("problem with off/on ratios", m)
	}
}

func TestComputeOnOffMetricsNoOnTissue(t *testing.T) {
	spatial := SpatialTable{Rows: []SpatialRow{
		{Sequence: "a", Count: 4, OnOff: 0},
	}}
	m := ComputeOnOffMetrics(spatial)

	// zero denominators yield zero, never an error
	if m.CountsPerPixOn != 0 || m.RatioOffOn != 0 || m.FracPerPixOffOn != 0 {
		t.Error("problem with zero-denominator guards", m)
	}
	if math.Abs(m.CountsPerPixOff-4) > 1e-12 {
		t.Error("problem with off-tissue per-pixel count", m)
	}
}

func TestComputeOnOffMetricsEmpty(t *testing.T) {
	m := ComputeOnOffMetrics(SpatialTable{})
	if m.TotalPix != 0 || m.RatioOffOn != 0 || m.CountsPerPixOn != 0 || m.CountsPerPixOff != 0 {
		t.Error("problem with empty spatial table", m)
	}
}

func TestSafeRatio(t *testing.T) {
	if safeRatio(1, 0) != 0 {
		t.Error("problem with zero denominator")
	}
	if math.Abs(safeRatio(1, 4)-0.25) > 1e-12 {
		t.Error("problem with plain division")
	}
}
