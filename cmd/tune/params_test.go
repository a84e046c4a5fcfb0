package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/horde/config"
)

func TestParamVectorRoundtrip(t *testing.T) {
	pv := NewParamVector()
	def := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, def[i], back[i])
		}
	}
}

func TestDefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	got := pv.ExtractFromConfig(config.Defaults())
	for i, v := range pv.DefaultVector() {
		if got[i] != v {
			t.Errorf("%s: config default %v, param default %v", pv.Specs[i].Name, got[i], v)
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Defaults()

	values := make([]float64, pv.Dim())
	for i := range values {
		values[i] = 1e6
	}
	pv.ApplyToConfig(cfg, values)

	for i, v := range pv.ExtractFromConfig(cfg) {
		if v != pv.Specs[i].Max {
			t.Errorf("%s = %v, want max %v", pv.Specs[i].Name, v, pv.Specs[i].Max)
		}
	}
}

func TestComputeFitness(t *testing.T) {
	fe := &FitnessEvaluator{targetSec: 100}
	tests := []struct {
		survival float64
		want     float64
	}{
		{100, 0},
		{50, 0.5},
		{150, 0.5},
	}
	for _, tc := range tests {
		if got := fe.computeFitness(runResult{survivalSec: tc.survival}); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("survival %v: fitness %v, want %v", tc.survival, got, tc.want)
		}
	}
}
