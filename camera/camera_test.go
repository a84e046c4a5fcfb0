package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720, 4000, 4000)

	if cam.Target != (r2.Vec{X: 2000, Y: 2000}) {
		t.Errorf("expected camera at world centre, got %+v", cam.Target)
	}
	if cam.Zoom != 1 {
		t.Errorf("expected zoom 1, got %v", cam.Zoom)
	}
	if math.Abs(cam.MinZoom-0.32) > 1e-9 {
		t.Errorf("expected min zoom 0.32, got %v", cam.MinZoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, 4000, 4000)

	s := cam.WorldToScreen(cam.Target)
	if math.Abs(s.X-640) > 1e-9 || math.Abs(s.Y-360) > 1e-9 {
		t.Errorf("expected screen centre (640, 360), got %+v", s)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 4000, 4000)
	cam.SetZoom(2)

	for _, s := range []r2.Vec{{X: 640, Y: 360}, {X: 100, Y: 100}, {X: 1200, Y: 600}} {
		back := cam.WorldToScreen(cam.ScreenToWorld(s))
		if r2.Norm(r2.Sub(back, s)) > 1e-9 {
			t.Errorf("roundtrip failed: %+v -> %+v", s, back)
		}
	}
}

func TestFollowClampsToWorld(t *testing.T) {
	tests := []struct {
		name   string
		player r2.Vec
		want   r2.Vec
	}{
		{"middle", r2.Vec{X: 2000, Y: 1500}, r2.Vec{X: 2000, Y: 1500}},
		{"top-left corner", r2.Vec{X: 10, Y: 10}, r2.Vec{X: 640, Y: 360}},
		{"bottom-right corner", r2.Vec{X: 3990, Y: 3990}, r2.Vec{X: 3360, Y: 3640}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := New(1280, 720, 4000, 4000)
			cam.Follow(tc.player)
			if cam.Target != tc.want {
				t.Errorf("target = %+v, want %+v", cam.Target, tc.want)
			}
		})
	}
}

func TestFollowSmallWorldCentres(t *testing.T) {
	cam := New(1280, 720, 1000, 1000)
	cam.Zoom = cam.MinZoom // 1.28, visible height 562.5 < 1000
	cam.Follow(r2.Vec{X: 0, Y: 0})
	if cam.Target.X != 500 {
		t.Errorf("expected horizontal centre when view spans the world, got %v", cam.Target.X)
	}
	if cam.Target.Y <= 0 || cam.Target.Y >= 500 {
		t.Errorf("expected vertical clamp inside world, got %v", cam.Target.Y)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 4000, 4000)
	size := r2.Vec{X: 10, Y: 10}

	if !cam.IsVisible(cam.Target, size) {
		t.Error("expected centre to be visible")
	}
	if cam.IsVisible(r2.Vec{X: 0, Y: 0}, size) {
		t.Error("expected far corner to be culled")
	}
	// Straddling the left edge of the view
	minX, _, _, _ := cam.VisibleWorldBounds()
	if !cam.IsVisible(r2.Vec{X: minX - 5, Y: 2000}, size) {
		t.Error("expected partially visible box to count as visible")
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 4000, 4000)

	cam.SetZoom(10)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %v, got %v", cam.MaxZoom, cam.Zoom)
	}
	cam.ZoomBy(0.001)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %v, got %v", cam.MinZoom, cam.Zoom)
	}
}

func TestResizeRaisesMinZoom(t *testing.T) {
	cam := New(1280, 720, 4000, 4000)
	cam.SetZoom(cam.MinZoom)

	cam.Resize(2560, 1440)
	if math.Abs(cam.MinZoom-0.64) > 1e-9 {
		t.Errorf("expected min zoom 0.64, got %v", cam.MinZoom)
	}
	if cam.Zoom < cam.MinZoom {
		t.Errorf("zoom %v below min %v after resize", cam.Zoom, cam.MinZoom)
	}
}
