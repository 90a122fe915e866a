package viewport

import (
	"image"
	"testing"
)

func TestRemapCoords(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z int
		want    image.Point
	}{
		{"origin", 0, 0, 0, image.Pt(0, 0)},
		{"one tile x", TileSize, 0, 0, image.Pt(-128, 64)},
		{"one tile y", 0, TileSize, 0, image.Pt(128, 64)},
		{"diagonal", TileSize, TileSize, 0, image.Pt(0, 128)},
		{"raised", 0, 0, 8, image.Pt(0, -32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemapCoords(tt.x, tt.y, tt.z); got != tt.want {
				t.Errorf("RemapCoords(%d, %d, %d) = %v, want %v", tt.x, tt.y, tt.z, got, tt.want)
			}
		})
	}
}

func TestInverseRemapCoords_RoundTrip(t *testing.T) {
	for x := -40; x <= 40; x += 7 {
		for y := -40; y <= 40; y += 5 {
			p := RemapCoords(x, y, 0)
			gx, gy := InverseRemapCoords(p.X, p.Y)
			if gx != x || gy != y {
				t.Errorf("InverseRemapCoords(RemapCoords(%d, %d)) = (%d, %d)", x, y, gx, gy)
			}
		}
	}
}

func TestWorldBox(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want image.Rectangle
	}{
		{"even", 10, 20, image.Rect(-5, -20, 5, 0)},
		{"odd", 11, 20, image.Rect(-5, -20, 6, 0)},
		{"empty", 0, 0, image.Rect(0, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WorldBox(0, 0, 0, tt.w, tt.h)
			if got != tt.want {
				t.Errorf("WorldBox = %v, want %v", got, tt.want)
			}
			if got.Dx() != tt.w || got.Dy() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", got.Dx(), got.Dy(), tt.w, tt.h)
			}
		})
	}

	p := RemapCoords(32, 48, 4)
	if got := WorldBox(32, 48, 4, 2, 2); got.Max.Y != p.Y || got.Min.X != p.X-1 {
		t.Errorf("WorldBox not anchored at %v: %v", p, got)
	}
}
