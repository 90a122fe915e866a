package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/viewport/vehicle"
	"github.com/gogpu/viewport/zoom"
)

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeScene(t, `
ticks: 100
font:
  normal: 14
viewports:
  - name: overview
    width: 320
    height: 240
    zoom: out16x
    center: [512, 512]
  - name: detail
    left: 320
    width: 320
    height: 240
    zoom: in2x
aircraft:
  - engine: 1
    helicopter: true
    heading: NE
    step: 2
`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if c.Ticks != 100 {
		t.Errorf("Ticks = %d", c.Ticks)
	}
	// Unset fields keep their defaults.
	if c.FrameEvery != 8 || c.Font.Small != 9 || c.Font.Normal != 14 {
		t.Errorf("FrameEvery %d, font %+v", c.FrameEvery, c.Font)
	}
	if len(c.Signs) != 2 {
		t.Errorf("default signs replaced: %d", len(c.Signs))
	}

	if len(c.Viewports) != 2 {
		t.Fatalf("got %d viewports, want 2", len(c.Viewports))
	}
	if v := c.Viewports[0]; v.Zoom != zoom.Out16x || v.Center != [2]int{512, 512} {
		t.Errorf("overview = %+v", v)
	}
	if v := c.Viewports[1]; v.Zoom != zoom.In2x || v.Left != 320 {
		t.Errorf("detail = %+v", v)
	}
	if a := c.Aircraft[0]; !a.Helicopter || a.Heading != vehicle.DirNE || a.Step != 2 {
		t.Errorf("aircraft = %+v", a)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		invalid bool
	}{
		{"bad zoom", "viewports:\n  - {width: 1, height: 1, zoom: out256x}\n", false},
		{"bad heading", "aircraft:\n  - {engine: 1, heading: up}\n", false},
		{"empty viewport", "viewports:\n  - {width: 0, height: 10}\n", true},
		{"no viewports", "viewports: []\n", true},
		{"unknown engine", "aircraft:\n  - {engine: 7}\n", true},
		{"bad frame interval", "frame_every: 0\n", true},
		{"negative ticks", "ticks: -1\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeScene(t, tt.body))
			if err == nil {
				t.Fatal("Load succeeded")
			}
			if got := errors.Is(err, ErrInvalid); got != tt.invalid {
				t.Errorf("errors.Is(ErrInvalid) = %v for %v", got, err)
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want ErrNotExist", err)
	}
}
