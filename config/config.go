// Package config loads the scene description used by the vpdemo command.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/viewport/vehicle"
	"github.com/gogpu/viewport/zoom"
)

// ErrInvalid is wrapped by every validation error returned from Load.
var ErrInvalid = errors.New("config: invalid scene")

// Config describes a demo scene.
type Config struct {
	// Ticks is the number of simulation ticks to run.
	Ticks int `yaml:"ticks"`
	// FrameEvery writes a frame after every n ticks.
	FrameEvery int    `yaml:"frame_every"`
	OutputDir  string `yaml:"output_dir"`

	Font      Font       `yaml:"font"`
	Map       Map        `yaml:"map"`
	Viewports []Viewport `yaml:"viewports"`
	Engines   []Engine   `yaml:"engines"`
	Signs     []Sign     `yaml:"signs"`
	Aircraft  []Aircraft `yaml:"aircraft"`
}

// Font selects the sign font. An empty Path uses Go Regular.
type Font struct {
	Path      string  `yaml:"path"`
	Normal    float64 `yaml:"normal"`
	Small     float64 `yaml:"small"`
	CacheSize int     `yaml:"cache_size"`
}

// Map is a flat map.
type Map struct {
	// Width in tiles.
	Width int `yaml:"width"`
	// Height is the ground height everywhere.
	Height int `yaml:"height"`
}

// Viewport places one viewport on screen. Center is in world units.
type Viewport struct {
	Name   string     `yaml:"name"`
	Left   int        `yaml:"left"`
	Top    int        `yaml:"top"`
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	Zoom   zoom.Level `yaml:"zoom"`
	Center [2]int     `yaml:"center"`
}

type Engine struct {
	ID            uint16 `yaml:"id"`
	MaxSpeed      uint16 `yaml:"max_speed"`
	SpeedOverride uint16 `yaml:"speed_override"`
	SpriteW       int    `yaml:"sprite_w"`
	SpriteH       int    `yaml:"sprite_h"`
}

// Sign is a label anchored at world position (X, Y, Z).
type Sign struct {
	Text    string     `yaml:"text"`
	X       int        `yaml:"x"`
	Y       int        `yaml:"y"`
	Z       int        `yaml:"z"`
	MaxZoom zoom.Level `yaml:"max_zoom"`
	Tracked bool       `yaml:"tracked"`
}

// Aircraft flies in a straight line from (X, Y) along Heading, moving Step
// world units per tick.
type Aircraft struct {
	Helicopter bool              `yaml:"helicopter"`
	Engine     uint16            `yaml:"engine"`
	X          int               `yaml:"x"`
	Y          int               `yaml:"y"`
	Heading    vehicle.Direction `yaml:"heading"`
	Step       int               `yaml:"step"`
	Passengers uint16            `yaml:"passengers"`
}

// Default returns a small scene: one viewport, two signs and a plane.
func Default() Config {
	return Config{
		Ticks:      32,
		FrameEvery: 8,
		OutputDir:  "frames",
		Font:       Font{Normal: 12, Small: 9, CacheSize: 256},
		Map:        Map{Width: 64},
		Viewports: []Viewport{
			{Name: "main", Width: 640, Height: 480, Zoom: zoom.Normal, Center: [2]int{256, 256}},
		},
		Engines: []Engine{
			{ID: 1, MaxSpeed: 640, SpriteW: 32, SpriteH: 24},
		},
		Signs: []Sign{
			{Text: "Central Airport", X: 256, Y: 256, MaxZoom: zoom.Max, Tracked: true},
			{Text: "Little Hampton", X: 160, Y: 320, MaxZoom: zoom.Out4x, Tracked: true},
		},
		Aircraft: []Aircraft{
			{Engine: 1, X: 128, Y: 256, Heading: vehicle.DirSW, Step: 4, Passengers: 30},
		},
	}
}

// Load reads a scene from path. Fields missing from the file keep their
// Default values; lists in the file replace the default lists.
func Load(path string) (Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks the scene for values the demo cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Ticks < 0:
		return fmt.Errorf("%w: negative ticks %d", ErrInvalid, c.Ticks)
	case c.FrameEvery <= 0:
		return fmt.Errorf("%w: frame_every must be positive", ErrInvalid)
	case c.Map.Width <= 0:
		return fmt.Errorf("%w: map width must be positive", ErrInvalid)
	case c.Font.Normal <= 0 || c.Font.Small <= 0:
		return fmt.Errorf("%w: font sizes must be positive", ErrInvalid)
	case c.Font.CacheSize <= 0:
		return fmt.Errorf("%w: font cache_size must be positive", ErrInvalid)
	case len(c.Viewports) == 0:
		return fmt.Errorf("%w: no viewports", ErrInvalid)
	}
	for i, v := range c.Viewports {
		if v.Width <= 0 || v.Height <= 0 {
			return fmt.Errorf("%w: viewport %d (%s) has no area", ErrInvalid, i, v.Name)
		}
	}
	engines := make(map[uint16]bool, len(c.Engines))
	for _, e := range c.Engines {
		engines[e.ID] = true
	}
	for i, a := range c.Aircraft {
		if !engines[a.Engine] {
			return fmt.Errorf("%w: aircraft %d uses unknown engine %d", ErrInvalid, i, a.Engine)
		}
	}
	return nil
}
