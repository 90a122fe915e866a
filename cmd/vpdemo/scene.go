package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/viewport"
	"github.com/gogpu/viewport/config"
	"github.com/gogpu/viewport/sign"
	"github.com/gogpu/viewport/textsize"
	"github.com/gogpu/viewport/vehicle"
)

var (
	colorGround  = color.RGBA{0x3a, 0x5a, 0x2a, 0xff}
	colorMapMode = color.RGBA{0x20, 0x40, 0x18, 0xff}
	colorBody    = color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
	colorShadow  = color.RGBA{0x10, 0x10, 0x10, 0x80}
	colorRotor   = color.RGBA{0xe0, 0xc0, 0x20, 0xff}
	colorSign    = color.RGBA{0x20, 0x30, 0x80, 0xe0}
	colorDirty   = color.RGBA{0x80, 0x00, 0x00, 0x60}
)

// headings are the world unit steps of the eight directions.
var headings = [...]image.Point{
	vehicle.DirN:  {-1, -1},
	vehicle.DirNE: {-1, 0},
	vehicle.DirE:  {-1, 1},
	vehicle.DirSE: {0, 1},
	vehicle.DirS:  {1, 1},
	vehicle.DirSW: {1, 0},
	vehicle.DirW:  {1, -1},
	vehicle.DirNW: {0, -1},
}

type view struct {
	name string
	vp   *viewport.ViewPort
}

type flight struct {
	id   vehicle.ID
	step int
}

type frame struct {
	name string
	img  *image.RGBA
}

type scene struct {
	cfg config.Config
	log *slog.Logger

	set     *viewport.Set
	views   []view
	measure *textsize.Cached
	faces   *textsize.OpenType
	board   *sign.Board
	labels  map[sign.ID]string
	world   *vehicle.FlatMap
	pool    *vehicle.Pool
	flights []flight
}

func newScene(cfg config.Config, logger *slog.Logger) (*scene, error) {
	data := goregular.TTF
	if cfg.Font.Path != "" {
		var err error
		if data, err = os.ReadFile(cfg.Font.Path); err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
	}
	shaper, err := textsize.NewShaper(data, cfg.Font.Normal, cfg.Font.Small)
	if err != nil {
		return nil, err
	}
	measure, err := textsize.NewCached(shaper, cfg.Font.CacheSize)
	if err != nil {
		return nil, err
	}
	faces, err := textsize.NewOpenType(data, cfg.Font.Normal, cfg.Font.Small)
	if err != nil {
		return nil, err
	}

	s := &scene{
		cfg:     cfg,
		log:     logger,
		set:     viewport.NewSet(),
		measure: measure,
		faces:   faces,
		labels:  make(map[sign.ID]string),
		world:   &vehicle.FlatMap{Width: cfg.Map.Width, Height: cfg.Map.Height},
	}
	for _, v := range cfg.Viewports {
		vp := viewport.New(v.Left, v.Top, v.Width, v.Height, v.Zoom)
		c := viewport.RemapCoords(v.Center[0], v.Center[1], cfg.Map.Height)
		vp.CenterOn(c.X, c.Y)
		s.set.Add(vp)
		s.views = append(s.views, view{name: v.Name, vp: vp})
	}

	s.board = sign.NewBoard(measure, s.set)
	for _, sc := range cfg.Signs {
		id := s.board.Add(sc.Tracked)
		p := viewport.RemapCoords(sc.X, sc.Y, sc.Z)
		//nolint:gosec // virtual coordinates of a demo map fit in int32
		if err := s.board.Update(id, sc.MaxZoom, int32(p.X), int32(p.Y), sc.Text, sc.Text); err != nil {
			return nil, err
		}
		s.labels[id] = sc.Text
	}

	engines := make(vehicle.StaticEngines, len(cfg.Engines))
	for _, e := range cfg.Engines {
		engines[vehicle.EngineID(e.ID)] = vehicle.EngineInfo{
			MaxSpeed:      e.MaxSpeed,
			SpeedOverride: e.SpeedOverride,
			SpriteW:       e.SpriteW,
			SpriteH:       e.SpriteH,
		}
	}
	s.pool, err = vehicle.NewPool(
		vehicle.WithDirtyMarker(s.set),
		vehicle.WithMap(s.world),
		vehicle.WithEngines(engines),
	)
	if err != nil {
		return nil, err
	}
	for _, a := range cfg.Aircraft {
		if err := s.launch(a); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *scene) launch(a config.Aircraft) error {
	sub := vehicle.SubAircraft
	if a.Helicopter {
		sub = vehicle.SubHelicopter
	}
	ground := s.world.GroundHeight(a.X, a.Y)
	v, err := s.pool.SpawnAircraft(sub, vehicle.EngineID(a.Engine), a.X, a.Y, ground)
	if err != nil {
		return err
	}
	v.Direction = a.Heading
	v.Passengers = a.Passengers
	v.Air.State = vehicle.StateFlying
	if err := s.pool.SetAircraftPosition(v, a.X, a.Y, ground+vehicle.FlyingAltitude(v)); err != nil {
		return err
	}
	s.flights = append(s.flights, flight{id: v.ID(), step: a.Step})
	return nil
}

// tick moves every aircraft one step along its heading. Aircraft leaving
// the map are despawned.
func (s *scene) tick() error {
	limit := s.world.Width * viewport.TileSize
	for _, f := range s.flights {
		v, err := s.pool.Get(f.id)
		if err != nil {
			continue
		}
		d := headings[v.Direction].Mul(f.step)
		x, y := v.X+d.X, v.Y+d.Y
		if x < 0 || y < 0 || x >= limit || y >= limit {
			s.log.Info("aircraft left the map", slog.Int("x", x), slog.Int("y", y))
			if err := s.pool.Despawn(f.id); err != nil {
				return err
			}
			continue
		}
		if err := s.pool.SetAircraftPosition(v, x, y, v.Z); err != nil {
			return err
		}
	}
	return nil
}

// render draws vp's current state and tints its dirty area.
func (s *scene) render(vp *viewport.ViewPort) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, vp.Width(), vp.Height()))
	origin := image.Pt(vp.Left(), vp.Top())
	toImage := func(r image.Rectangle) image.Rectangle {
		return image.Rectangle{
			Min: vp.VirtualToScreen(r.Min).Sub(origin),
			Max: vp.VirtualToScreen(r.Max).Sub(origin),
		}
	}

	bg := colorGround
	if vp.InMapMode() {
		bg = colorMapMode
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	if vp.InMapMode() {
		s.plotMapVehicles(img, vp)
	} else {
		for v := range s.pool.All() {
			if v.Status.Has(vehicle.StatusHidden) || v.Sprite.Empty() {
				continue
			}
			c := colorBody
			switch v.AircraftSubType() {
			case vehicle.SubShadow:
				c = colorShadow
			case vehicle.SubRotor:
				c = colorRotor
			case vehicle.SubHelicopter, vehicle.SubAircraft:
			}
			draw.Draw(img, toImage(v.Sprite), image.NewUniform(c), image.Point{}, draw.Over)
		}
	}

	z := vp.ZoomLevel()
	size := sign.FontFor(z)
	face := s.faces.Face(size)
	ascent := face.Metrics().Ascent.Ceil()
	for _, id := range s.board.Query(vp.VirtualRect(), z) {
		sg, _ := s.board.Get(id)
		box := toImage(sg.Bounds(z, s.measure.LineHeight(size)))
		draw.Draw(img, box, image.NewUniform(colorSign), image.Point{}, draw.Over)

		center := vp.VirtualToScreen(image.Pt(int(sg.Center), int(sg.Top))).Sub(origin)
		d := font.Drawer{
			Dst:  img,
			Src:  image.White,
			Face: face,
			Dot:  fixed.P(center.X-sg.Width(z)/2+sign.MarginLeft, box.Min.Y+1+sign.MarginTop+ascent),
		}
		d.DrawString(s.labels[id])
	}

	for _, r := range vp.UploadRegions() {
		rect := image.Rect(int(r.X), int(r.Y), int(r.X+r.Size.Width), int(r.Y+r.Size.Height))
		draw.Draw(img, rect, image.NewUniform(colorDirty), image.Point{}, draw.Over)
	}
	return img
}

// mapBucket hashes a tile into a vehicle bucket covering 4x4 tiles.
func mapBucket(tx, ty int) int {
	return ((ty>>2)*64 + tx>>2) % viewport.MapVehicleBuckets
}

// plotMapVehicles draws every visible vehicle as one pixel. Tiles are
// walked in map order; a bucket shared by several tiles is drawn once, and
// vehicles sharing a pixel are plotted once.
func (s *scene) plotMapVehicles(img *image.RGBA, vp *viewport.ViewPort) {
	buckets := make(map[int][]*vehicle.Vehicle)
	for v := range s.pool.All() {
		if !v.IsPrimary() || v.Status.Has(vehicle.StatusHidden) {
			continue
		}
		b := mapBucket(v.X/viewport.TileSize, v.Y/viewport.TileSize)
		buckets[b] = append(buckets[b], v)
	}
	for ty := range s.world.Width {
		for tx := range s.world.Width {
			b := mapBucket(tx, ty)
			if len(buckets[b]) == 0 || !vp.VisitMapBucket(b) {
				continue
			}
			for _, v := range buckets[b] {
				p := vp.VirtualToScreen(viewport.RemapCoords(v.X, v.Y, v.Z))
				if vp.PlotMapVehicle(p) {
					img.Set(p.X-vp.Left(), p.Y-vp.Top(), colorBody)
				}
			}
		}
	}
}

// capture renders every viewport and starts a new dirty frame.
func (s *scene) capture(tick int) []frame {
	frames := make([]frame, 0, len(s.views))
	for _, v := range s.views {
		s.log.Debug("frame",
			slog.String("viewport", v.name),
			slog.Int("tick", tick),
			slog.Int("dirty_blocks", v.vp.DirtyBlockCount()),
			slog.Int("dirty_rects", len(v.vp.DirtyRects())))
		frames = append(frames, frame{name: frameName(v.name, tick), img: s.render(v.vp)})
		v.vp.MarkDrawn()
	}
	s.set.ClearDirty()
	return frames
}

// run simulates cfg and writes the frames. It returns the number written.
func run(cfg config.Config, logger *slog.Logger) (int, error) {
	s, err := newScene(cfg, logger)
	if err != nil {
		return 0, err
	}
	defer s.faces.Close()
	defer s.set.Close()

	frames := s.capture(0)
	for t := 1; t <= cfg.Ticks; t++ {
		if err := s.tick(); err != nil {
			return 0, fmt.Errorf("tick %d: %w", t, err)
		}
		if t%cfg.FrameEvery == 0 {
			frames = append(frames, s.capture(t)...)
		}
	}

	for _, v := range s.views {
		center := image.Pt(v.vp.Left()+v.vp.Width()/2, v.vp.Top()+v.vp.Height()/2)
		if id, ok := s.board.HitTest(v.vp, center); ok {
			s.log.Info("sign under viewport centre",
				slog.String("viewport", v.name),
				slog.String("text", s.labels[id]))
		}
	}
	hits, misses := s.measure.Stats()
	s.log.Info("simulation done",
		slog.Int("frames", len(frames)),
		slog.Int("vehicles", s.pool.Len()),
		slog.Uint64("width_cache_hits", hits),
		slog.Uint64("width_cache_misses", misses),
		slog.Uint64("sprite_cache_misses", s.pool.Sprites().Misses()))

	if err := writeFrames(cfg.OutputDir, frames); err != nil {
		return 0, err
	}
	return len(frames), nil
}

func writeFrames(dir string, frames []frame) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, f := range frames {
		eg.Go(func() error {
			return writePNG(filepath.Join(dir, f.name), f.img)
		})
	}
	return eg.Wait()
}

func writePNG(path string, img image.Image) error {
	out, err := os.Create(path) //nolint:gosec // path built from the output directory
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		_ = out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}
