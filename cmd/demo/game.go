package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/veldtwork/tilemap"
	"github.com/veldtwork/tilemap/collision"
	"github.com/veldtwork/tilemap/common"
	"github.com/veldtwork/tilemap/render"
	"github.com/veldtwork/tilemap/scene"
	"github.com/veldtwork/tilemap/script"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	panSpeed     = 8.0
	camSmoothing = 0.25
)

// demoPalette colors generated atlas cells; the embedded terrain script
// picks indices against it.
var demoPalette = []color.Color{
	colornames.Cornflowerblue,
	colornames.Seagreen,
	colornames.Darkolivegreen,
	colornames.Sandybrown,
	colornames.Slategray,
	colornames.Darkslateblue,
	colornames.Goldenrod,
	colornames.Indianred,
}

type Game struct {
	scenePath string
	spec      scene.Spec
	mode      tilemap.OverhangMode

	m        *tilemap.Map
	renderer *render.Renderer
	solids   int

	cam       render.Camera
	camTarget tilemap.Vec2

	ui      *ebitenui.UI
	watcher *scene.Watcher
	frames  int
}

func NewGame(scenePath string, watchFiles bool) (*Game, error) {
	spec, err := loadScene(scenePath)
	if err != nil {
		return nil, err
	}

	g := &Game{
		scenePath: scenePath,
		spec:      spec,
		mode:      modeFromName(spec.Overhang.Mode),
	}
	g.cam.Zoom = 1

	if err := g.rebuild(); err != nil {
		return nil, err
	}

	g.camTarget = g.centeredCam()
	g.cam.X, g.cam.Y = g.camTarget.X, g.camTarget.Y

	if watchFiles {
		if scenePath == "" {
			log.Print("demo: -watch needs -scene; the embedded scene cannot change on disk")
		} else {
			w, err := scene.NewWatcher(filepath.Dir(scenePath))
			if err != nil {
				return nil, err
			}
			g.watcher = w
		}
	}

	g.ui = newModePanel(g)
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func loadScene(path string) (scene.Spec, error) {
	if path == "" {
		return scene.Parse(defaultSceneYAML)
	}
	return scene.Load(path)
}

func modeFromName(name string) tilemap.OverhangMode {
	switch name {
	case "dominance":
		return tilemap.OverhangDominance
	case "perspective":
		return tilemap.OverhangPerspective
	}
	return tilemap.OverhangNone
}

// policyFor reselects the overhang policy for mode, keeping the scene's
// underhang directions when perspective is chosen.
func (g *Game) policyFor(mode tilemap.OverhangMode) tilemap.OverhangPolicy {
	switch mode {
	case tilemap.OverhangDominance:
		return tilemap.DominanceOverhang()
	case tilemap.OverhangPerspective:
		return tilemap.PerspectiveOverhang(g.spec.Overhang.Underhangs...)
	}
	return tilemap.NoOverhang()
}

// rebuild assembles the map from the current scene: atlas, projection,
// overhang policy (possibly toggled away from the scene's), terrain script,
// and the collision space for the scene's solid tiles.
func (g *Game) rebuild() error {
	atlas, err := g.atlasImage()
	if err != nil {
		return err
	}
	cfg, err := g.spec.Config(atlas)
	if err != nil {
		return err
	}
	cfg.Overhang = g.policyFor(g.mode)

	var init func(*tilemap.Indexer) error
	src, err := g.scriptSource()
	if err != nil {
		return err
	}
	if len(src) > 0 {
		init = script.Initializer(src, g.spec.Seed)
	}

	m, err := tilemap.BuildWith(cfg, init)
	if err != nil {
		return err
	}
	r, err := render.NewRenderer(m)
	if err != nil {
		return err
	}

	g.m = m
	g.renderer = r
	g.solids = 0
	if len(g.spec.SolidTiles) > 0 {
		space := collision.BuildSpace(m, collision.SolidSet(g.spec.SolidTiles...), collision.Params{})
		space.EachShape(func(*cp.Shape) { g.solids++ })
	}
	return nil
}

// atlasImage loads the scene's atlas, or generates a placeholder matching
// the scene's measurements when it names none.
func (g *Game) atlasImage() (*ebiten.Image, error) {
	if g.spec.Atlas != "" {
		path := g.spec.Atlas
		if g.scenePath != "" && !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(g.scenePath), path)
		}
		return render.LoadImage(path)
	}

	nt := g.spec.ForceNTiles
	if nt == (image.Point{}) {
		nt = image.Point{X: 4, Y: 4}
	}
	layout := tilemap.AtlasLayout{
		NTiles:         nt,
		TileSize:       g.spec.TileSize,
		SizeFactor:     g.spec.SizeFactor,
		InnerPadding:   g.spec.InnerPadding,
		OuterPaddingTL: g.spec.OuterPaddingTL,
		OuterPaddingBR: g.spec.OuterPaddingBR,
	}
	img := ebiten.NewImageFromImage(render.GenerateAtlas(layout, demoPalette))
	render.RegisterImage("generated:"+g.spec.Name, img)
	return img, nil
}

// scriptSource resolves the scene's terrain script: embedded for the
// embedded scene, relative to the scene file otherwise.
func (g *Game) scriptSource() ([]byte, error) {
	if g.spec.Script == "" {
		return nil, nil
	}
	if g.scenePath == "" {
		return terrainScript, nil
	}
	path := g.spec.Script
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(g.scenePath), path)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("demo: read script: %w", err)
	}
	return src, nil
}

func (g *Game) switchMode(mode tilemap.OverhangMode) {
	if mode == g.mode {
		return
	}
	g.mode = mode
	if err := g.rebuild(); err != nil {
		log.Printf("demo: rebuild: %v", err)
	}
}

func (g *Game) reload() {
	if g.scenePath != "" {
		spec, err := loadScene(g.scenePath)
		if err != nil {
			log.Printf("demo: reload: %v", err)
			return
		}
		g.spec = spec
	}
	if err := g.rebuild(); err != nil {
		log.Printf("demo: rebuild: %v", err)
	}
}

func (g *Game) centeredCam() tilemap.Vec2 {
	min, max := render.ScreenBounds(g.m)
	return tilemap.Vec2{
		X: (min.X+max.X)/2 - baseWidth/(2*g.cam.Zoom),
		Y: (min.Y+max.Y)/2 - baseHeight/(2*g.cam.Zoom),
	}
}

func (g *Game) Update() error {
	g.frames++
	g.ui.Update()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit1):
		g.switchMode(tilemap.OverhangNone)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit2):
		g.switchMode(tilemap.OverhangDominance)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit3):
		g.switchMode(tilemap.OverhangPerspective)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.reload()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.camTarget = g.centeredCam()
	}

	g.moveCamera()
	g.drainWatcher()
	return nil
}

func (g *Game) moveCamera() {
	speed := panSpeed / g.cam.Zoom
	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		g.camTarget.X -= speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		g.camTarget.X += speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		g.camTarget.Y -= speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		g.camTarget.Y += speed
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		factor := 1.1
		if wy < 0 {
			factor = 1.0 / 1.1
		}
		g.cam.SetZoom(g.cam.Zoom * factor)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.cam.SetZoom(g.cam.Zoom * 1.25)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.cam.SetZoom(g.cam.Zoom / 1.25)
	}

	g.cam.X = common.Lerp(g.cam.X, g.camTarget.X, camSmoothing)
	g.cam.Y = common.Lerp(g.cam.Y, g.camTarget.Y, camSmoothing)
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("demo: %s changed, rebuilding", path)
			g.reload()
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("demo: watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)
	g.renderer.Draw(screen, g.cam)

	size := g.m.Size()
	nt := g.m.NTiles()
	hud := fmt.Sprintf("frame %d  FPS %.1f  scene %q  mode %s  map %dx%d  atlas %dx%d  zoom %.2f",
		g.frames, ebiten.ActualFPS(), g.spec.Name, g.mode, size.X, size.Y, nt.X, nt.Y, g.cam.Zoom)
	if g.solids > 0 {
		hud += fmt.Sprintf("  collision shapes %d", g.solids)
	}
	hud += "\n[1/2/3] overhang  [R] reload  [C] center  [WASD/arrows] pan  [wheel/+/-] zoom"
	ebitenutil.DebugPrint(screen, hud)

	g.ui.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
