package cuberunner

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/cuberunner/internal/core"
	"github.com/vovakirdan/cuberunner/internal/rigid"
)

// Visual characters for rendering
const (
	CubeChar   = '█'
	CubeTop    = '▀'
	RunnerChar = '▲'
	LaneChar   = '·'
)

const (
	fovY       = 60.0 // vertical field of view in degrees
	nearPlane  = 0.1
	cellAspect = 2.0 // terminal cells are about twice as tall as wide
	groundHalf = 10.0
)

// projector maps world points to screen cells through the inverse camera.
type projector struct {
	view   rigid.Transform
	camera rigid.Transform
	fx, fy float64
	cx, cy float64
}

func newProjector(camera rigid.Transform, w, h int) projector {
	fy := 0.5 * float64(h) / math.Tan(mgl64.DegToRad(fovY/2))
	return projector{
		view:   rigid.Inverse(camera),
		camera: camera,
		fx:     fy * cellAspect,
		fy:     fy,
		cx:     0.5 * float64(w),
		cy:     0.5 * float64(h),
	}
}

// project returns the screen position and view depth of p.
// ok is false for points behind the near plane.
func (pr projector) project(p mgl64.Vec3) (x, y, depth float64, ok bool) {
	e := pr.view.ApplyPoint(p)
	depth = -e.Z()
	if depth < nearPlane {
		return 0, 0, depth, false
	}
	x = pr.cx + pr.fx*e.X()/depth
	y = pr.cy - pr.fy*e.Y()/depth
	return x, y, depth, true
}

// ray returns the world direction through the center of cell (x, y).
func (pr projector) ray(x, y int) mgl64.Vec3 {
	d := mgl64.Vec3{
		(float64(x) + 0.5 - pr.cx) / pr.fx,
		-(float64(y) + 0.5 - pr.cy) / pr.fy,
		-1,
	}
	return pr.camera.ApplyVector(d)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	s := &g.state
	theme := s.Palette.Theme()
	dst.SetBackground(theme.Sky)
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	if w == 0 || h == 0 {
		return
	}
	pr := newProjector(s.Rig.Camera, w, h)

	g.drawGround(dst, pr, theme)
	g.drawCubes(dst, pr)
	g.drawRunner(dst, pr, theme)
	g.drawHUD(dst)

	switch {
	case s.Crashed:
		g.drawCenteredMessage(dst, "CRASHED",
			fmt.Sprintf("%.1f seconds  |  Up to continue", s.LastRun.Seconds()))
	case s.Paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawGround casts a ray per cell and shades the ground plane, marking lane
// boundaries.
func (g *Game) drawGround(dst *core.Screen, pr projector, theme Theme) {
	s := &g.state
	groundY := g.cfg.Field.GroundY
	origin := s.Rig.Camera.T
	laneW := g.cfg.Field.Width / float64(s.Field.NumLanes())

	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			dir := pr.ray(x, y)
			if dir.Y() >= 0 {
				continue
			}
			t := (groundY - origin.Y()) / dir.Y()
			hit := origin.Add(dir.Mul(t))
			if math.Abs(hit.X()-s.Offsets.GroundX) > groundHalf || math.Abs(hit.Z()) > groundHalf {
				continue
			}
			fade := core.ClampF(1.2-t/25, 0.35, 1)
			cell := core.Cell{Rune: ' ', BG: theme.Ground.Scale(fade)}

			u := (hit.X() - s.Offsets.FieldLeft) / laneW
			if u >= 0 && u <= float64(s.Field.NumLanes()) && math.Abs(u-math.Round(u)) < 0.04*t {
				cell.Rune = LaneChar
				cell.FG = theme.Ground.Scale(fade * 1.6)
			}
			dst.SetCell(x, y, cell)
		}
	}
}

type projectedCube struct {
	depth      float64
	minX, maxX float64
	minY, maxY float64
	color      core.RGB
	topVisible bool
}

// drawCubes projects every cube's corners and paints their screen bounds
// far to near.
func (g *Game) drawCubes(dst *core.Screen, pr projector) {
	s := &g.state
	half := 0.5 * g.cfg.Obstacles.Side
	light := mgl64.Vec3{
		g.cfg.Lights.Light1[0] + s.Offsets.Light1X,
		g.cfg.Lights.Light1[1],
		g.cfg.Lights.Light1[2],
	}
	back := mgl64.Vec3{
		g.cfg.Lights.Light2[0] + s.Offsets.Light2X,
		g.cfg.Lights.Light2[1],
		g.cfg.Lights.Light2[2],
	}

	cubes := make([]projectedCube, 0, s.Field.Count())
	s.Field.Each(func(_ int, o Obstacle) bool {
		pc := projectedCube{
			minX: math.Inf(1), maxX: math.Inf(-1),
			minY: math.Inf(1), maxY: math.Inf(-1),
		}
		visible := true
		for _, c := range cubeCorners(half) {
			x, y, depth, ok := pr.project(o.Pose.ApplyPoint(c))
			if !ok {
				visible = false
				break
			}
			pc.minX, pc.maxX = math.Min(pc.minX, x), math.Max(pc.maxX, x)
			pc.minY, pc.maxY = math.Min(pc.minY, y), math.Max(pc.maxY, y)
			pc.depth = math.Max(pc.depth, depth)
		}
		if !visible {
			return true
		}
		_, topY, _, ok := pr.project(o.Pose.ApplyPoint(mgl64.Vec3{0, half, 0}))
		pc.topVisible = ok && topY > pr.cy

		pc.color = o.Color.Scale(shade(o.Position(), light, back))
		cubes = append(cubes, pc)
		return true
	})

	sort.Slice(cubes, func(i, j int) bool {
		return cubes[i].depth > cubes[j].depth
	})

	for _, c := range cubes {
		r := core.RectFromBounds(
			int(math.Floor(c.minX)), int(math.Floor(c.minY)),
			int(math.Ceil(c.maxX)), int(math.Ceil(c.maxY)),
		)
		dst.DrawRectColored(r, CubeChar, c.color)
		if c.topVisible && r.H > 1 {
			dst.DrawHLine(r.X, r.Y, r.W, CubeTop, c.color.Scale(1.3))
		}
	}
}

// cubeCorners returns the eight corners of a cube centered at the origin.
func cubeCorners(half float64) [8]mgl64.Vec3 {
	var out [8]mgl64.Vec3
	i := 0
	for _, x := range []float64{-half, half} {
		for _, y := range []float64{-half, half} {
			for _, z := range []float64{-half, half} {
				out[i] = mgl64.Vec3{x, y, z}
				i++
			}
		}
	}
	return out
}

// shade returns a brightness factor from the two scene lights.
func shade(p, light, back mgl64.Vec3) float64 {
	up := mgl64.Vec3{0, 1, 0}
	key := math.Max(0, light.Sub(p).Normalize().Dot(up))
	fill := math.Max(0, back.Sub(p).Normalize().Dot(up))
	return core.ClampF(0.45+0.45*key+0.2*fill, 0, 1.1)
}

// drawRunner draws the runner marker at its projected position.
func (g *Game) drawRunner(dst *core.Screen, pr projector, theme Theme) {
	s := &g.state
	tip := s.Rig.Runner.ApplyPoint(mgl64.Vec3{0, 0.03, g.cfg.Player.RunnerZ})
	x, y, _, ok := pr.project(tip)
	if !ok {
		return
	}
	cx := int(math.Floor(x))
	cy := core.Clamp(int(math.Floor(y)), 0, dst.Height()-1)
	dst.SetCell(cx, cy, core.Cell{Rune: RunnerChar, FG: theme.Runner, BG: dst.GetCell(cx, cy).BG})
}

// drawHUD draws the status line.
func (g *Game) drawHUD(dst *core.Screen) {
	s := &g.state
	fg := core.ColorWhite
	if s.Palette.Theme().Sky == core.ColorWhite {
		fg = core.ColorDark
	}
	left := fmt.Sprintf(" %s  %5.1fs ", s.Mode.Title(), g.Status().Score)
	dst.DrawTextColored(1, 0, left, fg)

	right := fmt.Sprintf(" %d/s  spd %.2f  cubes %d ",
		s.Difficulty.SpawnsPerSecond(), s.Difficulty.Step(), s.Field.Count())
	if s.Autonomous {
		right = " AUTO" + right
	}
	dst.DrawTextColored(dst.Width()-len([]rune(right))-1, 0, right, fg)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRectColored(box, ' ', core.ColorWhite)
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			c := dst.GetCell(x, y)
			c.BG = core.ColorDark
			dst.SetCell(x, y, c)
		}
	}
	dst.DrawBox(box)

	titleX := boxX + (boxW-len(title))/2
	dst.DrawTextColored(titleX, boxY+1, title, core.ColorWhite)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawTextColored(subtitleX, boxY+3, subtitle, core.ColorGray)
}
