// Package tiles implements the falling-tiles rhythm game.
// Targets are spawned from a beat schedule, fall down their lanes and must be
// tapped while they cross the hit window near the bottom of the playfield.
package tiles

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/tui-tiles/internal/config"
	"github.com/vovakirdan/tui-tiles/internal/core"
	"github.com/vovakirdan/tui-tiles/internal/level"
)

// Visual characters for rendering
const (
	TargetChar    = '█'
	LaneSepChar   = '│'
	HitLineChar   = '═'
	WindowChar    = '┄'
	MarkerBigChar = 'O'
	MarkerMidChar = 'o'
	MarkerDotChar = '·'
)

// laneColors cycles across lanes.
var laneColors = []core.Color{
	core.ColorCyan,
	core.ColorMagenta,
	core.ColorBrightGreen,
	core.ColorBrightBlue,
	core.ColorOrange,
	core.ColorBrightYellow,
}

// Track reports whether the song is still playing.
type Track interface {
	Playing() bool
}

// Game composes the timing engine, resolver, session and feedback queue.
type Game struct {
	cfg   config.TilesConfig
	beats []float64
	track Track
	geom  Playfield

	schedule   []level.Target
	engine     *TimingEngine
	resolver   Resolver
	session    *Session
	feedback   *FeedbackQueue
	difficulty *config.DifficultyManager

	elapsed float64
	paused  bool
}

// New creates a game for a beat timeline. Call Reset before stepping.
func New(cfg config.TilesConfig, beats []float64, track Track) *Game {
	geom := Playfield{
		Width:        cfg.Playfield.Width,
		Height:       cfg.Playfield.Height,
		TargetHeight: cfg.Playfield.TargetHeight,
		Lanes:        cfg.Lanes.Count,
	}
	return &Game{
		cfg:      cfg,
		beats:    beats,
		track:    track,
		geom:     geom,
		resolver: NewResolver(geom, cfg.Timing.HitWindow),
	}
}

// Reset generates a fresh level from the seed and starts a new session.
// If no level can be built the session is aborted and the error returned.
func (g *Game) Reset(rc core.RuntimeConfig) error {
	g.elapsed = 0
	g.paused = false
	g.session = NewSession(g.cfg.Session)
	g.feedback = NewFeedbackQueue()
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	rng := rand.New(rand.NewSource(rc.Seed))
	schedule, err := level.Generate(g.beats, g.cfg.Lanes.Count, g.cfg.Level.BeatStride, rng)
	if err != nil {
		g.schedule = nil
		g.engine = NewTimingEngine(nil, g.geom, g.cfg.Timing.HitTime)
		g.session.Abort()
		return fmt.Errorf("tiles: cannot build level: %w", err)
	}

	g.schedule = schedule
	g.engine = NewTimingEngine(schedule, g.geom, g.cfg.Timing.HitTime)
	g.engine.SpeedFunc = func() float64 {
		return g.difficulty.SpeedFactor(g.session.Score(), g.elapsed)
	}
	return nil
}

// Step advances the game by dt seconds, resolving lane presses in order first.
func (g *Game) Step(dt float64, in core.InputFrame) core.StepResult {
	if g.session == nil || g.session.Terminal() {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dt = clampDelta(dt)
	var events []core.Event

	for _, lane := range in.Lanes {
		events = g.press(lane, events)
		if g.session.Terminal() {
			break
		}
	}

	if !g.session.Terminal() {
		g.elapsed += dt
		_, missed := g.engine.Tick(g.elapsed, dt)
		for _, t := range missed {
			x, y := t.Center(g.geom.LaneWidth())
			g.feedback.Push(NewMarker(FeedbackMiss, x, y, g.cfg.Feedback))
			events = append(events, core.Event{Kind: core.EventBoundaryMiss, Lane: t.Lane})
			if g.session.BoundaryMiss() {
				break
			}
		}
	}

	if !g.session.Terminal() {
		g.session.CheckCompletion(g.track.Playing(), g.engine.Active().Len() == 0)
	}

	if g.session.Terminal() {
		g.engine.Clear()
		events = append(events, core.Event{Kind: core.EventSessionEnd, Lane: -1})
	}

	g.feedback.Update(dt)

	return core.StepResult{State: g.State(), Events: events}
}

// press resolves one lane press and records its consequences.
func (g *Game) press(lane int, events []core.Event) []core.Event {
	if lane < 0 || lane >= g.geom.Lanes {
		return events
	}

	out := g.resolver.Resolve(lane, g.engine.Active())
	if out.Kind == OutcomeHit {
		x, y := out.Target.Center(g.geom.LaneWidth())
		g.feedback.Push(NewMarker(FeedbackHit, x, y, g.cfg.Feedback))
		events = append(events, core.Event{Kind: core.EventHit, Lane: lane})

		for _, m := range g.session.Hit() {
			g.feedback.Push(NewBanner(m, g.cfg.Feedback.MilestoneDuration))
			events = append(events, core.Event{Kind: core.EventMilestone, Lane: -1, Value: m})
		}
		return events
	}

	g.feedback.Push(NewMarker(FeedbackMiss, g.geom.LaneCenter(lane), g.resolver.Window.Line, g.cfg.Feedback))
	events = append(events, core.Event{Kind: core.EventWrongTap, Lane: lane})
	g.session.WrongTap()
	return events
}

// Choose records the end-of-session choice.
func (g *Game) Choose(c Choice) error {
	if g.session == nil {
		return ErrNotTerminal
	}
	return g.session.Choose(c)
}

// Session returns the current session.
func (g *Game) Session() *Session {
	return g.session
}

// Engine returns the timing engine.
func (g *Game) Engine() *TimingEngine {
	return g.engine
}

// Level returns the generated schedule.
func (g *Game) Level() []level.Target {
	return g.schedule
}

// Feedback returns the feedback queue.
func (g *Game) Feedback() *FeedbackQueue {
	return g.feedback
}

// Elapsed returns simulated seconds since the session started.
func (g *Game) Elapsed() float64 {
	return g.elapsed
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Elapsed: g.elapsed,
		Paused:  g.paused,
	}
	if g.session != nil {
		st.Score = g.session.Score()
		st.Misses = g.session.Misses()
		st.MaxMisses = g.session.MaxMisses()
		st.GameOver = g.session.Terminal()
		st.Reason = g.session.Reason()
	}
	return st
}

// layout maps the playfield onto screen cells.
type layout struct {
	fieldX, fieldY int // Top-left of the field, separators included
	fieldH         int // Rows available to the playfield
	laneW          int // Interior width of one lane
	lanes          int
	geom           Playfield
}

func (g *Game) layout(dst *core.Screen) layout {
	lanes := max(g.geom.Lanes, 1)
	laneW := core.Clamp((dst.Width()-(lanes+1))/lanes, 1, 14)
	fieldW := lanes*laneW + lanes + 1
	return layout{
		fieldX: (dst.Width() - fieldW) / 2,
		fieldY: 1,
		fieldH: max(dst.Height()-2, 1),
		laneW:  laneW,
		lanes:  lanes,
		geom:   g.geom,
	}
}

// row converts a playfield Y into a screen row, unclipped.
func (l layout) row(y float64) int {
	return l.fieldY + int(y/l.geom.Height*float64(l.fieldH))
}

// laneLeft returns the first interior column of a lane.
func (l layout) laneLeft(lane int) int {
	return l.fieldX + 1 + lane*(l.laneW+1)
}

// column converts a playfield X into the center column of its lane.
func (l layout) column(x float64) int {
	lane := core.Clamp(int(x/l.geom.LaneWidth()), 0, l.lanes-1)
	return l.laneLeft(lane) + l.laneW/2
}

func (l layout) inField(row int) bool {
	return row >= l.fieldY && row < l.fieldY+l.fieldH
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}
	l := g.layout(dst)

	// Lane separators
	for i := 0; i <= l.lanes; i++ {
		dst.DrawVLine(l.fieldX+i*(l.laneW+1), l.fieldY, l.fieldH, LaneSepChar, core.ColorDarkGray)
	}

	// Hit window edge and hit line
	g.drawLaneRow(dst, l, l.row(g.resolver.Window.Top()), WindowChar, core.ColorGray)
	g.drawLaneRow(dst, l, l.row(g.resolver.Window.Line), HitLineChar, core.ColorYellow)

	if g.engine != nil {
		for _, t := range g.engine.Active().Items() {
			g.drawTarget(dst, l, t)
		}
	}

	if g.feedback != nil {
		for _, f := range g.feedback.Items() {
			if m, ok := f.(*Marker); ok {
				g.drawMarker(dst, l, m)
			}
		}
		if b := g.feedback.LatestBanner(); b != nil {
			dst.DrawTextCentered(l.fieldY+l.fieldH/3, fmt.Sprintf(" %d Points! ", b.Threshold), core.ColorGold)
		}
	}

	g.drawHUD(dst, l)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume", core.ColorBrightWhite)
	}

	if g.session != nil && g.session.Terminal() {
		title, c := endTitle(g.session.Reason())
		drawCenteredMessage(dst, title, fmt.Sprintf("Score: %d  |  R restart · Q quit", g.session.Score()), c)
	}
}

// drawLaneRow fills one row across every lane interior.
func (g *Game) drawLaneRow(dst *core.Screen, l layout, row int, r rune, c core.Color) {
	if !l.inField(row) {
		return
	}
	for lane := 0; lane < l.lanes; lane++ {
		dst.DrawHLine(l.laneLeft(lane), row, l.laneW, r, c)
	}
}

func (g *Game) drawTarget(dst *core.Screen, l layout, t *Target) {
	top := l.row(t.Y)
	bottom := max(l.row(t.Y+t.Height), top+1)
	c := laneColors[t.Lane%len(laneColors)]

	for y := top; y < bottom; y++ {
		if l.inField(y) {
			dst.DrawHLine(l.laneLeft(t.Lane), y, l.laneW, TargetChar, c)
		}
	}
}

func (g *Game) drawMarker(dst *core.Screen, l layout, m *Marker) {
	row := core.Clamp(l.row(m.Y), l.fieldY, l.fieldY+l.fieldH-1)
	col := l.column(m.X)

	ch := MarkerDotChar
	switch {
	case m.Radius > 20:
		ch = MarkerBigChar
	case m.Radius > 10:
		ch = MarkerMidChar
	}

	c := core.ColorBrightGreen
	if m.Kind() == FeedbackMiss {
		c = core.ColorBrightRed
	}
	if m.Alpha < 100 {
		c = core.ColorDarkGray
	}
	dst.SetColor(col, row, ch, c)
}

func (g *Game) drawHUD(dst *core.Screen, l layout) {
	st := g.State()
	dst.DrawTextColor(1, 0, fmt.Sprintf(" Score: %d ", st.Score), core.ColorBrightWhite)

	misses := fmt.Sprintf(" Misses: %d/%d ", st.Misses, st.MaxMisses)
	missColor := core.ColorWhite
	if st.MaxMisses > 0 && st.Misses >= st.MaxMisses-1 {
		missColor = core.ColorBrightRed
	}
	dst.DrawTextColor(dst.Width()-len(misses)-1, 0, misses, missColor)

	// Key labels under each lane
	keyRow := l.fieldY + l.fieldH
	for lane := 0; lane < l.lanes && lane < len(g.cfg.Lanes.Keys); lane++ {
		label := strings.ToUpper(g.cfg.Lanes.Keys[lane])
		x := l.laneLeft(lane) + (l.laneW-len([]rune(label)))/2
		dst.DrawTextColor(x, keyRow, label, laneColors[lane%len(laneColors)])
	}
}

// endTitle picks the end box title for a reason.
func endTitle(r core.EndReason) (string, core.Color) {
	switch r {
	case core.ReasonMaxMisses:
		return "GAME OVER", core.ColorBrightRed
	case core.ReasonCompleted:
		return "SONG COMPLETE", core.ColorBrightGreen
	case core.ReasonAborted:
		return "NO BEATS FOUND", core.ColorYellow
	default:
		return "SESSION OVER", core.ColorWhite
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := core.NewRect(0, 0, w, h).Centered(boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	titleX := box.X + (boxW-len([]rune(title)))/2
	dst.DrawTextColor(titleX, box.Y+1, title, c)

	subtitleX := box.X + (boxW-len([]rune(subtitle)))/2
	dst.DrawText(subtitleX, box.Y+3, subtitle)
}
