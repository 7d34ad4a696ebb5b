package sim

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/Garsondee/hex-outbreak/internal/hexgrid"
)

// fixedRoller returns the same value for every roll. 0 makes every spread
// roll succeed; 1 makes every roll fail.
type fixedRoller float64

func (f fixedRoller) Float64() float64 { return float64(f) }

const (
	alwaysSpread = fixedRoller(0)
	neverSpread  = fixedRoller(1)
)

// newTestEngine builds a started engine on a uniform map: every tile has 100
// survivors, 100 resources and nothing else. The seeded infection is cleared.
func newTestEngine(t *testing.T, radius int, roller Roller, opts ...Option) *Engine {
	t.Helper()
	grid, err := hexgrid.Build(radius, rand.New(rand.NewSource(1))) // #nosec G404 -- test only
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}
	for _, tile := range grid.Tiles() {
		tile.Survivors = 100
		tile.Infected = 0
		tile.ResourceAmount = 100
	}
	rules := DefaultRules()
	rules.MapRadius = radius
	opts = append([]Option{WithRoller(roller)}, opts...)
	e := New(grid, rules, opts...)
	if !e.Start() {
		t.Fatal("Start rejected from menu")
	}
	return e
}

func mustTile(t *testing.T, e *Engine, q, r int) *hexgrid.Tile {
	t.Helper()
	tile, ok := e.TileAt(hexgrid.NewCoord(q, r))
	if !ok {
		t.Fatalf("no tile at (%d,%d)", q, r)
	}
	return tile
}

func snapshot(e *Engine) map[hexgrid.Coord][2]int {
	out := map[hexgrid.Coord][2]int{}
	for _, tile := range e.Tiles() {
		out[tile.Coord] = [2]int{tile.Survivors, tile.Infected}
	}
	return out
}

func TestStart_OnlyFromMenu(t *testing.T) {
	e := newTestEngine(t, 1, neverSpread)
	if e.Phase() != PhasePlaying {
		t.Fatalf("expected playing, got %s", e.Phase())
	}
	if e.Start() {
		t.Fatal("second Start should be rejected")
	}
}

func TestTick_IgnoredOutsidePlaying(t *testing.T) {
	grid, _ := hexgrid.Build(1, rand.New(rand.NewSource(2))) // #nosec G404 -- test only
	e := New(grid, DefaultRules(), WithRoller(alwaysSpread))
	before := snapshot(e)
	e.Tick()
	if e.TickCount() != 0 {
		t.Fatalf("menu tick advanced counter to %d", e.TickCount())
	}
	for c, v := range snapshot(e) {
		if before[c] != v {
			t.Fatalf("menu tick changed tile %v: %v -> %v", c, before[c], v)
		}
	}
}

func TestTick_NoInfectedNoChange(t *testing.T) {
	e := newTestEngine(t, 3, alwaysSpread)
	before := snapshot(e)
	for i := 0; i < 20; i++ {
		e.Tick()
	}
	for c, v := range snapshot(e) {
		if before[c] != v {
			t.Errorf("tile %v changed without any infection: %v -> %v", c, before[c], v)
		}
	}
}

func TestTick_SpreadUsesStartOfTickRates(t *testing.T) {
	e := newTestEngine(t, 2, alwaysSpread)
	centre := mustTile(t, e, 0, 0)
	centre.Infected = 1
	centre.Survivors = 99

	e.Tick()

	for _, n := range centre.Neighbors() {
		nb := e.Grid().Resolve(n)
		if nb.Infected != 1 || nb.Survivors != 99 {
			t.Errorf("ring-1 tile %v: expected 99/1, got %d/%d", nb.Coord, nb.Survivors, nb.Infected)
		}
	}
	// Ring-1 tiles were clean at the start of the tick, so nothing may reach ring 2.
	for _, tile := range e.Tiles() {
		if tile.Coord.Distance(hexgrid.Coord{}) == 2 && tile.Infected != 0 {
			t.Errorf("ring-2 tile %v infected in the same tick (cascade)", tile.Coord)
		}
	}
	if centre.Infected != 1 {
		t.Errorf("centre has no infected neighbours at tick start, expected 1 infected, got %d", centre.Infected)
	}
}

func TestTick_MultipleHitsApplyIndependently(t *testing.T) {
	e := newTestEngine(t, 1, alwaysSpread)
	// (1,-1) and (1,0) are both adjacent to the centre and to each other.
	a := mustTile(t, e, 1, -1)
	b := mustTile(t, e, 1, 0)
	a.Infected, a.Survivors = 1, 99
	b.Infected, b.Survivors = 1, 99
	centre := mustTile(t, e, 0, 0)

	e.Tick()

	if centre.Infected != 2 || centre.Survivors != 98 {
		t.Fatalf("centre hit from two sources: expected 98/2, got %d/%d", centre.Survivors, centre.Infected)
	}
	if a.Infected != 2 || b.Infected != 2 {
		t.Fatalf("a and b infect each other once: expected 2/2, got %d/%d", a.Infected, b.Infected)
	}
}

func TestTick_FullyInfectedIsNeitherSourceNorTarget(t *testing.T) {
	e := newTestEngine(t, 1, alwaysSpread)
	centre := mustTile(t, e, 0, 0)
	centre.Survivors, centre.Infected = 0, 10

	e.Tick()
	for _, n := range centre.Neighbors() {
		if nb := e.Grid().Resolve(n); nb.Infected != 0 {
			t.Errorf("fully infected centre spread to %v", nb.Coord)
		}
	}

	// A partially infected source next to a fully infected tile.
	src := mustTile(t, e, 1, 0)
	src.Survivors, src.Infected = 50, 50
	e.Tick()
	if centre.Infected != 10 || centre.Survivors != 0 {
		t.Errorf("fully infected target was hit: %d/%d", centre.Survivors, centre.Infected)
	}
}

func TestTick_SurvivorsNeverNegative(t *testing.T) {
	e := newTestEngine(t, 1, alwaysSpread)
	centre := mustTile(t, e, 0, 0)
	centre.Survivors, centre.Infected = 1, 1
	ring := mustTile(t, e, 1, 0)
	ring.Survivors, ring.Infected = 0, 0 // empty tile: rate 0, still a valid target

	e.Tick()
	if ring.Survivors != 0 || ring.Infected != 1 {
		t.Fatalf("empty target: expected 0/1, got %d/%d", ring.Survivors, ring.Infected)
	}
}

func TestTick_SpreadChanceScalesWithRate(t *testing.T) {
	// rate 0.5 * 0.05 = 0.025
	cases := []struct {
		roll   fixedRoller
		expect int
	}{
		{0.024, 1},
		{0.026, 0},
	}
	for _, c := range cases {
		e := newTestEngine(t, 1, c.roll)
		centre := mustTile(t, e, 0, 0)
		centre.Survivors, centre.Infected = 50, 50
		e.Tick()
		nb := mustTile(t, e, 1, 0)
		if nb.Infected != c.expect {
			t.Errorf("roll %.3f: expected neighbour infected=%d, got %d", float64(c.roll), c.expect, nb.Infected)
		}
	}
}

func TestTick_WallBlocksOnlyFromSource(t *testing.T) {
	e := newTestEngine(t, 1, alwaysSpread)
	centre := mustTile(t, e, 0, 0)
	centre.Survivors, centre.Infected = 99, 1
	centre.Walls[0] = true

	e.Tick()

	blocked, _ := e.Grid().NeighborAt(centre, 0)
	if blocked.Infected != 0 {
		t.Fatalf("wall on edge 0 did not block spread to %v", blocked.Coord)
	}
	for d := 1; d < hexgrid.DirectionCount; d++ {
		nb, _ := e.Grid().NeighborAt(centre, d)
		if nb.Infected != 1 {
			t.Errorf("direction %d: expected 1 infected, got %d", d, nb.Infected)
		}
	}
}

// A wall on the target's side of the edge does not stop spread into it.
// This one-sided blocking is intentional and matches the source-only check.
func TestTick_WallOnTargetSideDoesNotBlock(t *testing.T) {
	e := newTestEngine(t, 1, alwaysSpread)
	centre := mustTile(t, e, 0, 0)
	centre.Survivors, centre.Infected = 99, 1
	target, _ := e.Grid().NeighborAt(centre, 1)
	target.Walls[hexgrid.Opposite(1)] = true

	e.Tick()
	if target.Infected != 1 {
		t.Fatalf("target-side wall blocked incoming spread: infected=%d", target.Infected)
	}
}

func TestTick_FactoryDepletesThenVanishes(t *testing.T) {
	e := newTestEngine(t, 1, neverSpread)
	tile := mustTile(t, e, 0, 0)
	tile.Building = hexgrid.BuildingFactory
	tile.ResourceAmount = 1
	start := e.Resources()

	e.Tick()
	if tile.ResourceAmount != 0 || tile.Building != hexgrid.BuildingFactory {
		t.Fatalf("tick 1: expected factory with 0 resources, got %s with %d", tile.Building, tile.ResourceAmount)
	}
	if e.Resources() != start+1 {
		t.Fatalf("tick 1: expected stockpile %d, got %d", start+1, e.Resources())
	}

	e.Tick()
	if tile.Building != hexgrid.BuildingNone {
		t.Fatalf("tick 2: expected factory removed, got %s", tile.Building)
	}
	if tile.ResourceAmount != 0 {
		t.Fatalf("tick 2: resources went to %d", tile.ResourceAmount)
	}
	if e.Resources() != start+1 {
		t.Fatalf("tick 2: depleted factory still produced, stockpile %d", e.Resources())
	}
}

func TestTick_ResearchAndVictoryTiming(t *testing.T) {
	e := newTestEngine(t, 2, neverSpread)
	mustTile(t, e, 0, 0).Building = hexgrid.BuildingLab
	mustTile(t, e, 1, 0).Building = hexgrid.BuildingLab

	target := e.Rules().ResearchTarget
	perTick := e.Rules().ResearchRate * 2
	ticksNeeded := (target + perTick - 1) / perTick

	for i := 1; i < ticksNeeded; i++ {
		before := e.ResearchProgress()
		e.Tick()
		if got := e.ResearchProgress() - before; got != perTick {
			t.Fatalf("tick %d: research grew by %d, expected %d", i, got, perTick)
		}
		if e.Phase() != PhasePlaying {
			t.Fatalf("tick %d: phase %s before reaching target (%d/%d)", i, e.Phase(), e.ResearchProgress(), target)
		}
	}
	e.Tick()
	if e.Phase() != PhaseVictory {
		t.Fatalf("tick %d: expected victory at %d/%d, got %s", ticksNeeded, e.ResearchProgress(), target, e.Phase())
	}

	progress := e.ResearchProgress()
	e.Tick()
	if e.ResearchProgress() != progress || e.TickCount() != ticksNeeded {
		t.Fatal("tick after victory changed state")
	}

	funds := e.Resources()
	if e.Apply(BuildFactory(hexgrid.NewCoord(-1, 0))) {
		t.Fatal("command accepted after victory")
	}
	if e.Resources() != funds || mustTile(t, e, -1, 0).Building != hexgrid.BuildingNone {
		t.Fatal("rejected command after victory changed state")
	}
}

func TestTick_Defeat(t *testing.T) {
	e := newTestEngine(t, 0, neverSpread)
	only := mustTile(t, e, 0, 0)
	only.Survivors, only.Infected = 0, 3

	e.Tick()
	if e.Phase() != PhaseDefeat {
		t.Fatalf("expected defeat, got %s", e.Phase())
	}
	if e.Apply(BuildFactory(only.Coord)) {
		t.Fatal("command accepted after defeat")
	}
}

func TestTick_VictoryBeatsDefeat(t *testing.T) {
	e := newTestEngine(t, 0, neverSpread)
	only := mustTile(t, e, 0, 0)
	only.Survivors, only.Infected = 0, 3
	only.Building = hexgrid.BuildingLab
	e.research = e.rules.ResearchTarget - 1

	e.Tick()
	if e.Phase() != PhaseVictory {
		t.Fatalf("simultaneous finish: expected victory, got %s", e.Phase())
	}
}

func TestApply_RejectedOutsidePlaying(t *testing.T) {
	grid, _ := hexgrid.Build(1, rand.New(rand.NewSource(3))) // #nosec G404 -- test only
	e := New(grid, DefaultRules())
	c := hexgrid.NewCoord(0, 0)
	for _, cmd := range []Command{BuildFactory(c), BuildLab(c), BuildWall(c, 2)} {
		if e.Apply(cmd) {
			t.Errorf("%s accepted in menu", cmd)
		}
	}
	if e.Resources() != DefaultRules().StartingResources {
		t.Fatalf("menu commands spent resources: %d", e.Resources())
	}
}

func TestApply_Factory(t *testing.T) {
	e := newTestEngine(t, 1, neverSpread)
	c := hexgrid.NewCoord(0, 0)
	if !e.Apply(BuildFactory(c)) {
		t.Fatal("factory rejected with enough resources")
	}
	if e.Resources() != 150 {
		t.Fatalf("expected 150 after factory, got %d", e.Resources())
	}
	if e.Apply(BuildFactory(c)) {
		t.Fatal("second factory on same tile accepted")
	}
	if e.Apply(BuildLab(c)) {
		t.Fatal("lab on factory tile accepted")
	}
	if e.Resources() != 150 {
		t.Fatalf("rejected commands changed stockpile to %d", e.Resources())
	}
	if e.Apply(BuildFactory(hexgrid.NewCoord(5, 5))) {
		t.Fatal("command on missing tile accepted")
	}
}

func TestApply_LabCap(t *testing.T) {
	e := newTestEngine(t, 2, neverSpread)
	e.resources = 10_000
	coords := []hexgrid.Coord{hexgrid.NewCoord(0, 0), hexgrid.NewCoord(1, 0), hexgrid.NewCoord(0, 1)}
	for _, c := range coords[:2] {
		if !e.Apply(BuildLab(c)) {
			t.Fatalf("lab at %v rejected below cap", c)
		}
	}
	if e.LabsCount() != e.Rules().MaxLabs {
		t.Fatalf("expected %d labs, got %d", e.Rules().MaxLabs, e.LabsCount())
	}
	before := e.Resources()
	if e.Apply(BuildLab(coords[2])) {
		t.Fatal("lab accepted at cap")
	}
	tile, _ := e.TileAt(coords[2])
	if tile.Building != hexgrid.BuildingNone || e.Resources() != before || e.LabsCount() != 2 {
		t.Fatal("rejected lab changed state")
	}
}

func TestApply_LabNeedsFunds(t *testing.T) {
	e := newTestEngine(t, 1, neverSpread)
	e.resources = e.Rules().LabCost - 1
	if e.Apply(BuildLab(hexgrid.NewCoord(0, 0))) {
		t.Fatal("lab accepted without funds")
	}
	if e.LabsCount() != 0 {
		t.Fatalf("labs count moved to %d", e.LabsCount())
	}
}

func TestApply_Wall(t *testing.T) {
	e := newTestEngine(t, 1, neverSpread)
	c := hexgrid.NewCoord(0, 0)
	if !e.Apply(BuildWall(c, 3)) {
		t.Fatal("wall rejected")
	}
	tile, _ := e.TileAt(c)
	if !tile.HasWall(3) || tile.WallCount() != 1 {
		t.Fatalf("expected wall on edge 3 only, walls=%v", tile.Walls)
	}
	if e.Resources() != 180 {
		t.Fatalf("expected 180 after wall, got %d", e.Resources())
	}
	if e.Apply(BuildWall(c, 3)) {
		t.Fatal("duplicate wall accepted")
	}
	if e.Apply(BuildWall(c, 6)) || e.Apply(BuildWall(c, -1)) {
		t.Fatal("out-of-range edge accepted")
	}
	// A wall does not occupy the build slot.
	if !e.Apply(BuildFactory(c)) {
		t.Fatal("factory rejected on walled tile")
	}
	e.resources = e.Rules().WallCost - 1
	if e.Apply(BuildWall(c, 0)) {
		t.Fatal("wall accepted without funds")
	}
	if e.Resources() != e.Rules().WallCost-1 {
		t.Fatal("rejected wall spent resources")
	}
}

func TestApply_LogsRejections(t *testing.T) {
	el := NewEventLog(false)
	e := newTestEngine(t, 1, neverSpread, WithEventLog(el))
	e.resources = 0
	e.Apply(BuildFactory(hexgrid.NewCoord(0, 0)))
	ev, ok := el.LastOf(CategoryCommand, "rejected")
	if !ok {
		t.Fatalf("no rejection logged:\n%s", el.Format())
	}
	if ev.Value != "factory: "+rejectFunds {
		t.Fatalf("unexpected rejection value %q", ev.Value)
	}
	if el.Count(CategoryPhase, "change") != 1 {
		t.Fatalf("expected one phase change (menu → playing), got %d", el.Count(CategoryPhase, "change"))
	}
}

// End-to-end: a seven-tile map with one infected tile and spread forced off
// stays frozen for ten ticks.
func TestScenario_NoSpreadRadiusOne(t *testing.T) {
	el := NewEventLog(true)
	e := newTestEngine(t, 1, neverSpread, WithEventLog(el))
	if e.Grid().Len() != 7 {
		t.Fatalf("expected 7 tiles, got %d", e.Grid().Len())
	}
	seed := mustTile(t, e, 0, 0)
	seed.Survivors, seed.Infected = 100, 1
	before := snapshot(e)

	for i := 0; i < 10; i++ {
		e.Tick()
	}

	for c, v := range snapshot(e) {
		if before[c] != v {
			t.Errorf("tile %v changed: %v -> %v", c, before[c], v)
		}
	}
	if e.Phase() != PhasePlaying {
		t.Fatalf("expected playing, got %s", e.Phase())
	}
	if n := el.Count(CategoryInfection, ""); n != 0 {
		t.Fatalf("expected no infection events, got %d:\n%s", n, el.Format())
	}
	if e.TickCount() != 10 {
		t.Fatalf("expected tick count 10, got %d", e.TickCount())
	}
}

func TestNewGame(t *testing.T) {
	e, err := NewGame(DefaultRules(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if e.Grid().Len() != 91 {
		t.Fatalf("radius 5: expected 91 tiles, got %d", e.Grid().Len())
	}
	if e.Phase() != PhaseMenu || e.Resources() != 200 {
		t.Fatalf("unexpected initial state: phase=%s resources=%d", e.Phase(), e.Resources())
	}

	rules := DefaultRules()
	rules.MapRadius = -1
	if _, err := NewGame(rules, 1); !errors.Is(err, ErrInvalidRules) {
		t.Fatalf("expected ErrInvalidRules, got %v", err)
	}
}

func TestNewGame_ReproducibleUnderSeed(t *testing.T) {
	run := func() Stats {
		e, err := NewGame(DefaultRules(), 7)
		if err != nil {
			t.Fatal(err)
		}
		e.Start()
		for i := 0; i < 300; i++ {
			e.Tick()
		}
		return e.Stats()
	}
	a, b := run(), run()
	if a != b {
		t.Fatalf("same seed diverged: %+v vs %+v", a, b)
	}
}
