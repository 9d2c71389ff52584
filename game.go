package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/shelfsort/ecs"
	"github.com/milk9111/shelfsort/ecs/entity"
	"github.com/milk9111/shelfsort/ecs/system"
	"github.com/milk9111/shelfsort/levels"
	"github.com/milk9111/shelfsort/prefabs"
	"go.uber.org/zap"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	cfg Config

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	drag      *system.DragSystem
	hud       *hud

	watcher *prefabs.Watcher
}

func NewGame(cfg Config) (*Game, error) {
	source, err := system.NewPointerSource(cfg.InputMode)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	lvl, err := levels.LoadLevel(cfg.Scene)
	if err != nil {
		return nil, fmt.Errorf("new game: scene %q: %w", cfg.Scene, err)
	}

	world := ecs.NewWorld()
	if _, err := entity.LoadLevelToWorld(world, lvl); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	g := &Game{cfg: cfg, world: world}
	g.scheduler = g.buildScheduler(source)
	g.physics.Sync(world)
	g.hud = newHUD()

	if cfg.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			zap.L().Warn("prefab watch disabled", zap.String("dir", prefabs.Dir), zap.Error(err))
		} else {
			g.watcher = w
			zap.L().Info("watching prefabs", zap.String("dir", prefabs.Dir))
		}
	}

	return g, nil
}

// buildScheduler wires systems in frame order. Drag runs before scroll so a
// pick-up suspends panning on the same frame, and placement runs after
// physics so it sees this step's zone overlaps.
func (g *Game) buildScheduler(source system.PointerSource) *ecs.Scheduler {
	g.physics = system.NewPhysicsSystem()
	g.drag = system.NewDragSystem(g.physics)

	render := system.NewRenderSystem()
	render.Debug = g.cfg.Debug

	return ecs.NewScheduler(
		system.NewInputSystem(source),
		g.drag,
		system.NewScrollSystem(),
		system.NewTweenSystem(),
		g.physics,
		system.NewPlacementSystem(g.physics),
		system.NewAudioSystem(),
		render,
	)
}

func (g *Game) Update() error {
	g.applyPrefabChanges()

	dt := 1.0 / float64(ebiten.TPS())
	g.scheduler.Update(g.world, dt)
	return nil
}

// applyPrefabChanges drains the watcher without blocking the frame.
func (g *Game) applyPrefabChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			n, err := entity.ReloadPrefab(g.world, name)
			if err != nil {
				zap.L().Warn("prefab reload failed", zap.String("prefab", name), zap.Error(err))
				continue
			}
			zap.L().Info("prefab reloaded", zap.String("prefab", name), zap.Int("entities", n))
		case err, ok := <-g.watcher.Errors:
			if ok {
				zap.L().Warn("prefab watcher", zap.Error(err))
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scheduler.Draw(g.world, screen)
	if g.cfg.Debug {
		g.hud.Draw(screen, g.world)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			zap.L().Warn("close prefab watcher", zap.Error(err))
		}
	}
}
