package main

import (
	"fmt"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/charcontrol/common"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/system"
	"github.com/milk9111/charcontrol/hud"
	"github.com/milk9111/charcontrol/prefabs"
	"github.com/milk9111/charcontrol/settings"
	"github.com/milk9111/charcontrol/sim"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

type Game struct {
	session *sim.Session
	log     *zap.Logger

	render  *system.RenderSystem
	hud     *hud.HUD
	pauseUI *ebitenui.UI
	// deathsText is the pause panel's death counter.
	deathsText *widget.Text
	watcher    *prefabs.Watcher

	paused    bool
	debug     bool
	clipboard bool
	status    string
}

func NewGame(cfg settings.Settings, logger *zap.Logger) (*Game, error) {
	s, err := sim.New(cfg, nil, logger)
	if err != nil {
		return nil, err
	}

	g := &Game{
		session: s,
		log:     logger,
		render:  system.NewRenderSystem(),
		debug:   cfg.Debug.Draw,
	}
	if ctrl := s.Controller(); ctrl != nil {
		g.hud = hud.New(ctrl.Vitals())
	}
	g.pauseUI = NewPauseUI(g)

	if cfg.Prefabs.Watch && cfg.Prefabs.Dir != "" {
		w, err := prefabs.NewWatcher(cfg.Prefabs.Dir, filepath.Join(cfg.Prefabs.Dir, "scripts"))
		if err != nil {
			logger.Warn("prefab watch disabled", zap.String("dir", cfg.Prefabs.Dir), zap.Error(err))
		} else {
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", zap.Error(err))
	} else {
		g.clipboard = true
	}

	s.Listen(func(evt ecs.Event) {
		if evt.Type == ecs.EventPlayerDied {
			g.status = fmt.Sprintf("died: %v", evt.Data)
		}
	})
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	_ = g.log.Sync()
}

func (g *Game) Update() error {
	if g.watcher != nil {
		if changed := g.watcher.Poll(); len(changed) > 0 {
			_ = g.session.Reload(changed)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := g.session.Reload(nil); err != nil {
			g.status = "reload failed"
		} else {
			g.status = "reloaded"
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.copySnapshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}

	if g.paused {
		g.refreshPauseUI()
		g.pauseUI.Update()
		return nil
	}

	g.session.Step(1 / float64(ebiten.TPS()))
	if g.hud != nil {
		g.hud.Update()
	}
	return nil
}

// copySnapshot puts the controller state on the clipboard as YAML.
func (g *Game) copySnapshot() {
	ctrl := g.session.Controller()
	if ctrl == nil {
		return
	}
	data, err := yaml.Marshal(ctrl.Snapshot())
	if err != nil {
		g.log.Warn("snapshot marshal failed", zap.Error(err))
		return
	}
	if !g.clipboard {
		g.log.Info("snapshot", zap.ByteString("yaml", data))
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.status = "snapshot copied"
}

func (g *Game) Draw(screen *ebiten.Image) {
	w := g.session.World()
	g.render.Draw(w, screen)

	if g.debug {
		system.DrawPhysicsDebug(w, screen)
		system.DrawPlayerStateDebug(w, screen)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  entities: %d", ebiten.ActualFPS(), len(w.Entities())), 10, common.BaseHeight-20)
	}
	if g.hud != nil {
		g.hud.Draw(screen)
	}
	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, common.BaseWidth-200, 10)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
