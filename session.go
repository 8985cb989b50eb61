package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/milk9111/glyphgrid/common"
	"github.com/milk9111/glyphgrid/config"
	"github.com/milk9111/glyphgrid/input"
	"github.com/milk9111/glyphgrid/render"
	"github.com/milk9111/glyphgrid/scene"
	"github.com/milk9111/glyphgrid/terminal"
)

// session owns the state shared by the window and terminal front ends: the
// grid, key state, the running scene and the file watcher.
type session struct {
	cfg        *config.Config
	configPath string

	grid    *terminal.Grid
	batcher *render.Batcher
	keys    *input.Manager

	scene       *scene.Scene
	sceneFailed bool
	watcher     *config.Watcher

	frames int
}

func newSession(cfg *config.Config, configPath string, grid *terminal.Grid, batcher *render.Batcher) *session {
	return &session{
		cfg:        cfg,
		configPath: configPath,
		grid:       grid,
		batcher:    batcher,
		keys:       input.NewManager(),
	}
}

// start applies the config, compiles the scene and, when enabled, starts
// watching the config and scene files.
func (s *session) start() error {
	s.apply(s.cfg)
	sc, err := scene.Load(s.cfg.Scene)
	if err != nil {
		return err
	}
	s.scene = sc

	if !s.cfg.Watch {
		return nil
	}
	var paths []string
	for _, p := range []string{s.configPath, s.cfg.Scene} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		common.Logger().Info("watch: nothing on disk to watch")
		return nil
	}
	w, err := config.NewWatcher(paths...)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	s.watcher = w
	common.Logger().Info("watch: started", "paths", paths)
	return nil
}

func (s *session) close() {
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
}

// step advances one frame: reload changed files, run the scene and age the
// key state.
func (s *session) step() {
	s.frames++
	s.reload()
	if s.scene != nil && !s.sceneFailed {
		if err := s.scene.Run(s.grid, s.keys, s.frames); err != nil {
			// stays paused until the script is edited
			s.sceneFailed = true
			common.Logger().Warn("scene failed", "err", err)
		}
	}
	s.keys.Update()
}

func (s *session) apply(cfg *config.Config) {
	s.grid.SetDefaults(cfg.Foreground.Color, cfg.Background.Color)
	s.batcher.SortByTexture = cfg.Sorted()
}

func (s *session) reload() {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-s.watcher.Events:
			if !ok {
				s.watcher = nil
				return
			}
			s.changed(path)
		case err, ok := <-s.watcher.Errors:
			if ok {
				common.Logger().Warn("watch: error", "err", err)
			}
		default:
			return
		}
	}
}

func (s *session) changed(path string) {
	switch {
	case samePath(path, s.configPath):
		cfg, err := config.Load(s.configPath)
		if err != nil {
			common.Logger().Warn("config reload failed", "err", err)
			return
		}
		scenePath := s.cfg.Scene
		s.cfg = cfg
		s.apply(cfg)
		if cfg.Scene != scenePath {
			s.loadScene(cfg.Scene)
		}
	case samePath(path, s.cfg.Scene):
		s.loadScene(s.cfg.Scene)
	}
}

func (s *session) loadScene(path string) {
	sc, err := scene.Load(path)
	if err != nil {
		common.Logger().Warn("scene reload failed", "err", err)
		return
	}
	s.scene = sc
	s.sceneFailed = false
	common.Logger().Info("scene reloaded", "path", path)
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
