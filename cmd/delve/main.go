package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/l1jgo/delve/internal/config"
	"github.com/l1jgo/delve/internal/data"
	"github.com/l1jgo/delve/internal/game"
	"github.com/l1jgo/delve/internal/gamemap"
	"github.com/l1jgo/delve/internal/mapgen"
	"github.com/l1jgo/delve/internal/scripting"
	"github.com/l1jgo/delve/internal/term"
	"github.com/l1jgo/delve/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Config and logger
	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	log = log.With(zap.String("run", uuid.NewString()))

	// 2. Data
	prefabs, err := data.LoadPrefabTable(cfg.Data.PrefabPath)
	if err != nil {
		return fmt.Errorf("load prefabs: %w", err)
	}
	player := prefabs.Get(cfg.Player.Prefab)
	if player == nil {
		return fmt.Errorf("player prefab %q not in %s", cfg.Player.Prefab, cfg.Data.PrefabPath)
	}
	log.Info("prefabs loaded", zap.Int("count", prefabs.Count()))

	// 3. World
	rng, seed := mapgen.NewRNG(cfg.Map.Seed)
	log.Info("map seed", zap.Int64("seed", seed))
	gen := mapgen.New(mapgenConfig(cfg.Map), rng, log)
	ws, _, err := world.Setup(gen, player, cfg.Visibility.AOICell, log)
	if err != nil {
		return fmt.Errorf("world setup: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := game.Options{
		Terrain: game.TerrainFrom(prefabs),
		FOVOnly: cfg.Render.FOVOnly,
		Workers: cfg.Visibility.Workers,
	}

	// 4. Loop
	switch cfg.Input.Mode {
	case "script":
		return runScript(ctx, cfg, ws, opts, log)
	default:
		return runTerminal(ctx, ws, opts, seed, log)
	}
}

// runTerminal plays one tick per key press on the controlling terminal.
func runTerminal(ctx context.Context, ws *world.State, opts game.Options, seed int64, log *zap.Logger) error {
	screen, err := term.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer screen.Close()
	screen.SetStatus(fmt.Sprintf("arrows or hjkl to move, q to quit  seed %d", seed))

	go func() {
		<-ctx.Done()
		screen.Interrupt()
	}()

	g := game.New(ws, screen, opts, log)
	err = g.Run(ctx, screen, 0)
	logStats(log, g.Stats())
	return err
}

// runScript lets the Lua next_move hook drive the player and prints each
// frame to stdout.
func runScript(ctx context.Context, cfg *config.Config, ws *world.State, opts game.Options, log *zap.Logger) error {
	engine, err := scripting.NewEngine(cfg.Input.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	engine.BindMap(ws.Map)

	locate := func() (p gamemap.Point) {
		if pos, ok := ws.Positions.Get(ws.Player()); ok {
			p = pos.Point()
		}
		return p
	}
	src, err := engine.MoveScript(locate, cfg.Input.MaxTicks)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}

	g := game.New(ws, term.NewTextRenderer(os.Stdout), opts, log)
	err = g.Run(ctx, src, cfg.Input.TickRate)
	logStats(log, g.Stats())
	return err
}

func logStats(log *zap.Logger, s game.Stats) {
	log.Info("game over",
		zap.Uint64("ticks", s.Ticks),
		zap.Int("moves", s.Moves),
		zap.Int("bumps", s.Bumps),
		zap.Int("fov_updates", s.FOVUpdates),
	)
}

func mapgenConfig(c config.MapConfig) mapgen.Config {
	return mapgen.Config{
		Width:        c.Width,
		Height:       c.Height,
		Layout:       mapgen.Layout(c.Layout),
		Base:         mapgen.Base(c.Base),
		MaxRooms:     c.MaxRooms,
		MinSize:      c.MinRoomSize,
		MaxSize:      c.MaxRoomSize,
		Margin:       c.Margin,
		ScatterWalls: c.ScatterWalls,
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	// the terminal owns stdout, so logs go to a file by default
	zapCfg.OutputPaths = []string{cfg.Output}
	zapCfg.ErrorOutputPaths = []string{cfg.Output}

	return zapCfg.Build()
}
