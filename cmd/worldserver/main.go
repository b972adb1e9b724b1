package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/originrealm/worldcore/internal/catalogue"
	"github.com/originrealm/worldcore/internal/config"
	"github.com/originrealm/worldcore/internal/core/ecs"
	"github.com/originrealm/worldcore/internal/core/event"
	coresys "github.com/originrealm/worldcore/internal/core/system"
	gonet "github.com/originrealm/worldcore/internal/net"
	"github.com/originrealm/worldcore/internal/net/packet"
	"github.com/originrealm/worldcore/internal/object"
	"github.com/originrealm/worldcore/internal/persist"
	"github.com/originrealm/worldcore/internal/scripting"
	"github.com/originrealm/worldcore/internal/session"
	"github.com/originrealm/worldcore/internal/terrain"
	"github.com/originrealm/worldcore/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ─────────────────────────────────────────

func printBanner(serverName string, serverID int) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              worldcore  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mserver:\033[0m %s \033[90m(id: %d)\033[0m\n\n", serverName, serverID)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ────────────────────────────────────────────────

func run() error {
	cfgPath := "config/server.toml"
	if p := os.Getenv("WORLDCORE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name, cfg.Server.ID)

	printSection("database")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()
	printOK("postgres connected")

	if err := persist.RunMigrations(ctx, db.Pool); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	printOK("migrations applied")
	fmt.Println()

	accountRepo := persist.NewAccountRepo(db)
	charRepo := persist.NewCharacterRepo(db)
	invRepo := persist.NewInventoryRepo(db)
	deathbindRepo := persist.NewDeathbindRepo(db)
	socialRepo := persist.NewSocialRepo(db)
	ticketRepo := persist.NewTicketRepo(db)
	groupRepo := persist.NewGroupRepo(db)
	guildRepo := persist.NewGuildRepo(db)

	printSection("content")
	mapTable, err := catalogue.LoadMapTable("data/yaml/map_list.yaml")
	if err != nil {
		return fmt.Errorf("load map catalogue: %w", err)
	}
	printStat("maps", mapTable.Count())

	creatureTable, err := catalogue.LoadCreatureTable("data/yaml/creature_list.yaml")
	if err != nil {
		return fmt.Errorf("load creature catalogue: %w", err)
	}
	printStat("creature templates", creatureTable.Count())

	gameObjectTable, err := catalogue.LoadGameObjectTable("data/yaml/gameobject_list.yaml")
	if err != nil {
		return fmt.Errorf("load gameobject catalogue: %w", err)
	}
	printStat("gameobject templates", gameObjectTable.Count())

	luaEngine, err := scripting.NewEngine("scripts", log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	printOK("lua scripts loaded")
	fmt.Println()

	// Spatial runtime: one GridManager + terrain Query per catalogue map.
	eventBus := event.NewBus()
	mapRegistry := world.NewMapRegistry(log)
	for _, id := range mapTable.IDs() {
		desc, _ := mapTable.Get(id)
		cellSize := cfg.World.CellSize
		if desc.CellSize > 0 {
			cellSize = desc.CellSize
		}
		query := terrain.NewQuery(log)
		if desc.UseTiles {
			query.Register(desc.ID, terrain.NewTable(desc.ID, terrain.NullLoader{}, log))
		}
		onActivate := newCellActivationHook(eventBus, float32(cellSize))
		mapRegistry.Register(desc.ID, desc.Name, float32(cellSize), onActivate, query)
	}
	printSection("world")
	printStat("registered maps", len(mapTable.IDs()))

	ecsWorld := ecs.NewWorld()
	sessionComp := ecs.NewPtrComponentStore[gonet.Session]()
	accountComp := ecs.NewPtrComponentStore[persist.AccountHandle]()
	playerComp := ecs.NewPtrComponentStore[object.Player]()
	ecsWorld.Registry().Register(sessionComp)
	ecsWorld.Registry().Register(accountComp)
	ecsWorld.Registry().Register(playerComp)
	sessions := session.NewRegistry()

	netServer, err := gonet.NewServer(cfg.Network.BindAddress, cfg.Network.InQueueSize, cfg.Network.OutQueueSize, log)
	if err != nil {
		return fmt.Errorf("net server: %w", err)
	}
	go netServer.AcceptLoop()

	pktReg := packet.NewRegistry(log)
	srv := &worldServer{
		cfg:           cfg,
		log:           log,
		accountRepo:   accountRepo,
		charRepo:      charRepo,
		invRepo:       invRepo,
		deathbindRepo: deathbindRepo,
		socialRepo:    socialRepo,
		ticketRepo:    ticketRepo,
		groupRepo:     groupRepo,
		guildRepo:     guildRepo,
		maps:          mapRegistry,
		mapCatalogue:  mapTable,
		creatures:     creatureTable,
		gameObjects:   gameObjectTable,
		scripting:     luaEngine,
		ecsWorld:      ecsWorld,
		sessionComp:   sessionComp,
		accountComp:   accountComp,
		playerComp:    playerComp,
		sessions:      sessions,
		netServer:     netServer,
		eventBus:      eventBus,
		cellSize:      float32(cfg.World.CellSize),
		bySession:     make(map[uint64]*playerLink),
	}
	srv.registerHandlers(pktReg)
	event.Subscribe(eventBus, func(ev event.CellActivated) {
		log.Debug("cell activated", zap.Uint32("map", ev.MapID), zap.Int32("ix", ev.IX), zap.Int32("iy", ev.IY))
	})
	event.Subscribe(eventBus, func(ev event.PlayerLoggedIn) {
		log.Info("player entered world", zap.String("account", ev.AccountName))
	})

	runner := coresys.NewRunner()
	runner.Register(&coresys.EventDispatchSystem{Bus: eventBus})
	runner.Register(&inputSystem{srv: srv, pktReg: pktReg})
	runner.Register(&coresys.CreatureTickSystem{Registry: mapRegistry, Update: srv.tickCreature})
	runner.Register(&coresys.GameObjectTickSystem{Registry: mapRegistry, Update: srv.tickGameObject})
	runner.Register(&outputSystem{srv: srv})
	runner.Register(&persistSystem{srv: srv, intervalTicks: cfg.Persistence.BatchIntervalTicks})
	runner.Register(&cleanupSystem{srv: srv})

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Network.TickRate)
	defer ticker.Stop()

	printSection("ready")
	printReady(fmt.Sprintf("listening on %s", netServer.Addr().String()))
	printReady(fmt.Sprintf("tick rate %s", cfg.Network.TickRate))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Network.TickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			netServer.Shutdown()
			flushCtx, flushCancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := srv.flushAll(flushCtx); err != nil {
				log.Error("shutdown flush failed", zap.Error(err))
			}
			flushCancel()
			log.Info("server stopped")
			return nil
		}
	}
}

// newCellActivationHook emits CellActivated for the cell of each entity
// the grid hands it: the joining player's cell on every placement, and
// a newly activated cell once per creature/gameobject resident in it.
// Terrain tile loading itself is lazy inside terrain.Query and
// needs no explicit trigger here.
func newCellActivationHook(bus *event.Bus, cellSize float32) world.ActivateFunc {
	return func(ent *object.Base) {
		key := world.KeyOf(ent.MapID, ent.Location.X, ent.Location.Y, cellSize)
		event.Emit(bus, event.CellActivated{MapID: key.MapID, IX: key.IX, IY: key.IY})
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
