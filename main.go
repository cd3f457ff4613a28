package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/dungeon-bot/dungeonbot"
	"github.com/ellavondegurechaff/dungeon-bot/dungeonbot/commands"
	"github.com/ellavondegurechaff/dungeon-bot/dungeonbot/handlers"
	"github.com/ellavondegurechaff/dungeon-bot/dungeonbot/logger"
	"github.com/ellavondegurechaff/dungeon-bot/internal/domain/dungeon"
	"github.com/ellavondegurechaff/dungeon-bot/internal/gateways/database"
	"github.com/ellavondegurechaff/dungeon-bot/internal/gateways/database/repositories"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	logger.Setup(os.Stdout, logger.Options{Level: slog.LevelInfo, Color: true})

	cfg, err := dungeonbot.LoadConfig(*path)
	if err == nil {
		err = cfg.ValidateBot()
	}
	if err != nil {
		logger.LogError("Failed to load configuration", err)
		os.Exit(-1)
	}
	logger.Setup(os.Stdout, logger.Options{
		Level:     cfg.Log.Level,
		Color:     cfg.Log.Color,
		AddSource: cfg.Log.AddSource,
	})

	logger.LogSystem("Starting dungeon bot",
		slog.String("version", version),
		slog.String("commit", commit))

	dbStartTime := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("type", "db"),
			slog.Any("error", err),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	slog.Info("Database connected successfully",
		slog.String("type", "db"),
		slog.String("driver", cfg.DB.Driver),
		slog.Duration("took", time.Since(dbStartTime)))

	ref, err := database.LoadReference(cfg.Dungeon.ReferenceFile)
	if err != nil {
		logger.LogError("Failed to load reference data", err)
		os.Exit(-1)
	}
	if err := db.InitializeSchema(ctx, ref); err != nil {
		logger.LogError("Failed to initialize database schema", err)
		os.Exit(-1)
	}

	repo := repositories.NewDungeonRepository(db.BunDB())
	refs, err := dungeon.NewReferenceCache(cfg.Dungeon.CacheSize)
	if err != nil {
		logger.LogError("Failed to create reference cache", err)
		os.Exit(-1)
	}
	if err := refs.Warm(ctx, repo); err != nil {
		logger.LogError("Failed to warm reference cache", err)
		os.Exit(-1)
	}

	b := dungeonbot.New(*cfg, version, commit)
	b.DB = db
	b.Dungeon = dungeon.NewService(repo, refs, dungeon.WithCooldown(cfg.Dungeon.Cooldown.Duration))

	dungeonCommands := dungeon.NewCommands(b.Dungeon, b.Paginator)

	h := handler.New()
	h.Command("/version", commands.VersionHandler(b))
	h.Command("/roll-attempt", handlers.WrapWithLogging("roll-attempt", dungeonCommands.RollAttempt))
	h.Command("/status", handlers.WrapWithLogging("status", dungeonCommands.Status))
	h.Command("/levels", handlers.WrapWithLogging("levels", dungeonCommands.Levels))

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("error_details", fmt.Sprintf("%+v", err)),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		logger.LogSystem("Syncing commands", slog.Any("guild_ids", cfg.Bot.DevGuilds))
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("status", "failed"),
			)
		}
	}

	gatewayCtx, gatewayCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer gatewayCancel()
	if err = b.Client.OpenGateway(gatewayCtx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	logger.LogSystem("Bot is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	logger.LogSystem("Shutting down bot...")
}
