package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/contested/internal/common/clock"
	"github.com/KirkDiggler/contested/internal/common/uuid"
	"github.com/KirkDiggler/contested/internal/config"
	"github.com/KirkDiggler/contested/internal/dice"
	"github.com/KirkDiggler/contested/internal/handlers/cli"
	"github.com/KirkDiggler/contested/internal/logging"
	contestRepo "github.com/KirkDiggler/contested/internal/repositories/contest"
	entityRepo "github.com/KirkDiggler/contested/internal/repositories/entity"
	"github.com/KirkDiggler/contested/internal/repositories/sqlitedb"
	contestService "github.com/KirkDiggler/contested/internal/services/contest"
	"github.com/KirkDiggler/contested/internal/services/handoff"
	"github.com/KirkDiggler/contested/internal/services/messaging"
)

type stores struct {
	contests contestRepo.Repository
	entities entityRepo.Repository
	close    func() error
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Logs go to stderr so command output stays readable
	logger := logging.NewWithOutput("contestctl", cfg.LogLevel, os.Stderr)

	st, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer st.close()

	contests, err := contestService.New(&contestService.Config{
		AllowLuckyUnlucky: cfg.AllowLuckyUnlucky,
		MaxWriteRetries:   cfg.MaxWriteRetries,
		ContestRepo:       st.contests,
		EntityRepo:        st.entities,
		DiceRoller:        dice.New(&dice.Config{Seed: cfg.DiceSeed}),
		Clock:             clock.New(),
		UUIDGenerator:     uuid.New(),
		Publisher:         handoff.NewLog(logger),
		Logger:            logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create contest service: %w", err)
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{})
	if err != nil {
		return fmt.Errorf("failed to create messaging service: %w", err)
	}

	root, err := cli.NewRootCmd(&cli.App{
		Contests:  contests,
		Entities:  st.entities,
		Messaging: messagingSvc,
	})
	if err != nil {
		return err
	}

	return root.Execute()
}

func openStores(cfg *config.Config) (*stores, error) {
	switch cfg.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		contests, err := contestRepo.NewRedis(&contestRepo.Config{RedisClient: client})
		if err != nil {
			return nil, err
		}
		entities, err := entityRepo.NewRedis(&entityRepo.Config{RedisClient: client})
		if err != nil {
			return nil, err
		}
		return &stores{contests: contests, entities: entities, close: client.Close}, nil

	case "sqlite", "":
		db, err := sqlitedb.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}

		contests, err := contestRepo.NewSQLite(&contestRepo.SQLiteConfig{DB: db})
		if err != nil {
			return nil, err
		}
		entities, err := entityRepo.NewSQLite(&entityRepo.SQLiteConfig{DB: db})
		if err != nil {
			return nil, err
		}
		return &stores{contests: contests, entities: entities, close: db.Close}, nil
	}

	return nil, fmt.Errorf("unknown store %q, want sqlite or redis", cfg.Store)
}
