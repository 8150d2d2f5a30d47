package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gymref/config"
	"gymref/internal/cache"
	"gymref/internal/database"
	"gymref/internal/logging"
	"gymref/internal/router"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.Log.Level, cfg.Log.Format)

	app := &cli.App{
		Name:  "gymref",
		Usage: "gym referral campaigns API",
		Commands: []*cli.Command{
			commandServe(cfg, log),
			commandMigrate(cfg, log),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("exit")
	}
}

func commandServe(cfg *config.Config, log *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "migrate the schema and start the HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Value: cfg.Server.Port,
				Usage: "listen port",
			},
			&cli.BoolFlag{
				Name:  "skip-migrate",
				Usage: "do not run auto-migration on start",
			},
		},
		Action: func(c *cli.Context) error {
			db, err := database.NewDB(&cfg.Database)
			if err != nil {
				return err
			}
			defer func() {
				if err := database.Close(db); err != nil {
					log.WithError(err).Warn("closing database failed")
				}
			}()
			if !c.Bool("skip-migrate") {
				if err := database.AutoMigrate(db); err != nil {
					return err
				}
			}

			redisClient := cache.NewRedisClient(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
			if redisClient != nil {
				defer redisClient.Close()
				log.WithField("addr", cfg.Cache.RedisAddr).Info("redis cache enabled")
			}
			store := cache.New(redisClient, cfg.Cache.LocalSize, cfg.Cache.StatusTTL)

			limiters := router.NewLimiters(&cfg.RateLimit)
			engine := router.Setup(cfg, db, store, limiters, log)
			srv := &http.Server{
				Addr:         ":" + c.String("port"),
				Handler:      engine,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				log.WithFields(logrus.Fields{"addr": srv.Addr, "env": cfg.Server.Env}).Info("server listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				return limiters.API.Run(gctx, time.Minute)
			})
			g.Go(func() error {
				return limiters.Issue.Run(gctx, time.Minute)
			})
			g.Go(func() error {
				<-gctx.Done()
				log.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			if err := g.Wait(); err != nil {
				return err
			}
			log.Info("server stopped")
			return nil
		},
	}
}

func commandMigrate(cfg *config.Config, log *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create or update the database schema",
		Action: func(c *cli.Context) error {
			db, err := database.NewDB(&cfg.Database)
			if err != nil {
				return err
			}
			defer func() {
				if err := database.Close(db); err != nil {
					log.WithError(err).Warn("closing database failed")
				}
			}()
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			log.WithField("driver", cfg.Database.Driver).Info("schema migrated")
			return nil
		},
	}
}
