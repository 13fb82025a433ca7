package main

import (
	"context"
	"os"
	"time"

	"eeg-insight/internal/cache"
	"eeg-insight/internal/config"
	"eeg-insight/internal/logging"
	"eeg-insight/internal/provider"
	"eeg-insight/internal/server"
	"eeg-insight/internal/service"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func init() {
	logging.SetupBaseLogger()
}

func main() {
	config.RegisterFlags(pflag.CommandLine)
	pflag.Parse()

	cfg, err := config.Load(config.WithDotEnv(".env"), config.WithFlags(pflag.CommandLine))
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logging.SetDebug(cfg.Debug)
	if err := logging.ConfigureLogOutput(cfg.LogToFile, cfg.LogDir); err != nil {
		log.Fatalf("failed to configure log output: %v", err)
	}
	defer logging.Close()

	if err := run(cfg); err != nil {
		log.Errorf("server exited: %v", err)
		logging.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	var (
		svcOpts    []service.Option
		serverOpts []server.Option
		p          provider.Provider
	)

	if cfg.AI.IsConfigured() {
		var err error
		if p, err = provider.New(cfg.AI); err != nil {
			return err
		}
		model := provider.ModelFor(cfg.AI)
		svcOpts = append(svcOpts, service.WithModel(model))

		log.WithFields(log.Fields{
			"provider": cfg.AI.ProviderLabel(),
			"model":    model,
			"key":      cfg.AI.MaskedKey(),
			"timeout":  cfg.AI.Timeout,
		}).Info("AI provider configured")
	} else {
		log.Warn("no AI provider configured, serving offline analysis only")
	}

	if cfg.RedisAddr != "" && p != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rc, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.CacheTTL)
		cancel()
		if err != nil {
			log.Warnf("completion cache disabled: %v", err)
		} else {
			defer func() {
				if errClose := rc.Close(); errClose != nil {
					log.Errorf("close redis client error: %v", errClose)
				}
			}()
			svcOpts = append(svcOpts, service.WithCache(rc))
			serverOpts = append(serverOpts, server.WithCache(rc))
			log.Infof("completion cache enabled at %s (ttl %s)", cfg.RedisAddr, cfg.CacheTTL)
		}
	}

	svc := service.New(p, svcOpts...)
	return server.New(cfg, svc, serverOpts...).Run(cfg.Addr())
}
