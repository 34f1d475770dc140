package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/koding/multiconfig"
	"github.com/sirupsen/logrus"

	"github.com/drp-home/climatemaster/pkg/app"
	"github.com/drp-home/climatemaster/pkg/broker"
	"github.com/drp-home/climatemaster/pkg/bus"
	"github.com/drp-home/climatemaster/pkg/config"
	"github.com/drp-home/climatemaster/pkg/history"
	"github.com/drp-home/climatemaster/pkg/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGQUIT, syscall.SIGTERM)
	defer stop()
	err := Run(ctx)
	if err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func Run(ctx context.Context) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error loading .env: %w", err)
	}

	cli := &config.CliConfig{}
	err := multiconfig.New().Load(cli)
	if err != nil {
		return err
	}
	lvl, err := logrus.ParseLevel(cli.LogLevel)
	if err != nil {
		return fmt.Errorf("error setting logrus loglevel: %w", err)
	}
	logrus.SetLevel(lvl)
	logrus.WithField("version", version.Version).Info("starting climatemaster")

	hub, err := config.LoadHub(cli.HubFile)
	if err != nil {
		return err
	}

	wg := &sync.WaitGroup{}
	if cli.EmbeddedBroker {
		_, err := broker.Start(ctx, wg, cli.BrokerListen)
		if err != nil {
			return fmt.Errorf("error starting embedded broker: %w", err)
		}
	}

	b, err := bus.NewMQTT(cli.Broker, cli.TopicPrefix)
	if err != nil {
		return err
	}
	defer b.Close()

	var recorder history.Recorder
	if cli.HistoryAddr != "" {
		ch, err := history.NewClickHouse(cli.HistoryAddr, cli.HistoryDatabase, cli.HistoryUsername, cli.HistoryPassword)
		if err != nil {
			return err
		}
		defer ch.Close()
		recorder = ch
	} else {
		logrus.Info("no history address configured, using in memory history")
		recorder = history.NewMemory(24 * time.Hour)
	}

	a := app.New(cli, hub, b, recorder)
	err = a.Start(ctx)
	if err != nil {
		return err
	}

	a.Wait()
	wg.Wait()
	return nil
}
