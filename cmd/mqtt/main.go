package main

import (
	"context"
	"log"
	"os/signal"
	"sync"
	"syscall"

	"github.com/drp-home/climatemaster/pkg/broker"
)

// standalone broker for bench testing without a full deployment.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	wg := &sync.WaitGroup{}
	_, err := broker.Start(ctx, wg, ":1883")
	if err != nil {
		log.Fatal(err)
	}

	wg.Wait()
}
