// Package main runs archive maintenance: listing, inspecting, and importing
// stored game session snapshots.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	archivecmd "github.com/louisbranch/highnoon.cards/internal/cmd/archive"
	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
	"github.com/louisbranch/highnoon.cards/internal/platform/errors/i18n"
)

func main() {
	cfg, err := archivecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[ARCHIVE] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := archivecmd.Run(ctx, cfg, os.Stdout); err != nil {
		var domainErr *apperrors.Error
		if errors.As(err, &domainErr) {
			log.Fatalf("%s: %s", cfg.Command,
				i18n.Default().Format(string(domainErr.Code), domainErr.Metadata))
		}
		log.Fatalf("%s: %v", cfg.Command, err)
	}
}
