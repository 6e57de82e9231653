package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dkazarin/mpdbmigrate/internal/cli"
	"github.com/dkazarin/mpdbmigrate/internal/codec"
	"github.com/dkazarin/mpdbmigrate/internal/config"
	"github.com/dkazarin/mpdbmigrate/internal/logging"
	"github.com/dkazarin/mpdbmigrate/internal/migrator"
	"github.com/dkazarin/mpdbmigrate/internal/source"
	"github.com/dkazarin/mpdbmigrate/internal/store"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	st, err := store.NewPostgresStore(ctx, cfg.DestinationDSN)
	if err != nil {
		log.Printf("%v", err)
		return
	}
	defer st.Close()

	reader := source.NewReader(cfg, logger)
	m := migrator.New(cfg, reader, st, codec.MPDB{}, codec.JSON{}, logger)

	app := cli.NewApp(cfg, m, logger)
	app.Run(ctx)
}
