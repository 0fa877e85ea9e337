package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"platano/internal/config"
	"platano/internal/http/handlers"
	"platano/internal/notify"
	"platano/internal/services"
	"platano/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the client and operator surfaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		// Optional file logging
		if cfg.LogFile != "" {
			f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
			} else {
				log.SetOutput(io.MultiWriter(os.Stdout, f))
			}
		}

		st, err := store.Open(cfg.DBDSN)
		if err != nil {
			return err
		}
		defer st.Close()

		authSvc, err := services.NewAuthService(cfg.OperatorToken)
		if err != nil {
			return err
		}

		// Outbound operator notifications: fire-and-forget queue with a
		// pluggable sink.
		queue := notify.NewQueue(256)
		var sink notify.Deliverer = notify.LogDeliverer{}
		if cfg.WebhookURL != "" {
			sink = notify.NewWebhookDeliverer(cfg.WebhookURL)
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		queue.Start(ctx, sink)

		catalog := services.NewCatalogService(st, queue)
		deps := handlers.NewDeps(catalog, authSvc)

		clientApp := handlers.NewClientApp(deps)
		operatorApp := handlers.NewOperatorApp(deps, handlers.RequireOperator(authSvc), cfg.TemplatesDir)

		// Two independent loops; all cross-loop coordination goes through
		// the durable store.
		errc := make(chan error, 2)
		go func() { errc <- listen(clientApp, cfg.ClientAddr, "client") }()
		go func() { errc <- listen(operatorApp, cfg.OperatorAddr, "operator") }()
		return <-errc
	},
}

func listen(app *fiber.App, addr, name string) error {
	log.Printf("[%s] listening on %s", name, addr)
	return app.Listen(addr)
}
