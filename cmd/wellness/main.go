package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"wellness-chat/internal/adapter/orchestrator"
	"wellness-chat/internal/adapter/tui/chat"
	"wellness-chat/internal/domain"
	"wellness-chat/internal/infra/config"
	"wellness-chat/internal/infra/logger"
	"wellness-chat/internal/infra/tracer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "./config.yaml", "path to config file")
	serverURL := flag.String("server", "", "orchestrator base URL (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *serverURL != "" {
		cfg.Orchestrator.BaseURL = *serverURL
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}

	// Log to a file by default: the TUI owns the terminal.
	if cfg.Logger.Output == "stderr" || cfg.Logger.Output == "stdout" {
		cfg.Logger.Output = "./wellness-chat.log"
	}
	log, closeLog, err := logger.New(cfg.Logger)
	if err != nil {
		return err
	}
	defer closeLog()

	shutdownTracer, err := tracer.Setup(context.Background(), cfg.Tracer)
	if err != nil {
		return fmt.Errorf("tracer setup: %w", err)
	}
	defer shutdownTracer(context.Background())

	httpClient := orchestrator.NewHTTPClient(cfg.Orchestrator)
	client := orchestrator.NewClient(cfg.Orchestrator.BaseURL, httpClient, log)

	model := chat.NewModel(chat.ModelDeps{
		Sender:    wrapBreaker(client, cfg, log),
		Logger:    log,
		ShowPanel: cfg.UI.ShowPanel,
	})

	log.Info("starting wellness-chat",
		"orchestrator", cfg.Orchestrator.BaseURL,
		"breaker", cfg.Orchestrator.Breaker.Enabled)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

func wrapBreaker(client *orchestrator.Client, cfg *config.Config, log *slog.Logger) domain.TurnSender {
	if !cfg.Orchestrator.Breaker.Enabled {
		return client
	}
	return orchestrator.NewCircuitBreakerSender(client, cfg.Orchestrator.Breaker, log)
}
