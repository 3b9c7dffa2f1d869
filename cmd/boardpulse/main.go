// cmd/boardpulse/main.go
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"boardpulse/internal/agent"
	"boardpulse/internal/boards"
	"boardpulse/internal/common/config"
	"boardpulse/internal/common/logger"
	"boardpulse/internal/common/observability"
	"boardpulse/internal/intent"
	"boardpulse/internal/llm"
	"boardpulse/internal/narrate"
	"boardpulse/internal/ui"
)

func main() {
	question := flag.String("q", "", "ask one question and exit")
	configPath := flag.String("config", "", "path to config file (default: ./configs/config.yaml)")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		// The logger is configured from the config we just failed to load,
		// so report this one with a bare zap production logger.
		zapLog, _ := zap.NewProduction()
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting boardpulse",
		zap.String("environment", cfg.App.Environment),
		zap.String("dealsBoard", cfg.Monday.Boards.Deals),
		zap.String("workOrdersBoard", cfg.Monday.Boards.WorkOrders),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				zapLog.Warn("metrics listener stopped", zap.Error(err))
			}
		}()
		zapLog.Info("metrics listener started", zap.String("address", cfg.Metrics.Address))
	}

	boardClient := boards.NewClient(cfg.Monday, log)
	llmClient := llm.NewClient(cfg.OpenAI, log)
	interpreter := intent.NewInterpreter(llmClient, log)
	narrator := narrate.NewNarrator(llmClient, log)

	app := agent.New(
		boardClient, interpreter, narrator,
		cfg.Monday.Boards.Deals, cfg.Monday.Boards.WorkOrders,
		log, obs,
		agent.Placeholders{Summary: narrate.PlaceholderSummary},
	)

	ctx := context.Background()

	if *question != "" {
		answer := app.Ask(ctx, *question)
		fmt.Print(ui.Render(answer))
		return
	}

	runInteractive(ctx, app)
}

func runInteractive(ctx context.Context, app *agent.Agent) {
	fmt.Println("boardpulse: ask a question about your boards (empty line to quit)")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			return
		}
		answer := app.Ask(ctx, question)
		fmt.Print(ui.Render(answer))
	}
}
