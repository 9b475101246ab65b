package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/taskflow"
	"github.com/aretw0/taskflow/internal/config"
	"github.com/aretw0/taskflow/internal/metrics"
	"github.com/aretw0/taskflow/internal/presentation/tui"
	"github.com/aretw0/taskflow/pkg/adapters/dateparse"
	"github.com/aretw0/taskflow/pkg/adapters/memory"
	"github.com/aretw0/taskflow/pkg/adapters/ollama"
	"github.com/aretw0/taskflow/pkg/console"
	"github.com/aretw0/taskflow/pkg/domain"
)

// Streams are the terminal endpoints of a session.
type Streams struct {
	In  io.Reader
	Out io.Writer
	// Interactive enables markdown rendering and the banner.
	Interactive bool
}

// RunSession runs the assistant on the process terminal until the user exits
// or a signal arrives.
func RunSession(cfg *config.Config) error {
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	err := Run(sigCtx, cfg, Streams{
		In:          os.Stdin,
		Out:         os.Stdout,
		Interactive: tui.IsInteractive(os.Stdout),
	})
	logInterruption(os.Stdout, sigCtx.Signal())
	return err
}

// Run wires the configured collaborators into an assistant and drives it.
// Cancellation and closed input end the session cleanly.
func Run(ctx context.Context, cfg *config.Config, streams Streams) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := createLogger(cfg)
	rich := streams.Interactive && !cfg.Plain

	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(); cerr != nil {
			logger.Warn("failed to close store", "err", cerr)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hooks := createDebugHooks(logger)
	if cfg.MetricsAddr != "" {
		collector := metrics.New()
		hooks = domain.MergeHooks(hooks, collector.Hooks())
		if _, err := metrics.Serve(ctx, cfg.MetricsAddr, metrics.NewHandler(collector.Registry()), logger); err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
		printSystemMessage(streams.Out, "Metrics available at http://%s/metrics", cfg.MetricsAddr)
	}

	var consoleOpts []console.Option
	if cfg.MaxInputSize > 0 {
		consoleOpts = append(consoleOpts, console.WithMaxInputSize(cfg.MaxInputSize))
	}
	if rich {
		if render := tui.NewRenderer(); render != nil {
			consoleOpts = append(consoleOpts, console.WithRenderer(render))
		}
		tui.PrintBanner(streams.Out)
	}

	llmOpts := []ollama.Option{
		ollama.WithBaseURL(cfg.LLM.URL),
		ollama.WithModel(cfg.LLM.Model),
		ollama.WithTemperature(cfg.LLM.Temperature),
	}
	if cfg.LLM.Timeout > 0 {
		llmOpts = append(llmOpts, ollama.WithTimeout(cfg.LLM.Timeout))
	}

	con := console.NewText(streams.In, streams.Out, consoleOpts...)
	defer con.Close()

	assistant, err := taskflow.New(store,
		taskflow.WithConsole(con),
		taskflow.WithBreakdowner(ollama.New(llmOpts...)),
		taskflow.WithDateParser(dateparse.New(cfg.DateLanguages...)),
		taskflow.WithLogger(logger),
		taskflow.WithLifecycleHooks(hooks),
	)
	if err != nil {
		return err
	}

	logger.Info("session started", "store", cfg.Store, "model", cfg.LLM.Model)
	return handleExecutionError(assistant.Run(ctx))
}

// PrintGraph writes the Mermaid diagram of the task graph to w.
func PrintGraph(w io.Writer) error {
	assistant, err := taskflow.New(memory.NewStore(),
		taskflow.WithConsole(console.NewText(strings.NewReader(""), io.Discard)),
	)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, assistant.Mermaid())
	return err
}
