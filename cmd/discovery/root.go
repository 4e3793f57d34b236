package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ferraz/discovery-go/internal/auth"
	"github.com/ferraz/discovery-go/internal/config"
	"github.com/ferraz/discovery-go/internal/dispatch"
	"github.com/ferraz/discovery-go/internal/history"
	"github.com/ferraz/discovery-go/internal/logging"
	"github.com/ferraz/discovery-go/internal/session"
	"github.com/ferraz/discovery-go/internal/store"
	"github.com/ferraz/discovery-go/internal/ui"
	"github.com/ferraz/discovery-go/pkg/client"
	"github.com/ferraz/discovery-go/pkg/models"
	"github.com/spf13/cobra"
)

var (
	// Flags
	flagServerURL string
	flagIncognito bool
	flagVerbose   bool

	// Shared state, initialized by initConfig
	cfg    *config.Config
	cfgMgr *config.Manager
	render *ui.Renderer
	logger *logging.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "discovery [query]",
	Short: "Discovery CLI - AI-assisted content search",
	Long: `Discovery is a command-line client for an AI content-discovery service.

It streams search results, intermediate reasoning and chat responses from
the backend, and keeps recent results restorable between invocations.

Examples:
  discovery "open source model releases this week"
  discovery recommend
  discovery chat --from-last 2
  discovery results`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if logger != nil {
			logger.Close()
		}
	}()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&flagIncognito, "incognito", "i", false, "Don't save to history")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error

	cfgMgr, err = config.NewManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}

	cfg, err = cfgMgr.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	level := logging.LevelInfo
	if flagVerbose {
		level = logging.LevelDebug
	}
	logger = logging.New(cfg.LogFile, level)

	render, err = ui.NewRenderer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing renderer: %v\n", err)
		os.Exit(1)
	}
}

// serverURL resolves the backend base URL from flag and config.
func serverURL() string {
	if flagServerURL != "" {
		return flagServerURL
	}
	return cfg.ServerURL
}

// openStore opens the persistent state store.
func openStore() (*store.SQLiteStore, error) {
	st, err := store.Open(cfg.StateFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	return st, nil
}

// newClient builds an API client with the stored credential.
func newClient(st store.Store) (*client.Client, error) {
	key, err := auth.LoadKey(st)
	if err != nil {
		render.RenderInfo("Run 'discovery key set <api-key>' to configure a credential")
		return nil, err
	}

	cli, err := client.New(client.Config{
		BaseURL:        serverURL(),
		APIKey:         key,
		TimeoutSeconds: cfg.RequestTimeoutSeconds,
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}
	return cli, nil
}

// signalContext returns a context cancelled on interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	query := strings.Join(args, " ")

	st, err := openStore()
	if err != nil {
		render.RenderError(err.Error())
		return err
	}
	defer st.Close()

	cli, err := newClient(st)
	if err != nil {
		render.RenderError(err.Error())
		return err
	}
	defer cli.Close()

	ctx, cancel := signalContext()
	defer cancel()

	sess := session.New()
	bridge := session.NewBridge(st, logger)
	d := dispatch.New(sess, render, logger, bridge)

	if flagVerbose {
		render.RenderInfo(fmt.Sprintf("Query: %s", query))
		render.RenderInfo(fmt.Sprintf("Server: %s", serverURL()))
		render.NewLine()
	}

	gen := d.Begin(query)
	ch, err := cli.SearchStream(ctx, query)
	if err != nil {
		render.RenderError(err.Error())
		return err
	}

	for ev := range ch {
		d.Dispatch(gen, ev)
	}
	render.NewLine()

	if d.Phase() == dispatch.PhaseError {
		return fmt.Errorf("search failed")
	}

	if !flagIncognito {
		var response string
		if last, ok := sess.LastTurn(); ok && last.Role == models.RoleAssistant {
			response = last.Content
		}
		appendHistory(models.HistoryEntry{
			Kind:     "search",
			Query:    query,
			Response: truncateResponse(response, 500),
		})
	}

	return nil
}

// appendHistory records an entry, ignoring write failures.
func appendHistory(entry models.HistoryEntry) {
	hw, err := history.NewWriter(cfg.HistoryFile)
	if err != nil {
		logger.Warnf("history unavailable: %v", err)
		return
	}
	if err := hw.Append(entry); err != nil {
		logger.Warnf("failed to append history: %v", err)
	}
}

func truncateResponse(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
