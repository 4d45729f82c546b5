package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"svgcss/api"
	"svgcss/catalog"
	"svgcss/config"
	"svgcss/storage"
	"svgcss/theme"
)

var (
	dataDir    string
	listen     string
	listenPort int
	appVersion = "0.3.0"
)

var rootCmd = &cobra.Command{
	Use:   "svgcss",
	Short: "svgcss – SVG to CSS background converter",
	Long: "svgcss turns SVG markup into a CSS background-image declaration. " +
		"Without a subcommand it serves the converter page.",
	SilenceUsage: true,
	RunE:         run,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  "Manage svgcss configuration files.",
}

var configGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a default configuration file",
	Long:  "Generate a default svgcss.yaml in the data directory (or current directory if not specified).",
	RunE:  runConfigGenerate,
}

func init() {
	wd, _ := os.Getwd()
	rootCmd.Version = appVersion
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", wd, "Data directory (default: current directory)")
	rootCmd.Flags().StringVar(&listen, "listen", "all", "IP address to listen on (default: all)")
	rootCmd.Flags().IntVar(&listenPort, "listen-port", 8080, "Port to listen on (default: 8080)")

	configCmd.AddCommand(configGenerateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(newConvertCmd(), newPasteCmd(), newPNGCmd(), newExamplesCmd())
}

// loadConfig reads the config for --data-dir and builds its logger.
func loadConfig(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfg, v, err := config.Load(dataDir)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if cfg.DataDir, err = filepath.Abs(cfg.DataDir); err != nil {
		return config.Config{}, nil, fmt.Errorf("resolve data dir: %w", err)
	}

	logger, err := config.NewLogger(v)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)

	if cmd.Flags().Changed("listen") || cmd.Flags().Changed("listen-port") {
		if listen != "" && listen != "all" {
			cfg.ListenAddr = net.JoinHostPort(listen, fmt.Sprint(listenPort))
		} else {
			cfg.ListenAddr = fmt.Sprintf(":%d", listenPort)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := storage.Open(ctx, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	examples, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return fmt.Errorf("load examples: %w", err)
	}

	themes, err := theme.NewManager(theme.Templates, logger)
	if err != nil {
		return fmt.Errorf("initialize theme manager: %w", err)
	}

	apiServer, err := api.NewServer(api.Deps{
		Catalog:     examples,
		Themes:      themes,
		Prefs:       store.Theme(),
		PreviewSize: cfg.PreviewSize,
		Version:     appVersion,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printListeningAddresses(logger, cfg.ListenAddr)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown", zap.Error(err))
	}
	return nil
}

func runConfigGenerate(cmd *cobra.Command, args []string) error {
	dataDirAbs, err := filepath.Abs(dataDir)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := config.Default()
	cfg.DataDir = dataDirAbs

	cfgPath := config.Path(dataDirAbs)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("config file already exists: %s", cfgPath)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated default config file: %s\n", cfgPath)
	return nil
}

func printListeningAddresses(logger *zap.Logger, addr string) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		logger.Info("listening", zap.String("url", "http://"+addr))
		return
	}

	if host != "" && host != "0.0.0.0" && host != "::" {
		logger.Info("listening", zap.String("url", "http://"+net.JoinHostPort(host, port)))
		return
	}

	urls := []string{}
	if addrs, err := net.InterfaceAddrs(); err == nil {
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
				urls = append(urls, "http://"+net.JoinHostPort(ipnet.IP.String(), port))
			}
		}
	}
	urls = append(urls, "http://localhost:"+port, "http://127.0.0.1:"+port)
	logger.Info("listening", zap.Strings("urls", urls))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
