package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/Denys/transformer-designer/internal/catalog"
	"github.com/Denys/transformer-designer/internal/config"
	"github.com/Denys/transformer-designer/internal/design"
	"github.com/Denys/transformer-designer/internal/export"
	"github.com/Denys/transformer-designer/internal/server"
	"github.com/Denys/transformer-designer/pkg/constants"
	"github.com/Denys/transformer-designer/pkg/output"
	"github.com/Denys/transformer-designer/pkg/validation"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	encoding := loggingConfig.Encoding
	if encoding == "" {
		encoding = "json"
	}

	var zapConfig zap.Config
	switch encoding {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log encoding: %s", encoding)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}
		file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		}
		_ = file.Close()

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// buildProvider assembles the core catalog, attaching the external database
// client only when the configuration names one.
func buildProvider(logger *zap.Logger, conf *config.Configuration) catalog.Provider {
	var external *catalog.ExternalClient
	if conf.Catalog.ExternalEnabled && conf.Catalog.ExternalURL != "" {
		external = catalog.NewExternalClient(conf.Catalog.ExternalURL, conf.Catalog.Timeout(), logger)
	}
	return catalog.NewHybrid(logger, nil, nil, external)
}

// requestHeader carries the discriminator of a design request file; the
// remaining fields are decoded by the matching requirements type.
type requestHeader struct {
	Type string `yaml:"type"`
}

func runDesign(logger *zap.Logger, conf *config.Configuration, requestPath, format, exportFormat, outputPath string) error {
	data, err := os.ReadFile(requestPath)
	if err != nil {
		return fmt.Errorf("read request file: %w", err)
	}
	var header requestHeader
	if err := yaml.Unmarshal(data, &header); err != nil {
		return fmt.Errorf("parse request file: %w", err)
	}

	generator := design.NewGenerator(logger, buildProvider(logger, conf))
	ctx := context.Background()

	switch header.Type {
	case "transformer":
		var req design.TransformerRequirements
		if err := yaml.Unmarshal(data, &req); err != nil {
			return fmt.Errorf("parse transformer request: %w", err)
		}
		conf.Defaults.ApplyTransformer(&req)

		result, noMatch, err := generator.DesignTransformer(ctx, req)
		if err != nil {
			return err
		}
		if noMatch != nil {
			return printNoMatch(noMatch, format)
		}

		switch format {
		case constants.OutputFormatPretty:
			output.PrettyTransformer(os.Stdout, result, req)
		case constants.OutputFormatCSV:
			output.CsvTransformer(os.Stdout, result)
		case constants.OutputFormatJSON:
			if err := printJSON(result); err != nil {
				return err
			}
		}
		if exportFormat != "" {
			return writeExport(logger, exportFormat, outputPath, result, req)
		}
		return nil

	case "inductor":
		var req design.InductorRequirements
		if err := yaml.Unmarshal(data, &req); err != nil {
			return fmt.Errorf("parse inductor request: %w", err)
		}
		conf.Defaults.ApplyInductor(&req)

		result, noMatch, err := generator.DesignInductor(ctx, req)
		if err != nil {
			return err
		}
		if noMatch != nil {
			return printNoMatch(noMatch, format)
		}

		switch format {
		case constants.OutputFormatPretty:
			output.PrettyInductor(os.Stdout, result, req)
		case constants.OutputFormatCSV:
			output.CsvInductor(os.Stdout, result)
		case constants.OutputFormatJSON:
			if err := printJSON(result); err != nil {
				return err
			}
		}
		if exportFormat != "" {
			return fmt.Errorf("export formats cover transformer designs only")
		}
		return nil

	case "":
		return fmt.Errorf("request file missing type: transformer or inductor")
	default:
		return fmt.Errorf("unknown request type %q (expected transformer or inductor)", header.Type)
	}
}

// printNoMatch reports a catalog miss; CSV has no no-match table, so it
// falls back to the pretty explanation.
func printNoMatch(noMatch *design.NoMatchResult, format string) error {
	if format == constants.OutputFormatJSON {
		return printJSON(noMatch)
	}
	output.PrettyNoMatch(os.Stdout, noMatch)
	return nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeExport(logger *zap.Logger, format, outputPath string, result *design.TransformerResult, req design.TransformerRequirements) error {
	if export.MediaType(format) == "" {
		return fmt.Errorf("unknown export format %q", format)
	}
	if outputPath == "" {
		outputPath = export.Filename(format, result.Core.PartNumber, req.OutputPowerW)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := export.Write(format, f, result, req); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s export: %w", format, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}

	logger.Info("export written",
		zap.String("op", "main.writeExport"),
		zap.String("format", format),
		zap.String("path", outputPath),
	)
	return nil
}

func runServe(logger *zap.Logger, conf *config.Configuration) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	handler := server.NewHandler(logger, conf, buildProvider(logger, conf), version)
	srv := &http.Server{
		Addr:         conf.Server.Address,
		Handler:      handler,
		ReadTimeout:  constants.DefaultServerReadTimeout,
		WriteTimeout: constants.DefaultServerWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("op", "main.runServe"),
			zap.String("address", conf.Server.Address),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received", zap.String("op", "main.runServe"))
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server stopped", zap.String("op", "main.runServe"))
	return nil
}

func main() {
	configLocation := flag.String("config", "", "path to configuration file (defaults to ./config.yaml when present)")
	requestPath := flag.String("request", "", "path to a YAML design request file")
	mode := flag.String("mode", "", "run mode override: design, serve")
	outputFormatFlag := flag.String("format", "", "design output override: pretty, csv, json")
	exportFormat := flag.String("export", "", "artifact to write after a design run: mas, femm, pdf, xlsx")
	outputPath := flag.String("output", "", "artifact path override for -export")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	// A .env beside the binary feeds TDESIGN_* overrides; absence is fine.
	_ = godotenv.Load()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	outputFormat := *outputFormatFlag
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// A request file implies a design run; a bare invocation serves HTTP.
	runMode := *mode
	if runMode == "" {
		if *requestPath != "" {
			runMode = "design"
		} else {
			runMode = "serve"
		}
	}

	switch runMode {
	case "design":
		if *requestPath == "" {
			logger.Fatal("design mode requires -request",
				zap.String("op", "main"),
			)
		}
		if err := runDesign(logger, conf, *requestPath, outputFormat, *exportFormat, *outputPath); err != nil {
			logger.Fatal("design run failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	case "serve":
		if err := runServe(logger, conf); err != nil {
			logger.Fatal("server failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	default:
		logger.Fatal("invalid mode: "+runMode,
			zap.String("op", "main"),
		)
	}
}
