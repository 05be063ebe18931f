package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/lexflow/aljr2lex/internal/config"
	"github.com/lexflow/aljr2lex/internal/extract"
	"github.com/lexflow/aljr2lex/internal/msg"
	"github.com/lexflow/aljr2lex/internal/pdftext"
	"github.com/lexflow/aljr2lex/internal/pipeline"
	"github.com/lexflow/aljr2lex/internal/record"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// timestampLayout names the run in both the output file name and the
// Created On column.
const timestampLayout = "2006-01-02_15-04-05"

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if version != "dev" {
		cfg.Version = version
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("run.failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	// A broken catalog would corrupt every row, so it fails the run
	// before the first message is opened.
	catalog := extract.NewCatalog()
	if err := catalog.Validate(); err != nil {
		return fmt.Errorf("catalog validation: %w", err)
	}

	saver, err := pdftext.NewSaver(cfg.PDFDirectory)
	if err != nil {
		return err
	}

	startedAt := time.Now()
	timestamp := startedAt.Format(timestampLayout)
	outPath := cfg.OutputPath(timestamp)

	writer, err := record.NewWriter(cfg.Format, outPath)
	if err != nil {
		return err
	}

	runner := &pipeline.Runner{
		Source:    msg.NewDirectorySource(cfg.MsgDirectory),
		Saver:     saver,
		Validator: pdftext.NewValidator(cfg.MaxFileSize),
		Text:      pdftext.NewExtractor(0),
		Extractor: extract.NewExtractor(catalog, pipeline.NewObserver(logger)),
		Assembler: record.NewAssembler(cfg.Status, timestamp, cfg.Region, cfg.RecordType),
		Writer:    writer,
		Logger:    logger,
	}

	logger.Info("run.started",
		zap.String("msg_dir", cfg.MsgDirectory),
		zap.String("output", outPath),
		zap.String("format", cfg.Format),
	)

	summary, runErr := runner.Run(context.Background())
	if closeErr := writer.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}
	if runErr != nil {
		return runErr
	}

	logger.Info("run.summary",
		zap.Int("messages", summary.MessagesProcessed),
		zap.Int("messages_skipped", summary.MessagesSkipped),
		zap.Int("rows", summary.RowsWritten),
		zap.Int("attachments_skipped", summary.AttachmentsSkipped),
		zap.Duration("elapsed", time.Since(startedAt)),
	)
	return nil
}

// newLogger builds the run logger for the configured level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDebug() {
		return zap.NewDevelopment()
	}
	zcfg := zap.NewProductionConfig()
	switch cfg.LogLevel {
	case "warn":
		zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zcfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	return zcfg.Build()
}

// printVersion prints version information.
func printVersion() {
	fmt.Printf("ALJR to LEX Converter\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
