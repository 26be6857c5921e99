// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/docrag"
	"github.com/poiesic/docrag/ai"
	"github.com/poiesic/docrag/chunker"
	"github.com/poiesic/docrag/extract"
	"github.com/poiesic/docrag/ingestion"
	"github.com/poiesic/docrag/synthesis"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "docrag",
		Usage: "Clinical document analysis with grounded retrieval",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest document files (PDF, text, markdown)",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: append(commonFlags(),
					&cli.IntFlag{
						Name:  "max-chars",
						Usage: "Maximum characters per chunk",
						Value: chunker.DefaultConfig().MaxChars,
					},
					&cli.IntFlag{
						Name:  "overlap",
						Usage: "Characters of overlap between adjacent chunks",
						Value: chunker.DefaultConfig().Overlap,
					},
				),
			},
			{
				Name:      "analyze",
				Usage:     "Produce a structured analysis of an ingested document",
				ArgsUsage: "REPORT-ID",
				Action:    analyzeCommand,
				Flags: append(commonFlags(),
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of chunks to feed the analysis prompt",
						Value: synthesis.DefaultTopK,
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Answer a question grounded in an ingested document",
				ArgsUsage: "REPORT-ID QUESTION",
				Action:    askCommand,
				Flags: append(commonFlags(),
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of chunks to feed the QA prompt",
						Value: synthesis.DefaultTopK,
					},
				),
			},
			{
				Name:      "show",
				Usage:     "Show an ingested document's metadata and preview",
				ArgsUsage: "[REPORT-ID]",
				Action:    showCommand,
				Flags:     commonFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "text-embedding-3-small",
		},
		&cli.StringFlag{
			Name:  "completion-model",
			Usage: "Completion model name",
			Value: "gpt-4o-mini",
		},
		&cli.IntFlag{
			Name:  "embedding-dimensions",
			Usage: "Embedding model output dimension",
			Value: 1536,
		},
		&cli.StringFlag{
			Name:    "api-token",
			Usage:   "API token for the AI service",
			Value:   "none",
			EnvVars: []string{"DOCRAG_API_TOKEN"},
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-request timeout for AI service calls",
			Value: 30 * time.Second,
		},
	}
}

func openDatabase(c *cli.Context) (*docrag.Database, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithCompletionModel(c.String("completion-model")),
		ai.WithEmbeddingDimensions(c.Int("embedding-dimensions")),
		ai.WithAPIToken(c.String("api-token")),
		ai.WithRequestTimeout(c.Duration("timeout")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	return docrag.NewDatabase(c.String("db"), docrag.WithAIConfig(aiConfig))
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("at least one document file is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline(
		ingestion.WithChunkerConfig(chunker.Config{
			MaxChars: c.Int("max-chars"),
			Overlap:  c.Int("overlap"),
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	ctx := context.Background()
	for _, path := range c.Args().Slice() {
		text, err := extract.FromFile(path)
		if err != nil {
			return fmt.Errorf("failed to extract %s: %w", path, err)
		}

		result, err := pipeline.Ingest(ctx, path, text)
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", path, err)
		}

		fmt.Printf("%s: report %s, %d chunks", path, result.Document.ReportID, result.ChunkCount)
		if result.Degraded {
			fmt.Printf(" (embeddings degraded: %s)", result.Reason)
		}
		fmt.Println()
	}

	return nil
}

func analyzeCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one report ID is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	doc, err := db.DocumentRepository().GetDocumentByReportID(ctx, c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to find document %s: %w", c.Args().First(), err)
	}

	orchestrator, err := db.NewOrchestrator(synthesis.WithTopK(c.Int("top-k")))
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	result, err := orchestrator.Analyze(ctx, doc.Id)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if result.Fallback {
		fmt.Fprintf(os.Stderr, "warning: analysis degraded: %s\n", result.Reason)
	}

	return printJSON(result.Analysis)
}

func askCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("a report ID and a question are required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	doc, err := db.DocumentRepository().GetDocumentByReportID(ctx, c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to find document %s: %w", c.Args().First(), err)
	}

	orchestrator, err := db.NewOrchestrator(synthesis.WithTopK(c.Int("top-k")))
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	result, err := orchestrator.Ask(ctx, doc.Id, c.Args().Get(1))
	if err != nil {
		return fmt.Errorf("question answering failed: %w", err)
	}

	if result.Fallback {
		fmt.Fprintf(os.Stderr, "warning: answer degraded: %s\n", result.Reason)
	}

	return printJSON(result.Answer)
}

func showCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if c.NArg() == 0 {
		docs, err := db.DocumentRepository().ListDocuments(ctx)
		if err != nil {
			return fmt.Errorf("failed to list documents: %w", err)
		}
		for _, doc := range docs {
			fmt.Printf("%s  %s  %d chunks  %s\n",
				doc.ReportID, doc.InsertedAt.Format(time.RFC3339), doc.ChunkCount, doc.Filename)
		}
		return nil
	}

	doc, err := db.DocumentRepository().GetDocumentByReportID(ctx, c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to find document %s: %w", c.Args().First(), err)
	}

	return printJSON(map[string]any{
		"report_id":   doc.ReportID,
		"filename":    doc.Filename,
		"chunk_count": doc.ChunkCount,
		"inserted_at": doc.InsertedAt,
		"preview":     doc.Preview(500),
	})
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
