// Package cli implements the command line interface for recall.
// Commands are thin adapters: they parse flags, call the driving port
// services and format the output.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/recall-labs/recall-cli/internal/adapters/driven/config/file"
	embeddingollama "github.com/recall-labs/recall-cli/internal/adapters/driven/embedding/ollama"
	llmollama "github.com/recall-labs/recall-cli/internal/adapters/driven/llm/ollama"
	"github.com/recall-labs/recall-cli/internal/adapters/driven/storage/sqlite"
	vectorfile "github.com/recall-labs/recall-cli/internal/adapters/driven/vectorstore/file"
	"github.com/recall-labs/recall-cli/internal/chunker"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
	"github.com/recall-labs/recall-cli/internal/core/services"
	"github.com/recall-labs/recall-cli/internal/loaders/pdf"
	"github.com/recall-labs/recall-cli/internal/loaders/plaintext"
	"github.com/recall-labs/recall-cli/internal/loaders/transcript"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose bool
	dataDir string
)

// Services wired by initServices. Commands check for nil so tests can
// inject their own implementations.
var (
	configStore   driven.ConfigStore
	embedder      driven.EmbeddingService
	llmService    driven.LLMService
	vectorStore   driven.VectorStore
	metadataStore driven.MetadataStore

	ingestService driving.IngestService
	queryService  driving.QueryService
	adminService  driving.AdminService
)

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Local retrieval-augmented question answering",
	Long: `recall ingests documents and video transcripts into a local
knowledge base and answers questions about them using Ollama.

Everything runs on your machine: embeddings and answers come from a
local Ollama server, vectors and metadata live under ~/.recall.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if skipServiceInit(cmd) {
			return nil
		}
		return initServices()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		closeServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.recall/data)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// skipServiceInit reports whether a command runs without the pipeline.
func skipServiceInit(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return true
	}
	return false
}

// initServices wires the full pipeline from configuration. Already-set
// services (injected by tests) are left alone.
func initServices() error {
	if queryService != nil && ingestService != nil {
		return nil
	}

	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	configStore = cfg

	dir := dataDir
	if dir == "" {
		dir = cfg.GetString("storage.data_dir")
	}

	vectors, err := vectorfile.NewStore(vectorDir(dir))
	if err != nil {
		return fmt.Errorf("opening vector store: %w", err)
	}
	vectorStore = vectors

	metadata, err := sqlite.NewStore(dir)
	if err != nil {
		return fmt.Errorf("opening metadata store: %w", err)
	}
	metadataStore = metadata

	embedder = embeddingollama.NewEmbeddingService(embeddingollama.Config{
		BaseURL:           cfg.GetString("ollama.url"),
		Model:             cfg.GetString("ollama.embedding_model"),
		RequestsPerSecond: float64(cfg.GetInt("ollama.requests_per_second")),
	})

	llmService = llmollama.NewLLMService(llmollama.LLMConfig{
		BaseURL: cfg.GetString("ollama.url"),
		Model:   cfg.GetString("ollama.llm_model"),
	})

	chunkOpts := []chunker.Option{
		chunker.WithChunkSize(cfg.GetInt("chunking.size")),
		chunker.WithEntriesPerChunk(cfg.GetInt("chunking.entries_per_chunk")),
	}
	// Overlap zero is a valid setting, so only apply it when the key exists.
	if _, ok := cfg.Get("chunking.overlap"); ok {
		chunkOpts = append(chunkOpts, chunker.WithOverlap(cfg.GetInt("chunking.overlap")))
	}
	ch := chunker.New(chunkOpts...)

	loaders := []driven.DocumentLoader{
		transcript.New(),
		pdf.New(),
		plaintext.New(),
	}

	prompts, err := configfile.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("opening prompt store: %w", err)
	}

	segmenter := services.NewSegmenter(llmService)
	segmenter.SetPromptStore(prompts)

	ingest := services.NewIngestService(loaders, ch, embedder, vectorStore, metadataStore)
	ingest.SetSegmenter(segmenter)
	ingestService = ingest

	query := services.NewQueryService(embedder, vectorStore, metadataStore, llmService)
	query.SetPromptStore(prompts)
	queryService = query

	adminService = services.NewAdminService(vectorStore, metadataStore)

	return nil
}

// vectorDir places the vector log next to the metadata database.
func vectorDir(dir string) string {
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "vectors")
}

func closeServices() {
	if embedder != nil {
		embedder.Close() //nolint:errcheck
	}
	if llmService != nil {
		llmService.Close() //nolint:errcheck
	}
	if vectorStore != nil {
		vectorStore.Close() //nolint:errcheck
	}
	if metadataStore != nil {
		metadataStore.Close() //nolint:errcheck
	}
}
