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


package docrag

import (
	"log/slog"

	"github.com/poiesic/docrag/ai"
	"github.com/poiesic/docrag/ai/openai"
	"github.com/poiesic/docrag/ingestion"
	"github.com/poiesic/docrag/retrieval"
	"github.com/poiesic/docrag/storage"
	"github.com/poiesic/docrag/storage/badger"
	"github.com/poiesic/docrag/synthesis"
)

// Database bundles the storage backend, repositories, and AI provider into
// one handle that the pipeline, retriever, and orchestrator hang off.
type Database struct {
	backend   *badger.Backend
	docRepo   storage.DocumentRepository
	chunkRepo storage.ChunkRepository
	provider  ai.Provider
	aiConfig  *ai.Config
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
}

// WithAIConfig sets the AI provider configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(cfg *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithProvider substitutes a pre-built AI provider, bypassing the OpenAI
// client construction. Intended for tests.
func WithProvider(provider ai.Provider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemoryStorage keeps all data in memory instead of on disk.
// Intended for tests.
func WithInMemoryStorage() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// NewDatabase opens the document store at filePath and wires up the AI
// provider.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create document repository
	docRepo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create chunk repository
	chunkRepo, err := badger.NewChunkRepository(backend)
	if err != nil {
		docRepo.Close()
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			chunkRepo.Close()
			docRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:   backend,
		docRepo:   docRepo,
		chunkRepo: chunkRepo,
		provider:  provider,
		aiConfig:  options.aiConfig,
		logger:    slog.Default(),
	}, nil
}

// Close releases the AI provider, repositories, and backend.
func (db *Database) Close() error {
	// Close AI provider first
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	// Close repositories
	if err := db.chunkRepo.Close(); err != nil {
		db.logger.Error("error closing chunk repository", "err", err)
		return err
	}
	if err := db.docRepo.Close(); err != nil {
		db.logger.Error("error closing document repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// DocumentRepository exposes the document store.
func (db *Database) DocumentRepository() storage.DocumentRepository {
	return db.docRepo
}

// ChunkRepository exposes the chunk store.
func (db *Database) ChunkRepository() storage.ChunkRepository {
	return db.chunkRepo
}

// NewIngestionPipeline builds an ingestion pipeline over this database.
// The embedding dimensions and request timeout follow the AI config unless
// overridden by opts.
func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	baseOpts := []ingestion.Option{
		ingestion.WithEmbeddingDimensions(db.aiConfig.EmbeddingDimensions),
		ingestion.WithRequestTimeout(db.aiConfig.RequestTimeout),
	}
	return ingestion.NewPipeline(db.docRepo, db.chunkRepo, db.provider, append(baseOpts, opts...)...)
}

// NewRetriever builds a chunk retriever over this database.
func (db *Database) NewRetriever(opts ...retrieval.Option) (*retrieval.Retriever, error) {
	embedder := ai.NewFallbackEmbedder(db.provider.Embedder(),
		db.aiConfig.EmbeddingDimensions, db.aiConfig.RequestTimeout)
	return retrieval.NewRetriever(db.chunkRepo, embedder, opts...)
}

// NewOrchestrator builds a synthesis orchestrator over this database.
func (db *Database) NewOrchestrator(opts ...synthesis.Option) (*synthesis.Orchestrator, error) {
	retriever, err := db.NewRetriever()
	if err != nil {
		return nil, err
	}

	baseOpts := []synthesis.Option{
		synthesis.WithCompletionTimeout(db.aiConfig.RequestTimeout),
	}
	return synthesis.NewOrchestrator(retriever, db.provider.Completer(), append(baseOpts, opts...)...)
}
