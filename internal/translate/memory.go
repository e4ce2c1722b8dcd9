package translate

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	applicationDataDirectory = "lfx"
	memoryDatabaseFileName   = "memory.db"
)

// Memory caches completed translations keyed by source text, language, and
// model so repeated batch runs do not re-translate unchanged documents.
type Memory struct {
	db *sql.DB
}

// OpenMemory opens the translation memory database in the user data
// directory, creating it on first use.
func OpenMemory() (*Memory, error) {
	databasePath, pathError := xdg.DataFile(filepath.Join(applicationDataDirectory, memoryDatabaseFileName))
	if pathError != nil {
		return nil, fmt.Errorf("resolve translation memory path: %w", pathError)
	}
	return OpenMemoryAt(databasePath)
}

// OpenMemoryAt opens the translation memory database at databasePath.
func OpenMemoryAt(databasePath string) (*Memory, error) {
	if mkdirError := os.MkdirAll(filepath.Dir(databasePath), 0o755); mkdirError != nil {
		return nil, fmt.Errorf("create translation memory directory: %w", mkdirError)
	}
	db, openError := sql.Open("sqlite", databasePath)
	if openError != nil {
		return nil, fmt.Errorf("open translation memory: %w", openError)
	}
	if schemaError := initSchema(db); schemaError != nil {
		db.Close()
		return nil, schemaError
	}
	return &Memory{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, execError := db.Exec(`
		CREATE TABLE IF NOT EXISTS translations (
			source_hash TEXT NOT NULL,
			language TEXT NOT NULL,
			model TEXT NOT NULL,
			translated_text TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			PRIMARY KEY (source_hash, language, model)
		);
	`)
	if execError != nil {
		return fmt.Errorf("initialize translation memory schema: %w", execError)
	}
	return nil
}

// Close releases the underlying database handle.
func (memory *Memory) Close() error {
	return memory.db.Close()
}

// Lookup returns the cached translation for the source text, if any.
func (memory *Memory) Lookup(sourceText string, language string, model string) (string, bool, error) {
	row := memory.db.QueryRow(
		`SELECT translated_text FROM translations WHERE source_hash = ? AND language = ? AND model = ?`,
		hashSource(sourceText), language, model,
	)
	var translatedText string
	scanError := row.Scan(&translatedText)
	if errors.Is(scanError, sql.ErrNoRows) {
		return "", false, nil
	}
	if scanError != nil {
		return "", false, scanError
	}
	return translatedText, true, nil
}

// Store records a translation for later lookups, replacing any previous entry
// for the same source, language, and model.
func (memory *Memory) Store(sourceText string, language string, model string, translatedText string) error {
	_, execError := memory.db.Exec(
		`INSERT OR REPLACE INTO translations (source_hash, language, model, translated_text, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		hashSource(sourceText), language, model, translatedText, time.Now().Unix(),
	)
	return execError
}

func hashSource(sourceText string) string {
	digest := sha256.Sum256([]byte(sourceText))
	return hex.EncodeToString(digest[:])
}

// CachingTranslator consults the translation memory before delegating to the
// wrapped translator and writes fresh results through.
type CachingTranslator struct {
	memory     *Memory
	translator Translator
	language   string
	model      string
}

// NewCachingTranslator wraps translator with lookups in memory.
func NewCachingTranslator(memory *Memory, translator Translator, language string, model string) *CachingTranslator {
	return &CachingTranslator{
		memory:     memory,
		translator: translator,
		language:   language,
		model:      model,
	}
}

// Translate serves the translation from memory when available and records the
// backend result otherwise. Memory failures degrade to uncached translation.
func (caching *CachingTranslator) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	cachedText, found, lookupError := caching.memory.Lookup(text, caching.language, caching.model)
	if lookupError == nil && found {
		return cachedText, nil
	}
	translatedText, translateError := caching.translator.Translate(ctx, text)
	if translateError != nil {
		return "", translateError
	}
	_ = caching.memory.Store(text, caching.language, caching.model, translatedText)
	return translatedText, nil
}

var _ Translator = (*CachingTranslator)(nil)
