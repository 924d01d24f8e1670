package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/ssce/examcell-backend/internal/config"
	"github.com/ssce/examcell-backend/internal/database"
	"github.com/ssce/examcell-backend/internal/importer"
	"github.com/ssce/examcell-backend/internal/logger"
	"github.com/ssce/examcell-backend/internal/repository"
)

func main() {
	var (
		dir        string
		regulation string
		batch      string
		flushCache bool
	)
	flag.StringVar(&dir, "dir", "", "Directory of .xlsx files (default: DATA_DIR)")
	flag.StringVar(&regulation, "regulation", "", "Declared regulation for syllabus files (default: inferred from file names)")
	flag.StringVar(&batch, "batch", "", "Declared cohort for roster files (default: inferred from file names)")
	flag.BoolVar(&flushCache, "flush-cache", true, "Flush the Redis lookup cache after a successful run")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if dir == "" {
		dir = cfg.DataDir
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	store := repository.NewImportStore(
		repository.NewStudentRepository(pool),
		repository.NewSyllabusRepository(pool),
		repository.NewTimetableRepository(pool),
	)
	rec := importer.NewReconciler(store, cfg.DefaultTimetableRegulation, log)
	meta := importer.FileMeta{Regulation: regulation, Batch: batch}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", dir).Msg("Failed to read data directory")
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".xlsx") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		log.Warn().Str("dir", dir).Msg("No .xlsx files found, nothing to do")
		return
	}

	var totalInserted, totalUpdated, totalSkipped int
	for _, name := range files {
		rows, err := importer.ReadWorkbook(filepath.Join(dir, name))
		if err != nil {
			log.Error().Err(err).Str("file", name).Msg("Failed to read workbook, skipping file")
			continue
		}

		summary, err := rec.Reconcile(ctx, name, meta, rows)
		if err != nil {
			// Only a store outage aborts; re-running the import later is
			// safe because every row upsert is idempotent.
			log.Fatal().Err(err).Str("file", name).Msg("Import aborted")
		}
		totalInserted += summary.Inserted
		totalUpdated += summary.Updated
		totalSkipped += summary.Skipped
	}

	log.Info().
		Int("files", len(files)).
		Int("inserted", totalInserted).
		Int("updated", totalUpdated).
		Int("skipped", totalSkipped).
		Msg("Import complete")

	if flushCache {
		flushLookupCache(ctx, cfg, log)
	}
}

// flushLookupCache drops every lookup-cache key so readers see the
// imported data immediately. Best effort: without Redis the cache
// simply goes stale until the TTL expires.
func flushLookupCache(ctx context.Context, cfg *config.Config, log zerolog.Logger) {
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, lookup cache not flushed")
		return
	}
	defer rdb.Close()

	var deleted int
	iter := rdb.Scan(ctx, 0, config.LookupCachePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Warn().Err(err).Str("key", iter.Val()).Msg("Failed to delete cache key")
			continue
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("Cache scan failed")
		return
	}
	log.Info().Int("keys", deleted).Msg("Lookup cache flushed")
}
