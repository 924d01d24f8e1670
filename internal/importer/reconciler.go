package importer

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/ssce/examcell-backend/internal/model"
)

// ErrStoreUnavailable marks a connection-level store failure. Unlike
// row-level errors it aborts the whole run; Store implementations must
// wrap connectivity failures with it.
var ErrStoreUnavailable = errors.New("store unavailable")

// Store is the upsert surface the reconciler writes through. Each upsert
// is keyed by the entity's composite natural key and reports whether the
// row was newly inserted or overwrote an existing one.
type Store interface {
	UpsertStudent(ctx context.Context, s model.Student) (inserted bool, err error)
	UpsertSyllabusEntry(ctx context.Context, e model.SyllabusEntry) (inserted bool, err error)
	UpsertTimetableEntry(ctx context.Context, e model.TimetableEntry) (inserted bool, err error)
}

// Summary is the per-file outcome of a reconcile run.
type Summary struct {
	File     string
	Kind     Kind
	Inserted int
	Updated  int
	Skipped  int
}

// Reconciler applies spreadsheet rows to the store idempotently. Rows are
// processed in file order; re-running the same file inserts nothing new
// and last-write-wins per key, so a crashed run is recovered by simply
// re-running it.
type Reconciler struct {
	store             Store
	defaultRegulation string
	log               zerolog.Logger
}

// NewReconciler creates a Reconciler. defaultRegulation is stamped onto
// timetable entries, whose sheets carry no regulation of their own.
func NewReconciler(store Store, defaultRegulation string, log zerolog.Logger) *Reconciler {
	return &Reconciler{
		store:             store,
		defaultRegulation: defaultRegulation,
		log:               log.With().Str("component", "reconciler").Logger(),
	}
}

// Reconcile classifies the file by name and upserts every row. Malformed
// rows (missing required field, unparseable date) and row-level store
// failures are logged, counted as skipped and do not stop the file; only
// ErrStoreUnavailable aborts.
func (r *Reconciler) Reconcile(ctx context.Context, fileName string, meta FileMeta, rows []Row) (Summary, error) {
	kind := Classify(fileName)
	meta = meta.merged(fileName)

	summary := Summary{File: fileName, Kind: kind}
	log := r.log.With().Str("file", fileName).Str("kind", string(kind)).Logger()

	for i, row := range rows {
		inserted, err := r.applyRow(ctx, kind, meta, row)
		if err != nil {
			if errors.Is(err, ErrStoreUnavailable) {
				return summary, err
			}
			log.Warn().Err(err).Int("row", i+1).Msg("Skipping row")
			summary.Skipped++
			continue
		}
		if inserted {
			summary.Inserted++
		} else {
			summary.Updated++
		}
	}

	log.Info().
		Int("rows", len(rows)).
		Int("inserted", summary.Inserted).
		Int("updated", summary.Updated).
		Int("skipped", summary.Skipped).
		Msg("File reconciled")

	return summary, nil
}

func (r *Reconciler) applyRow(ctx context.Context, kind Kind, meta FileMeta, row Row) (bool, error) {
	switch kind {
	case KindSyllabus:
		entry, err := NormalizeSyllabus(row, meta)
		if err != nil {
			return false, err
		}
		return r.store.UpsertSyllabusEntry(ctx, entry)

	case KindTimetable:
		regulation := meta.Regulation
		if regulation == "" || regulation == "unknown" {
			regulation = r.defaultRegulation
		}
		entry, err := NormalizeTimetable(row, regulation)
		if err != nil {
			return false, err
		}
		return r.store.UpsertTimetableEntry(ctx, entry)

	default:
		student, err := NormalizeRoster(row, meta)
		if err != nil {
			return false, err
		}
		return r.store.UpsertStudent(ctx, student)
	}
}
