package reconcile

import (
	"github.com/farxc/brake_validator/internal/logger"
	"github.com/go-gota/gota/dataframe"
)

// Result is the outcome of one reconciliation run.
type Result struct {
	Discrepancies []Discrepancy
	Stats         Stats
}

// Reconciler validates the two Smart Brake parts against the EP List.
type Reconciler struct {
	appLogger *logger.Logger
}

func NewReconciler(appLogger *logger.Logger) *Reconciler {
	if appLogger == nil {
		appLogger = logger.Discard()
	}
	return &Reconciler{appLogger: appLogger}
}

// Reconcile runs a reconciliation without logging and returns only the discrepancies.
func Reconcile(source1, source2, reference dataframe.DataFrame) ([]Discrepancy, error) {
	result, err := NewReconciler(nil).Run(source1, source2, reference)
	if err != nil {
		return nil, err
	}
	return result.Discrepancies, nil
}

// Run normalizes the three tables, concatenates the parts, left joins them to
// the EP List and returns every flagged row in concatenation order.
func (r *Reconciler) Run(source1, source2, reference dataframe.DataFrame) (Result, error) {
	const component = "Reconciler"

	combined, err := Combine(source1, source2)
	if err != nil {
		r.appLogger.Warn(component, "Smart Brake parts rejected: error=%v", err)
		return Result{}, err
	}

	refDf, err := normalizeReference(reference)
	if err != nil {
		r.appLogger.Warn(component, "EP List rejected: error=%v", err)
		return Result{}, err
	}
	refs := referenceRecords(refDf)

	joined, err := Join(combined, refs)
	if err != nil {
		r.appLogger.Warn(component, "EP List join rejected: error=%v", err)
		return Result{}, err
	}

	discrepancies := make([]Discrepancy, 0)
	for _, row := range joined {
		if d, flagged := classify(row); flagged {
			discrepancies = append(discrepancies, d)
		}
	}

	stats := Stats{
		SourceRows:    len(combined),
		ReferenceRows: len(refs),
		JoinedRows:    len(joined),
	}
	r.appLogger.Info(component, "Reconciliation completed: sourceRows=%d referenceRows=%d discrepancies=%d",
		stats.SourceRows, stats.ReferenceRows, len(discrepancies))

	return Result{Discrepancies: discrepancies, Stats: stats}, nil
}

// Combine normalizes both Smart Brake parts, concatenates them (part 1 rows
// first, columns unioned) and maps each C flag.
func Combine(source1, source2 dataframe.DataFrame) ([]CombinedRecord, error) {
	df1, err := normalizeSource(source1, TablePart1)
	if err != nil {
		return nil, err
	}
	df2, err := normalizeSource(source2, TablePart2)
	if err != nil {
		return nil, err
	}

	df := df1.Concat(df2)
	if err := df.Error(); err != nil {
		return nil, &MalformedInputError{Table: "Smart Brake parts", Message: "cannot concatenate parts", Err: err}
	}

	sources := sourceRecords(df)
	combined := make([]CombinedRecord, len(sources))
	for i, src := range sources {
		combined[i] = combine(src)
	}
	return combined, nil
}

// Join matches every combined row with its EP List entry. Each combined row
// yields exactly one joined row; duplicate EP List keys are rejected.
func Join(combined []CombinedRecord, refs []ReferenceRecord) ([]JoinedRecord, error) {
	index := make(map[Key]ReferenceRecord, len(refs))
	for _, ref := range refs {
		if prev, dup := index[ref.Key()]; dup {
			return nil, &AmbiguousJoinError{Key: ref.Key(), FirstRow: prev.Row, SecondRow: ref.Row}
		}
		index[ref.Key()] = ref
	}

	joined := make([]JoinedRecord, len(combined))
	for i, rec := range combined {
		row := JoinedRecord{CombinedRecord: rec}
		if ref, ok := index[rec.Key()]; ok {
			row.AA = ref.AA
			row.Matched = true
		}
		joined[i] = row
	}
	return joined, nil
}
