package stats

import (
	"math"

	"github.com/sanspareilsmyn/gfflens/internal/gff"
)

// Aggregator accumulates per-type feature statistics over one pass of a GFF
// source. It owns all of its state; create one per run with New and do not
// share it across goroutines. Partial aggregators produced from input
// shards can be combined with Merge before Finalize.
type Aggregator struct {
	filterType string

	total      int
	counts     map[string]int
	lengthSums map[string]int

	plus  int
	minus int
	other int // strands besides '+'/'-': present in input, excluded from the distribution

	skipped   int
	finalized bool
}

// New returns an empty Aggregator. A non-empty filterType restricts
// accumulation to records of exactly that feature type.
func New(filterType string) *Aggregator {
	return &Aggregator{
		filterType: filterType,
		counts:     make(map[string]int),
		lengthSums: make(map[string]int),
	}
}

// Ingest consumes one raw input line. Blank lines, comments and malformed
// records are absorbed silently; records excluded by the type filter leave
// every counter untouched. Calls after Finalize are ignored.
func (a *Aggregator) Ingest(line string) {
	if a.finalized {
		return
	}
	rec, ok := gff.ParseLine(line)
	if !ok {
		a.skipped++
		return
	}
	a.Add(rec)
}

// Add accumulates one parsed record, honoring the type filter.
func (a *Aggregator) Add(rec gff.Record) {
	if a.finalized {
		return
	}
	if a.filterType != "" && rec.Type != a.filterType {
		return
	}

	a.total++
	a.counts[rec.Type]++
	a.lengthSums[rec.Type] += rec.Length()

	switch rec.Strand {
	case "+":
		a.plus++
	case "-":
		a.minus++
	default:
		a.other++
	}
}

// Merge folds the counters of other into a, elementwise. Sharded ingestion
// must merge raw counters like this before any rounded metric is derived;
// averaging per-shard averages would distort the result.
func (a *Aggregator) Merge(other *Aggregator) {
	a.total += other.total
	for k, v := range other.counts {
		a.counts[k] += v
	}
	for k, v := range other.lengthSums {
		a.lengthSums[k] += v
	}
	a.plus += other.plus
	a.minus += other.minus
	a.other += other.other
	a.skipped += other.skipped
}

// Skipped reports how many lines were discarded as blank, comment or
// malformed. Diagnostic only; it never appears in the report.
func (a *Aggregator) Skipped() int { return a.skipped }

// Finalize derives the statistics report. It is idempotent: it never
// mutates the accumulated counters, and the aggregator stops accepting
// input once it has been called.
func (a *Aggregator) Finalize() Report {
	a.finalized = true

	byType := make(map[string]int, len(a.counts))
	avg := make(map[string]Average, len(a.counts))
	for k, n := range a.counts {
		byType[k] = n
		avg[k] = Average(round1(float64(a.lengthSums[k]) / float64(n)))
	}

	var dist StrandDistribution
	if denom := a.plus + a.minus; denom > 0 {
		dist.Plus = int(math.Round(100 * float64(a.plus) / float64(denom)))
		dist.Minus = int(math.Round(100 * float64(a.minus) / float64(denom)))
	}

	r := Report{
		TotalFeatures:      a.total,
		ByType:             byType,
		AvgLength:          avg,
		StrandDistribution: dist,
	}
	if a.filterType != "" {
		r.FilterType = a.filterType
	}
	return r
}

// round1 rounds to one decimal place, half away from zero. The integer
// strand percentages follow the same convention via math.Round.
func round1(x float64) float64 { return math.Round(x*10) / 10 }
