package stats

import (
	"reflect"
	"testing"

	"github.com/sanspareilsmyn/gfflens/internal/gff"
)

// sampleLines yields 2 genes (900 bp each), 3 CDS (101, 51, 101 bp) and one
// mRNA (150 bp); strands are 4x '+' and 2x '-'. Comment, blank and
// malformed lines are sprinkled in and must never count.
var sampleLines = []string{
	"##gff-version 3",
	"chr1\ttest\tgene\t1\t900\t.\t+\t.\tID=gene1",
	"chr1\ttest\tgene\t1000\t1899\t.\t-\t.\tID=gene2",
	"",
	"chr1\ttest\tmRNA\t1\t150\t.\t+\t.\tID=mrna1",
	"chr1\ttest\tCDS\t1\t101\t.\t+\t0\tID=cds1",
	"chr1\ttest\tCDS\t200\t250\t.\t-\t0\tID=cds2",
	"# trailing comment",
	"chr1\ttest\tCDS\t300\t400\t.\t+\t0\tID=cds3",
	"chr1\ttoo\tfew\tcolumns",
	"chr1\ttest\tgene\tnotanumber\t50\t.\t+\t.\tID=bad",
}

func ingestAll(a *Aggregator, lines []string) {
	for _, l := range lines {
		a.Ingest(l)
	}
}

func TestAggregateSample(t *testing.T) {
	a := New("")
	ingestAll(a, sampleLines)
	r := a.Finalize()

	if r.TotalFeatures != 6 {
		t.Fatalf("TotalFeatures = %d, want 6", r.TotalFeatures)
	}
	wantByType := map[string]int{"gene": 2, "CDS": 3, "mRNA": 1}
	if !reflect.DeepEqual(r.ByType, wantByType) {
		t.Fatalf("ByType = %v, want %v", r.ByType, wantByType)
	}
	wantAvg := map[string]Average{"gene": 900.0, "CDS": 84.3, "mRNA": 150.0}
	if !reflect.DeepEqual(r.AvgLength, wantAvg) {
		t.Fatalf("AvgLength = %v, want %v", r.AvgLength, wantAvg)
	}
	if r.StrandDistribution.Plus != 67 || r.StrandDistribution.Minus != 33 {
		t.Fatalf("StrandDistribution = %+v, want +:67 -:33", r.StrandDistribution)
	}
	if r.FilterType != "" {
		t.Fatalf("FilterType = %q, want empty", r.FilterType)
	}
	if a.Skipped() != 5 {
		t.Fatalf("Skipped() = %d, want 5", a.Skipped())
	}
}

func TestTotalMatchesByTypeSum(t *testing.T) {
	a := New("")
	ingestAll(a, sampleLines)
	r := a.Finalize()

	sum := 0
	for _, n := range r.ByType {
		sum += n
	}
	if sum != r.TotalFeatures {
		t.Fatalf("sum(ByType) = %d, TotalFeatures = %d", sum, r.TotalFeatures)
	}
	if len(r.AvgLength) != len(r.ByType) {
		t.Fatalf("AvgLength has %d keys, ByType has %d", len(r.AvgLength), len(r.ByType))
	}
	for k := range r.ByType {
		if _, ok := r.AvgLength[k]; !ok {
			t.Fatalf("AvgLength missing key %q", k)
		}
	}
}

func TestFilterType(t *testing.T) {
	a := New("CDS")
	ingestAll(a, sampleLines)
	r := a.Finalize()

	if r.TotalFeatures != 3 {
		t.Fatalf("TotalFeatures = %d, want 3", r.TotalFeatures)
	}
	if !reflect.DeepEqual(r.ByType, map[string]int{"CDS": 3}) {
		t.Fatalf("ByType = %v, want only CDS", r.ByType)
	}
	if got := r.AvgLength["CDS"]; got != 84.3 {
		t.Fatalf("AvgLength[CDS] = %v, want 84.3", got)
	}
	if r.FilterType != "CDS" {
		t.Fatalf("FilterType = %q, want CDS", r.FilterType)
	}
	// CDS strands are +, -, +: the distribution is recomputed over the
	// filtered records only.
	if r.StrandDistribution.Plus != 67 || r.StrandDistribution.Minus != 33 {
		t.Fatalf("StrandDistribution = %+v, want +:67 -:33", r.StrandDistribution)
	}
}

func TestEmptyInput(t *testing.T) {
	r := New("").Finalize()

	if r.TotalFeatures != 0 {
		t.Fatalf("TotalFeatures = %d, want 0", r.TotalFeatures)
	}
	if len(r.ByType) != 0 || len(r.AvgLength) != 0 {
		t.Fatalf("ByType/AvgLength not empty: %v %v", r.ByType, r.AvgLength)
	}
	if r.StrandDistribution.Plus != 0 || r.StrandDistribution.Minus != 0 {
		t.Fatalf("StrandDistribution = %+v, want zeros", r.StrandDistribution)
	}
}

func TestMalformedLinesDoNotCount(t *testing.T) {
	a := New("")
	for _, l := range []string{
		"",
		"# comment only",
		"chr1\tshort",
		"chr1\ttest\tgene\tNaN\t900\t.\t+\t.\tID=g",
		"chr1\ttest\tgene\t1\t\t.\t+\t.\tID=g",
	} {
		a.Ingest(l)
	}
	r := a.Finalize()
	if r.TotalFeatures != 0 || len(r.ByType) != 0 {
		t.Fatalf("malformed input leaked into counters: %+v", r)
	}
}

func TestUnknownStrandExcludedFromDistribution(t *testing.T) {
	a := New("")
	a.Add(gff.Record{Type: "gene", Start: 1, End: 10, Strand: "."})
	a.Add(gff.Record{Type: "gene", Start: 1, End: 10, Strand: "?"})
	a.Add(gff.Record{Type: "gene", Start: 1, End: 10, Strand: "+"})
	r := a.Finalize()

	if r.TotalFeatures != 3 {
		t.Fatalf("TotalFeatures = %d, want 3", r.TotalFeatures)
	}
	// Only the single '+' record is in the denominator.
	if r.StrandDistribution.Plus != 100 || r.StrandDistribution.Minus != 0 {
		t.Fatalf("StrandDistribution = %+v, want +:100 -:0", r.StrandDistribution)
	}
}

func TestOnlyUnknownStrandsYieldZeroDistribution(t *testing.T) {
	a := New("")
	a.Add(gff.Record{Type: "gene", Start: 1, End: 10, Strand: "."})
	r := a.Finalize()
	if r.StrandDistribution.Plus != 0 || r.StrandDistribution.Minus != 0 {
		t.Fatalf("StrandDistribution = %+v, want zeros", r.StrandDistribution)
	}
}

// Each side of the strand split is rounded independently; a 3/5 split lands
// on 38 + 63 = 101, and that is the documented behavior, not a bug.
func TestStrandPercentagesRoundIndependently(t *testing.T) {
	a := New("")
	for i := 0; i < 3; i++ {
		a.Add(gff.Record{Type: "gene", Start: 1, End: 10, Strand: "+"})
	}
	for i := 0; i < 5; i++ {
		a.Add(gff.Record{Type: "gene", Start: 1, End: 10, Strand: "-"})
	}
	r := a.Finalize()
	if r.StrandDistribution.Plus != 38 || r.StrandDistribution.Minus != 63 {
		t.Fatalf("StrandDistribution = %+v, want +:38 -:63", r.StrandDistribution)
	}
}

func TestFinalizeIdempotent(t *testing.T) {
	a := New("")
	ingestAll(a, sampleLines)

	first := a.Finalize()
	second := a.Finalize()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated Finalize differs:\n%+v\n%+v", first, second)
	}

	// Finalized aggregators ignore further input.
	a.Ingest("chr1\ttest\tgene\t1\t10\t.\t+\t.\tID=late")
	third := a.Finalize()
	if !reflect.DeepEqual(first, third) {
		t.Fatalf("ingest after Finalize mutated state:\n%+v\n%+v", first, third)
	}
}

func TestMergeMatchesSequentialIngest(t *testing.T) {
	sequential := New("")
	ingestAll(sequential, sampleLines)

	shardA := New("")
	ingestAll(shardA, sampleLines[:5])
	shardB := New("")
	ingestAll(shardB, sampleLines[5:])
	shardA.Merge(shardB)

	if shardA.Skipped() != sequential.Skipped() {
		t.Fatalf("merged Skipped() = %d, sequential = %d", shardA.Skipped(), sequential.Skipped())
	}
	got, want := shardA.Finalize(), sequential.Finalize()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("merged report differs from sequential:\n%+v\n%+v", got, want)
	}
}

func TestNegativeLengthAccumulatedAsIs(t *testing.T) {
	a := New("")
	a.Add(gff.Record{Type: "gene", Start: 10, End: 5, Strand: "+"}) // length -4
	a.Add(gff.Record{Type: "gene", Start: 1, End: 6, Strand: "+"})  // length 6
	r := a.Finalize()
	if got := r.AvgLength["gene"]; got != 1.0 {
		t.Fatalf("AvgLength[gene] = %v, want 1.0", got)
	}
}
