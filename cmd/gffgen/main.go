package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
)

// gffgen writes a small synthetic GFF3 file for demos and manual testing of
// gfflens. Output is deterministic for a fixed seed.

var featureTypes = []string{"gene", "mRNA", "CDS", "exon"}

// Skewed toward '+', with the occasional unknown strand that gfflens must
// keep out of the distribution.
var strandPool = []string{"+", "+", "-", "."}

func main() {
	var (
		out   = flag.String("out", "sample.gff", "output GFF file ('-' for stdout)")
		count = flag.Int("count", 50, "number of feature records to generate")
		seed  = flag.Int64("seed", 42, "random seed")
	)
	flag.Parse()

	var w io.Writer = os.Stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("Error creating %s: %v", *out, err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Fatalf("Error closing %s: %v", *out, err)
			}
		}()
		w = f
	}

	if err := generate(w, *count, rand.New(rand.NewSource(*seed))); err != nil {
		log.Fatalf("Error writing %s: %v", *out, err)
	}
	log.Printf("Wrote %d records to %s", *count, *out)
}

// generate streams a version header plus count feature lines, 1-based
// closed coordinates as GFF expects.
func generate(w io.Writer, count int, rng *rand.Rand) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "##gff-version 3"); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		typ := featureTypes[rng.Intn(len(featureTypes))]
		start := rng.Intn(100000) + 1
		length := rng.Intn(2000) + 1
		strand := strandPool[rng.Intn(len(strandPool))]
		if _, err := fmt.Fprintf(bw,
			"chr%d\tgffgen\t%s\t%d\t%d\t.\t%s\t.\tID=feat%d\n",
			rng.Intn(3)+1, typ, start, start+length-1, strand, i+1,
		); err != nil {
			return err
		}
	}
	return bw.Flush()
}
