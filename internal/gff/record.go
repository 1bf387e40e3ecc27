package gff

import (
	"strconv"
	"strings"
)

// Column layout of a GFF line (tab-separated, 9 columns):
// seqname, source, feature, start, end, score, strand, frame, attributes.
const (
	colType   = 2
	colStart  = 3
	colEnd    = 4
	colStrand = 6

	minColumns = 9
)

// Record is one usable feature line. Only the columns the aggregation
// consumes are retained.
type Record struct {
	Type   string
	Start  int
	End    int
	Strand string
}

// Length returns End - Start + 1, both coordinates inclusive. Coordinates
// are not validated, so the result can be zero or negative; callers
// accumulate it as-is.
func (r Record) Length() int { return r.End - r.Start + 1 }

// ParseLine parses one raw input line. It reports false for every line the
// aggregation must skip: blank lines, '#' comments, lines with fewer than
// nine tab-separated columns, and lines whose start or end is not an
// integer. Skipping is silent; real-world annotation files are messy.
func ParseLine(line string) (Record, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Record{}, false
	}

	cols := strings.Split(line, "\t")
	if len(cols) < minColumns {
		return Record{}, false
	}

	start, err := strconv.Atoi(cols[colStart])
	if err != nil {
		return Record{}, false
	}
	end, err := strconv.Atoi(cols[colEnd])
	if err != nil {
		return Record{}, false
	}

	return Record{
		Type:   cols[colType],
		Start:  start,
		End:    end,
		Strand: cols[colStrand],
	}, true
}
