package annealing

import "strconv"

// RecordKind tags one Report record.
type RecordKind string

const (
	RecordInit   RecordKind = "Init"
	RecordAccept RecordKind = "Accept"
	RecordCool   RecordKind = "Cool"
	RecordDone   RecordKind = "Done"
)

// Record is one (iteration, temperature, energy, kind) report entry,
// appended on every accepted move and on every cooling step, plus one
// Init record at the start and one Done record at the end.
type Record struct {
	Iteration   int
	Temperature float64
	Energy      float64
	Kind        RecordKind
}

// Report is an ordered, appendable sequence of Records, serialisable as
// a table.
type Report struct {
	Records   []Record
	Cancelled bool
}

func (r *Report) append(rec Record) {
	r.Records = append(r.Records, rec)
}

// Table renders the report as a simple textual table, one record per
// line: "iteration\ttemperature\tenergy\tkind".
func (r *Report) Table() string {
	out := "iteration\ttemperature\tenergy\tkind\n"
	for _, rec := range r.Records {
		out += formatRecord(rec) + "\n"
	}
	return out
}

func formatRecord(rec Record) string {
	return strconv.Itoa(rec.Iteration) + "\t" +
		strconv.FormatFloat(rec.Temperature, 'g', -1, 64) + "\t" +
		strconv.FormatFloat(rec.Energy, 'g', -1, 64) + "\t" +
		string(rec.Kind)
}
