package matrix

import (
	"fmt"

	"github.com/ThomasCrouzet/snapmatrix/internal/model"
)

// Rejection counts the candidates one filter dropped. A candidate is charged
// to the first filter that excludes it.
type Rejection struct {
	Filter string
	Reason string
	Count  int
}

// Report is the outcome of running a family's candidates through the filters.
type Report struct {
	Family     string
	Candidates int
	Rejected   []Rejection
	Pairs      []model.TestPair
}

// Kept returns the number of pairs that survived every filter.
func (r Report) Kept() int {
	return len(r.Pairs)
}

func run(cands []Candidate, filters []Filter) Report {
	rep := Report{Candidates: len(cands)}
	rep.Rejected = make([]Rejection, len(filters))
	for i, f := range filters {
		rep.Rejected[i] = Rejection{Filter: f.Name, Reason: f.Reason}
	}

	for _, c := range cands {
		kept := true
		for i, f := range filters {
			if f.Exclude(c) {
				rep.Rejected[i].Count++
				kept = false
				break
			}
		}
		if kept {
			rep.Pairs = append(rep.Pairs, c.Pair())
		}
	}
	return rep
}

// Explain runs the default filters over one family and reports how many
// candidates each filter rejected alongside the kept pairs.
func Explain(cat *model.Catalog, family string) (Report, error) {
	f, ok := cat.Family(family)
	if !ok {
		return Report{}, fmt.Errorf("unknown family %q", family)
	}
	rep := run(Candidates(f), DefaultFilters(cat))
	rep.Family = family
	return rep, nil
}

// ExplainAll returns one report per family in catalog order.
func ExplainAll(cat *model.Catalog) []Report {
	var out []Report
	for _, name := range cat.FamilyNames() {
		rep, _ := Explain(cat, name)
		out = append(out, rep)
	}
	return out
}
