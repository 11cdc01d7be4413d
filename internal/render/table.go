package render

import (
	"strings"

	"github.com/ThomasCrouzet/snapmatrix/internal/config"
	"github.com/ThomasCrouzet/snapmatrix/internal/matrix"
	"github.com/ThomasCrouzet/snapmatrix/internal/model"
	"github.com/jedib0t/go-pretty/v6/table"
)

func init() {
	Register(func() Renderer { return &TableRenderer{} })
}

// TableRenderer prints the pairs for human review, grouped by family.
type TableRenderer struct{}

func (r *TableRenderer) Metadata() Metadata {
	return Metadata{Name: "table", DisplayName: "Review table", Extension: ".txt"}
}

func (r *TableRenderer) Render(in *Input, cfg *config.Config) ([]byte, error) {
	var b strings.Builder

	if len(in.Pairs) == 0 {
		b.WriteString("No test pairs.\n")
	} else {
		b.WriteString(pairTable(in.Catalog, in.Pairs))
		b.WriteString("\n")
	}

	if len(in.Reports) > 0 {
		b.WriteString("\n")
		b.WriteString(reportTable(in.Reports))
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	return t
}

func pairTable(cat *model.Catalog, pairs []model.TestPair) string {
	t := newTable()
	t.AppendHeader(table.Row{"#", "Family", "Source", "Source kernel", "Destination", "Destination OS", "Destination kernel"})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, AutoMerge: true}})

	for i, p := range pairs {
		fam, _ := cat.FamilyOf(model.InstanceType(p.SourceInstance))
		t.AppendRow(table.Row{i + 1, fam, p.SourceInstance, p.SourceKernel, p.DestinationInstance, p.DestinationOS, p.DestinationKernel})
	}
	t.AppendFooter(table.Row{"", "Total", len(pairs)})
	return t.Render()
}

func reportTable(reports []matrix.Report) string {
	t := newTable()
	t.AppendHeader(table.Row{"Family", "Step", "Reason", "Count"})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, AutoMerge: true}})

	for _, rep := range reports {
		t.AppendRow(table.Row{rep.Family, "candidates", "", rep.Candidates})
		for _, rej := range rep.Rejected {
			t.AppendRow(table.Row{rep.Family, rej.Filter, rej.Reason, rej.Count})
		}
		t.AppendRow(table.Row{rep.Family, "kept", "", rep.Kept()})
		t.AppendSeparator()
	}
	return t.Render()
}
