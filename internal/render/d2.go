package render

import (
	"fmt"
	"strings"

	"github.com/ThomasCrouzet/snapmatrix/internal/config"
	"github.com/ThomasCrouzet/snapmatrix/internal/model"
	"github.com/ThomasCrouzet/snapmatrix/internal/util"
)

func init() {
	Register(func() Renderer { return &D2Renderer{} })
}

// D2Renderer draws the compatibility graph the matrix exercises: one
// container per family, one node per instance and one edge per
// (source, destination) instance pair labeled with its kernel transitions.
type D2Renderer struct{}

func (r *D2Renderer) Metadata() Metadata {
	return Metadata{Name: "d2", DisplayName: "D2 compatibility graph", Extension: ".d2"}
}

type d2Edge struct {
	src, dst    string
	transitions []string
}

func (r *D2Renderer) Render(in *Input, cfg *config.Config) ([]byte, error) {
	theme := GetTheme(cfg.Theme)
	var b strings.Builder

	direction := cfg.Direction
	if direction == "" {
		direction = "right"
	}
	fmt.Fprintf(&b, "direction: %s\n\n", direction)

	edges, active := groupEdges(in.Pairs)

	for i, fam := range in.Catalog.Families() {
		if cfg.Family != "" && fam.Name != cfg.Family {
			continue
		}
		color := theme.ColorForFamily(i)
		fmt.Fprintf(&b, "%s: %s {\n", util.SanitizeID(fam.Name), util.Quote(fam.Name))
		fmt.Fprintf(&b, "  style.fill: %q\n", color.Fill)
		fmt.Fprintf(&b, "  style.stroke: %q\n", color.Stroke)
		b.WriteString("\n")

		kernels := strings.Join(fam.Kernels(), ", ")
		for _, inst := range fam.Instances {
			r.renderInstance(&b, string(inst), kernels, active[string(inst)], theme)
		}
		b.WriteString("}\n\n")
	}

	for _, e := range edges {
		r.renderEdge(&b, in.Catalog, e, theme)
	}

	return []byte(b.String()), nil
}

func (r *D2Renderer) renderInstance(b *strings.Builder, inst, kernels string, active bool, theme *Theme) {
	color := theme.ColorForElement("instance")
	if !active {
		color = theme.ColorForElement("idle")
	}
	fmt.Fprintf(b, "  %s: %s {\n", util.SanitizeID(inst), util.Quote(inst+"\n"+kernels))
	fmt.Fprintf(b, "    style.fill: %q\n", color.Fill)
	fmt.Fprintf(b, "    style.stroke: %q\n", color.Stroke)
	fmt.Fprintf(b, "    style.font-color: %q\n", color.Font)
	b.WriteString("  }\n")
}

func (r *D2Renderer) renderEdge(b *strings.Builder, cat *model.Catalog, e d2Edge, theme *Theme) {
	fam, ok := cat.FamilyOf(model.InstanceType(e.src))
	if !ok {
		return
	}
	color := theme.ColorForElement("restore")
	if e.src == e.dst {
		color = theme.ColorForElement("upgrade")
	}

	fmt.Fprintf(b, "%s -> %s: %s {\n",
		util.Path(fam, e.src), util.Path(fam, e.dst), util.Quote(strings.Join(e.transitions, "\n")))
	fmt.Fprintf(b, "  style.stroke: %q\n", color.Stroke)
	fmt.Fprintf(b, "  style.font-color: %q\n", color.Font)
	if e.src == e.dst {
		b.WriteString("  style.stroke-dash: 3\n")
	}
	b.WriteString("}\n")
}

// groupEdges folds pairs into one edge per (source, destination) instance
// in first-appearance order, and marks every instance taking part.
func groupEdges(pairs []model.TestPair) ([]d2Edge, map[string]bool) {
	var edges []d2Edge
	index := make(map[[2]string]int)
	active := make(map[string]bool)

	for _, p := range pairs {
		key := [2]string{p.SourceInstance, p.DestinationInstance}
		i, ok := index[key]
		if !ok {
			i = len(edges)
			index[key] = i
			edges = append(edges, d2Edge{src: p.SourceInstance, dst: p.DestinationInstance})
		}
		t := fmt.Sprintf("%s → %s", p.SourceKernel, p.DestinationKernel)
		if !contains(edges[i].transitions, t) {
			edges[i].transitions = append(edges[i].transitions, t)
		}
		active[p.SourceInstance] = true
		active[p.DestinationInstance] = true
	}
	return edges, active
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
