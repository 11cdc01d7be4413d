package render

import "sort"

// Theme defines colors for the elements of the compatibility graph.
type Theme struct {
	Name   string
	Colors map[string]ThemeColor
	// Families cycles through container colors, one per family.
	Families []ThemeColor
}

// ThemeColor defines fill and stroke colors for an element type.
type ThemeColor struct {
	Fill   string
	Stroke string
	Font   string
}

var themes = map[string]*Theme{
	"default": {
		Name: "default",
		Colors: map[string]ThemeColor{
			"instance": {Fill: "#FFFFFF", Stroke: "#4B5563", Font: "#111827"},
			"idle":     {Fill: "#F3F4F6", Stroke: "#9CA3AF", Font: "#6B7280"},
			"restore":  {Stroke: "#2563EB", Font: "#1E40AF"},
			"upgrade":  {Stroke: "#16A34A", Font: "#166534"},
		},
		Families: []ThemeColor{
			{Fill: "#E0F2FE", Stroke: "#0284C7", Font: "#075985"},
			{Fill: "#FFF7ED", Stroke: "#EA580C", Font: "#9A3412"},
			{Fill: "#EDE9FE", Stroke: "#7C3AED", Font: "#5B21B6"},
		},
	},
	"dark": {
		Name: "dark",
		Colors: map[string]ThemeColor{
			"instance": {Fill: "#1F2937", Stroke: "#9CA3AF", Font: "#F9FAFB"},
			"idle":     {Fill: "#111827", Stroke: "#4B5563", Font: "#6B7280"},
			"restore":  {Stroke: "#3B82F6", Font: "#93C5FD"},
			"upgrade":  {Stroke: "#22C55E", Font: "#86EFAC"},
		},
		Families: []ThemeColor{
			{Fill: "#082F49", Stroke: "#0EA5E9", Font: "#7DD3FC"},
			{Fill: "#431407", Stroke: "#F97316", Font: "#FDBA74"},
			{Fill: "#2E1065", Stroke: "#A78BFA", Font: "#C4B5FD"},
		},
	},
	"monochrome": {
		Name: "monochrome",
		Colors: map[string]ThemeColor{
			"instance": {Fill: "#FFFFFF", Stroke: "#374151", Font: "#111827"},
			"idle":     {Fill: "#F9FAFB", Stroke: "#D1D5DB", Font: "#9CA3AF"},
			"restore":  {Stroke: "#111827", Font: "#111827"},
			"upgrade":  {Stroke: "#6B7280", Font: "#374151"},
		},
		Families: []ThemeColor{
			{Fill: "#E5E7EB", Stroke: "#374151", Font: "#111827"},
			{Fill: "#F3F4F6", Stroke: "#6B7280", Font: "#374151"},
		},
	},
	"ocean": {
		Name: "ocean",
		Colors: map[string]ThemeColor{
			"instance": {Fill: "#F0F9FF", Stroke: "#0369A1", Font: "#0C4A6E"},
			"idle":     {Fill: "#F8FAFC", Stroke: "#94A3B8", Font: "#64748B"},
			"restore":  {Stroke: "#0891B2", Font: "#155E75"},
			"upgrade":  {Stroke: "#4F46E5", Font: "#3730A3"},
		},
		Families: []ThemeColor{
			{Fill: "#CFFAFE", Stroke: "#0891B2", Font: "#155E75"},
			{Fill: "#DBEAFE", Stroke: "#2563EB", Font: "#1E40AF"},
			{Fill: "#C7D2FE", Stroke: "#4F46E5", Font: "#3730A3"},
		},
	},
}

// ThemeNames returns all available theme names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetTheme returns the named theme or the default.
func GetTheme(name string) *Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["default"]
}

// ColorForFamily returns the container color of the i-th family.
func (t *Theme) ColorForFamily(i int) ThemeColor {
	return t.Families[i%len(t.Families)]
}

// ColorForElement returns the theme color for a named element.
func (t *Theme) ColorForElement(name string) ThemeColor {
	if c, ok := t.Colors[name]; ok {
		return c
	}
	return ThemeColor{Fill: "#F9FAFB", Stroke: "#D1D5DB", Font: "#111827"}
}
