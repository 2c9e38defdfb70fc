package theme

import (
	"encoding/json"
	"strconv"
)

// GrayRamp holds the ten gray steps 50, 100, 200 ... 900.
type GrayRamp [10]string

var grayStops = [10]int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900}

// Step returns the color for a ramp stop such as 50 or 700.
func (g GrayRamp) Step(stop int) (string, bool) {
	for i, s := range grayStops {
		if s == stop {
			return g[i], true
		}
	}
	return "", false
}

func (g GrayRamp) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(g))
	for i, s := range grayStops {
		out[strconv.Itoa(s)] = g[i]
	}
	return json.Marshal(out)
}

// Palette maps semantic color roles to concrete values. It only holds
// strings and a fixed array, so copies never share state.
type Palette struct {
	Primary          string   `json:"primary"`
	Accent           string   `json:"accent"`
	Background       string   `json:"background"`
	Surface          string   `json:"surface"`
	SurfaceSecondary string   `json:"surfaceSecondary"`
	Text             string   `json:"text"`
	TextSecondary    string   `json:"textSecondary"`
	TextTertiary     string   `json:"textTertiary"`
	Border           string   `json:"border"`
	BorderLight      string   `json:"borderLight"`
	Success          string   `json:"success"`
	Warning          string   `json:"warning"`
	Error            string   `json:"error"`
	Gray             GrayRamp `json:"gray"`
	Card             string   `json:"card"`
	Modal            string   `json:"modal"`
	Overlay          string   `json:"overlay"`
	TabBar           string   `json:"tabBar"`
	TabBarBorder     string   `json:"tabBarBorder"`
	Input            string   `json:"input"`
	InputBorder      string   `json:"inputBorder"`
	Placeholder      string   `json:"placeholder"`
}

// Role is one named entry of a palette.
type Role struct {
	Name  string
	Value string
}

// Roles lists every role in a stable order, with the gray ramp flattened
// to gray-50 ... gray-900.
func (p Palette) Roles() []Role {
	roles := []Role{
		{"primary", p.Primary},
		{"accent", p.Accent},
		{"background", p.Background},
		{"surface", p.Surface},
		{"surface-secondary", p.SurfaceSecondary},
		{"text", p.Text},
		{"text-secondary", p.TextSecondary},
		{"text-tertiary", p.TextTertiary},
		{"border", p.Border},
		{"border-light", p.BorderLight},
		{"success", p.Success},
		{"warning", p.Warning},
		{"error", p.Error},
		{"card", p.Card},
		{"modal", p.Modal},
		{"overlay", p.Overlay},
		{"tab-bar", p.TabBar},
		{"tab-bar-border", p.TabBarBorder},
		{"input", p.Input},
		{"input-border", p.InputBorder},
		{"placeholder", p.Placeholder},
	}
	for i, stop := range grayStops {
		roles = append(roles, Role{"gray-" + strconv.Itoa(stop), p.Gray[i]})
	}
	return roles
}

var lightPalette = Palette{
	Primary:          "#1DA1F2",
	Accent:           "#0A84FF",
	Background:       "#FFFFFF",
	Surface:          "#FFFFFF",
	SurfaceSecondary: "#F8F9FA",
	Text:             "#121212",
	TextSecondary:    "#666666",
	TextTertiary:     "#888888",
	Border:           "#E1E4E8",
	BorderLight:      "#F0F0F0",
	Success:          "#10B981",
	Warning:          "#F59E0B",
	Error:            "#EF4444",
	Gray: GrayRamp{
		"#F9FAFB", "#F3F4F6", "#E5E7EB", "#D1D5DB", "#9CA3AF",
		"#6B7280", "#4B5563", "#374151", "#1F2937", "#111827",
	},
	Card:         "#FFFFFF",
	Modal:        "#FFFFFF",
	Overlay:      "rgba(0, 0, 0, 0.4)",
	TabBar:       "#FFFFFF",
	TabBarBorder: "#E1E4E8",
	Input:        "#FFFFFF",
	InputBorder:  "#E1E4E8",
	Placeholder:  "#9CA3AF",
}

var darkPalette = Palette{
	Primary:          "#1DA1F2",
	Accent:           "#0A84FF",
	Background:       "#000000",
	Surface:          "#1C1C1E",
	SurfaceSecondary: "#2C2C2E",
	Text:             "#FFFFFF",
	TextSecondary:    "#EBEBF5",
	TextTertiary:     "#8E8E93",
	Border:           "#38383A",
	BorderLight:      "#48484A",
	Success:          "#30D158",
	Warning:          "#FF9F0A",
	Error:            "#FF453A",
	Gray: GrayRamp{
		"#1C1C1E", "#2C2C2E", "#3A3A3C", "#48484A", "#636366",
		"#8E8E93", "#AEAEB2", "#C7C7CC", "#D1D1D6", "#F2F2F7",
	},
	Card:         "#1C1C1E",
	Modal:        "#1C1C1E",
	Overlay:      "rgba(0, 0, 0, 0.6)",
	TabBar:       "#1C1C1E",
	TabBarBorder: "#38383A",
	Input:        "#1C1C1E",
	InputBorder:  "#38383A",
	Placeholder:  "#8E8E93",
}

// PaletteFor returns the built-in palette for s. Anything but dark gets the
// light palette.
func PaletteFor(s Scheme) Palette {
	if s == SchemeDark {
		return darkPalette
	}
	return lightPalette
}
