package theme

import (
	"strings"

	core "dsfs/internal/theme"
)

// Option represents a selectable preference exposed to the UI.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var options = []Option{
	{Value: string(core.PreferenceSystem), Label: "System"},
	{Value: string(core.PreferenceLight), Label: "Light"},
	{Value: string(core.PreferenceDark), Label: "Dark"},
}

// Options exposes the available preference selections for rendering in a form control.
func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

// VariablePrefix is prepended to every role name in the generated stylesheet.
const VariablePrefix = "--color-"

// cssUnsafe strips characters that could close a declaration or would be
// entity-escaped by the template writer.
var cssUnsafe = strings.NewReplacer(";", "", "{", "", "}", "", "<", "", ">", "", "\n", "", "&", "", "\"", "", "'", "")

// declaration formats one indented custom property line.
func declaration(name, value string) string {
	return "  " + name + ": " + cssUnsafe.Replace(value) + ";"
}
