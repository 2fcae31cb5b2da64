package emit

import (
	"fmt"
	"strings"

	"github.com/curvhdl/curvcfg/pkg/merge"
	"github.com/curvhdl/curvcfg/pkg/tomlio"
)

const hashRule = "########################################################"

// MergedTOML renders the single-file form of a build configuration: the
// merged config tables followed by the combined schema tables, each behind
// a section banner. The output parses back into the same two documents,
// which is what the generate flow consumes.
type MergedTOML struct {
	// Config is the merged configuration document.
	Config map[string]any
	// Schema is the combined schema document, rooted at _schema.
	Schema map[string]any
	// Header is an optional single-line comment placed above the banner.
	Header string
}

// Render produces the merged TOML file content using codec for the two
// document bodies.
func (m *MergedTOML) Render(codec tomlio.Codec) (string, error) {
	configBody, err := codec.Marshal(tomlio.Normalize(m.Config))
	if err != nil {
		return "", fmt.Errorf("failed to render config section: %w", err)
	}
	schemaBody, err := codec.Marshal(tomlio.Normalize(m.Schema))
	if err != nil {
		return "", fmt.Errorf("failed to render schema section: %w", err)
	}

	var b strings.Builder
	if h := strings.TrimSpace(m.Header); h != "" {
		b.WriteString("# " + h + "\n\n")
	}
	b.WriteString(hashRule + "\n")
	b.WriteString("# Machine-generated file; do not edit\n")
	b.WriteString(hashRule + "\n")
	writeSectionBanner(&b, "Configuration section")
	b.Write(configBody)
	writeSectionBanner(&b, "Schema section")
	b.Write(schemaBody)
	b.WriteString("\n")
	return b.String(), nil
}

func writeSectionBanner(b *strings.Builder, title string) {
	b.WriteString("\n" + hashRule + "\n")
	b.WriteString("#\n# " + title + "\n#\n")
	b.WriteString(hashRule + "\n\n")
}

// SplitMerged separates a parsed merged TOML document back into its config
// and schema halves. Metadata tables are dropped, matching the combine
// rules.
func SplitMerged(doc map[string]any) (config map[string]any, schemadoc map[string]any) {
	config = make(map[string]any)
	schemadoc = make(map[string]any)
	for k, v := range doc {
		switch k {
		case merge.SchemaKey:
			schemadoc[k] = v
		case merge.MetadataKey:
		default:
			config[k] = v
		}
	}
	return config, schemadoc
}
