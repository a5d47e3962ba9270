package sequence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
)

// LoadProgram reads a program file. The extension picks the format:
// .json uses the json tags, .yaml/.yml the yaml tags.
func LoadProgram(path string) (Program, error) {
	var prog Program
	b, err := os.ReadFile(path)
	if err != nil {
		return prog, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(b, &prog)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &prog)
	default:
		return prog, diagnostics.Configf("load program", path, "unknown extension %q", ext)
	}
	if err != nil {
		return prog, &diagnostics.Error{Kind: diagnostics.Configuration, Op: "load program", Subject: path, Detail: "parse", Err: err}
	}
	return prog, nil
}

// Values lists the distinct value names the program animates, in order of
// first use.
func (p Program) Values() []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range p.Clips {
		for _, a := range c.Animations {
			if !seen[a.Value] {
				seen[a.Value] = true
				out = append(out, a.Value)
			}
		}
	}
	return out
}
