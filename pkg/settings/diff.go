package settings

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"
)

// Diff returns a unified diff between the YAML forms of before and after with
// API keys masked. It is empty when nothing changed.
func Diff(before, after Settings) string {
	a, err := maskedYAML(before)
	if err != nil {
		return fmt.Sprintf("(diff error: %v)", err)
	}
	b, err := maskedYAML(after)
	if err != nil {
		return fmt.Sprintf("(diff error: %v)", err)
	}

	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: "current",
		ToFile:   "new",
		Context:  3,
	})
	if err != nil {
		return fmt.Sprintf("(diff error: %v)", err)
	}

	return out
}

func maskedYAML(s Settings) (string, error) {
	if len(s) == 0 {
		return "", nil
	}

	data, err := yaml.Marshal(map[string]string(s.Masked()))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
