package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/ubnt/ucrm-plugin-sdk-go/pkg/ucrmapi"
	"sigs.k8s.io/yaml"
)

// printResult writes an API result to w. Text results are written verbatim.
// JSON results are optionally narrowed with a gjson path and printed as YAML,
// or as indented JSON when --json is set.
func printResult(w io.Writer, result *ucrmapi.Result, selectPath string) error {
	if !result.IsJSON() {
		if selectPath != "" {
			return fmt.Errorf("--select requires a JSON response, got %s", result.ContentType())
		}
		text := result.Text()
		if text == "" {
			return nil
		}
		fmt.Fprint(w, text)
		if !strings.HasSuffix(text, "\n") {
			fmt.Fprintln(w)
		}
		return nil
	}

	raw := bytes.TrimSpace(result.Raw())
	if selectPath != "" {
		selected := gjson.GetBytes(raw, selectPath)
		if !selected.Exists() {
			return fmt.Errorf("path %q not found in response", selectPath)
		}
		raw = []byte(selected.Raw)
	}
	if len(raw) == 0 {
		return nil
	}

	if jsonOutput {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "    "); err != nil {
			return fmt.Errorf("failed to format JSON output: %v", err)
		}
		fmt.Fprintln(w, buf.String())
		return nil
	}

	yamlBytes, err := yaml.JSONToYAML(raw)
	if err != nil {
		return fmt.Errorf("failed to convert to YAML: %v", err)
	}
	fmt.Fprint(w, string(yamlBytes))
	return nil
}

// printValue prints v as YAML, or as JSON when --json is set.
func printValue(w io.Writer, v any) error {
	if jsonOutput {
		printJSON(w, v)
		return nil
	}
	yamlBytes, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to convert to YAML: %v", err)
	}
	fmt.Fprint(w, string(yamlBytes))
	return nil
}
