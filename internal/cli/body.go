package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"github.com/ubnt/ucrm-plugin-sdk-go/pkg/ucrmapi"
)

// buildBody assembles a JSON request body from inline data or a file, then applies
// each path=value assignment with sjson. Values that parse as JSON are set raw,
// everything else is set as a string.
func buildBody(data, file string, sets []string) ([]byte, error) {
	if data != "" && file != "" {
		return nil, fmt.Errorf("only one of --data and --file can be given")
	}

	var body []byte
	switch {
	case file != "":
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("unable to read body file: %w", err)
		}
		body = content
	case data != "":
		body = []byte(data)
	default:
		body = []byte("{}")
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("request body is not valid JSON")
	}

	for _, s := range sets {
		path, value, ok := strings.Cut(s, "=")
		if !ok || path == "" {
			return nil, fmt.Errorf("invalid --set %q, expected path=value", s)
		}
		var err error
		if gjson.Valid(value) {
			body, err = sjson.SetRawBytes(body, path, []byte(value))
		} else {
			body, err = sjson.SetBytes(body, path, value)
		}
		if err != nil {
			return nil, fmt.Errorf("unable to set %s: %w", path, err)
		}
	}
	return body, nil
}

// parseQuery converts key=value pairs into a query, keeping their order.
func parseQuery(pairs []string) (ucrmapi.Query, error) {
	var q ucrmapi.Query
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid query parameter %q, expected key=value", p)
		}
		q = q.Add(k, v)
	}
	return q, nil
}
