// Package export writes carts and receipts as downloadable documents:
// pretty-printed JSON (or YAML) files named after the time they were made.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/storefront/pkg/constants"
	"github.com/agentstation/storefront/pkg/errors"
)

// FileName returns "<prefix>-<unix millis>.<ext>".
func FileName(prefix string, t time.Time, f Format) string {
	return fmt.Sprintf("%s-%d.%s", prefix, t.UnixMilli(), f.Ext())
}

// Encode renders v in the given format. JSON uses a two-space indent.
func Encode(v any, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return nil, errors.WrapParse("json", "export", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		// Round-trip through JSON so YAML keys and money values match the
		// JSON document.
		data, err := json.Marshal(v)
		if err != nil {
			return nil, errors.WrapParse("json", "export", err)
		}
		out, err := yaml.JSONToYAML(data)
		if err != nil {
			return nil, errors.WrapParse("yaml", "export", err)
		}
		return out, nil
	default:
		return nil, errors.NewValidationError("format", f.String(), "unsupported export format")
	}
}

// Write exports v under the name prefix-<millis>.<ext> and returns the path
// written. With WithWriter the document goes to the writer and the returned
// path is just the file name.
func Write(v any, prefix string, opts ...Option) (string, error) {
	return WriteAt(v, prefix, time.Now(), opts...)
}

// WriteAt is Write with an explicit timestamp.
func WriteAt(v any, prefix string, t time.Time, opts ...Option) (string, error) {
	options := Defaults().Apply(opts...)
	if !options.Format().IsValid() {
		return "", errors.NewValidationError("format", options.Format().String(), "unsupported export format")
	}

	data, err := Encode(v, options.Format())
	if err != nil {
		return "", err
	}

	name := FileName(prefix, t, options.Format())
	if w := options.Writer(); w != nil {
		if _, err := w.Write(data); err != nil {
			return "", errors.WrapIO("write", name, err)
		}
		return name, nil
	}

	if err := os.MkdirAll(options.Dir(), constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", options.Dir(), err)
	}
	path := filepath.Join(options.Dir(), name)
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return "", errors.WrapIO("write", path, err)
	}
	return path, nil
}
