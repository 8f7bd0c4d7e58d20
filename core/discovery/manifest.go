package discovery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"zhi-theme/core/dependency"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

type record struct {
	Libpath    string   `json:"libpath" toml:"libpath"`
	Format     string   `json:"format" toml:"format"`
	ImportType string   `json:"importType" toml:"importType"`
	BaseType   string   `json:"baseType" toml:"baseType"`
	RunAs      []string `json:"runAs" toml:"runAs"`
}

type manifest struct {
	Dependencies []record `json:"dependencies" toml:"dependencies"`
}

type hclRecord struct {
	Libpath    string   `hcl:"libpath,label"`
	Format     string   `hcl:"format,optional"`
	ImportType string   `hcl:"import_type,optional"`
	BaseType   string   `hcl:"base_type,optional"`
	RunAs      []string `hcl:"run_as,optional"`
}

type hclManifest struct {
	Dependencies []hclRecord `hcl:"dependency,block"`
}

// Parse decodes a manifest. The format is picked from the extension of name.
func Parse(name string, data []byte) ([]dependency.Item, error) {
	var records []record

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".json":
		trimmed := bytes.TrimSpace(data)
		if bytes.HasPrefix(trimmed, []byte("[")) {
			if err := json.Unmarshal(trimmed, &records); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", name, err)
			}
			break
		}
		var m manifest
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		records = m.Dependencies
	case ".toml":
		var m manifest
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		records = m.Dependencies
	case ".hcl":
		var m hclManifest
		if err := hclsimple.Decode(name, data, nil, &m); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		for _, r := range m.Dependencies {
			records = append(records, record(r))
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q for %s", ext, name)
	}

	items := make([]dependency.Item, 0, len(records))
	for i, r := range records {
		if strings.TrimSpace(r.Libpath) == "" {
			return nil, fmt.Errorf("%s: dependency %d has no libpath", name, i)
		}
		items = append(items, r.item())
	}
	return items, nil
}

func (r record) item() dependency.Item {
	base := dependency.BasePathType(r.BaseType)
	if base == "" {
		base = dependency.BasePathZhiTheme
	}
	runAs := make([]dependency.Runtime, len(r.RunAs))
	for i, rt := range r.RunAs {
		runAs[i] = dependency.Runtime(rt)
	}
	return dependency.NewItem(
		r.Libpath,
		dependency.Format(r.Format),
		dependency.ImportType(r.ImportType),
		base,
		runAs...,
	)
}
