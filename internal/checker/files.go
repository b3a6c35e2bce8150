package checker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shhan95/firecode-watch/internal/report"
)

// LoadInventory reads a standards inventory. JSON is the wire format the
// dashboard consumes; YAML is accepted as an authoring convenience and decides
// by extension. A missing file is an empty inventory, not an error.
func LoadInventory(path string) (*report.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &report.Inventory{}, nil
		}
		return nil, fmt.Errorf("read inventory %s: %w", path, err)
	}

	inv := &report.Inventory{}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, inv); err != nil {
			return nil, fmt.Errorf("parse inventory %s: %w", path, err)
		}
		return inv, nil
	}
	if err := json.Unmarshal(data, inv); err != nil {
		return nil, fmt.Errorf("parse inventory %s: %w", path, err)
	}
	return inv, nil
}

// LoadSnapshot reads the previous snapshot, defaulting to empty.
func LoadSnapshot(path string) (*Snapshot, error) {
	snap := NewSnapshot()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return snap, nil
		}
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return snap, nil
}

// LoadRunLog reads the existing run log, defaulting to empty.
func LoadRunLog(path string) (*report.RunLog, error) {
	log := &report.RunLog{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return log, nil
		}
		return nil, fmt.Errorf("read run log %s: %w", path, err)
	}
	if err := json.Unmarshal(data, log); err != nil {
		return nil, fmt.Errorf("parse run log %s: %w", path, err)
	}
	return log, nil
}

// SaveJSON writes v as indented JSON via a temp file and rename, so the
// static host never serves a half-written resource.
func SaveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
