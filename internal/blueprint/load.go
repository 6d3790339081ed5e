package blueprint

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/abhisek/certprep/internal/schemas"
)

//go:embed default.json
var defaultTable []byte

// tableFile is the on-disk layout of a blueprint table.
type tableFile struct {
	Sections []Blueprint `json:"sections"`
}

// Default returns the built-in blueprint table.
func Default() *Table {
	t, err := Load(bytes.NewReader(defaultTable))
	if err != nil {
		panic(fmt.Sprintf("embedded blueprint table: %v", err))
	}
	return t
}

// Load decodes a JSON blueprint table. Schema violations fail the whole
// load; weight problems only mark the affected sections malformed (see
// Table.Err).
func Load(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read blueprint table: %w", err)
	}
	if err := schemas.Validate(schemas.BlueprintTable, raw); err != nil {
		return nil, err
	}

	var f tableFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode blueprint table: %w", err)
	}
	return NewTable(f.Sections...), nil
}

// LoadFile reads a JSON blueprint table from path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open blueprint table: %w", err)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
