package question

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/abhisek/certprep/internal/schemas"
)

// bankFile is the on-disk layout of a question bank.
type bankFile struct {
	Questions []Question `json:"questions"`
}

// Load reads a JSON question bank, validates it against the bank schema
// and builds a Bank.
func Load(r io.Reader) (*Bank, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	if err := schemas.Validate(schemas.QuestionBank, raw); err != nil {
		return nil, err
	}

	var f bankFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	return NewBank(f.Questions)
}

// LoadFile reads a JSON question bank from path.
func LoadFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question bank: %w", err)
	}
	defer f.Close()

	b, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}
