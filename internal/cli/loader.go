package cli

import (
	"fmt"
	"os"

	"github.com/quadrantdb/quadrant/internal/sparql"
)

// LoadError represents an error that occurred while loading a query file.
type LoadError struct {
	Code    string
	Path    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
}

// LoadQuery reads and decodes a structured query from a JSON file.
func LoadQuery(path string) (*sparql.StructuredQuery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "query file not found"}
		}
		return nil, &LoadError{Code: ErrCodeReadFailed, Path: path, Message: err.Error()}
	}

	query, err := sparql.DecodeQuery(data)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeDecodeFailed, Path: path, Message: err.Error()}
	}

	return query, nil
}
