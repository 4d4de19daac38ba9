package extraction

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/agenthands/contactgraph/internal/core/model"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrEmptyInput        = errors.New("input contains no users")
	ErrInvalidRecord     = errors.New("invalid user record")
)

// validate is shared; validator caches struct metadata.
var validate = validator.New()

// Extractor reads the raw users dataset.
type Extractor interface {
	Extract(ctx context.Context, r io.Reader) ([]model.UserRecord, error)
}

// ForPath picks an extractor by file extension.
func ForPath(path string) (Extractor, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return NewJSONExtractor(), nil
	case ".csv":
		return NewCSVExtractor(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ExtractFile opens path and extracts its users with the matching extractor.
func ExtractFile(ctx context.Context, path string) ([]model.UserRecord, error) {
	ex, err := ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input '%s': %w", path, err)
	}
	defer f.Close()

	records, err := ex.Extract(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to read input '%s': %w", path, err)
	}
	return records, nil
}

// Validate checks every record and rejects an empty dataset.
func Validate(records []model.UserRecord) error {
	if len(records) == 0 {
		return ErrEmptyInput
	}
	for i := range records {
		if err := validate.Struct(&records[i]); err != nil {
			return fmt.Errorf("%w at index %d: %s", ErrInvalidRecord, i, formatValidationError(err))
		}
	}
	return nil
}

func formatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(msgs, ", ")
}
