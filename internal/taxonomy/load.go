package taxonomy

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-matcher/internal/schemas"
)

// EmbeddedSource names the taxonomy compiled into the binary.
const EmbeddedSource = "embedded"

//go:embed data/skills.json
var embeddedDocument []byte

// Default builds the embedded taxonomy.
func Default(opts ...Option) (*Taxonomy, error) {
	return Parse(EmbeddedSource, embeddedDocument, opts...)
}

// Load reads a taxonomy from source: "" or "embedded", a file path, or an
// s3://bucket/key URI. Any failure is returned as *LoadError.
func Load(ctx context.Context, source string, opts ...Option) (*Taxonomy, error) {
	return LoadWith(ctx, source, nil, opts...)
}

// LoadWith is Load with an explicit object store for s3:// sources. A nil
// store uses an S3 client built from the default AWS configuration.
func LoadWith(ctx context.Context, source string, store ObjectStore, opts ...Option) (*Taxonomy, error) {
	data, err := readSource(ctx, source, store)
	if err != nil {
		return nil, &LoadError{Source: source, Message: "failed to read taxonomy", Cause: err}
	}
	return Parse(source, data, opts...)
}

// Parse validates data against the taxonomy schema and builds it.
func Parse(source string, data []byte, opts ...Option) (*Taxonomy, error) {
	if err := schemas.ValidateDocument(schemas.Taxonomy, data); err != nil {
		return nil, &LoadError{Source: source, Message: "taxonomy document failed schema validation", Cause: err}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Source: source, Message: "failed to decode taxonomy", Cause: err}
	}

	t, err := New(doc.Version, doc.Skills, opts...)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.Source == "" {
			loadErr.Source = source
		}
		return nil, err
	}
	return t, nil
}

func readSource(ctx context.Context, source string, store ObjectStore) ([]byte, error) {
	switch {
	case source == "" || source == EmbeddedSource:
		return embeddedDocument, nil
	case strings.HasPrefix(source, "s3://"):
		bucket, key, err := parseS3URI(source)
		if err != nil {
			return nil, err
		}
		if store == nil {
			store, err = NewS3Store(ctx, "")
			if err != nil {
				return nil, err
			}
		}
		return store.Get(ctx, bucket, key)
	default:
		data, err := os.ReadFile(source)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("taxonomy file not found: %s", source)
			}
			return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
		}
		return data, nil
	}
}
