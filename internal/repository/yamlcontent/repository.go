// Package yamlcontent loads the portfolio content from a YAML document.
package yamlcontent

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"portfolio-site/internal/domain"
	"portfolio-site/pkg/validation"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultContent []byte

// Decode parses and validates a portfolio document. Unknown keys are rejected
// so typos in the content file surface instead of silently vanishing.
func Decode(r io.Reader, validate *validator.Validate) (*domain.Portfolio, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p domain.Portfolio
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("content document is empty")
		}
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := validate.Struct(&p); err != nil {
		return nil, fmt.Errorf("invalid content: %s", strings.Join(validation.FormatValidationErrors(err), "; "))
	}
	return &p, nil
}

// LoadFile reads and validates the document at path.
func LoadFile(path string, validate *validator.Validate) (*domain.Portfolio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content: %w", err)
	}
	defer f.Close()
	return Decode(f, validate)
}

// Default returns the embedded sample content.
func Default(validate *validator.Validate) (*domain.Portfolio, error) {
	return Decode(bytes.NewReader(defaultContent), validate)
}

// Repository serves the most recently loaded content. Reloads swap the whole
// document so readers never see a partial update.
type Repository struct {
	path     string
	validate *validator.Validate
	current  atomic.Pointer[domain.Portfolio]
}

// NewRepository loads content from path, or the embedded default when path is empty.
func NewRepository(path string, validate *validator.Validate) (*Repository, error) {
	r := &Repository{path: path, validate: validate}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the watched file, or "" for embedded content.
func (r *Repository) Path() string {
	return r.path
}

// Current returns the active content.
func (r *Repository) Current(ctx context.Context) (*domain.Portfolio, error) {
	p := r.current.Load()
	if p == nil {
		return nil, errors.New("content not loaded")
	}
	return p, nil
}

// Reload re-reads the source. On failure the previous content stays active.
func (r *Repository) Reload() error {
	var (
		p   *domain.Portfolio
		err error
	)
	if r.path == "" {
		p, err = Default(r.validate)
	} else {
		p, err = LoadFile(r.path, r.validate)
	}
	if err != nil {
		return err
	}
	r.current.Store(p)
	return nil
}
