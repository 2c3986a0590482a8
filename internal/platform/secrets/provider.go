package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Provider resolves secret values.
type Provider interface {
	// Secret returns the value at path. ok is false when it does not exist.
	Secret(ctx context.Context, path ...string) (value string, ok bool, err error)
}

// FileProvider reads secrets from a nested YAML or JSON document. The file
// is read on first use; a missing file holds no secrets.
type FileProvider struct {
	path string

	once sync.Once
	doc  map[string]interface{}
	err  error
}

// NewFileProvider returns a provider over the document at path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// Secret implements Provider.
func (p *FileProvider) Secret(_ context.Context, path ...string) (string, bool, error) {
	p.once.Do(p.load)
	if p.err != nil {
		return "", false, p.err
	}
	return lookup(p.doc, path)
}

func (p *FileProvider) load() {
	// #nosec G304 - the secrets path comes from node configuration
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		p.err = fmt.Errorf("failed to read secrets file: %w", err)
		return
	}
	if err := yaml.Unmarshal(data, &p.doc); err != nil {
		p.err = fmt.Errorf("failed to parse secrets file %s: %w", p.path, err)
	}
}

// lookup walks doc along path and returns the scalar at its end.
func lookup(doc map[string]interface{}, path []string) (string, bool, error) {
	if len(path) == 0 {
		return "", false, errors.New("empty secret path")
	}

	var node interface{} = doc
	for _, key := range path {
		m, ok := node.(map[string]interface{})
		if !ok {
			return "", false, nil
		}
		node, ok = m[key]
		if !ok {
			return "", false, nil
		}
	}

	switch v := node.(type) {
	case nil:
		return "", false, nil
	case string:
		return v, true, nil
	case map[string]interface{}, []interface{}:
		return "", false, fmt.Errorf("secret %s is not a scalar", strings.Join(path, "."))
	default:
		return fmt.Sprint(v), true, nil
	}
}

// EnvProvider maps a path onto an environment variable: path elements are
// joined with underscores and upper-cased, so [aws volumes access_key_id]
// reads AWS_VOLUMES_ACCESS_KEY_ID.
type EnvProvider struct {
	Prefix string
	lookup func(string) (string, bool)
}

// NewEnvProvider returns a provider over the process environment.
func NewEnvProvider(prefix string) *EnvProvider {
	return &EnvProvider{Prefix: prefix, lookup: os.LookupEnv}
}

// Secret implements Provider.
func (p *EnvProvider) Secret(_ context.Context, path ...string) (string, bool, error) {
	if len(path) == 0 {
		return "", false, errors.New("empty secret path")
	}
	v, ok := p.lookup(EnvName(p.Prefix, path...))
	return v, ok, nil
}

// EnvName returns the environment variable an EnvProvider reads for path.
func EnvName(prefix string, path ...string) string {
	parts := path
	if prefix != "" {
		parts = append([]string{prefix}, path...)
	}
	name := strings.ToUpper(strings.Join(parts, "_"))
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return '_'
	}, name)
}

// StaticProvider serves secrets from memory, keyed by the dot-joined path.
type StaticProvider map[string]string

// Secret implements Provider.
func (p StaticProvider) Secret(_ context.Context, path ...string) (string, bool, error) {
	v, ok := p[strings.Join(path, ".")]
	return v, ok, nil
}
