package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
)

var ErrTemplateNotFound = errors.New("template not found")

// Catalog renders named message templates with optional per-reseller overrides.
// Names are matched case-insensitively because config keys arrive lower-cased.
type Catalog struct {
	def       map[string]*template.Template
	resellers map[int64]map[string]*template.Template
}

func NewCatalog(def map[string]string, resellers map[int64]map[string]string) (*Catalog, error) {
	c := &Catalog{
		def:       make(map[string]*template.Template, len(def)),
		resellers: make(map[int64]map[string]*template.Template, len(resellers)),
	}
	if err := parseInto(c.def, def); err != nil {
		return nil, err
	}
	for id, texts := range resellers {
		m := make(map[string]*template.Template, len(texts))
		if err := parseInto(m, texts); err != nil {
			return nil, fmt.Errorf("reseller %d: %w", id, err)
		}
		c.resellers[id] = m
	}
	return c, nil
}

func parseInto(dst map[string]*template.Template, src map[string]string) error {
	for name, text := range src {
		key := strings.ToLower(name)
		t, err := template.New(key).Option("missingkey=error").Parse(text)
		if err != nil {
			return fmt.Errorf("parse template %s: %w", name, err)
		}
		dst[key] = t
	}
	return nil
}

func (c *Catalog) Render(_ context.Context, name string, data map[string]any, resellerID int64) (string, error) {
	key := strings.ToLower(name)
	t, ok := c.resellers[resellerID][key]
	if !ok {
		t, ok = c.def[key]
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	if data == nil {
		data = map[string]any{}
	}

	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return sb.String(), nil
}
