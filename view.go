package fileoutput

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

// DefaultTemplate is the name of the bundled field template.
const DefaultTemplate = "file-output.html"

//go:embed templates/*.html
var bundledTemplates embed.FS

// RendererOption configures a Renderer.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	templates fs.FS
	name      string
	policy    *bluemonday.Policy
}

// WithTemplates loads templates from files instead of the bundled set.
func WithTemplates(files fs.FS) RendererOption {
	return func(cfg *rendererConfig) {
		cfg.templates = files
	}
}

// WithTemplateName selects the template rendered for a field.
func WithTemplateName(name string) RendererOption {
	return func(cfg *rendererConfig) {
		if name != "" {
			cfg.name = name
		}
	}
}

// WithPolicy replaces the sanitizer applied to descriptions.
func WithPolicy(policy *bluemonday.Policy) RendererOption {
	return func(cfg *rendererConfig) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// Renderer turns a resolved Output into HTML using a pongo2 template set.
// It is safe for concurrent use.
type Renderer struct {
	set      *pongo2.TemplateSet
	name     string
	policy   *bluemonday.Policy
	template *pongo2.Template
}

// NewRenderer parses the field template up front so broken templates fail fast.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	cfg := &rendererConfig{
		name:   DefaultTemplate,
		policy: bluemonday.UGCPolicy(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	if cfg.templates == nil {
		sub, err := fs.Sub(bundledTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("fileoutput: open bundled templates: %w", err)
		}
		cfg.templates = sub
	}

	r := &Renderer{
		set:    pongo2.NewSet("fileoutput", pongo2.NewFSLoader(cfg.templates)),
		name:   cfg.name,
		policy: cfg.policy,
	}

	tpl, err := r.set.FromFile(r.name)
	if err != nil {
		return nil, fmt.Errorf("fileoutput: parse template %q: %w", r.name, err)
	}
	r.template = tpl

	return r, nil
}

// Render writes the field markup for out to w.
func (r *Renderer) Render(w io.Writer, out *Output) error {
	if out == nil {
		return errors.New("fileoutput: nothing to render")
	}

	var buf bytes.Buffer
	if err := r.template.ExecuteWriter(r.context(out), &buf); err != nil {
		return fmt.Errorf("fileoutput: execute template %q: %w", r.name, err)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// RenderString renders out and returns the markup.
func (r *Renderer) RenderString(out *Output) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, out); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) context(out *Output) pongo2.Context {
	entries := make([]map[string]any, 0, len(out.entries))
	for _, e := range out.entries {
		entry := map[string]any{
			"path":        e.Path,
			"name":        e.Name,
			"url":         e.URL,
			"is_image":    e.IsImage,
			"label":       e.Label,
			"description": r.policy.Sanitize(e.Description),
		}
		if a := e.DeleteAction; a != nil {
			entry["delete"] = map[string]any{
				"name":        a.Name,
				"label":       a.Label,
				"icon":        a.Icon,
				"color":       a.Color,
				"path":        a.FilePath,
				"heading":     a.ModalHeading,
				"description": a.ModalDescription,
			}
		}
		entries = append(entries, entry)
	}

	return pongo2.Context{
		"name":        out.field.name,
		"has_file":    out.HasFile(),
		"multiple":    out.IsMultiple(),
		"entries":     entries,
		"empty_state": out.emptyState,
		"preview_alt": translate(out.rc.Language, MsgFilePreview),
	}
}
