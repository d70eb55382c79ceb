package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

const (
	Welcome    = "welcome"
	NewComment = "new_comment"
)

func funcs() map[string]any {
	return map[string]any{
		"now":      func() time.Time { return time.Now().UTC() },
		"truncate": truncate,
		"default": func(fallback, value any) any {
			if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
				return fallback
			}
			if value == nil {
				return fallback
			}
			return value
		},
	}
}

func truncate(n int, s string) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func renderFile(filename string, isHTML bool, data any) (string, error) {
	var buf bytes.Buffer
	var err error
	if isHTML {
		tpl, e := htmpl.New(filename).Funcs(htmpl.FuncMap(funcs())).ParseFS(FS, filename)
		if e != nil {
			return "", fmt.Errorf("parse html %q: %w", filename, e)
		}
		err = tpl.Execute(&buf, data)
	} else {
		tpl, e := texttpl.New(filename).Funcs(texttpl.FuncMap(funcs())).ParseFS(FS, filename)
		if e != nil {
			return "", fmt.Errorf("parse text %q: %w", filename, e)
		}
		err = tpl.Execute(&buf, data)
	}
	if err != nil {
		return "", fmt.Errorf("exec %q: %w", filename, err)
	}
	return buf.String(), nil
}

// Render expects <name>.subject.tmpl, <name>.text.tmpl and <name>.html.tmpl.
func Render(name string, data any) (subject, text, html string, err error) {
	if subject, err = renderFile(name+".subject.tmpl", false, data); err != nil {
		return "", "", "", err
	}
	if text, err = renderFile(name+".text.tmpl", false, data); err != nil {
		return "", "", "", err
	}
	if html, err = renderFile(name+".html.tmpl", true, data); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
