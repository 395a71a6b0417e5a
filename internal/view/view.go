// Package view renders html/template pages with the app's shared func map.
// Templates live under templates/ with a layout.html wrapper; parsed
// templates are cached outside dev mode.
package view

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/invoza/webapp/internal/api"
	"github.com/invoza/webapp/internal/directory"
	"github.com/invoza/webapp/internal/invoice"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates", "../../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// SetBaseDir overrides the template base directory (useful for tests).
func SetBaseDir(path string) {
	if path == "" {
		return
	}
	baseDir = filepath.Clean(path)
	once = sync.Once{}
}

// Funcs returns the shared template helpers.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money": func(v float64) string { return invoice.Money(v) },
		"confirmDelete": func(kind, name string, bulk int) string {
			return directory.ConfirmDeleteMessage(api.Kind(kind), name, bulk)
		},
		"add":   func(a, b int) int { return a + b },
		"sub":   func(a, b int) int { return a - b },
		"year":  func() int { return time.Now().Year() },
		// dict builds a map from key-value pairs for sub-templates.
		// Usage: {{ template "partial" (dict "Key1" val1 "Key2" val2) }}
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// Render parses and executes a template file wrapped in the layout.
// name is the filename, e.g. "directory.html".
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	if baseDir == "" {
		once.Do(detectBase)
	}
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}

	devMode := os.Getenv("DEV") == "1"
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[name]
		tplCache.RUnlock()
		if ok && t != nil {
			return execute(w, t, data)
		}
	}

	mainPath := filepath.Join(baseDir, name)
	if _, err := os.Stat(mainPath); err != nil {
		return err
	}

	var t *template.Template
	layoutPath := filepath.Join(baseDir, "layout.html")
	if fi, err := os.Stat(layoutPath); err == nil && !fi.IsDir() {
		parsed, err := template.New("layout.html").Funcs(Funcs()).ParseFiles(layoutPath, mainPath)
		if err != nil {
			return err
		}
		t = parsed
	} else {
		parsed, err := template.New(name).Funcs(Funcs()).ParseFiles(mainPath)
		if err != nil {
			return err
		}
		t = parsed
	}

	if !devMode {
		tplCache.Lock()
		tplCache.m[name] = t
		tplCache.Unlock()
	}
	if t == nil {
		return errors.New("template not cached")
	}
	return execute(w, t, data)
}

// execute buffers the output so a template error never produces a
// half-written page.
func execute(w http.ResponseWriter, t *template.Template, data map[string]any) error {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := w.Write(buf.Bytes())
	return err
}

// ResetForTests clears caches and forces base dir detection to rerun.
func ResetForTests() {
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
	baseDir = ""
	once = sync.Once{}
}
