package view

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"sync"
)

// Data is the bag of values handed to a template.
type Data map[string]interface{}

// Cache parses every template under a directory once at startup and renders
// them by base name.
type Cache struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
	funcs     template.FuncMap
}

// NewCache creates an empty template cache.
func NewCache() *Cache {
	return &Cache{
		templates: make(map[string]*template.Template),
		funcs:     make(template.FuncMap),
	}
}

// AddFunc registers a template function. Must be called before Load.
func (c *Cache) AddFunc(name string, fn interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs[name] = fn
}

// Load parses all *.html files in dir into the cache.
func (c *Cache) Load(dir string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	files, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return err
	}

	for _, file := range files {
		name := filepath.Base(file)
		tmpl, err := template.New(name).Funcs(c.funcs).ParseFiles(file)
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", file, err)
		}
		c.templates[name] = tmpl
	}

	return nil
}

// Render writes the named template with the given status code and data.
func (c *Cache) Render(w http.ResponseWriter, status int, name string, data Data) error {
	c.mu.RLock()
	tmpl, ok := c.templates[name+".html"]
	c.mu.RUnlock()

	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return tmpl.Execute(w, data)
}
