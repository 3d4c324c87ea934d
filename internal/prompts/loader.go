// Package prompts provides the generation prompts, embedded as JSON files.
// Each file maps "<name>-<locale>" keys to prompt templates with {{.Field}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// FallbackLocale is used when a prompt has no variant for the requested locale.
const FallbackLocale = "en"

var placeholderPattern = regexp.MustCompile(`\{\{\.(\w+)\}\}`)

var (
	filesMu sync.RWMutex
	files   = make(map[string]map[string]string)
)

// Get returns the template stored under key in filename, e.g. ("tailoring.json", "tailor-description-de").
func Get(filename, key string) (string, error) {
	templates, err := load(filename)
	if err != nil {
		return "", err
	}
	template, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return template, nil
}

// MustGet is Get for prompts that must exist; it panics otherwise.
func MustGet(filename, key string) string {
	template, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return template
}

// GetLocalized returns the locale variant of name, or its FallbackLocale variant.
func GetLocalized(filename, name, locale string) (string, error) {
	if template, err := Get(filename, name+"-"+locale); err == nil {
		return template, nil
	}
	return Get(filename, name+"-"+FallbackLocale)
}

// Render fills the locale variant of name with data. Every placeholder must have a
// value: a prompt with unfilled fields is an error, never sent.
func Render(filename, name, locale string, data map[string]string) (string, error) {
	template, err := GetLocalized(filename, name, locale)
	if err != nil {
		return "", err
	}
	out, missing := fill(template, data)
	if len(missing) > 0 {
		return "", fmt.Errorf("prompt %s/%s: no value for %s", filename, name, strings.Join(missing, ", "))
	}
	return out, nil
}

// Format fills the placeholders of template that data has values for and leaves the rest.
func Format(template string, data map[string]string) string {
	out, _ := fill(template, data)
	return out
}

// fill substitutes in a single pass, so values that contain placeholder syntax
// (pasted job notes, for instance) are never expanded themselves.
func fill(template string, data map[string]string) (string, []string) {
	var missing []string
	out := placeholderPattern.ReplaceAllStringFunc(template, func(m string) string {
		field := placeholderPattern.FindStringSubmatch(m)[1]
		if value, ok := data[field]; ok {
			return value
		}
		missing = append(missing, field)
		return m
	})
	return out, missing
}

// Fields lists the distinct placeholder names of template in sorted order.
func Fields(template string) []string {
	seen := map[string]bool{}
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		seen[m[1]] = true
	}
	fields := make([]string, 0, len(seen))
	for f := range seen {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// List returns the keys of filename in sorted order.
func List(filename string) ([]string, error) {
	templates, err := load(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(templates))
	for key := range templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// ClearCache drops parsed files so the next lookup reads them again.
func ClearCache() {
	filesMu.Lock()
	files = make(map[string]map[string]string)
	filesMu.Unlock()
}

func load(filename string) (map[string]string, error) {
	filesMu.RLock()
	templates, ok := files[filename]
	filesMu.RUnlock()
	if ok {
		return templates, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	filesMu.Lock()
	files[filename] = templates
	filesMu.Unlock()
	return templates, nil
}
