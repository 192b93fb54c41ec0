// Package source holds the registry of candidate-profile sources that the
// scraper knows how to paginate and target.
package source

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Source describes one scrapeable site: where to start, what to select,
// and how to build page N of its result listing.
type Source struct {
	Name        string `yaml:"name"`
	BaseURL     string `yaml:"base_url"`
	CSSSelector string `yaml:"css_selector"`
	// PageTemplate contains a {page} placeholder. Sources without one are
	// single-page.
	PageTemplate string `yaml:"page_template,omitempty"`
	Enabled      bool   `yaml:"enabled"`
}

// Paged reports whether the source supports result pagination.
func (s Source) Paged() bool {
	return strings.Contains(s.PageTemplate, "{page}")
}

// PageURL returns the URL for result page n (1-based). Single-page
// sources return their base URL for every n.
func (s Source) PageURL(n int) string {
	if !s.Paged() {
		return s.BaseURL
	}
	return strings.ReplaceAll(s.PageTemplate, "{page}", strconv.Itoa(n))
}

// Registry maps source keys to their definitions.
type Registry map[string]Source

// Default returns the built-in source registry.
func Default() Registry {
	return Registry{
		"itviec": {
			Name:        "ITviec",
			BaseURL:     "https://itviec.com/it-jobs",
			CSSSelector: "[class*='job-details'], [class*='candidate']",
			Enabled:     true,
		},
		"topcv": {
			Name:        "TopCV",
			BaseURL:     "https://www.topcv.vn/viec-lam-it",
			CSSSelector: "[class*='cv-item'], [class*='profile']",
			Enabled:     false,
		},
		"github": {
			Name:         "GitHub Profiles",
			BaseURL:      "https://github.com/search?q=location:vietnam+type:user",
			CSSSelector:  "[class*='user-list-info']",
			PageTemplate: "https://github.com/search?q=location:vietnam+type:user&p={page}",
			Enabled:      true,
		},
	}
}

// Load reads a registry file and merges it over the built-in defaults.
// Entries in the file replace same-keyed defaults wholesale; an empty path
// returns the defaults untouched.
func Load(path string) (Registry, error) {
	reg := Default()
	if path == "" {
		return reg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "source: read registry %s", path)
	}

	// The YAML has a top-level "sources" key
	var wrapper struct {
		Sources map[string]Source `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrapf(err, "source: parse registry %s", path)
	}

	for key, s := range wrapper.Sources {
		reg[key] = s
	}
	return reg, nil
}

// Get returns the source for key.
func (r Registry) Get(key string) (Source, error) {
	s, ok := r[key]
	if !ok {
		return Source{}, eris.Errorf("source: unknown source %q", key)
	}
	return s, nil
}

// Keys returns all source keys in stable order.
func (r Registry) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Enabled returns the keys of all enabled sources in stable order.
func (r Registry) Enabled() []string {
	keys := make([]string, 0, len(r))
	for k, s := range r {
		if s.Enabled {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
