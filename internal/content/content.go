// Package content serves localized static pages (about, FAQ, how-to-order)
// from markdown files with YAML front matter. Files live under
// content/<slug>.<lang>.md with content/<slug>.md as the language-neutral
// fallback.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no markdown file exists for a slug.
var ErrNotFound = errors.New("content: page not found")

// Page is a rendered static page.
type Page struct {
	Slug      string
	Lang      string
	Title     string
	Summary   string
	Body      template.HTML
	UpdatedAt time.Time
}

type frontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	UpdatedAt string `yaml:"updated_at"`
}

// Store loads and caches pages from a directory.
type Store struct {
	dir string

	mu    sync.RWMutex
	cache map[string]cacheEntry
	ttl   time.Duration
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

var mdRenderer = goldmark.New()
var htmlPolicy = bluemonday.UGCPolicy()

// NewStore creates a page store rooted at dir.
func NewStore(dir string) *Store {
	if strings.TrimSpace(dir) == "" {
		dir = "content"
	}
	return &Store{
		dir:   dir,
		cache: map[string]cacheEntry{},
		ttl:   5 * time.Minute,
	}
}

// SetCacheTTL overrides the cache duration (primarily for tests).
func (s *Store) SetCacheTTL(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	s.mu.Lock()
	s.ttl = d
	s.cache = map[string]cacheEntry{}
	s.mu.Unlock()
}

// Get returns the page for slug in lang, falling back to the language-neutral
// file when no localized one exists.
func (s *Store) Get(slug, lang string) (Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	lang = strings.ToLower(strings.TrimSpace(lang))

	key := slug + "|" + lang
	s.mu.RLock()
	if e, ok := s.cache[key]; ok && time.Now().Before(e.expires) {
		s.mu.RUnlock()
		return e.page, nil
	}
	s.mu.RUnlock()

	page, err := s.load(slug, lang)
	if err != nil {
		return Page{}, err
	}
	s.mu.Lock()
	s.cache[key] = cacheEntry{page: page, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return page, nil
}

func (s *Store) load(slug, lang string) (Page, error) {
	candidates := []string{}
	if lang != "" {
		candidates = append(candidates, filepath.Join(s.dir, slug+"."+lang+".md"))
	}
	candidates = append(candidates, filepath.Join(s.dir, slug+".md"))

	for _, path := range candidates {
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return renderPage(slug, lang, raw)
	}
	return Page{}, ErrNotFound
}

func renderPage(slug, lang string, raw []byte) (Page, error) {
	fmRaw, body := splitFrontMatter(string(raw))
	var fm frontMatter
	if fmRaw != "" {
		if err := yaml.Unmarshal([]byte(fmRaw), &fm); err != nil {
			return Page{}, fmt.Errorf("content: front matter for %s: %w", slug, err)
		}
	}

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", slug, err)
	}
	safe := htmlPolicy.SanitizeBytes(buf.Bytes())

	page := Page{
		Slug:    slug,
		Lang:    lang,
		Title:   fm.Title,
		Summary: fm.Summary,
		Body:    template.HTML(safe),
	}
	if fm.UpdatedAt != "" {
		if ts, err := time.Parse("2006-01-02", fm.UpdatedAt); err == nil {
			page.UpdatedAt = ts
		}
	}
	if page.Title == "" {
		page.Title = titleFromSlug(slug)
	}
	return page, nil
}

func splitFrontMatter(input string) (string, string) {
	lines := strings.SplitAfter(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[1:i], ""), strings.Join(lines[i+1:], "")
		}
	}
	return "", input
}

func sanitizeSlug(slug string) string {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, "/\\") {
		return ""
	}
	return slug
}

func titleFromSlug(slug string) string {
	s := strings.ReplaceAll(slug, "-", " ")
	r := []rune(s)
	if len(r) > 0 && r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
