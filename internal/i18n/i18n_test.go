package i18n

import (
	"os"
	"path/filepath"
	"testing"
)

func writeLocales(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"id.json": `{"brand.name":"Al-Hakim Catering","nav.menu":"Menu","checkout.submit":"Buat Pesanan"}`,
		"en.json": `{"nav.menu":"Menu","checkout.submit":"Place Order"}`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoadAndTranslate(t *testing.T) {
	b, err := Load(writeLocales(t), "id", []string{"id", "en"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := b.T("en", "checkout.submit"); got != "Place Order" {
		t.Fatalf("en translation = %q", got)
	}
	// en file has no brand.name; falls back to id
	if got := b.T("en", "brand.name"); got != "Al-Hakim Catering" {
		t.Fatalf("fallback translation = %q", got)
	}
	// unknown key returns the key
	if got := b.T("id", "nav.unknown"); got != "nav.unknown" {
		t.Fatalf("missing key = %q", got)
	}
}

func TestLoadMissingFallbackFails(t *testing.T) {
	if _, err := Load(t.TempDir(), "id", []string{"id"}); err == nil {
		t.Fatal("expected error for missing fallback locale")
	}
}

func TestResolve(t *testing.T) {
	b, err := Load(writeLocales(t), "id", []string{"id", "en"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cases := []struct {
		header string
		want   string
	}{
		{"", "id"},
		{"en", "en"},
		{"en-US,en;q=0.9", "en"},
		{"id-ID,id;q=0.9,en;q=0.8", "id"},
		{"fr-FR,fr;q=0.9", "id"},
		{"fr;q=0.9,en;q=0.8", "en"},
	}
	for _, tc := range cases {
		if got := b.Resolve(tc.header); got != tc.want {
			t.Errorf("Resolve(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
