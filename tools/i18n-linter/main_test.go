package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadKeysFromLocale_FlatAndNested(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "en.yaml")
	content := "app.short: \"x\"\nform:\n  submit: \"Submit\"\n"
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	got, err := loadKeysFromLocale(p)
	if err != nil {
		t.Fatalf("loadKeysFromLocale failed: %v", err)
	}
	for _, k := range []string{"app.short", "form.submit"} {
		if _, ok := got[k]; !ok {
			t.Fatalf("expected key %s, got %v", k, got)
		}
	}
}

func TestFindUsedKeys_LiteralsAndPrefixes(t *testing.T) {
	dir := t.TempDir()
	src := `package foo
func f(code string) {
	_ = i18n.T("form.submit")
	_ = i18n.TOr("flow.error."+code, code)
	_ = i18n.T("flow.title." + code)
}`
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "a.go"), []byte(src), 0o644); err != nil {
		t.Fatalf("write go: %v", err)
	}

	u, err := findUsedKeys(dir)
	if err != nil {
		t.Fatalf("findUsedKeys failed: %v", err)
	}
	if _, ok := u.keys["form.submit"]; !ok || len(u.keys) != 1 {
		t.Fatalf("unexpected literal keys: %v", u.keys)
	}
	if !u.covers("flow.error.missing_serial") || !u.covers("flow.title.user") {
		t.Fatalf("prefixes not recorded: %v", u.prefixes)
	}
	if u.covers("cli.unused") {
		t.Fatalf("cli.unused should not be covered")
	}
}

func TestKeyComparisons(t *testing.T) {
	primary := map[string]struct{}{"a.one": {}, "a.two": {}, "b.dyn.x": {}}
	secondary := map[string]struct{}{"a.one": {}}
	u := usage{
		keys:     map[string]struct{}{"a.one": {}, "c.missing": {}},
		prefixes: map[string]struct{}{"b.dyn.": {}},
	}

	if got := missingKeys(primary, secondary); !reflect.DeepEqual(got, []string{"a.two", "b.dyn.x"}) {
		t.Fatalf("missingKeys = %v", got)
	}
	if got := undefinedKeys(u, primary); !reflect.DeepEqual(got, []string{"c.missing"}) {
		t.Fatalf("undefinedKeys = %v", got)
	}
	if got := orphanedKeys(u, primary); !reflect.DeepEqual(got, []string{"a.two"}) {
		t.Fatalf("orphanedKeys = %v", got)
	}
}

// The shipped locales must be consistent.
func TestRepositoryLocalesConsistent(t *testing.T) {
	root := filepath.Join("..", "..")
	primary, err := loadKeysFromLocale(filepath.Join(root, localesDir, primaryLocale))
	if err != nil {
		t.Fatalf("load primary: %v", err)
	}
	secondary, err := loadKeysFromLocale(filepath.Join(root, localesDir, "de.yaml"))
	if err != nil {
		t.Fatalf("load de: %v", err)
	}
	if missing := missingKeys(primary, secondary); len(missing) > 0 {
		t.Fatalf("de.yaml misses keys: %v", missing)
	}
}
