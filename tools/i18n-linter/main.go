// Copyright (c) 2026 NBEConnect Team
// NBEConnect - NBE boiler integration setup
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks that every translation key used in the Go sources
// exists in the primary locale, that every other locale carries all primary
// keys, and reports keys nothing refers to.
//
// Run it from the repository root:
//
//	go run ./tools/i18n-linter
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."
)

var (
	// i18n.T("key" / i18n.TOr("key"
	literalKeyRe = regexp.MustCompile(`i18n\.(?:T|TOr)\("([^"]+)"`)
	// i18n.T("prefix." + code
	prefixKeyRe = regexp.MustCompile(`i18n\.(?:T|TOr)\("([a-z_.]+\.)"\s*\+`)
)

// usage holds the keys referenced literally and the prefixes of keys built
// at runtime.
type usage struct {
	keys     map[string]struct{}
	prefixes map[string]struct{}
}

func (u usage) covers(key string) bool {
	if _, ok := u.keys[key]; ok {
		return true
	}
	for p := range u.prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

func main() {
	fmt.Println("Running i18n linter...")

	used, err := findUsedKeys(projectRoot)
	if err != nil {
		fmt.Printf("Error finding used keys: %v\n", err)
		os.Exit(1)
	}
	primary, err := loadKeysFromLocale(filepath.Join(localesDir, primaryLocale))
	if err != nil {
		fmt.Printf("Error loading primary locale '%s': %v\n", primaryLocale, err)
		os.Exit(1)
	}
	localeFiles, err := filepath.Glob(filepath.Join(localesDir, "*.yaml"))
	if err != nil {
		fmt.Printf("Error finding locale files: %v\n", err)
		os.Exit(1)
	}

	failed := false
	if undefined := undefinedKeys(used, primary); len(undefined) > 0 {
		failed = true
		fmt.Println("--- Keys used in code but missing from the primary locale ---")
		for _, k := range undefined {
			fmt.Printf("  - Undefined: %s\n", k)
		}
	}

	for _, file := range localeFiles {
		if filepath.Base(file) == primaryLocale {
			continue
		}
		secondary, err := loadKeysFromLocale(file)
		if err != nil {
			fmt.Printf("Error loading %s: %v\n", file, err)
			failed = true
			continue
		}
		if missing := missingKeys(primary, secondary); len(missing) > 0 {
			failed = true
			fmt.Printf("--- Missing in %s ---\n", file)
			for _, k := range missing {
				fmt.Printf("  - Missing: %s\n", k)
			}
		}
	}

	orphaned := orphanedKeys(used, primary)
	for _, k := range orphaned {
		fmt.Printf("  - Orphaned: %s\n", k)
	}

	if failed {
		fmt.Println("Found issues that need to be addressed.")
		os.Exit(1)
	}
	if len(orphaned) > 0 {
		fmt.Println("Found orphaned keys. Please consider removing them.")
		return
	}
	fmt.Println("All translation files are consistent.")
}

// findUsedKeys scans the non-test Go files under root for translation
// lookups. The tools directory is skipped.
func findUsedKeys(root string) (usage, error) {
	u := usage{keys: map[string]struct{}{}, prefixes: map[string]struct{}{}}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			switch info.Name() {
			case "tools", "_examples", ".git":
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range prefixKeyRe.FindAllStringSubmatch(string(content), -1) {
			u.prefixes[m[1]] = struct{}{}
		}
		for _, m := range literalKeyRe.FindAllStringSubmatch(string(content), -1) {
			if !strings.HasSuffix(m[1], ".") {
				u.keys[m[1]] = struct{}{}
			}
		}
		return nil
	})
	return u, err
}

func undefinedKeys(u usage, primary map[string]struct{}) []string {
	var out []string
	for k := range u.keys {
		if _, ok := primary[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func missingKeys(primary, secondary map[string]struct{}) []string {
	var out []string
	for k := range primary {
		if _, ok := secondary[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func orphanedKeys(u usage, primary map[string]struct{}) []string {
	var out []string
	for k := range primary {
		if !u.covers(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// loadKeysFromLocale reads a YAML file and returns its keys, flattened with
// dots.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

func flattenYAML(prefix string, node any, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]any:
		for k, val := range v {
			next := k
			if prefix != "" {
				next = prefix + "." + k
			}
			flattenYAML(next, val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}
