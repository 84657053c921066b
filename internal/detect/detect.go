package detect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Manifest file names probed under the scan root.
const (
	packageManifest      = "package.json"
	requirementsManifest = "requirements.txt"
)

// versionSpecChars are the characters that terminate a package name on a
// requirements line (version specifiers and extras).
const versionSpecChars = "=<>!~["

// Dependencies extracts package names from <root>/package.json.
//
// A missing manifest is not an event at all (nil names, nil warnings).
// A malformed manifest yields a warning and an empty set; auto-detection
// must never abort the run. Names are the union of the keys of the
// "dependencies" and "devDependencies" objects, sorted for determinism.
func Dependencies(root string) (names []string, warnings []string) {
	path := filepath.Join(root, packageManifest)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, []string{fmt.Sprintf("could not read %s: %v", packageManifest, err)}
	}

	var manifest struct {
		Dependencies    map[string]json.RawMessage `json:"dependencies"`
		DevDependencies map[string]json.RawMessage `json:"devDependencies"`
	}
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, []string{fmt.Sprintf("could not parse %s: %v", packageManifest, err)}
	}

	set := make(map[string]struct{}, len(manifest.Dependencies)+len(manifest.DevDependencies))
	for name := range manifest.Dependencies {
		set[name] = struct{}{}
	}
	for name := range manifest.DevDependencies {
		set[name] = struct{}{}
	}

	names = make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Requirements extracts package names from <root>/requirements.txt.
//
// Each line is trimmed; empty lines and #-comments are skipped. The package
// name is the substring before the first version specifier or extras
// character. File order is preserved (first occurrence wins on duplicates).
func Requirements(root string) (names []string, warnings []string) {
	path := filepath.Join(root, requirementsManifest)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, []string{fmt.Sprintf("could not read %s: %v", requirementsManifest, err)}
	}

	seen := make(map[string]struct{})
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name := line
		if i := strings.IndexAny(line, versionSpecChars); i >= 0 {
			name = line[:i]
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

// All runs every detector against root and unions the results,
// package.json names first. Detection never fails; problems surface as
// warnings only.
func All(root string) (names []string, warnings []string) {
	deps, warns := Dependencies(root)
	warnings = append(warnings, warns...)

	reqs, warns := Requirements(root)
	warnings = append(warnings, warns...)

	seen := make(map[string]struct{}, len(deps)+len(reqs))
	for _, lists := range [][]string{deps, reqs} {
		for _, name := range lists {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names, warnings
}
