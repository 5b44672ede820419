package resolve

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"
)

// manifest is the subset of package.json the resolver reads.
type manifest struct {
	Types   string `json:"types"`
	Typings string `json:"typings"`
	Module  string `json:"module"`
	Main    string `json:"main"`
	// Exports is kept raw: it may be a string, an array, a subpath map or a
	// condition object. A JSON null is preserved as a non-nil raw message.
	Exports json.RawMessage `json:"exports"`
}

func (m *manifest) field(name string) string {
	switch name {
	case "types":
		return m.Types
	case "typings":
		return m.Typings
	case "module":
		return m.Module
	case "main":
		return m.Main
	}
	return ""
}

func (m *manifest) hasExports() bool {
	return len(m.Exports) > 0
}

func (r *Resolver) readManifest(dir string) (*manifest, bool) {
	content, err := r.fs.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return nil, false
	}
	var m manifest
	if err := json.Unmarshal(content, &m); err != nil {
		return nil, false
	}
	return &m, true
}

func (r *Resolver) resolveExports(pkgDir string, raw json.RawMessage, subpath string) (string, bool) {
	var exports any
	if err := json.Unmarshal(raw, &exports); err != nil {
		return "", false
	}

	if object, ok := exports.(map[string]any); ok && isSubpathMap(object) {
		target, substitute, ok := matchSubpath(object, subpath)
		if !ok {
			return "", false
		}
		return r.resolveTarget(pkgDir, target, substitute)
	}

	// A string, array or condition object is shorthand for {".": exports}.
	if subpath != "." {
		return "", false
	}
	return r.resolveTarget(pkgDir, exports, identity)
}

func identity(target string) string { return target }

func isSubpathMap(object map[string]any) bool {
	for key := range object {
		if strings.HasPrefix(key, ".") {
			return true
		}
	}
	return false
}

// matchSubpath picks the exports entry for subpath: an exact key first, then
// the "*" pattern with the longest prefix, then the longest legacy folder
// mapping (a key ending in "/").
func matchSubpath(object map[string]any, subpath string) (any, func(string) string, bool) {
	if target, ok := object[subpath]; ok {
		return target, identity, true
	}

	keys := make([]string, 0, len(object))
	for key := range object {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	bestKey, bestPrefix, bestMatch := "", -1, ""
	for _, key := range keys {
		prefix, suffix, ok := strings.Cut(key, "*")
		if !ok {
			continue
		}
		if len(subpath) < len(prefix)+len(suffix) || !strings.HasPrefix(subpath, prefix) || !strings.HasSuffix(subpath, suffix) {
			continue
		}
		if len(prefix) > bestPrefix {
			bestKey, bestPrefix = key, len(prefix)
			bestMatch = subpath[len(prefix) : len(subpath)-len(suffix)]
		}
	}
	if bestKey != "" {
		match := bestMatch
		return object[bestKey], func(target string) string {
			return strings.ReplaceAll(target, "*", match)
		}, true
	}

	for _, key := range keys {
		if strings.HasSuffix(key, "/") && strings.HasPrefix(subpath, key) {
			rest := strings.TrimPrefix(subpath, key)
			return object[key], func(target string) string {
				if strings.HasSuffix(target, "/") {
					return target + rest
				}
				return target
			}, true
		}
	}
	return nil, nil, false
}

// resolveTarget resolves an exports target. Condition objects are walked in
// policy priority order; the first present condition whose target resolves
// wins, and a null target blocks resolution.
func (r *Resolver) resolveTarget(pkgDir string, target any, substitute func(string) string) (string, bool) {
	switch t := target.(type) {
	case nil:
		return "", false
	case string:
		if !strings.HasPrefix(t, "./") {
			return "", false
		}
		path := filepath.Join(pkgDir, filepath.FromSlash(substitute(t)))
		return r.resolveFile(path)
	case []any:
		for _, entry := range t {
			if path, ok := r.resolveTarget(pkgDir, entry, substitute); ok {
				return path, true
			}
		}
		return "", false
	case map[string]any:
		for _, condition := range r.policy.Conditions {
			entry, ok := t[condition]
			if !ok {
				continue
			}
			if entry == nil {
				return "", false
			}
			if path, ok := r.resolveTarget(pkgDir, entry, substitute); ok {
				return path, true
			}
		}
		return "", false
	default:
		return "", false
	}
}
