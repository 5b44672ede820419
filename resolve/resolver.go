package resolve

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FS is the filesystem view the resolver reads from.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}

type osFS struct{}

func (osFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }
func (osFS) ReadFile(name string) ([]byte, error)  { return os.ReadFile(name) }

// OSFS returns an FS backed by the host filesystem.
func OSFS() FS { return osFS{} }

// Resolver maps (importing file, specifier) pairs to files on disk.
type Resolver struct {
	policy Policy
	fs     FS
}

// New creates a Resolver. A nil fsys uses the host filesystem.
func New(policy Policy, fsys FS) *Resolver {
	if fsys == nil {
		fsys = OSFS()
	}
	return &Resolver{policy: policy, fs: fsys}
}

// Policy returns the policy the resolver applies.
func (r *Resolver) Policy() Policy {
	return r.policy
}

// Resolve returns the path that specifier, imported from fromFile, refers to.
// Failures are always *Error values.
func (r *Resolver) Resolve(fromFile, specifier string) (string, error) {
	dir := filepath.Dir(fromFile)

	if IsRelative(specifier) {
		base := filepath.FromSlash(specifier)
		if !filepath.IsAbs(base) {
			base = filepath.Join(dir, base)
		}
		path, ok := r.resolveFileOrDirectory(base)
		if !ok {
			return "", &Error{Kind: Unresolved, From: fromFile, Specifier: specifier}
		}
		if !isTypeScript(path) {
			// compiled packages import './money.js' next to money.d.ts
			if declaration, ok := r.declarationSibling(path); ok {
				return declaration, nil
			}
		}
		return path, nil
	}

	name, subpath := SplitPackage(specifier)
	if !r.policy.FollowExternal {
		return "", &Error{Kind: ExternalDisabled, From: fromFile, Specifier: specifier, Package: name}
	}
	if r.policy.IsExcluded(specifier) {
		top, _, _ := strings.Cut(specifier, "/")
		return "", &Error{Kind: PackageExcluded, From: fromFile, Specifier: specifier, Package: top}
	}

	target, found := "", false
	if pkgDir, ok := r.findPackage(dir, name); ok {
		target, found = r.resolvePackage(pkgDir, subpath)
	}
	if found && isTypeScript(target) {
		return target, nil
	}
	if found {
		if declaration, ok := r.declarationSibling(target); ok {
			return declaration, nil
		}
	}

	if !strings.HasPrefix(name, "@types/") {
		if typesDir, ok := r.findPackage(dir, TypesPackageName(name)); ok {
			if declaration, ok := r.resolvePackage(typesDir, subpath); ok && isTypeScript(declaration) {
				return declaration, nil
			}
		}
	}

	if found {
		return "", &Error{Kind: NoTypeDeclarations, From: fromFile, Specifier: specifier, Package: name, Target: target}
	}
	return "", &Error{Kind: Unresolved, From: fromFile, Specifier: specifier, Package: name}
}

// IsRelative reports whether a specifier is a relative or absolute path
// rather than a bare package name.
func IsRelative(specifier string) bool {
	return strings.HasPrefix(specifier, ".") || strings.HasPrefix(specifier, "/")
}

// SplitPackage splits a bare specifier into the package name (two segments
// for scoped packages) and a subpath of the form "." or "./rest".
func SplitPackage(specifier string) (name, subpath string) {
	segments := 1
	if strings.HasPrefix(specifier, "@") {
		segments = 2
	}
	parts := strings.SplitN(specifier, "/", segments+1)
	if len(parts) <= segments {
		return specifier, "."
	}
	return strings.Join(parts[:segments], "/"), "./" + parts[segments]
}

// TypesPackageName returns the DefinitelyTyped package for name:
// "lodash" becomes "@types/lodash" and "@scope/pkg" becomes "@types/scope__pkg".
func TypesPackageName(name string) string {
	if strings.HasPrefix(name, "@") {
		return "@types/" + strings.Replace(name[1:], "/", "__", 1)
	}
	return "@types/" + name
}

func (r *Resolver) resolveFileOrDirectory(base string) (string, bool) {
	if path, ok := r.resolveFile(base); ok {
		return path, true
	}
	return r.resolveDirectory(base)
}

// resolveFile tries base itself and then base with each extension appended.
// A written extension with an alias entry is replaced by its aliases instead.
func (r *Resolver) resolveFile(base string) (string, bool) {
	ext := filepath.Ext(base)
	if aliases, ok := r.policy.ExtensionAliases[ext]; ok {
		stem := strings.TrimSuffix(base, ext)
		for _, alias := range aliases {
			if r.isFile(stem + alias) {
				return stem + alias, true
			}
		}
		return "", false
	}

	if r.isFile(base) {
		return base, true
	}
	for _, ext := range r.policy.Extensions {
		if r.isFile(base + ext) {
			return base + ext, true
		}
	}
	return "", false
}

// resolveDirectory consults dir's package.json main fields, then index files.
func (r *Resolver) resolveDirectory(dir string) (string, bool) {
	if !r.isDir(dir) {
		return "", false
	}
	if m, ok := r.readManifest(dir); ok {
		if path, ok := r.resolveMainFields(dir, m); ok {
			return path, true
		}
	}
	return r.resolveIndex(dir)
}

func (r *Resolver) resolveMainFields(dir string, m *manifest) (string, bool) {
	for _, field := range r.policy.MainFields {
		entry := m.field(field)
		if entry == "" {
			continue
		}
		target := filepath.Join(dir, filepath.FromSlash(entry))
		if path, ok := r.resolveFile(target); ok {
			return path, true
		}
		if r.isDir(target) {
			if path, ok := r.resolveIndex(target); ok {
				return path, true
			}
		}
	}
	return "", false
}

func (r *Resolver) resolveIndex(dir string) (string, bool) {
	for _, name := range r.policy.IndexFiles {
		for _, ext := range r.policy.Extensions {
			candidate := filepath.Join(dir, name+ext)
			if r.isFile(candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}

// findPackage walks from startDir towards the filesystem root looking for
// node_modules/<name>.
func (r *Resolver) findPackage(startDir, name string) (string, bool) {
	dir := startDir
	for {
		if filepath.Base(dir) != "node_modules" {
			candidate := filepath.Join(dir, "node_modules", filepath.FromSlash(name))
			if r.isDir(candidate) {
				return candidate, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// resolvePackage resolves subpath inside an installed package. When the
// manifest declares exports they are authoritative.
func (r *Resolver) resolvePackage(pkgDir, subpath string) (string, bool) {
	m, hasManifest := r.readManifest(pkgDir)
	if hasManifest && m.hasExports() {
		return r.resolveExports(pkgDir, m.Exports, subpath)
	}
	if subpath == "." {
		return r.resolveDirectory(pkgDir)
	}
	return r.resolveFileOrDirectory(filepath.Join(pkgDir, filepath.FromSlash(strings.TrimPrefix(subpath, "./"))))
}

// declarationSibling finds the declaration file shipped next to a JavaScript entry.
func (r *Resolver) declarationSibling(target string) (string, bool) {
	ext := filepath.Ext(target)
	stem := strings.TrimSuffix(target, ext)
	var candidates []string
	switch ext {
	case ".mjs":
		candidates = []string{stem + ".d.mts", stem + ".d.ts"}
	case ".cjs":
		candidates = []string{stem + ".d.cts", stem + ".d.ts"}
	case ".js", ".jsx", ".json":
		candidates = []string{stem + ".d.ts"}
	}
	for _, candidate := range candidates {
		if r.isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (r *Resolver) isFile(path string) bool {
	info, err := r.fs.Stat(path)
	return err == nil && !info.IsDir()
}

func (r *Resolver) isDir(path string) bool {
	info, err := r.fs.Stat(path)
	return err == nil && info.IsDir()
}

func isTypeScript(path string) bool {
	switch filepath.Ext(path) {
	case ".ts", ".tsx", ".mts", ".cts":
		return true
	}
	return false
}
