// Package manifest loads, transforms and saves the generated project's Cargo
// manifest.
//
// The transformation is additive: it creates the tables it needs, points
// package.build at the generated build script and declares dependencies, but
// never removes or rewrites keys it does not own. Applying it twice yields the
// same document as applying it once.
package manifest

import (
	"log/slog"
	"strings"
)

const (
	// FileName is the manifest file at the root of the generated project.
	FileName = "Cargo.toml"
	// BuildScript is the generated build script, relative to the project root.
	BuildScript = "build.rs"
	// Wildcard is the unconstrained version requirement.
	Wildcard = "*"
	// HarnessDependency is the snippet-extraction crate the build script uses.
	HarnessDependency = "skeptic"
)

// Table keys the transformation owns.
const (
	KeyPackage           = "package"
	KeyBuild             = "build"
	KeyDependencies      = "dependencies"
	KeyDevDependencies   = "dev-dependencies"
	KeyBuildDependencies = "build-dependencies"
)

// Document is a parsed manifest: nested tables of string keys.
type Document map[string]any

// Transform returns a copy of doc wired for the harness:
//
//   - package, dependencies, dev-dependencies and build-dependencies exist as tables;
//   - package.build is BuildScript;
//   - every name in deps is declared under dependencies with Wildcard;
//   - HarnessDependency is declared under dev-dependencies and build-dependencies.
//
// Existing dependency entries are left as they are, so a pinned version added by
// hand survives reruns. Blank and duplicate names in deps are ignored. doc itself
// is not modified.
func Transform(doc Document, deps []string) Document {
	out := make(Document, len(doc)+4)
	for k, v := range doc {
		out[k] = v
	}

	pkg := ensureTable(out, KeyPackage)
	pkg[KeyBuild] = BuildScript

	dependencies := ensureTable(out, KeyDependencies)
	for _, dep := range DependencyNames(deps) {
		insertIfAbsent(dependencies, dep, Wildcard)
	}

	insertIfAbsent(ensureTable(out, KeyDevDependencies), HarnessDependency, Wildcard)
	insertIfAbsent(ensureTable(out, KeyBuildDependencies), HarnessDependency, Wildcard)

	return out
}

// DependencyNames returns deps trimmed, without blanks and duplicates, in
// first-seen order.
func DependencyNames(deps []string) []string {
	seen := make(map[string]struct{}, len(deps))
	names := make([]string, 0, len(deps))
	for _, dep := range deps {
		dep = strings.TrimSpace(dep)
		if dep == "" {
			continue
		}
		if _, dup := seen[dep]; dup {
			continue
		}
		seen[dep] = struct{}{}
		names = append(names, dep)
	}
	return names
}

// ensureTable makes doc[key] a private copy of the existing table, or a new
// table when the key is absent. A non-table value under an owned key cannot be
// extended, so it is replaced.
func ensureTable(doc Document, key string) map[string]any {
	table := map[string]any{}
	switch existing := doc[key].(type) {
	case map[string]any:
		for k, v := range existing {
			table[k] = v
		}
	case nil:
	default:
		slog.Warn("Replacing non-table manifest entry",
			slog.String("key", key),
			slog.String("type", typeName(existing)))
	}
	doc[key] = table
	return table
}

func insertIfAbsent(table map[string]any, key string, value any) {
	if _, exists := table[key]; exists {
		slog.Debug("Keeping existing manifest entry", slog.String("key", key))
		return
	}
	table[key] = value
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case []any:
		return "array"
	case bool:
		return "bool"
	default:
		return "value"
	}
}

// Dependencies returns the names declared under the dependencies table.
func (d Document) Dependencies() []string {
	table, _ := d[KeyDependencies].(map[string]any)
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	return names
}

// BuildScriptPath returns package.build, or "" when unset.
func (d Document) BuildScriptPath() string {
	pkg, _ := d[KeyPackage].(map[string]any)
	s, _ := pkg[KeyBuild].(string)
	return s
}
