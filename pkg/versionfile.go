package commitbump

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
)

var (
	versionDeclPattern = regexp.MustCompile(`Version\s*=\s*"([^"]+)"`)
	packageDeclPattern = regexp.MustCompile(`(?m)^package\s+(\w+)`)
)

// ReadVersionFile extracts the version string from a Go file declaring
// `Version = "..."`. A missing file yields an error wrapping os.ErrNotExist.
func ReadVersionFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading version file: %w", err)
	}
	if m := versionDeclPattern.FindSubmatch(data); m != nil {
		return string(m[1]), nil
	}
	return "", fmt.Errorf("%w in %s", ErrNoVersion, path)
}

// WriteVersionFile writes (or creates) a Go file declaring Version = v.
// The package clause is kept from the existing file, taken from sibling Go
// files, or defaults to "version".
func WriteVersionFile(path string, v Version) error {
	pkgName, err := determinePackageName(path)
	if err != nil {
		pkgName = "version"
	}
	content := fmt.Sprintf(`package %s

var (
	Version = "%s"
)
`, pkgName, v)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func determinePackageName(path string) (string, error) {
	if data, err := os.ReadFile(path); err == nil {
		if m := packageDeclPattern.FindSubmatch(data); m != nil {
			return string(m[1]), nil
		}
	}

	dir := filepath.Dir(path)
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, dir, func(fi os.FileInfo) bool {
		return strings.HasSuffix(fi.Name(), ".go") && !strings.HasSuffix(fi.Name(), "_test.go")
	}, parser.PackageClauseOnly)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to parse directory %q: %w", dir, err)
	}
	for name := range pkgs {
		return name, nil
	}
	return "version", nil
}

// ModulePathFor returns modPath with its major version suffix matching v.
// v0 and v1 carry no suffix.
func ModulePathFor(modPath string, v Version) string {
	base, _, ok := module.SplitPathVersion(modPath)
	if !ok {
		base = modPath
	}
	// Prerelease identifiers do not affect the suffix.
	major := semver.Major(fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch))
	if major == "" || major == "v0" || major == "v1" {
		return base
	}
	return base + "/" + major
}

// UpdateGoMod rewrites the module directive of dir/go.mod so its major suffix
// matches v. It reports whether the file changed.
func UpdateGoMod(dir string, v Version) (bool, error) {
	oldPath, newPath, err := updateGoMod(dir, v)
	return oldPath != newPath, err
}

// MigrateModule moves the module rooted at dir to the major version of v: the
// go.mod module directive and the module's imports of its own packages are
// rewritten. It returns the files changed, go.mod first.
func MigrateModule(dir string, v Version) ([]string, error) {
	oldPath, newPath, err := updateGoMod(dir, v)
	if err != nil || oldPath == newPath {
		return nil, err
	}
	files := []string{filepath.Join(dir, "go.mod")}
	rewritten, err := UpdateImports(dir, oldPath, newPath)
	return append(files, rewritten...), err
}

func updateGoMod(dir string, v Version) (oldPath, newPath string, err error) {
	modPath := filepath.Join(dir, "go.mod")
	data, err := os.ReadFile(modPath)
	if err != nil {
		return "", "", fmt.Errorf("reading go.mod: %w", err)
	}

	f, err := modfile.Parse(modPath, data, nil)
	if err != nil {
		return "", "", fmt.Errorf("parsing go.mod: %w", err)
	}
	if f.Module == nil {
		return "", "", errors.New("module directive not found")
	}

	oldPath = f.Module.Mod.Path
	newPath = ModulePathFor(oldPath, v)
	if newPath == oldPath {
		return oldPath, newPath, nil
	}
	if err := f.AddModuleStmt(newPath); err != nil {
		return "", "", fmt.Errorf("updating module directive: %w", err)
	}

	out, err := f.Format()
	if err != nil {
		return "", "", fmt.Errorf("formatting go.mod: %w", err)
	}
	if err := os.WriteFile(modPath, out, 0644); err != nil {
		return "", "", fmt.Errorf("writing go.mod: %w", err)
	}
	return oldPath, newPath, nil
}

// UpdateImports rewrites imports of oldMod and its packages to newMod in every
// Go file under dir, tests included. vendor, testdata, hidden directories and
// nested modules are skipped. It returns the files changed.
func UpdateImports(dir, oldMod, newMod string) ([]string, error) {
	var modified []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == dir {
				return nil
			}
			name := d.Name()
			if name == "vendor" || name == "testdata" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
				return filepath.SkipDir
			}
			if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		changed, err := rewriteImports(path, oldMod, newMod)
		if err != nil {
			return err
		}
		if changed {
			modified = append(modified, path)
		}
		return nil
	})
	if err != nil {
		return modified, fmt.Errorf("updating imports under %s: %w", dir, err)
	}
	return modified, nil
}

func rewriteImports(path, oldMod, newMod string) (bool, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return false, err
	}

	changed := false
	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		if p == oldMod || strings.HasPrefix(p, oldMod+"/") {
			imp.Path.Value = strconv.Quote(newMod + strings.TrimPrefix(p, oldMod))
			changed = true
		}
	}
	if !changed {
		return false, nil
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, file); err != nil {
		return false, fmt.Errorf("formatting %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// LocateGoModDir walks up from startDir to the directory containing go.mod.
func LocateGoModDir(startDir string) (string, error) {
	d := startDir
	for {
		if _, err := os.Stat(filepath.Join(d, "go.mod")); err == nil {
			return d, nil
		}
		parent := filepath.Dir(d)
		if parent == d {
			return "", os.ErrNotExist
		}
		d = parent
	}
}
