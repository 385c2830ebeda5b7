// Package scaffold creates a new site skeleton from embedded templates.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// templates holds the starter site. Only files with a .tmpl suffix are
// rendered through text/template; everything else (layouts, content,
// assets) is copied verbatim so Go template syntax inside layout files
// survives scaffolding.
//
//go:embed all:templates
var templates embed.FS

// Data holds the variables available to .tmpl scaffold files.
type Data struct {
	ProjectName string
	SiteName    string
}

// Create materializes a new site directory named name. It refuses to
// overwrite an existing directory.
func Create(name string) error {
	dirName := name
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		dirName = name[idx+1:]
	}
	if _, err := os.Stat(dirName); err == nil {
		return fmt.Errorf("directory %q already exists", dirName)
	}

	data := Data{
		ProjectName: dirName,
		SiteName:    toTitle(dirName),
	}

	const root = "templates"
	return fs.WalkDir(templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dirName, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		raw, err := templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}

		if !strings.HasSuffix(target, ".tmpl") {
			return os.WriteFile(target, raw, 0o644)
		}

		target = strings.TrimSuffix(target, ".tmpl")
		tmpl, err := template.New(filepath.Base(path)).Parse(string(raw))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}
		f, err := os.Create(target)
		if err != nil {
			return fmt.Errorf("create %s: %w", target, err)
		}
		defer f.Close()
		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}
		return f.Close()
	})
}

// toTitle converts a hyphenated or lowercase name to a title-case string,
// e.g. "my-blog" -> "My Blog".
func toTitle(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
