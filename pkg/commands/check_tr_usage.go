package commands

import (
	"bufio"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/ati-intranet/portal/pkg/application"
)

type trUsage struct {
	Key  string
	File string
	Line int
}

var templateTCallRe = regexp.MustCompile(`\.T "([^"]+)"`)

func bundleTags(app application.Application, langs []string) (map[string]language.Tag, error) {
	if len(langs) == 0 {
		langs = []string{"en", "zh"}
	}
	messages := app.Bundle().Messages()
	out := make(map[string]language.Tag, len(langs))
	for _, code := range langs {
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("invalid language %q: %w", code, err)
		}
		if messages[tag] == nil {
			return nil, fmt.Errorf("language %q (%s) not found in bundle", code, tag)
		}
		out[code] = tag
	}
	return out, nil
}

// CheckTrKeys reports keys present in one locale but missing in another.
func CheckTrKeys(w io.Writer, langs []string, mods ...application.Module) error {
	app, err := newApplication(mods...)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	tags, err := bundleTags(app, langs)
	if err != nil {
		return err
	}
	messages := app.Bundle().Messages()

	all := map[string]struct{}{}
	for _, tag := range tags {
		for key := range messages[tag] {
			all[key] = struct{}{}
		}
	}
	var missing []string
	for key := range all {
		for code, tag := range tags {
			if messages[tag][key] == nil {
				missing = append(missing, fmt.Sprintf("%s: %s", code, key))
			}
		}
	}
	sort.Strings(missing)
	for _, m := range missing {
		fmt.Fprintln(w, "missing", m)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%d translation keys are missing", len(missing))
	}
	fmt.Fprintf(w, "%d keys present in %d locales\n", len(all), len(tags))
	return nil
}

// CheckTrUsage walks root for translation keys referenced from Go code and
// page templates and reports those absent from any of langs.
func CheckTrUsage(w io.Writer, root string, langs []string, mods ...application.Module) error {
	app, err := newApplication(mods...)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	tags, err := bundleTags(app, langs)
	if err != nil {
		return err
	}

	usages, err := collectTrUsages(root)
	if err != nil {
		return err
	}
	if len(usages) == 0 {
		return fmt.Errorf("no translation usages found")
	}

	messages := app.Bundle().Messages()
	missing := 0
	seen := make(map[string]bool)
	for _, u := range usages {
		// Validate each unique key once; keep the first occurrence for reporting.
		if u.Key == "" || seen[u.Key] {
			continue
		}
		seen[u.Key] = true
		for code, tag := range tags {
			if messages[tag][u.Key] == nil {
				missing++
				fmt.Fprintf(w, "missing %s: %s (%s:%d)\n", code, u.Key, u.File, u.Line)
			}
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d translation usages are missing in allowed locales", missing)
	}
	fmt.Fprintf(w, "%d translation keys used, all present in %s\n", len(seen), strings.Join(langs, ", "))
	return nil
}

func collectTrUsages(root string) ([]trUsage, error) {
	var usages []trUsage

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == ".git" || strings.HasPrefix(rel, ".git/") {
				return fs.SkipDir
			}
			if rel == "vendor" || strings.HasPrefix(rel, "vendor/") {
				return fs.SkipDir
			}
			if rel == "node_modules" || strings.HasPrefix(rel, "node_modules/") {
				return fs.SkipDir
			}
			if strings.HasPrefix(filepath.Base(rel), "_") {
				return fs.SkipDir
			}
			return nil
		}

		switch {
		case strings.HasSuffix(rel, "_test.go"):
			return nil
		case strings.HasSuffix(rel, ".go"):
			fileUsages, err := collectTrUsagesFromGoFile(path, rel)
			if err != nil {
				return err
			}
			usages = append(usages, fileUsages...)
		case strings.HasSuffix(rel, ".html"):
			fileUsages, err := collectTrUsagesFromTemplate(path, rel)
			if err != nil {
				return err
			}
			usages = append(usages, fileUsages...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return usages, nil
}

func collectTrUsagesFromTemplate(absPath, relPath string) ([]trUsage, error) {
	f, err := os.Open(absPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var usages []trUsage
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		matches := templateTCallRe.FindAllStringSubmatchIndex(text, -1)
		for _, m := range matches {
			if len(m) < 4 {
				continue
			}
			key := text[m[2]:m[3]]
			usages = append(usages, trUsage{
				Key:  key,
				File: relPath,
				Line: line,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return usages, nil
}

func collectTrUsagesFromGoFile(absPath, relPath string) ([]trUsage, error) {
	src, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, absPath, src, 0)
	if err != nil {
		return nil, err
	}

	var usages []trUsage
	ast.Inspect(file, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.CallExpr:
			selector, ok := node.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			if selector.Sel.Name != "T" && selector.Sel.Name != "MustT" {
				return true
			}
			// intl.T(ctx, key) and view.T(key) both carry the key in one of
			// the first two arguments.
			for i := 0; i < len(node.Args) && i < 2; i++ {
				if key, ok := stringLiteral(node.Args[i]); ok {
					pos := fset.Position(node.Args[i].Pos())
					usages = append(usages, trUsage{Key: key, File: relPath, Line: pos.Line})
					break
				}
			}
		case *ast.CompositeLit:
			for _, elt := range node.Elts {
				kv, ok := elt.(*ast.KeyValueExpr)
				if !ok {
					continue
				}
				keyIdent, ok := kv.Key.(*ast.Ident)
				if !ok || keyIdent.Name != "MessageID" {
					continue
				}
				msgID, ok := stringLiteral(kv.Value)
				if !ok {
					continue
				}
				pos := fset.Position(kv.Value.Pos())
				usages = append(usages, trUsage{Key: msgID, File: relPath, Line: pos.Line})
			}
		}
		return true
	})

	return usages, nil
}

func stringLiteral(expr ast.Expr) (string, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	unquoted, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return unquoted, true
}
