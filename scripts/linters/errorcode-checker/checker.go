package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gear6io/protoreg/pkg/errors"
)

// CodeInfo describes one MustNewCode declaration
type CodeInfo struct {
	Var   string
	Value string
	File  string
	Line  int
	Uses  int
}

// Finding is a single lint result
type Finding struct {
	File    string
	Line    int
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s:%d: %s", f.File, f.Line, f.Message)
}

// Checker collects error code declarations and usages across a tree
type Checker struct {
	config  *Config
	fileSet *token.FileSet
	codes   map[string]*CodeInfo // keyed by variable name
	refs    map[string]int
	invalid []Finding
	banned  []Finding
}

// NewChecker creates a checker
func NewChecker(config *Config) *Checker {
	return &Checker{
		config:  config,
		fileSet: token.NewFileSet(),
		codes:   make(map[string]*CodeInfo),
		refs:    make(map[string]int),
	}
}

func (c *Checker) debug(format string, args ...interface{}) {
	if c.config.Verbose {
		fmt.Printf(format, args...)
	}
}

func (c *Checker) excluded(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, exclude := range c.config.ExcludePaths {
		if strings.Contains(slashed, exclude) {
			return true
		}
	}
	return false
}

// CheckDirectory walks dir and checks every Go file outside the excluded paths
func (c *Checker) CheckDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != dir && c.excluded(path+"/") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		return c.CheckFile(path)
	})
}

// CheckFile records the declarations and references in one file
func (c *Checker) CheckFile(path string) error {
	file, err := parser.ParseFile(c.fileSet, path, nil, 0)
	if err != nil {
		return errors.New(ErrParseFailed, "failed to parse "+path, err)
	}
	c.debug("checking %s\n", path)

	isTest := strings.HasSuffix(path, "_test.go")
	declared := make(map[*ast.Ident]bool)

	ast.Inspect(file, func(n ast.Node) bool {
		spec, ok := n.(*ast.ValueSpec)
		if !ok {
			return true
		}
		for i, name := range spec.Names {
			if i >= len(spec.Values) {
				break
			}
			value, ok := mustNewCodeArg(spec.Values[i])
			if !ok {
				continue
			}
			declared[name] = true
			if isTest {
				continue
			}
			pos := c.fileSet.Position(name.Pos())
			c.codes[name.Name] = &CodeInfo{Var: name.Name, Value: value, File: path, Line: pos.Line}
			if _, err := errors.NewCode(value); err != nil {
				c.invalid = append(c.invalid, Finding{File: path, Line: pos.Line, Message: err.Error()})
			}
		}
		return true
	})

	ast.Inspect(file, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.Ident:
			if !declared[x] {
				c.refs[x.Name]++
			}
		case *ast.CallExpr:
			if isTest && !c.config.IncludeTests {
				return true
			}
			if name := callName(x); c.forbidden(name) {
				pos := c.fileSet.Position(x.Pos())
				c.banned = append(c.banned, Finding{
					File:    path,
					Line:    pos.Line,
					Message: name + " is not allowed, return a coded error",
				})
			}
		}
		return true
	})
	return nil
}

func (c *Checker) forbidden(name string) bool {
	for _, f := range c.config.ForbiddenCalls {
		if f == name {
			return true
		}
	}
	return false
}

// mustNewCodeArg returns the literal passed to errors.MustNewCode
func mustNewCodeArg(expr ast.Expr) (string, bool) {
	call, ok := expr.(*ast.CallExpr)
	if !ok || callName(call) != "errors.MustNewCode" || len(call.Args) != 1 {
		return "", false
	}
	lit, ok := call.Args[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	value, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return value, true
}

func callName(call *ast.CallExpr) string {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return ""
	}
	pkg, ok := sel.X.(*ast.Ident)
	if !ok {
		return ""
	}
	return pkg.Name + "." + sel.Sel.Name
}

// Report is the outcome of a check
type Report struct {
	Codes      []*CodeInfo
	Unused     []*CodeInfo
	Duplicates []Finding
	Invalid    []Finding
	Forbidden  []Finding
}

// Report resolves usage counts and duplicate values
func (c *Checker) Report() Report {
	var r Report
	byValue := make(map[string]*CodeInfo)

	for _, code := range c.codes {
		code.Uses = c.refs[code.Var]
		r.Codes = append(r.Codes, code)
	}
	sort.Slice(r.Codes, func(i, j int) bool {
		if r.Codes[i].File != r.Codes[j].File {
			return r.Codes[i].File < r.Codes[j].File
		}
		return r.Codes[i].Line < r.Codes[j].Line
	})

	for _, code := range r.Codes {
		if code.Uses == 0 {
			r.Unused = append(r.Unused, code)
		}
		if first, ok := byValue[code.Value]; ok {
			r.Duplicates = append(r.Duplicates, Finding{
				File:    code.File,
				Line:    code.Line,
				Message: fmt.Sprintf("code %q already declared as %s at %s:%d", code.Value, first.Var, first.File, first.Line),
			})
			continue
		}
		byValue[code.Value] = code
	}

	r.Invalid = c.invalid
	r.Forbidden = c.banned
	return r
}

// Failed reports whether r should fail the run under config
func (r Report) Failed(config *Config) bool {
	if len(r.Invalid) > 0 || len(r.Duplicates) > 0 {
		return true
	}
	if config.ExitOnUnused && len(r.Unused) > 0 {
		return true
	}
	return config.ExitOnForbidden && len(r.Forbidden) > 0
}
