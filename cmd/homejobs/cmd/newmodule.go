package cmd

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"text/template"

	"github.com/spf13/cobra"
	"golang.org/x/mod/modfile"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/tools/go/ast/astutil"
)

// appWiringFile is where provideModules lists the active modules.
const appWiringFile = "internal/app/app.go"

var moduleNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

var newModuleCmd = &cobra.Command{
	Use:   "new-module <name>",
	Short: "Scaffold a new application module",
	Long: `Creates internal/modules/<name> with a module definition and a page
handler mounted at /app/<name>, then adds the module to provideModules in
internal/app/app.go.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		root, _ := cmd.Flags().GetString("root")

		modPath, err := modulePath(root)
		if err != nil {
			return err
		}
		if err := scaffoldModule(root, modPath, name); err != nil {
			return err
		}
		if err := registerModule(root, modPath, name); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Could not update %s automatically: %v\n", appWiringFile, err)
			fmt.Fprintf(cmd.ErrOrStderr(), "Add this to the slice returned by provideModules:\n\n\t%s,\n", moduleConstructor(name))
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created module %q in internal/modules/%s and registered it in %s\n", name, name, appWiringFile)
		return nil
	},
}

func init() {
	newModuleCmd.Flags().String("root", ".", "repository root containing go.mod")
	rootCmd.AddCommand(newModuleCmd)
}

type moduleTemplateData struct {
	Name       string
	PascalName string
	ModulePath string
}

func modulePath(root string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("no module directive in %s", filepath.Join(root, "go.mod"))
	}
	return path, nil
}

// scaffoldModule writes module.go and handler.go for a new module. Existing
// modules are never overwritten.
func scaffoldModule(root, modPath, name string) error {
	if !moduleNamePattern.MatchString(name) {
		return fmt.Errorf("invalid module name %q: use lowercase letters and digits", name)
	}

	dir := filepath.Join(root, "internal", "modules", name)
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("module directory %s already exists", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create module directory: %w", err)
	}

	data := moduleTemplateData{
		Name:       name,
		PascalName: cases.Title(language.English).String(name),
		ModulePath: modPath,
	}
	if err := writeTemplate(filepath.Join(dir, "module.go"), moduleTemplate, data); err != nil {
		return err
	}
	return writeTemplate(filepath.Join(dir, "handler.go"), handlerTemplate, data)
}

func writeTemplate(path, tmpl string, data moduleTemplateData) error {
	t, err := template.New(filepath.Base(path)).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("format %s: %w", path, err)
	}
	return os.WriteFile(path, src, 0o644)
}

func moduleConstructor(name string) string {
	return fmt.Sprintf(`%s.New(%s.Dependencies{Logger: logger.With("module", %q)})`, name, name, name)
}

// registerModule adds the module import and constructor call to the slice
// returned by provideModules.
func registerModule(root, modPath, name string) error {
	path := filepath.Join(root, appWiringFile)
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	element, err := parser.ParseExpr(moduleConstructor(name))
	if err != nil {
		return fmt.Errorf("build constructor call: %w", err)
	}

	var added bool
	ast.Inspect(file, func(n ast.Node) bool {
		fn, ok := n.(*ast.FuncDecl)
		if !ok || fn.Name.Name != "provideModules" {
			return true
		}
		ast.Inspect(fn.Body, func(n ast.Node) bool {
			ret, ok := n.(*ast.ReturnStmt)
			if !ok || len(ret.Results) == 0 {
				return true
			}
			lit, ok := ret.Results[0].(*ast.CompositeLit)
			if !ok {
				return true
			}
			lit.Elts = append(lit.Elts, element)
			added = true
			return false
		})
		return false
	})
	if !added {
		return fmt.Errorf("no module slice returned by provideModules in %s", path)
	}

	astutil.AddImport(fset, file, modPath+"/internal/modules/"+name)

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, file); err != nil {
		return fmt.Errorf("format %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

const moduleTemplate = `package {{.Name}}

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"{{.ModulePath}}/internal/module"
	"{{.ModulePath}}/internal/registry"
)

// {{.PascalName}}Module serves /app/{{.Name}}.
type {{.PascalName}}Module struct {
	module.BaseModule
	logger *slog.Logger
}

// Dependencies holds the services the {{.Name}} module requires.
type Dependencies struct {
	Logger *slog.Logger
}

func New(deps Dependencies) *{{.PascalName}}Module {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &{{.PascalName}}Module{logger: deps.Logger}
}

func (m *{{.PascalName}}Module) Name() string {
	return "{{.Name}}"
}

func (m *{{.PascalName}}Module) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	m.logger.Info("Booting {{.PascalName}}Module: Setting up routes...")
	g.GET("/{{.Name}}", NewHandler().Get)
	return nil
}
`

const handlerTemplate = `package {{.Name}}

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"{{.ModulePath}}/internal/handlers"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Handler serves the {{.Name}} pages.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (hd *Handler) Get(c echo.Context) error {
	return handlers.RenderPage(c, http.StatusOK, "{{.PascalName}}",
		h.Section(h.Class("max-w-3xl mx-auto"), h.H1(h.Class("text-3xl font-bold"), g.Text("{{.PascalName}}"))),
	)
}
`
