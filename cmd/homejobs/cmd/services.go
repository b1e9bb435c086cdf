package cmd

import (
	"fmt"
	"go/constant"
	"go/types"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/tools/go/packages"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List the services modules share through the registry",
	Long: `Loads the packages under the given directory and reports every
registry.Key declaration, with the key string and the service type it carries.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		services, err := findRegistryKeys(dir)
		if err != nil {
			return err
		}
		if len(services) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No services found in the registry.")
			return nil
		}
		printServices(cmd.OutOrStdout(), services)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(servicesCmd)
}

// ServiceInfo describes one registry key.
type ServiceInfo struct {
	Name string
	Key  string
	Type string
}

// findRegistryKeys type-checks the packages under dir and collects the
// constants and variables whose type is an instantiation of registry.Key.
func findRegistryKeys(dir string) ([]ServiceInfo, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedSyntax,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var services []ServiceInfo
	for _, pkg := range pkgs {
		if pkg.TypesInfo == nil {
			continue
		}
		for ident, obj := range pkg.TypesInfo.Defs {
			if obj == nil || obj.Parent() != pkg.Types.Scope() {
				continue
			}
			named, ok := obj.Type().(*types.Named)
			if !ok || !isRegistryKey(named) || named.TypeArgs().Len() != 1 {
				continue
			}

			info := ServiceInfo{
				Name: pkg.Name + "." + ident.Name,
				Type: types.TypeString(named.TypeArgs().At(0), shortQualifier),
			}
			if c, ok := obj.(*types.Const); ok && c.Val().Kind() == constant.String {
				info.Key = constant.StringVal(c.Val())
			}
			services = append(services, info)
		}
	}

	sort.Slice(services, func(i, j int) bool { return services[i].Key < services[j].Key })
	return services, nil
}

func isRegistryKey(named *types.Named) bool {
	obj := named.Obj()
	return obj.Name() == "Key" && obj.Pkg() != nil && strings.HasSuffix(obj.Pkg().Path(), "internal/registry")
}

func shortQualifier(p *types.Package) string {
	return p.Name()
}

func printServices(out io.Writer, services []ServiceInfo) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KEY\tTYPE\tDECLARED AS")
	for _, s := range services {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Key, s.Type, s.Name)
	}
	w.Flush()
}
