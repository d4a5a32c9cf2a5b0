package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gear6io/protoreg/pkg/errors"
	"github.com/gear6io/protoreg/pkg/messages"
	"github.com/gear6io/protoreg/pkg/protocol/manifest"
)

func newListCommand(a *app) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered protocols",
		Long: `List every registered protocol in ascending identifier order.

Examples:
  protoreg list
  protoreg list --filter sess
  protoreg list --manifest protocols.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data := pterm.TableData{{"ID", "NAME", "TYPE"}}
			for _, entry := range a.registry.Registrations() {
				if !matches(entry.Name(), filter) {
					continue
				}
				data = append(data, []string{
					strconv.Itoa(int(entry.ID)),
					entry.Name(),
					entry.Registration.Type.String(),
				})
			}
			return renderTable(cmd, data)
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only show protocols whose name contains this text")
	return cmd
}

func newIDsCommand(a *app) *cobra.Command {
	var filter, output string

	cmd := &cobra.Command{
		Use:   "ids",
		Short: "Validate and print the identifier manifest",
		Long: `Validate the active identifier manifest and print it.

The manifest is the built-in default unless --manifest or the config names
one. Built-in messages the manifest leaves unbound are reported.

Examples:
  protoreg ids
  protoreg ids --manifest protocols.yaml --output toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.activeManifest()
			if err != nil {
				return err
			}

			switch output {
			case "table":
				data := pterm.TableData{{"ID", "NAME"}}
				for _, e := range m.Filter(filter) {
					data = append(data, []string{strconv.Itoa(int(e.ID)), e.Name})
				}
				if err := renderTable(cmd, data); err != nil {
					return err
				}
			case string(manifest.FormatYAML), string(manifest.FormatTOML):
				out := &manifest.Manifest{Protocols: m.Filter(filter)}
				raw, err := out.Marshal(manifest.Format(output))
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(raw))
			default:
				return errors.Newf(ErrUnsupportedOutput, "unsupported output %q, use table, yaml or toml", output)
			}

			if unbound := unboundMessages(m); len(unbound) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "unbound built-in messages: %s\n", strings.Join(unbound, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only show protocols whose name contains this text")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, yaml or toml")
	return cmd
}

func unboundMessages(m *manifest.Manifest) []string {
	bound := make(map[string]bool, len(m.Protocols))
	for _, e := range m.Protocols {
		bound[e.Name] = true
	}
	var unbound []string
	for name := range messages.Catalog() {
		if !bound[name] {
			unbound = append(unbound, name)
		}
	}
	sort.Strings(unbound)
	return unbound
}

func matches(name, filter string) bool {
	return filter == "" || strings.Contains(strings.ToLower(name), strings.ToLower(filter))
}

func renderTable(cmd *cobra.Command, data pterm.TableData) error {
	if len(data) == 1 {
		fmt.Fprintln(cmd.OutOrStdout(), "no protocols")
		return nil
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}
