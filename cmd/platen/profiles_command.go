package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"platen/internal/profile"
)

func newProfilesCommand(ctx *commandContext) *cobra.Command {
	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "Inspect printer capability profiles",
	}

	profilesCmd.AddCommand(newProfilesListCommand())
	profilesCmd.AddCommand(newProfilesShowCommand(ctx))
	profilesCmd.AddCommand(newProfilesEncodingsCommand())

	return profilesCmd
}

func newProfilesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "list",
		Short:       "List built-in printer profiles",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, 2)
			for _, name := range profile.BuiltinNames() {
				prof, ok := profile.Builtin(name)
				if !ok {
					continue
				}
				rows = append(rows, []string{name, strconv.Itoa(prof.Len())})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"NAME", "CODE PAGES"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			fmt.Fprintln(out, "Set printer.profile_file in the configuration for a custom profile")
			return nil
		},
	}
}

func newProfilesShowCommand(ctx *commandContext) *cobra.Command {
	var profileFile string

	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show the code pages of a profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			prof, err := ctx.resolveProfile(name, profileFile)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, prof.Len())
			for _, page := range prof.Pages() {
				rows = append(rows, []string{page.Name, strconv.Itoa(int(page.Selector))})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Profile %s (%d code pages)\n", prof.Name(), prof.Len())
			fmt.Fprintln(out, renderTable(
				[]string{"ENCODING", "SELECTOR"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&profileFile, "profile-file", "", "Custom printer profile file (TOML)")
	return cmd
}

func newProfilesEncodingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "encodings",
		Short:       "List the single-byte encodings profiles can reference",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range profile.KnownEncodings() {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}
