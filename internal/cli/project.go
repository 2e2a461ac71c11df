package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/weyl-labs/lattice/internal/loader"
	"github.com/weyl-labs/lattice/internal/store"
)

// NewProjectCommand creates the project command group backed by the
// SQLite project store.
func NewProjectCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage the project store",
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "lattice.db", "project store database path")

	cmd.AddCommand(newProjectSaveCommand(rootOpts, &dbPath))
	cmd.AddCommand(newProjectLoadCommand(rootOpts, &dbPath))
	cmd.AddCommand(newProjectListCommand(rootOpts, &dbPath))
	cmd.AddCommand(newProjectRmCommand(rootOpts, &dbPath))

	return cmd
}

func newProjectSaveCommand(rootOpts *RootOptions, dbPath *string) *cobra.Command {
	var id, name string

	cmd := &cobra.Command{
		Use:           "save <project-file>",
		Short:         "Validate and store a project document",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectSave(rootOpts, *dbPath, args[0], id, name, cmd)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "project id (default: derived from name)")
	cmd.Flags().StringVar(&name, "name", "", "display name (default: document meta.name)")

	return cmd
}

func runProjectSave(opts *RootOptions, dbPath, path, id, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	// The document must pass schema validation before it is stored;
	// the store itself treats documents as opaque.
	project, errs := loader.Load(path, loader.LoadModeFailFast)
	if len(errs) > 0 {
		formatter.Error("LOAD", errs[0].Error(), nil)
		return NewExitError(ExitCommandError, errs[0].Error())
	}

	doc, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "read project file", err)
	}

	if name == "" {
		name = project.Meta.Name
	}
	if id == "" {
		// Sanitized name plus a timestamp keeps derived ids unique.
		id = fmt.Sprintf("%s_%d", store.SanitizeID(store.NormalizeName(name)), time.Now().Unix())
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "open store", err)
	}
	defer s.Close()

	savedID, err := s.SaveProject(cmd.Context(), id, name, doc)
	if err != nil {
		return WrapExitError(ExitCommandError, "save project", err)
	}

	return formatter.SuccessJSON(map[string]string{"project_id": savedID}, func(w io.Writer) {
		fmt.Fprintf(w, "saved %s\n", savedID)
	})
}

func newProjectLoadCommand(rootOpts *RootOptions, dbPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "load <project-id>",
		Short:         "Print a stored project document",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(*dbPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "open store", err)
			}
			defer s.Close()

			doc, err := s.LoadProject(cmd.Context(), args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "load project", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(doc))
			return nil
		},
	}
	return cmd
}

func newProjectListCommand(rootOpts *RootOptions, dbPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List stored projects",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			s, err := store.Open(*dbPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "open store", err)
			}
			defer s.Close()

			infos, err := s.ListProjects(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "list projects", err)
			}

			return formatter.SuccessJSON(infos, func(w io.Writer) {
				if len(infos) == 0 {
					fmt.Fprintln(w, "no projects")
					return
				}
				for _, info := range infos {
					fmt.Fprintf(w, "%s\t%s\t%s\n", info.ID, info.Name,
						time.Unix(info.UpdatedAt, 0).UTC().Format(time.RFC3339))
				}
			})
		},
	}
	return cmd
}

func newProjectRmCommand(rootOpts *RootOptions, dbPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rm <project-id>",
		Short:         "Delete a stored project",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(*dbPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "open store", err)
			}
			defer s.Close()

			if err := s.DeleteProject(cmd.Context(), args[0]); err != nil {
				return WrapExitError(ExitCommandError, "delete project", err)
			}
			return nil
		},
	}
	return cmd
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
