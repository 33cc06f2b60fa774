package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/figerout/figerout/internal/collection"
	"github.com/figerout/figerout/internal/collection/sqlite"
	"github.com/figerout/figerout/internal/colour"
)

// openCollection opens the configured database. Callers must Close it.
func (a *app) openCollection() (*collection.Service, error) {
	store, err := sqlite.Open(a.cfg.DBPath, a.logger.Named("collection"))
	if err != nil {
		return nil, fmt.Errorf("open collection: %w", err)
	}
	return collection.NewService(store, a.logger.Named("collection")), nil
}

func newCollectionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collection",
		Aliases: []string{"col"},
		Short:   "Manage saved colours",
		Long: `Manage your collection of saved colours.

The collection is stored in a SQLite database at $FIGEROUT_DB, or
figerout/collection.db under the user config directory.`,
	}

	cmd.AddCommand(
		newCollectionListCmd(a),
		newCollectionSaveCmd(a),
		newCollectionDeleteCmd(a),
		newCollectionNoteCmd(a),
	)
	return cmd
}

func newCollectionListCmd(a *app) *cobra.Command {
	var (
		limit  int
		offset int
		format string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved colours, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			svc, err := a.openCollection()
			if err != nil {
				return err
			}
			defer svc.Close()

			colours, err := svc.List(cmd.Context(), collection.ListOptions{Limit: limit, Offset: offset})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSON(out, colours)
			}
			if len(colours) == 0 {
				fmt.Fprintln(out, "No saved colours.")
				return nil
			}

			sw := a.swatcher(cmd)
			headers := []string{"ID", "Colour", "Name", "Saved", "Note"}
			table := NewTable(headers)
			table.SetColumnMaxWidth(len(headers)-1, 40)
			for _, c := range colours {
				swatch := c.Hex
				if rgb, err := colour.ParseHex(c.Hex); err == nil {
					swatch = sw.Line(rgb, "")
				} else {
					a.logger.Warn("stored colour is malformed", "id", c.ID, "hex", c.Hex)
				}
				table.AddRow([]string{
					c.ID,
					swatch,
					c.Name,
					c.SavedAt.Local().Format("2006-01-02 15:04"),
					c.Note,
				})
			}
			fmt.Fprint(out, table.Render())
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&limit, "limit", 0, "maximum number of colours to list (0: all)")
	f.IntVar(&offset, "offset", 0, "number of colours to skip")
	f.StringVarP(&format, "format", "f", formatText, "output format (text, json)")
	return cmd
}

func newCollectionSaveCmd(a *app) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "save <hex>",
		Short: "Save a colour to the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.openCollection()
			if err != nil {
				return err
			}
			defer svc.Close()

			c, err := svc.Save(cmd.Context(), args[0], note)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s) as %s\n", c.Hex, c.Name, c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "note to store with the colour")
	return cmd
}

func newCollectionDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete saved colours",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.openCollection()
			if err != nil {
				return err
			}
			defer svc.Close()

			for _, id := range args {
				if err := svc.Delete(cmd.Context(), id); err != nil {
					return fmt.Errorf("delete %s: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
			}
			return nil
		},
	}
}

func newCollectionNoteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "note <id> <text>",
		Short: "Replace the note on a saved colour",
		Long:  `Replace the note on a saved colour. An empty text clears the note.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.openCollection()
			if err != nil {
				return err
			}
			defer svc.Close()

			c, err := svc.UpdateNote(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %q\n", c.ID, c.Note)
			return nil
		},
	}
}
