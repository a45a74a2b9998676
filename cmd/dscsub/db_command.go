package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dscsub/internal/songdb"
)

func newDBCommand(ctx *commandContext) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Song database utilities",
	}
	dbCmd.AddCommand(newDBListCommand())
	return dbCmd
}

func newDBListCommand() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the script records in a song database",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := songdb.Load(dbPath)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, db.Len())
			for _, rec := range db.Records() {
				rows = append(rows, []string{
					rec.SongID,
					db.SongName(rec.SongID),
					rec.Difficulty,
					rec.ScriptPath,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Song", "Name", "Difficulty", "Script"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the song database file")
	cmd.MarkFlagRequired("db")
	return cmd
}
