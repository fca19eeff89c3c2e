package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"opennoution/internal/adapters/backupfile"
	"opennoution/internal/application/commands"
)

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write every page, block, the profile and settings to a backup file",
	Long: `Export the whole notebook as a JSON backup envelope.

Without a path the file is written to the data directory as
opennoution-backup-<unix-millis>.opn.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := commands.NewExportCommand(GetStore()).Execute(cmd.Context())
		if err != nil {
			return err
		}

		path := backupfile.DefaultPath(cfg.DataDir, env)
		if len(args) > 0 {
			path = args[0]
		}

		res := backupfile.New(logger).Save(env, path)
		if !res.Success {
			return res.Error
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d page(s) and %d block(s) to %s\n",
			len(env.Data.Pages), len(env.Data.Blocks), res.Path)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Replace the notebook with the contents of a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res := backupfile.New(logger).Load(args[0])
		if !res.Success {
			return res.Error
		}

		result, err := commands.NewImportCommand(GetStore(), res.Data).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
}
