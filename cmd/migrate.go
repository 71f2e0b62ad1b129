package cmd

import (
	"boacompra-loader/models"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the BoaCompra tables from the models",
	Long: `Runs gorm AutoMigrate for every table the loader writes. The reporting
procedures are not created; they belong to the database project.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := openStore()
		if err != nil {
			return err
		}
		defer closeDB(db)

		if err := db.WithContext(cmd.Context()).AutoMigrate(models.All()...); err != nil {
			return err
		}
		logger.Info().Int("tables", len(models.All())).Msg("schema migrated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
