package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backbone81/kv-journal/pkg/journal"
)

// verifyCmd represents the verify command.
var verifyCmd = &cobra.Command{
	Use:          "verify",
	Short:        "Verifies the content digest of every era file in the journal.",
	Long:         `Verifies the content digest of every era file in the journal.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := journal.EraFiles(directory)
		if err != nil {
			return err
		}

		failures := 0
		for _, file := range files {
			era, err := journal.OpenEra(file)
			if err != nil {
				failures++
				fmt.Printf("%s: %v\n", file, err)
				continue
			}
			fmt.Printf("%s: ok\n", file)
			if err := era.Close(); err != nil {
				return err
			}
		}

		if failures > 0 {
			return fmt.Errorf("%d of %d era files failed verification", failures, len(files))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
