package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/backbone81/kv-journal/pkg/journal"
)

// describeCmd represents the describe command.
var describeCmd = &cobra.Command{
	Use:          "describe",
	Short:        "Provides detailed information about the journal.",
	Long:         `Provides detailed information about the journal.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := journal.EraFiles(directory)
		if err != nil {
			return err
		}
		nextIndex, err := journal.NextEraIndex(files)
		if err != nil {
			return err
		}

		fmt.Printf("Journal:    %s\n", directory)
		fmt.Printf("Eras:       %d\n", len(files))
		fmt.Printf("Next Index: %d\n", nextIndex)

		for _, file := range files {
			era, err := journal.OpenEra(file)
			if err != nil {
				return err
			}

			inserts := 0
			tombstones := 0
			for operation := range era.Iter() {
				if operation.Kind == journal.OpInsert {
					inserts++
				} else {
					tombstones++
				}
			}

			info, err := os.Stat(file)
			if err != nil {
				return err
			}

			fmt.Println()
			fmt.Printf("Era:        %s\n", file)
			fmt.Printf("Index:      %d\n", era.Index())
			fmt.Printf("Size:       %d bytes\n", info.Size())
			fmt.Printf("Inserts:    %d\n", inserts)
			fmt.Printf("Tombstones: %d\n", tombstones)

			if err := era.Close(); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
