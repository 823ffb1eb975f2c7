// Version command for the treemendous CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deadpixelstudio/treemendous/pkg/treemendous"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the treemendous version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("treemendous", treemendous.Version)
	},
}
