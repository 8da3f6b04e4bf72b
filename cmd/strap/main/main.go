package main

import (
	"fmt"
	"os"

	"github.com/strapkit/strap/cmd/strap"
	"github.com/strapkit/strap/pkg/ui/styles"
)

func main() {
	rootCmd := strap.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
