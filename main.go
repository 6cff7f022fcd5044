// main is the entry point for the railscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/wagonlab/railscan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}
