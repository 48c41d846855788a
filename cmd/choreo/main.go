// Command choreo inspects, samples and previews choreography documents.
package main

import (
	"os"

	"github.com/go-drift/choreo/cmd/choreo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
