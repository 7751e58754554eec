package main

import (
	"fmt"
	"os"

	"hufschlaeger.net/gitlab-audit-exporter/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Export fehlgeschlagen: %v\n", err)
		os.Exit(1)
	}
}
