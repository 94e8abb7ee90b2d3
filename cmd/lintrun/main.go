package main

import (
	"os"

	"github.com/devgrove/lintrun/internal/cmd"
)

// Version is set by build -ldflags "-X main.Version=x.y.z"
var Version = "dev"

func main() {
	cmd.SetVersion(Version)
	os.Exit(cmd.Execute())
}
