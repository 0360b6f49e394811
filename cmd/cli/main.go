package main

import (
	"palauncher/internal/cli/cmd"
)

func main() {
	cmd.Execute()
}
