package main

import (
	"vocal-separator/cmd/vsep/cmd"
)

func main() {
	cmd.Execute()
}
