package main

import (
	"vocal-separator/cmd/separate/cmd"
)

func main() {
	cmd.Execute()
}
