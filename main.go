// main is the entry point for the gradebook CLI.
package main

import (
	"github.com/huangsam/gradebook/cmd"
	"github.com/huangsam/gradebook/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Error", err)
	}
}
