package main

import (
	"os"

	"github.com/dataplume/joplingo/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
