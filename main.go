package main

import "github.com/nanopore-tools/h5audit/cmd"

func main() {
	cmd.Execute()
}
