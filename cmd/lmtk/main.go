package main

import "lmtk/internal/cli"

func main() {
	cli.Execute()
}
