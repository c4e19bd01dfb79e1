package main

import "github.com/example/ramtop/internal/cli"

func main() {
	cli.Execute()
}
