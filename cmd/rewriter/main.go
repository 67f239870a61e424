package main

import "github.com/resuforge/rewriter/internal/cli"

func main() {
	cli.Execute()
}
