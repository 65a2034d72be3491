package main

import "github.com/mcoot/scavengerhunt/internal/cli"

func main() {
	cli.Execute()
}
