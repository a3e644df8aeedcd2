package main

import "github.com/nopkg/nopkg/internal/cli"

func main() {
	cli.Execute()
}
