package main

import "schema-compat/internal/cli"

func main() {
	cli.Execute()
}
