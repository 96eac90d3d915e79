package main

import "github.com/pfrederiksen/afisha-events/internal/cli"

func main() {
	cli.Execute()
}
