package main

import "github.com/backbone81/kv-journal/cmd/journal-cli/cmd"

func main() {
	cmd.Execute()
}
