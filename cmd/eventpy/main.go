package main

import "github.com/eventpy/eventpy/cmd/eventpy/commands"

func main() {
	commands.Execute()
}
