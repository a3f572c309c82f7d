package main

import "github.com/marshallshelly/quarry/cmd/quarry/commands"

func main() {
	commands.Execute()
}
