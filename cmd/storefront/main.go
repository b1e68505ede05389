package main

import "github.com/strideworks/storefront/cmd/storefront/commands"

func main() {
	commands.Execute()
}
