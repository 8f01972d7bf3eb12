package main

import "github.com/bio70000-dotcom/couple-budget/cmd"

func main() {
	cmd.Execute()
}
