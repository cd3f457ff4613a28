package main

import "github.com/ellavondegurechaff/dungeon-bot/cmd"

func main() {
	cmd.Execute()
}
