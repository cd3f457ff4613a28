package commands

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/ellavondegurechaff/dungeon-bot/internal/domain/dungeon"
)

var Commands = []discord.ApplicationCommandCreate{}

func init() {
	Commands = append(Commands, dungeon.Definitions...)
	Commands = append(Commands, Version)
}
