package commands

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/dungeon-bot/dungeonbot"
	"github.com/ellavondegurechaff/dungeon-bot/dungeonbot/utils"
)

var Version = discord.SlashCommandCreate{
	Name:        "version",
	Description: "Show the bot version",
}

func VersionHandler(b *dungeonbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if err := e.DeferCreateMessage(false); err != nil {
			return err
		}
		_, err := e.UpdateInteractionResponse(discord.MessageUpdate{
			Content: utils.Ptr(fmt.Sprintf("Version: %s\nCommit: %s", b.Version, b.Commit)),
		})
		return err
	}
}
