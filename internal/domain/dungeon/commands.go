package dungeon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/ellavondegurechaff/dungeon-bot/dungeonbot/utils"
)

const (
	commandTimeout = 5 * time.Second
	levelsPerPage  = 10
)

var RollAttemptCommand = discord.SlashCommandCreate{
	Name:        "roll-attempt",
	Description: "⚔️ Step into the dungeon",
}

var StatusCommand = discord.SlashCommandCreate{
	Name:        "status",
	Description: "📜 Show your dungeon level and experience",
}

var LevelsCommand = discord.SlashCommandCreate{
	Name:        "levels",
	Description: "📈 Show the experience needed for every level",
}

var Definitions = []discord.ApplicationCommandCreate{
	RollAttemptCommand,
	StatusCommand,
	LevelsCommand,
}

type Commands interface {
	RollAttempt(event *handler.CommandEvent) error
	Status(event *handler.CommandEvent) error
	Levels(event *handler.CommandEvent) error
}

type commands struct {
	svc       Service
	paginator *paginator.Manager
}

func NewCommands(svc Service, paginator *paginator.Manager) *commands {
	return &commands{
		svc:       svc,
		paginator: paginator,
	}
}

func playerFromEvent(event *handler.CommandEvent) Player {
	user := event.User()
	return Player{
		ID:          user.ID.String(),
		DisplayName: user.EffectiveName(),
	}
}

func (c *commands) RollAttempt(event *handler.CommandEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	player := playerFromEvent(event)
	result, err := c.svc.Attempt(ctx, player)
	if err != nil {
		slog.Error("Dungeon attempt failed",
			slog.String("type", "cmd"),
			slog.String("user_id", player.ID),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(event, GenericFailure)
	}

	replies := RenderAttempt(result)
	if err := event.CreateMessage(discord.MessageCreate{Content: replies[0]}); err != nil {
		return err
	}

	for _, reply := range replies[1:] {
		if _, err := event.CreateFollowupMessage(discord.MessageCreate{Content: reply}); err != nil {
			return fmt.Errorf("failed to send level notice: %w", err)
		}
	}
	return nil
}

func (c *commands) Status(event *handler.CommandEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	player := playerFromEvent(event)
	report, err := c.svc.Status(ctx, player)
	if err != nil {
		slog.Error("Dungeon status failed",
			slog.String("type", "cmd"),
			slog.String("user_id", player.ID),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(event, GenericFailure)
	}

	return event.CreateMessage(discord.MessageCreate{Content: RenderStatus(report)})
}

func (c *commands) Levels(event *handler.CommandEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	thresholds, err := c.svc.Levels(ctx)
	if err != nil {
		slog.Error("Failed to load level table",
			slog.String("type", "cmd"),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(event, GenericFailure)
	}

	pages := (len(thresholds) + levelsPerPage - 1) / levelsPerPage

	return c.paginator.Create(event.Respond, paginator.Pages{
		ID:      event.ID().String(),
		Creator: event.User().ID,
		PageFunc: func(page int, embed *discord.EmbedBuilder) {
			start := page * levelsPerPage
			end := min(start+levelsPerPage, len(thresholds))

			embed.
				SetTitle("Dungeon Levels").
				SetDescription(RenderLevels(thresholds[start:end])).
				SetColor(utils.EmbedDefaultColor).
				SetFooter(fmt.Sprintf("Page %d/%d • Levels: %d", page+1, pages, len(thresholds)), "")
		},
		Pages:      pages,
		ExpireMode: paginator.ExpireModeAfterLastUsage,
	}, false)
}
