package web

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"ice-breaker/internal/model"
)

// GameView renders the live game room. All state beyond the initial snapshot
// arrives over the game's websocket; the page never polls.
func GameView(game model.Game, isHost bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hostControls := ""
		if isHost {
			hostControls = `      <section class="panel" id="hostPanel">
        <h2>Host controls</h2>
        <button id="startGame" class="primary">Start game</button>
        <div id="startResult" class="result"></div>
      </section>
`
		}
		body := `    <main class="shell game" data-game-id="` + escape(game.ID) + `" data-is-host="` + boolAttr(isHost) + `">
      <header class="game-header">
        <span class="tag">IceBreaker</span>
        <div>
          <h1>` + escape(gameTitle(game)) + `</h1>
          <p>Code <strong>` + escape(game.Code) + `</strong> &middot; <span id="gameStatus">` + escape(string(game.Status)) + `</span></p>
        </div>
        <button id="leaveGame" class="secondary">Leave</button>
      </header>

` + hostControls + `      <section class="panel">
        <h2>Players</h2>
        <ul id="playerList" class="player-list"></ul>
      </section>

      <section class="panel" id="cardPanel">
        <h2>Current card</h2>
        <div id="cardText" class="card">Waiting for the game to start...</div>
        <div id="drawControls" class="draw-controls hidden">
` + categoryButtons() + `        </div>
        <div id="playControls" class="play-controls hidden">
          <button data-action="play" class="primary">Done</button>
          <button data-action="skip" class="secondary">Skip</button>
        </div>
        <div id="reactions" class="reactions hidden">
` + reactionButtons() + `        </div>
        <div id="cardResult" class="result"></div>
      </section>
    </main>

    <script src="/static/game.js"></script>
`
		_, _ = io.WriteString(w, page(gameTitle(game)+" - IceBreaker", body))
		return nil
	})
}

func gameTitle(game model.Game) string {
	if game.Name != "" {
		return game.Name
	}
	return "Game " + game.Code
}

func boolAttr(value bool) string {
	if value {
		return "true"
	}
	return "false"
}

func categoryButtons() string {
	categories := []struct {
		name  model.CategoryName
		label string
	}{
		{model.CategoryLaugh, "Laugh"},
		{model.CategoryThink, "Think"},
		{model.CategoryFlirt, "Flirt"},
		{model.CategoryWild, "Wild"},
	}
	out := ""
	for _, c := range categories {
		out += `          <button data-category="` + escape(string(c.name)) + `" class="category">` + escape(c.label) + `</button>
`
	}
	return out
}

func reactionButtons() string {
	types := []model.ReactionType{
		model.ReactionLove,
		model.ReactionLaugh,
		model.ReactionMindBlown,
		model.ReactionFire,
	}
	out := ""
	for _, t := range types {
		out += `          <button data-reaction="` + escape(string(t)) + `" class="reaction">` + escape(model.ReactionLabels[t]) + `</button>
`
	}
	return out
}
