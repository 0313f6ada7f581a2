package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Admin renders the host's inspection view: look up any game by code and see
// its stored state as the backend reports it.
func Admin(data AdminData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body := `    <main class="shell">
      <header class="hero">
        <span class="tag">IceBreaker admin</span>
        <h1>Game lookup</h1>
        <p>Signed in as ` + escape(data.Email) + `</p>
      </header>

      <section class="panel">
        <form method="get" action="/admin" class="join-form">
          <input name="code" placeholder="Game code" maxlength="6" value="` + escape(data.Code) + `" autocomplete="off"/>
          <button type="submit" class="secondary">Look up</button>
        </form>
` + adminError(data) + `      </section>
` + adminGame(data) + `    </main>
`
		_, _ = io.WriteString(w, page("Admin - IceBreaker", body))
		return nil
	})
}

func adminError(data AdminData) string {
	if data.Error == "" {
		return ""
	}
	return `        <div class="error">` + escape(data.Error) + `</div>
`
}

func adminGame(data AdminData) string {
	if data.Game == nil {
		return ""
	}
	game := data.Game
	out := `      <section class="panel">
        <h2>` + escape(gameTitle(*game)) + `</h2>
        <table class="admin-table">
          <tr><th>ID</th><td>` + escape(game.ID) + `</td></tr>
          <tr><th>Status</th><td>` + escape(string(game.Status)) + `</td></tr>
          <tr><th>Mode</th><td>` + escape(string(game.GameMode)) + `</td></tr>
          <tr><th>Round</th><td>` + itoa(game.CurrentRound) + `</td></tr>
          <tr><th>Cards played</th><td>` + itoa(game.TotalCardsPlayed) + `</td></tr>
          <tr><th>Reactions</th><td>` + itoa(game.TotalReactions) + `</td></tr>
          <tr><th>Created</th><td>` + escape(formatTime(game.CreatedAt)) + `</td></tr>
        </table>
      </section>
      <section class="panel">
        <h2>Players (` + itoa(len(data.Players)) + `)</h2>
        <table class="admin-table">
          <tr><th>Name</th><th>Host</th><th>Connection</th><th>Cards</th><th>Joined</th></tr>
`
	for _, player := range data.Players {
		host := ""
		if player.IsHost {
			host = "yes"
		}
		out += `          <tr><td>` + escape(player.DisplayName) + `</td><td>` + host + `</td><td>` + escape(string(player.ConnectionStatus)) + `</td><td>` + itoa(player.CardsDrawn) + `</td><td>` + escape(formatTime(player.JoinedAt)) + `</td></tr>
`
	}
	out += `        </table>
      </section>
` + adminPlays(data)
	return out
}

func adminPlays(data AdminData) string {
	if len(data.Plays) == 0 {
		return ""
	}
	out := `      <section class="panel">
        <h2>Recent plays (` + itoa(len(data.Plays)) + `)</h2>
        <table class="admin-table">
          <tr><th>Card</th><th>Player</th><th>Skipped</th><th>Seconds</th><th>Played</th></tr>
`
	for _, play := range data.Plays {
		skipped := ""
		if play.WasSkipped {
			skipped = "yes"
		}
		out += `          <tr><td>` + escape(play.CardID) + `</td><td>` + escape(play.PlayerID) + `</td><td>` + skipped + `</td><td>` + itoa(play.TimeSpentSeconds) + `</td><td>` + escape(formatTime(play.PlayedAt)) + `</td></tr>
`
	}
	out += `        </table>
      </section>
`
	return out
}
