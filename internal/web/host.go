package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Host(email string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body := `    <main class="shell narrow">
      <header class="hero">
        <span class="tag">IceBreaker</span>
        <h1>Host a game</h1>
        <p>Signed in as ` + escape(email) + `</p>
      </header>

      <section class="panel">
        <form id="createForm" class="stack">
          <label>Game name
            <input name="name" placeholder="Friday night" maxlength="40"/>
          </label>
          <label>Game mode
            <select name="mode">
              <option value="classic">Classic</option>
              <option value="speed">Speed</option>
              <option value="deep-dive">Deep dive</option>
              <option value="party">Party</option>
            </select>
          </label>
          <label>Max players
            <input name="max_players" type="number" min="2" max="20" value="8"/>
          </label>
          <button type="submit" class="primary">Create game</button>
        </form>
        <div id="createResult" class="result"></div>
      </section>
    </main>

    <script>
      const createForm = document.getElementById("createForm");
      const createResult = document.getElementById("createResult");

      createForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        createResult.textContent = "Creating game...";
        const res = await fetch("/api/games", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({
            name: createForm.elements.name.value.trim(),
            game_mode: createForm.elements.mode.value,
            max_players: Number(createForm.elements.max_players.value)
          })
        });
        const data = await res.json();
        if (!res.ok) {
          createResult.textContent = data.error || "Failed to create game.";
          return;
        }
        window.location = "/games/" + encodeURIComponent(data.id);
      });
    </script>
`
		_, _ = io.WriteString(w, page("Host - IceBreaker", body))
		return nil
	})
}
