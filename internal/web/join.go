package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Join renders the landing view for a shared game link with the code
// pre-filled.
func Join(code, name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body := `    <main class="shell narrow">
      <header class="hero">
        <span class="tag">IceBreaker</span>
        <h1>You're invited</h1>
        <p>Game code <strong id="gameCode">` + escape(code) + `</strong></p>
      </header>

      <section class="panel">
        <form id="joinForm" class="stack">
          <input name="name" placeholder="Display name" value="` + escape(name) + `" maxlength="20" autocomplete="name" required/>
          <button type="submit" class="primary">Join game</button>
        </form>
        <div id="joinResult" class="result"></div>
      </section>
    </main>

    <script>
      const joinForm = document.getElementById("joinForm");
      const joinResult = document.getElementById("joinResult");
      const code = document.getElementById("gameCode").textContent;

      joinForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        joinResult.textContent = "Joining game...";
        const name = joinForm.elements.name.value.trim();
        const res = await fetch("/api/games/join", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ code, name })
        });
        const data = await res.json();
        if (!res.ok) {
          joinResult.textContent = data.error || "Failed to join game.";
          return;
        }
        window.location = "/games/" + encodeURIComponent(data.game_id);
      });
    </script>
`
		_, _ = io.WriteString(w, page("Join game - IceBreaker", body))
		return nil
	})
}
