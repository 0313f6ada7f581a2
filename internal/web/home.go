package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home(flash, name string, signedIn bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		flashBlock := ""
		if flash != "" {
			flashBlock = `      <div class="flash">` + escape(flash) + `</div>
`
		}
		nav := `        <a class="link" href="/login">Sign in</a>
        <a class="link" href="/signup">Create account</a>
`
		if signedIn {
			nav = `        <a class="link" href="/host">Host a game</a>
        <form method="post" action="/logout" class="inline"><button class="link" type="submit">Sign out</button></form>
`
		}
		body := `    <main class="shell">
      <header class="hero">
        <span class="tag">IceBreaker</span>
        <h1>Break the ice. Keep it rolling.</h1>
        <p>Join a game with a code, or sign in to host your own room.</p>
        <nav class="hero-nav">
` + nav + `        </nav>
      </header>
` + flashBlock + `
      <section class="panel">
        <div>
          <h2>Join a game</h2>
          <p>Enter the six-letter code from your host and pick a name.</p>
        </div>
        <form id="joinForm" class="join-form">
          <input name="code" placeholder="Game code" maxlength="6" autocomplete="off" required/>
          <input name="name" placeholder="Display name" value="` + escape(name) + `" autocomplete="name" required/>
          <button type="submit" class="primary">Join game</button>
        </form>
        <div id="joinResult" class="result"></div>
      </section>
    </main>

    <script>
      const joinForm = document.getElementById("joinForm");
      const joinResult = document.getElementById("joinResult");

      joinForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        joinResult.textContent = "Joining game...";
        const code = joinForm.elements.code.value.trim().toUpperCase();
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
		_, _ = io.WriteString(w, page("IceBreaker", body))
		return nil
	})
}
