package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Signup(form SignupForm) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		errorBlock := ""
		if form.Error != "" {
			errorBlock = `        <div class="error">` + escape(form.Error) + `</div>
`
		}
		body := `    <main class="shell narrow">
      <header class="hero">
        <span class="tag">IceBreaker</span>
        <h1>Create an account</h1>
        <p>Hosts need an account. Players can join any game as guests.</p>
      </header>

      <section class="panel">
` + errorBlock + `        <form method="post" action="/signup" class="stack">
          <label>Email
            <input name="email" type="email" value="` + escape(form.Email) + `" autocomplete="email" required/>
          </label>
          <label>Display name
            <input name="display_name" value="` + escape(form.DisplayName) + `" maxlength="20" autocomplete="nickname" required/>
          </label>
          <label>Password
            <input name="password" type="password" minlength="6" autocomplete="new-password" required/>
          </label>
          <label>Confirm password
            <input name="confirm_password" type="password" autocomplete="new-password" required/>
          </label>
          <button type="submit" class="primary">Sign up</button>
        </form>
        <p class="hint">Already have an account? <a href="/login">Sign in</a>.</p>
      </section>
    </main>
`
		_, _ = io.WriteString(w, page("Sign up - IceBreaker", body))
		return nil
	})
}

func Login(form LoginForm) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		notice := ""
		if form.Flash != "" {
			notice = `        <div class="flash">` + escape(form.Flash) + `</div>
`
		}
		if form.Error != "" {
			notice += `        <div class="error">` + escape(form.Error) + `</div>
`
		}
		body := `    <main class="shell narrow">
      <header class="hero">
        <span class="tag">IceBreaker</span>
        <h1>Sign in</h1>
      </header>

      <section class="panel">
` + notice + `        <form method="post" action="/login" class="stack">
          <label>Email
            <input name="email" type="email" value="` + escape(form.Email) + `" autocomplete="email" required/>
          </label>
          <label>Password
            <input name="password" type="password" autocomplete="current-password" required/>
          </label>
          <button type="submit" class="primary">Sign in</button>
        </form>
        <p class="hint">New here? <a href="/signup">Create an account</a>.</p>
      </section>
    </main>
`
		_, _ = io.WriteString(w, page("Sign in - IceBreaker", body))
		return nil
	})
}
