package server

import (
	"encoding/json"
	"log"
	"net/http"
	"net/mail"
	"strings"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"ice-breaker/internal/auth"
	"ice-breaker/internal/web"
)

type signupForm struct {
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
	DisplayName     string `form:"display_name"`
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (s *Server) handleSignupView(c *gin.Context) {
	templ.Handler(web.Signup(web.SignupForm{})).ServeHTTP(c.Writer, c.Request)
}

// handleSignup validates the form locally before any remote call: a password
// mismatch must never reach the network.
func (s *Server) handleSignup(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		s.renderSignup(c, form, "invalid form submission")
		return
	}
	form.Email = strings.TrimSpace(form.Email)
	form.DisplayName = normalizeText(form.DisplayName)
	if _, err := mail.ParseAddress(form.Email); err != nil {
		s.renderSignup(c, form, "a valid email is required")
		return
	}
	if len(form.Password) < 6 {
		s.renderSignup(c, form, "password must be at least 6 characters")
		return
	}
	if form.Password != form.ConfirmPassword {
		s.renderSignup(c, form, "passwords do not match")
		return
	}

	user, err := auth.SignUp(c.Request.Context(), s.client, form.Email, form.Password, form.DisplayName)
	if err != nil {
		s.renderSignup(c, form, err.Error())
		return
	}
	log.Printf("account created user_id=%s", user.ID)
	s.sessions.SetFlash(c, "Account created. Sign in to host a game.")
	c.Redirect(http.StatusFound, "/login")
}

func (s *Server) renderSignup(c *gin.Context, form signupForm, message string) {
	view := web.SignupForm{
		Email:       form.Email,
		DisplayName: form.DisplayName,
		Error:       message,
	}
	templ.Handler(web.Signup(view), templ.WithStatus(http.StatusUnprocessableEntity)).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleLoginView(c *gin.Context) {
	flash := s.sessions.PopFlash(c)
	templ.Handler(web.Login(web.LoginForm{Flash: flash})).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleLogin(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		s.renderLogin(c, form, "invalid form submission")
		return
	}
	form.Email = strings.TrimSpace(form.Email)
	if form.Email == "" || form.Password == "" {
		s.renderLogin(c, form, "email and password are required")
		return
	}

	session, err := auth.SignIn(c.Request.Context(), s.client, form.Email, form.Password)
	if err != nil {
		s.renderLogin(c, form, err.Error())
		return
	}
	var userID, email string
	var meta []byte
	if session.User != nil {
		userID = session.User.ID
		email = session.User.Email
		if len(session.User.Metadata) > 0 {
			meta, _ = json.Marshal(session.User.Metadata)
		}
	}
	s.sessions.StoreTokens(c, session.AccessToken, session.RefreshToken, session.ExpiresAt, userID, email, meta)
	log.Printf("host signed in user_id=%s", userID)
	c.Redirect(http.StatusFound, "/host")
}

func (s *Server) renderLogin(c *gin.Context, form loginForm, message string) {
	view := web.LoginForm{
		Email: form.Email,
		Error: message,
	}
	templ.Handler(web.Login(view), templ.WithStatus(http.StatusUnprocessableEntity)).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleLogout(c *gin.Context) {
	record := s.sessions.Current(c)
	if record.Authenticated() {
		if err := auth.SignOut(c.Request.Context(), s.client, record.AccessToken); err != nil {
			log.Printf("sign out failed session_id=%s: %v", record.ID, err)
		}
	}
	s.sessions.ClearTokens(c)
	c.Redirect(http.StatusFound, "/")
}
