package web

import "ice-breaker/internal/model"

type SignupForm struct {
	Email       string
	DisplayName string
	Error       string
}

type LoginForm struct {
	Email string
	Error string
	Flash string
}

type AdminData struct {
	Email   string
	Code    string
	Game    *model.Game
	Players []model.Player
	Plays   []model.CardPlay
	Error   string
}
