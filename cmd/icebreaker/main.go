// Command icebreaker is a terminal client for the hosted IceBreaker backend.
// It keeps one signed-in session per invocation, persisted under the user's
// config directory so repeat runs stay signed in.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"ice-breaker/internal/auth"
	"ice-breaker/internal/config"
	"ice-breaker/internal/games"
	"ice-breaker/internal/model"
	"ice-breaker/internal/platform"
	"ice-breaker/internal/realtime"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load("configs/icebreaker.json")

	client, err := platform.Initialize(cfg.Platform)
	if err != nil {
		log.Fatalf("platform config invalid: %v", err)
	}

	manager := auth.NewManager(client, &auth.FileStore{Path: sessionPath()})
	ctx := context.Background()
	if !auth.WaitUntilReady(ctx, manager, auth.DefaultGuardTimeout) {
		log.Println("continuing without a restored session")
	}
	if user := manager.CurrentUser(); user != nil {
		fmt.Printf("signed in as %s\n", user.Email)
	}

	app := &app{client: client, manager: manager}
	app.repl(ctx)
}

func sessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "icebreaker", "session.json")
}

type app struct {
	client  *platform.Client
	manager *auth.Manager
	gameID  string
	subs    []*realtime.Subscription
	rt      *realtime.Manager
}

func (a *app) repl(ctx context.Context) {
	fmt.Println(`type "help" for commands`)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			break
		}
		if err := a.run(ctx, fields[0], fields[1:]); err != nil {
			fmt.Println("error:", err)
		}
	}
	if a.rt != nil {
		a.rt.UnsubscribeAll()
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "help":
		fmt.Println(`commands:
  signup <email> <password> <name>   create an account
  login <email> <password>           sign in
  logout                             sign out
  create [name]                      create a game (host only)
  join <code> <name>                 join a game by code
  start                              start the current game (host only)
  categories                         list card categories
  draw [category]                    draw a card (laugh|think|flirt|wild)
  play <card-id> [skip]              finish or skip the current card
  react <card-play-id> <type>        react to a card play
  leave                              leave the current game
  players                            list players in the current game
  watch                              stream live events for the current game
  quit`)
		return nil
	case "signup":
		if len(args) < 3 {
			return fmt.Errorf("usage: signup <email> <password> <name>")
		}
		user, err := a.manager.SignUp(ctx, args[0], args[1], strings.Join(args[2:], " "))
		if err != nil {
			return err
		}
		fmt.Printf("account created for %s; check your inbox to confirm\n", user.Email)
		return nil
	case "login":
		if len(args) != 2 {
			return fmt.Errorf("usage: login <email> <password>")
		}
		session, err := a.manager.SignIn(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("signed in as %s\n", session.User.Email)
		return nil
	case "logout":
		if err := a.manager.SignOut(ctx); err != nil {
			return err
		}
		fmt.Println("signed out")
		return nil
	case "create":
		svc, err := a.service(ctx)
		if err != nil {
			return err
		}
		game, err := svc.CreateGame(ctx, games.CreateGameParams{Name: strings.Join(args, " ")})
		if err != nil {
			return err
		}
		a.gameID = game.ID
		fmt.Printf("game created; share code %s\n", game.Code)
		return nil
	case "join":
		if len(args) < 2 {
			return fmt.Errorf("usage: join <code> <name>")
		}
		svc, err := a.service(ctx)
		if err != nil {
			return err
		}
		player, err := svc.JoinGame(ctx, args[0], strings.Join(args[1:], " "), "")
		if err != nil {
			return err
		}
		a.gameID = player.GameID
		fmt.Printf("joined as %s\n", player.DisplayName)
		return nil
	case "start":
		svc, err := a.currentGame(ctx)
		if err != nil {
			return err
		}
		game, err := svc.StartGame(ctx, a.gameID)
		if err != nil {
			return err
		}
		fmt.Printf("game %s is %s\n", game.Code, game.Status)
		return nil
	case "categories":
		svc, err := a.service(ctx)
		if err != nil {
			return err
		}
		categories, err := svc.GetCardCategories(ctx)
		if err != nil {
			return err
		}
		for _, category := range categories {
			fmt.Printf("  %s %s - %s\n", category.Icon, category.Name, category.Description)
		}
		return nil
	case "draw":
		svc, err := a.currentGame(ctx)
		if err != nil {
			return err
		}
		category := model.CategoryName("")
		if len(args) > 0 {
			category = model.CategoryName(args[0])
		}
		card, err := svc.DrawCard(ctx, a.gameID, category)
		if err != nil {
			return err
		}
		fmt.Printf("card %s (play %s):\n  %s\n", card.ID, card.CardPlayID, card.Text)
		return nil
	case "play":
		if len(args) < 1 {
			return fmt.Errorf("usage: play <card-id> [skip]")
		}
		svc, err := a.currentGame(ctx)
		if err != nil {
			return err
		}
		skipped := len(args) > 1 && args[1] == "skip"
		round, err := svc.PlayCard(ctx, a.gameID, args[0], skipped, 0)
		if err != nil {
			return err
		}
		fmt.Printf("round %d is %s\n", round.RoundNumber, round.Status)
		return nil
	case "react":
		if len(args) != 2 {
			return fmt.Errorf("usage: react <card-play-id> <type>")
		}
		if !model.ValidReactionType(args[1]) {
			return fmt.Errorf("unknown reaction type %q", args[1])
		}
		svc, err := a.currentGame(ctx)
		if err != nil {
			return err
		}
		if _, err := svc.AddReaction(ctx, args[0], model.ReactionType(args[1])); err != nil {
			return err
		}
		fmt.Println("reaction sent")
		return nil
	case "leave":
		svc, err := a.currentGame(ctx)
		if err != nil {
			return err
		}
		left, err := svc.LeaveGame(ctx, a.gameID)
		if err != nil {
			return err
		}
		if left {
			fmt.Println("left the game")
			a.gameID = ""
		}
		return nil
	case "players":
		svc, err := a.currentGame(ctx)
		if err != nil {
			return err
		}
		players, err := svc.GetGamePlayers(ctx, a.gameID)
		if err != nil {
			return err
		}
		for _, player := range players {
			marker := ""
			if player.IsHost {
				marker = " (host)"
			}
			fmt.Printf("  %s%s [%s]\n", player.DisplayName, marker, player.ConnectionStatus)
		}
		return nil
	case "watch":
		return a.watch(ctx)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// service returns a game service carrying the caller's token when signed in;
// guests get the anonymous client.
func (a *app) service(ctx context.Context) (*games.Service, error) {
	svc := games.New(a.client)
	if !a.manager.IsAuthenticated() {
		return svc, nil
	}
	token, err := a.manager.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	return svc.WithToken(token), nil
}

func (a *app) currentGame(ctx context.Context) (*games.Service, error) {
	if a.gameID == "" {
		return nil, fmt.Errorf("no current game; create or join one first")
	}
	return a.service(ctx)
}

func (a *app) watch(ctx context.Context) error {
	if a.gameID == "" {
		return fmt.Errorf("no current game; create or join one first")
	}
	if a.rt == nil {
		a.rt = realtime.New(a.client)
	}
	for _, sub := range a.subs {
		a.rt.Unsubscribe(sub)
	}
	a.subs = a.subs[:0]

	sub, err := a.rt.SubscribeToPlayers(a.gameID, realtime.PlayerHandlers{
		OnJoined: func(event realtime.PlayerJoinedEvent) {
			fmt.Printf("\n* %s joined\n> ", event.Player.DisplayName)
		},
		OnLeft: func(event realtime.PlayerLeftEvent) {
			fmt.Printf("\n* player %s left\n> ", event.PlayerID)
		},
	})
	if err != nil {
		return err
	}
	a.subs = append(a.subs, sub)

	sub, err = a.rt.SubscribeToGame(a.gameID, realtime.GameHandlers{
		OnStarted: func(event realtime.GameStartedEvent) {
			fmt.Printf("\n* game started\n> ")
		},
		OnFinished: func(game model.Game) {
			fmt.Printf("\n* game finished after %d cards\n> ", game.TotalCardsPlayed)
		},
	})
	if err != nil {
		return err
	}
	a.subs = append(a.subs, sub)

	sub, err = a.rt.SubscribeToRounds(a.gameID, realtime.RoundHandlers{
		OnRoundChanged: func(event realtime.RoundChangedEvent) {
			fmt.Printf("\n* round %d started\n> ", event.Round.RoundNumber)
		},
	})
	if err != nil {
		return err
	}
	a.subs = append(a.subs, sub)

	sub, err = a.rt.SubscribeToReactions(a.gameID, func(event realtime.ReactionAddedEvent) {
		fmt.Printf("\n* reaction: %s\n> ", model.ReactionLabels[event.Reaction.ReactionType])
	})
	if err != nil {
		return err
	}
	a.subs = append(a.subs, sub)

	fmt.Println("watching live events for the current game")
	return nil
}
