package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pdrhp/matchmovie/internal/config"
	"github.com/pdrhp/matchmovie/internal/hub"
	"github.com/pdrhp/matchmovie/internal/infra/tmdb"
	"github.com/pdrhp/matchmovie/internal/model"
	"github.com/pdrhp/matchmovie/internal/timer"
	usecase_acquire "github.com/pdrhp/matchmovie/internal/usecase/acquire"
	usecase_match "github.com/pdrhp/matchmovie/internal/usecase/match"
	usecase_tally "github.com/pdrhp/matchmovie/internal/usecase/tally"
)

type consoleClient struct {
	client  *hub.Client
	match   *usecase_match.Usecase
	scanner *bufio.Scanner

	// votingActive is written by the voting goroutine and read by the
	// menu loop.
	votingActive atomic.Bool
	inputChan    chan string
}

func main() {
	cfg := config.Load()
	logger := slog.Default()

	client := hub.New(cfg.Hub.URL, logger)
	if err := client.Connect(context.Background()); err != nil {
		fmt.Printf("could not connect to hub: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	catalog := tmdb.NewClient(cfg.TMDB.Token, cfg.TMDB.BaseURL)
	acquireUC := usecase_acquire.New(catalog, nil, logger)
	matchUC := usecase_match.New(acquireUC, client, logger)

	c := &consoleClient{
		client:    client,
		match:     matchUC,
		scanner:   bufio.NewScanner(os.Stdin),
		inputChan: make(chan string),
	}

	go c.watchSession()
	c.menuLoop()
}

func (c *consoleClient) menuLoop() {
	for {
		if !c.votingActive.Load() {
			fmt.Println("\n=== MatchMovie Console Client ===")
			fmt.Println("1. Create session")
			fmt.Println("2. Join session")
			fmt.Println("3. Configure session")
			fmt.Println("4. Start matching")
			fmt.Println("5. Show session")
			fmt.Println("0. Exit")
			fmt.Print("Choose an action: ")
		}

		if !c.scanner.Scan() {
			return
		}
		input := strings.TrimSpace(c.scanner.Text())

		if c.votingActive.Load() {
			select {
			case c.inputChan <- input:
			default:
				fmt.Println("Please wait, still handling previous input...")
			}
			continue
		}

		var err error
		switch input {
		case "1":
			err = c.createSession()
		case "2":
			err = c.joinSession()
		case "3":
			err = c.configureSession()
		case "4":
			err = c.match.Start(context.Background())
		case "5":
			c.showSession()
		case "0":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown choice")
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func (c *consoleClient) createSession() error {
	fmt.Print("Your name: ")
	if !c.scanner.Scan() {
		return fmt.Errorf("input closed")
	}
	name := strings.TrimSpace(c.scanner.Text())
	return c.client.CreateSession(context.Background(), name)
}

func (c *consoleClient) joinSession() error {
	fmt.Print("Session code: ")
	if !c.scanner.Scan() {
		return fmt.Errorf("input closed")
	}
	code := strings.TrimSpace(c.scanner.Text())

	fmt.Print("Your name: ")
	if !c.scanner.Scan() {
		return fmt.Errorf("input closed")
	}
	name := strings.TrimSpace(c.scanner.Text())
	return c.client.JoinSession(context.Background(), code, name)
}

func (c *consoleClient) configureSession() error {
	s := c.client.Session()
	if s == nil {
		return fmt.Errorf("no active session")
	}

	fmt.Printf("Available categories: %s\n", strings.Join(usecase_acquire.Categories(), ", "))
	fmt.Print("Categories (comma separated): ")
	if !c.scanner.Scan() {
		return fmt.Errorf("input closed")
	}
	var categories []string
	for _, cat := range strings.Split(c.scanner.Text(), ",") {
		if cat = strings.TrimSpace(cat); cat != "" {
			categories = append(categories, cat)
		}
	}

	fmt.Print("Round duration in seconds [30-300]: ")
	if !c.scanner.Scan() {
		return fmt.Errorf("input closed")
	}
	duration, err := strconv.Atoi(strings.TrimSpace(c.scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid duration")
	}

	fmt.Print("Max participants [2-10]: ")
	if !c.scanner.Scan() {
		return fmt.Errorf("input closed")
	}
	maxParticipants, err := strconv.Atoi(strings.TrimSpace(c.scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid participant count")
	}

	return c.client.ConfigureSession(context.Background(), s.Code, model.Settings{
		Categories:           categories,
		RoundDurationSeconds: duration,
		MaxParticipants:      maxParticipants,
	})
}

func (c *consoleClient) showSession() {
	s := c.client.Session()
	if s == nil {
		fmt.Println("No active session")
		return
	}
	fmt.Printf("Session %s [%s], %d participant(s)\n", s.Code, s.Status, len(s.Participants))
	for id, name := range s.Participants {
		marker := ""
		if s.IsHost(id) {
			marker = " (host)"
		}
		fmt.Printf("  - %s%s\n", name, marker)
	}
}

// watchSession reacts to reconciled state: it starts the voting round
// when matching begins, tears it down as soon as the session leaves
// InProgress, and prints the tally once the session finishes.
func (c *consoleClient) watchSession() {
	var lastStatus model.Status = -1
	var round *timer.Round
	for range c.client.Updates() {
		s := c.client.Session()
		if s == nil {
			if round != nil {
				round.Stop()
				round = nil
			}
			if err := c.client.LastError(); err != nil {
				fmt.Printf("\nSession closed: %v\n", err)
			}
			lastStatus = -1
			continue
		}
		if s.Status == lastStatus {
			continue
		}
		lastStatus = s.Status

		// A finish from the host or the server ends the round early;
		// the countdown must not keep ticking past that.
		if round != nil && s.Status != model.StatusInProgress {
			round.Stop()
			round = nil
		}

		switch s.Status {
		case model.StatusLoadingMovies:
			fmt.Println("\nLoading movies...")
		case model.StatusInProgress:
			round = c.startRound(s)
		case model.StatusFinished:
			c.printResults(s)
		}
	}
}

// startRound owns the countdown; the voting goroutine only consumes it.
func (c *consoleClient) startRound(s *model.Session) *timer.Round {
	duration := time.Duration(s.Settings.RoundDurationSeconds) * time.Second
	round := timer.Start(
		context.Background(),
		clockwork.NewRealClock(),
		c.client,
		slog.Default(),
		duration,
		c.client.IsHost(),
		func(ctx context.Context) error {
			return c.client.FinishSession(ctx, s.Code)
		},
	)
	go c.runVotingRound(s, round)
	return round
}

func (c *consoleClient) runVotingRound(s *model.Session, round *timer.Round) {
	c.votingActive.Store(true)
	defer c.votingActive.Store(false)
	defer round.Stop()

	fmt.Printf("\nMatching started! %d movies, %d seconds:\n", len(s.Movies), s.Settings.RoundDurationSeconds)
	for i, m := range s.Movies {
		fmt.Printf("%d. %s (%s) - rating %.1f\n", i+1, m.Title, m.ReleaseDate, m.VoteAverage)
		fmt.Printf("   %s\n", m.Overview)
	}
	fmt.Printf("Enter the numbers of movies you liked, space separated (e.g. 1 4 7): ")

	select {
	case input := <-c.inputChan:
		for _, field := range strings.Fields(input) {
			idx, err := strconv.Atoi(field)
			if err != nil || idx < 1 || idx > len(s.Movies) {
				fmt.Printf("Skipping invalid entry %q\n", field)
				continue
			}
			if err := c.client.Vote(context.Background(), s.Code, s.Movies[idx-1].ID); err != nil {
				fmt.Printf("Vote failed: %v\n", err)
			}
		}
		fmt.Println("Votes sent! Waiting for the round to end...")
	case <-round.Done():
		fmt.Println("\nRound is over.")
		return
	}

	<-round.Done()
}

func (c *consoleClient) printResults(s *model.Session) {
	fmt.Println("\n=== Results ===")
	results := usecase_tally.Compute(s)
	if top, ok := usecase_tally.Top(results); ok {
		fmt.Printf("Best match: %s (%d match(es))\n", top.Movie.Title, top.VoteCount)
	}
	for i, r := range results {
		fmt.Printf("%d. %s - %d match(es)", i+1, r.Movie.Title, r.VoteCount)
		if len(r.MatchedParticipants) > 0 {
			fmt.Printf(" [%s]", strings.Join(r.MatchedParticipants, ", "))
		}
		fmt.Println()
	}
	if s.Finalized != nil && s.Finalized.Analysis != nil {
		rec := s.Finalized.Analysis.Recommendation
		fmt.Printf("AI suggestion: %s - %s\n", rec.Title, rec.Justification)
	}
}
