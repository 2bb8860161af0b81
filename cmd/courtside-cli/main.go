package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fortuna/courtside/internal/config"
	"github.com/fortuna/courtside/internal/ingest/nba"
	"github.com/fortuna/courtside/internal/service"
)

const recentGamesWindow = 10

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Keep the menu clean: only warnings and errors reach the terminal.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	teams := nba.NewTeamDirectory()
	client := nba.NewClient(cfg.Upstream.LiveBaseURL, cfg.Upstream.StatsBaseURL, logger)
	games := service.NewGameService(client, teams, logger)
	analytics := service.NewAnalyticsService()

	cli := &CLI{
		games:     games,
		analytics: analytics,
		client:    client,
		reader:    bufio.NewReader(os.Stdin),
	}
	cli.Run()
}

// CLI is the interactive menu over the same services the HTTP surface uses.
type CLI struct {
	games     *service.GameService
	analytics *service.AnalyticsService
	client    *nba.Client
	reader    *bufio.Reader
}

// Run loops the main menu until the user quits.
func (c *CLI) Run() {
	printHeader("NBA Game Data Tool")

	for {
		fmt.Println("\nMain menu:")
		fmt.Println("1. Today's games")
		fmt.Println("2. Analyze a matchup")
		fmt.Println("3. Team recent stats")
		fmt.Println("4. Quit")

		switch c.prompt("\nChoose an option: ") {
		case "1":
			c.showTodaysGames()
		case "2":
			c.analyzeMatchup()
		case "3":
			c.showTeamStats()
		case "4":
			fmt.Println("Bye.")
			return
		default:
			fmt.Println("Invalid option.")
		}
	}
}

func (c *CLI) showTodaysGames() {
	today, err := time.Parse("01/02/2006", c.client.TodayET())
	if err != nil {
		fmt.Println("Could not determine today's date.")
		return
	}

	summaries, err := c.games.GetGamesByDate(context.Background(), today.Format("2006-01-02"))
	if err != nil || len(summaries) == 0 {
		fmt.Println("No games found for today.")
		return
	}

	printHeader("Today's Games")
	for _, game := range summaries {
		fmt.Printf("%s @ %s | %s", game.AwayTeamName, game.HomeTeamName, game.Status)
		if game.Status == nba.StatusLive || game.Status == nba.StatusFinished {
			fmt.Printf(" | %d-%d", game.AwayScore, game.HomeScore)
		}
		fmt.Println()
	}
}

func (c *CLI) analyzeMatchup() {
	homeQuery := c.prompt("Home team (name or tricode): ")
	awayQuery := c.prompt("Away team (name or tricode): ")

	home, homeOK := c.games.Teams().Find(homeQuery)
	away, awayOK := c.games.Teams().Find(awayQuery)
	if !homeOK || !awayOK {
		fmt.Println("One or both teams were not found.")
		return
	}

	fmt.Printf("\nAnalyzing: %s @ %s...\n", away.Name, home.Name)

	ctx := context.Background()
	homeRecent, err := c.games.GetRecentGames(ctx, home.ID, recentGamesWindow)
	if err != nil {
		fmt.Printf("Could not fetch recent games for %s.\n", home.Name)
	}
	awayRecent, err := c.games.GetRecentGames(ctx, away.ID, recentGamesWindow)
	if err != nil {
		fmt.Printf("Could not fetch recent games for %s.\n", away.Name)
	}

	analysis := c.analytics.AnalyzeMatchup(homeRecent, awayRecent)

	printHeader(fmt.Sprintf("Analysis: %s @ %s", away.Abbreviation, home.Abbreviation))
	fmt.Printf("%-15s | %-15s | %-15s\n", "Metric", "Home", "Away")
	fmt.Println(strings.Repeat("-", 50))

	metrics := []struct{ label, key string }{
		{"Record (L10)", "record"},
		{"PTS/G", "PTS"},
		{"FG%", "FG_PCT"},
		{"3P%", "FG3_PCT"},
		{"REB", "REB"},
	}
	for _, m := range metrics {
		fmt.Printf("%-15s | %-15s | %-15s\n",
			m.label, formatStat(analysis.HomeForm[m.key]), formatStat(analysis.AwayForm[m.key]))
	}

	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("Expected total points (L10): %.2f\n", analysis.TotalExpectedPts)
	fmt.Printf("Home scoring advantage: %.2f\n", analysis.PPGDiff)
}

func (c *CLI) showTeamStats() {
	team, ok := c.games.Teams().Find(c.prompt("Team name: "))
	if !ok {
		fmt.Println("Team not found.")
		return
	}

	recent, err := c.games.GetRecentGames(context.Background(), team.ID, recentGamesWindow)
	if err != nil {
		fmt.Printf("Could not fetch recent games for %s.\n", team.Name)
		return
	}

	form := c.analytics.CalculateAverages(recent)
	printHeader(fmt.Sprintf("Recent Form: %s", team.Name))
	for _, key := range []string{"record", "PTS", "FG_PCT", "FG3_PCT", "REB"} {
		fmt.Printf("%s: %s\n", key, formatStat(form[key]))
	}
}

func (c *CLI) prompt(label string) string {
	fmt.Print(label)
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func formatStat(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.2f", f)
	}
	return fmt.Sprint(v)
}

func printHeader(title string) {
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Printf("%s\n", strings.ToUpper(title))
	fmt.Println(strings.Repeat("=", 50))
}
