package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return &Output{format: format, w: os.Stdout}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case PlayerList:
		o.printPlayerList(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case SMSReply:
		o.printSMSReply(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID             string     `json:"id"`
	PhoneNumber    string     `json:"phone_number"`
	Name           string     `json:"name,omitempty"`
	Status         string     `json:"status"`
	CurrentClue    string     `json:"current_clue,omitempty"`
	RemainingClues int        `json:"remaining_clues"`
	Completed      int        `json:"completed"`
	Missed         int        `json:"missed"`
	FastestSeconds *float64   `json:"fastest_seconds,omitempty"`
	InjuredUntil   *time.Time `json:"injured_until,omitempty"`
	HuntStartedAt  *time.Time `json:"hunt_started_at,omitempty"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// PlayerList response type
type PlayerList struct {
	Players []Player `json:"players"`
}

// Standing response type
type Standing struct {
	Rank           int      `json:"rank"`
	PlayerID       string   `json:"player_id"`
	Name           string   `json:"name"`
	Status         string   `json:"status"`
	Completed      int      `json:"completed"`
	Missed         int      `json:"missed"`
	FastestSeconds *float64 `json:"fastest_seconds,omitempty"`
}

// Leaderboard response type
type Leaderboard struct {
	Standings []Standing `json:"standings"`
}

// SMSReply is what the webhook answered to a simulated text
type SMSReply struct {
	Status    int      `json:"status"`
	Discarded bool     `json:"discarded,omitempty"`
	Messages  []string `json:"messages,omitempty"`
}

// HealthResult is the health response plus how it was obtained
type HealthResult struct {
	Status   string `json:"status"`
	Server   string `json:"server"`
	Attempts int    `json:"attempts"`
}

func (o *Output) printPlayer(p Player) {
	name := p.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(o.w, "Player: %s (%s)\n", name, p.ID)
	fmt.Fprintf(o.w, "Phone: %s\n", p.PhoneNumber)
	fmt.Fprintf(o.w, "Status: %s\n", p.Status)
	if p.CurrentClue != "" {
		fmt.Fprintf(o.w, "Current Clue: %s\n", p.CurrentClue)
	}
	fmt.Fprintf(o.w, "Completed: %d  Missed: %d  Remaining: %d\n", p.Completed, p.Missed, p.RemainingClues)
	fmt.Fprintf(o.w, "Fastest: %s\n", formatSeconds(p.FastestSeconds))
	if p.InjuredUntil != nil {
		fmt.Fprintf(o.w, "Injured Until: %s\n", p.InjuredUntil.Format(time.RFC3339))
	}
	if p.FinishedAt != nil {
		fmt.Fprintf(o.w, "Finished: %s\n", p.FinishedAt.Format(time.RFC3339))
	}
}

func (o *Output) printPlayerList(l PlayerList) {
	if len(l.Players) == 0 {
		fmt.Fprintln(o.w, "No players yet")
		return
	}

	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPHONE\tSTATUS\tCOMPLETED\tMISSED")
	for _, p := range l.Players {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\n", p.ID, p.Name, p.PhoneNumber, p.Status, p.Completed, p.Missed)
	}
	_ = tw.Flush()
}

func (o *Output) printLeaderboard(l Leaderboard) {
	if len(l.Standings) == 0 {
		fmt.Fprintln(o.w, "No players on the board yet")
		return
	}

	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tNAME\tSTATUS\tCOMPLETED\tFASTEST\tMISSED")
	for _, s := range l.Standings {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%d\n",
			s.Rank, s.Name, s.Status, s.Completed, formatSeconds(s.FastestSeconds), s.Missed)
	}
	_ = tw.Flush()
}

func (o *Output) printSMSReply(r SMSReply) {
	if r.Discarded {
		fmt.Fprintln(o.w, "(reply discarded, no session id)")
		return
	}
	for _, m := range r.Messages {
		fmt.Fprintln(o.w, m)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Server: %s\n", h.Server)
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	if h.Attempts > 1 {
		fmt.Fprintf(o.w, "Attempts: %d\n", h.Attempts)
	}
}

func formatSeconds(s *float64) string {
	if s == nil {
		return "-"
	}
	return (time.Duration(*s * float64(time.Second))).Round(time.Second).String()
}
