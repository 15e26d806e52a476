package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/tictacgo/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
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
		fmt.Fprintln(o.errOut, string(data))
	} else {
		fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.out, string(data))
	} else {
		fmt.Fprintln(o.out, msg)
	}
}

// PrintWarnings reports storage faults on stderr. In JSON mode they are
// already part of the printed payload.
func (o *Output) PrintWarnings(warnings []string) {
	if o.format == "json" {
		return
	}
	for _, w := range warnings {
		fmt.Fprintf(o.errOut, "Warning: %s\n", w)
	}
}

// Prompt writes an interactive prompt. Prompts are suppressed in JSON mode
// so stdout stays one document per line.
func (o *Output) Prompt(msg string) {
	if o.format == "json" {
		return
	}
	fmt.Fprint(o.out, msg)
}

func (o *Output) printJSON(data any) {
	if o.format == "json" {
		// One document per line so the play loop can be consumed as a stream
		data, _ := json.Marshal(data)
		fmt.Fprintln(o.out, string(data))
		return
	}
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Session:
		o.printSession(v)
	case response.Stats:
		o.printStats(v)
	case response.GameResponse:
		o.printGame(v.Game)
	case response.Move:
		o.printMove(v)
	case AboutInfo:
		o.printAbout(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// AboutInfo describes the binary and where it keeps its state
type AboutInfo struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Storage  string `json:"storage"`
	Location string `json:"location,omitempty"`
	Identity string `json:"identity"`
}

func (o *Output) printSession(s response.Session) {
	if s.Guest {
		fmt.Fprintln(o.out, "Signed in: no (guest)")
	} else {
		fmt.Fprintf(o.out, "Signed in: %s\n", s.Identity)
	}
	fmt.Fprintf(o.out, "Mark: %s\n", s.Mark)
	if s.SignedInAt != nil {
		fmt.Fprintf(o.out, "Since: %s\n", s.SignedInAt.Format("2006-01-02 15:04:05"))
	}
	o.PrintWarnings(s.Warnings)
}

func (o *Output) printStats(s response.Stats) {
	fmt.Fprintf(o.out, "Stats for %s\n", s.Identity)
	fmt.Fprintf(o.out, "  %-5s %5s %6s %5s %6s\n", "", "Wins", "Losses", "Ties", "Played")
	for _, row := range []struct {
		label string
		rec   response.StatRecord
	}{
		{"X", s.X},
		{"O", s.O},
		{"Total", s.Total},
	} {
		fmt.Fprintf(o.out, "  %-5s %5d %6d %5d %6d\n", row.label, row.rec.Wins, row.rec.Losses, row.rec.Ties, row.rec.Played)
	}
	o.PrintWarnings(s.Warnings)
}

func (o *Output) printGame(g response.Game) {
	o.printBoard(g.Cells)

	switch {
	case g.Winner != nil:
		fmt.Fprintf(o.out, "%s wins!\n", g.Winner.Mark)
	case g.Status == "tied":
		fmt.Fprintln(o.out, "It's a tie!")
	default:
		fmt.Fprintf(o.out, "Turn: %s\n", g.Turn)
	}

	if g.Result != nil {
		o.printResult(g.Result)
	}
}

// printBoard renders the 3x3 grid, showing the index of each empty cell
func (o *Output) printBoard(cells [9]string) {
	rows := make([]string, 0, 3)
	for row := 0; row < 3; row++ {
		cols := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			i := row*3 + col
			cell := cells[i]
			if cell == "" {
				cell = fmt.Sprintf("%d", i)
			}
			cols = append(cols, " "+cell+" ")
		}
		rows = append(rows, strings.Join(cols, "|"))
	}
	fmt.Fprintln(o.out, strings.Join(rows, "\n---+---+---\n"))
}

func (o *Output) printMove(m response.Move) {
	if !m.Applied {
		fmt.Fprintf(o.out, "Move %d ignored (%s)\n", m.Index, strings.ToLower(m.Rejected))
	}
	o.printGame(m.Game)
	o.PrintWarnings(m.Warnings)
}

func (o *Output) printResult(r *response.Result) {
	fmt.Fprintf(o.out, "You played %s: %s\n", r.PlayerMark, r.Outcome)
	if !r.Recorded {
		fmt.Fprintln(o.out, "Sign in to keep stats")
	}
}

func (o *Output) printAbout(a AboutInfo) {
	fmt.Fprintf(o.out, "%s %s\n", a.Name, a.Version)
	fmt.Fprintln(o.out, "Tic-tac-toe with per-identity stats and mark preferences.")
	if a.Location != "" {
		fmt.Fprintf(o.out, "Storage: %s (%s)\n", a.Storage, a.Location)
	} else {
		fmt.Fprintf(o.out, "Storage: %s\n", a.Storage)
	}
	if a.Identity == "" {
		fmt.Fprintln(o.out, "Signed in: no (guest)")
	} else {
		fmt.Fprintf(o.out, "Signed in: %s\n", a.Identity)
	}
}
