package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/tictacgo/internal/api/response"
	"github.com/mcoot/tictacgo/internal/model"
)

const playHelp = "Enter a cell 0-8, x or o to pick your mark before the first move, r to reset, q to quit."

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play an interactive game",
		Long: `Play tic-tac-toe against yourself on stdin/stdout.

Commands at the prompt:
  0-8   place the current mark on that cell (cells are numbered row by row)
  x, o  choose your mark before the first move
  r     abandon the game and start a new one
  q     quit

Finished games are added to the signed-in identity's stats.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &player{
				ctx:     cmd.Context(),
				scanner: bufio.NewScanner(cmd.InOrStdin()),
			}
			return p.run()
		},
	}
}

// player drives one interactive session against the game controller
type player struct {
	ctx     context.Context
	scanner *bufio.Scanner
}

func (p *player) run() error {
	out.PrintMessage(playHelp)
	p.show()

	for {
		line, ok := p.read("> ")
		if !ok {
			return p.scanner.Err()
		}

		switch line {
		case "":
			continue
		case "q", "quit":
			return nil
		case "r", "reset":
			app.GameController.NewGame(p.ctx)
			p.show()
		case "x", "o":
			p.chooseMark(line)
		case "?", "h", "help":
			out.PrintMessage(playHelp)
		default:
			index, err := strconv.Atoi(line)
			if err != nil {
				out.PrintMessage(fmt.Sprintf("Unknown command %q. %s", line, playHelp))
				continue
			}
			finished, err := p.move(index)
			if err != nil {
				return err
			}
			if finished {
				again, ok := p.read("Play again? [y/N] ")
				if !ok || !strings.HasPrefix(again, "y") {
					return p.scanner.Err()
				}
				app.GameController.NewGame(p.ctx)
				p.show()
			}
		}
	}
}

func (p *player) read(prompt string) (string, bool) {
	out.Prompt(prompt)
	if !p.scanner.Scan() {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(p.scanner.Text())), true
}

func (p *player) show() {
	out.Print(response.GameResponse{Game: response.GameFromModel(app.GameController.Game())})
}

// move plays index and reports whether it finished the game
func (p *player) move(index int) (bool, error) {
	res, err := app.GameController.Move(p.ctx, index)
	if err != nil && !model.IsWarning(err) {
		return false, err
	}
	out.Print(response.MoveFromResult(res, err))
	return res.Applied && res.Result != nil, nil
}

func (p *player) chooseMark(input string) {
	mark, err := model.ParseMark(input)
	if err != nil {
		out.PrintError(err)
		return
	}
	err = app.GameController.ChooseMark(p.ctx, mark)
	if err != nil && !model.IsWarning(err) {
		out.PrintError(err)
		return
	}
	out.PrintWarnings(model.Warnings(err))
	out.PrintMessage(fmt.Sprintf("You are playing %s", mark))
	p.show()
}
