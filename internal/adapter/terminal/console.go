// Package terminal implements the interactive console: question prompts,
// answer capture and report rendering.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/eslsoft/trivnet/internal/entity"
	"github.com/eslsoft/trivnet/internal/infrastructure/config"
)

// Console reads answers from a terminal and renders game output.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	correctStyle   lipgloss.Style
	incorrectStyle lipgloss.Style

	shuffle func([]string) []string
}

// NewConsole wires the console to stdin/stdout with the configured output
// options.
func NewConsole(cfg *config.Config) *Console {
	return newConsole(os.Stdin, os.Stdout, cfg.Output.Color)
}

func newConsole(in io.Reader, out io.Writer, color bool) *Console {
	c := &Console{
		in:             bufio.NewReader(in),
		out:            out,
		correctStyle:   lipgloss.NewStyle(),
		incorrectStyle: lipgloss.NewStyle(),
		shuffle:        lo.Shuffle[string],
	}
	if color {
		c.correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)  // Green
		c.incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true) // Red
	}
	return c
}

// Ask renders the question and blocks for a single line of input. The
// returned string is the chosen option text, or empty when the input maps to
// no option.
func (c *Console) Ask(ctx context.Context, q entity.Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprintf(c.out, "\nCategory: %s", q.Category)
	if q.Difficulty != entity.DifficultyUnspecified {
		fmt.Fprintf(c.out, " (%s)", q.Difficulty)
	}
	fmt.Fprintf(c.out, "\n\n%s\n", q.Text)

	if q.Type == entity.QuestionTypeBoolean {
		return c.askBoolean()
	}
	return c.askMultiple(q)
}

func (c *Console) askBoolean() (string, error) {
	fmt.Fprint(c.out, "\n(T)rue or (F)alse? ")

	line, err := c.readLine()
	if err != nil {
		return "", err
	}

	switch strings.ToUpper(line) {
	case "T":
		return entity.AnswerTrue, nil
	case "F":
		return entity.AnswerFalse, nil
	default:
		return "", nil
	}
}

func (c *Console) askMultiple(q entity.Question) (string, error) {
	options := c.shuffle(q.Answers())

	fmt.Fprintln(c.out)
	for i, option := range options {
		fmt.Fprintf(c.out, "%c. %s\n", 'A'+i, option)
	}
	fmt.Fprintf(c.out, "\nYour answer (A-%c): ", 'A'+len(options)-1)

	line, err := c.readLine()
	if err != nil {
		return "", err
	}

	line = strings.ToUpper(line)
	if len(line) != 1 {
		return "", nil
	}
	idx := int(line[0] - 'A')
	if idx < 0 || idx >= len(options) {
		return "", nil
	}
	return options[idx], nil
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		err = nil
	}
	if err != nil {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// RenderOutcome prints the verdict for an answered question, revealing the
// correct answer on a miss.
func (c *Console) RenderOutcome(q entity.Question, correct bool) {
	if correct {
		fmt.Fprintln(c.out, c.correctStyle.Render("Correct!"))
		return
	}
	fmt.Fprintf(c.out, "%s Correct answer was %s\n", c.incorrectStyle.Render("Wrong."), q.CorrectAnswer)
}

// RenderReport prints one line per category plus the overall line: the name
// padded to the widest rendered one, total asked as four digits, then the
// correct and incorrect percentages around their bar halves. Each bar holds
// one rune per two percent.
func (c *Console) RenderReport(report entity.Report) {
	width := len(report.Overall.Name)
	for _, row := range report.Rows {
		if len(row.Name) > width {
			width = len(row.Name)
		}
	}

	fmt.Fprintln(c.out)
	for _, row := range report.Rows {
		c.renderRow(row, width)
	}
	c.renderRow(report.Overall, width)
}

func (c *Console) renderRow(row entity.ReportRow, width int) {
	correctPct := row.CorrectPercent()
	incorrectPct := row.IncorrectPercent()

	fmt.Fprintf(c.out, "%-*s  %04d  %03d%% %s%s %03d%%\n",
		width, row.Name, row.Total(),
		correctPct,
		c.correctStyle.Render(strings.Repeat("#", correctPct/2)),
		c.incorrectStyle.Render(strings.Repeat("@", incorrectPct/2)),
		incorrectPct,
	)
}
