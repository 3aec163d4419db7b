package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/italienapp/italienapp/internal/content"
	ex "github.com/italienapp/italienapp/internal/exercise"
	"github.com/italienapp/italienapp/internal/ui/theme"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Practice the exercises of a scheda line by line (no database)",
	Long: `Answer the exercises of a scheda on the command line and see the score.

This is a stateless tool: nothing is recorded. Useful for checking new
content and its answer keys.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("scheda", "", "Scheda ID, e.g. 1 or 19bis (required)")
	previewCmd.Flags().String("exercise", "", "Only this exercise ID")
	previewCmd.Flags().Bool("strict-accents", false, "Treat missing accents as errors")
	_ = previewCmd.MarkFlagRequired("scheda")
}

func runPreview(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("scheda")
	exID, _ := cmd.Flags().GetString("exercise")
	strict, _ := cmd.Flags().GetBool("strict-accents")

	sc, err := newLoader(loadConfig(cmd)).Scheda(id)
	if err != nil {
		return err
	}
	return runPreviewSession(cmd.InOrStdin(), cmd.OutOrStdout(), sc, exID, strict)
}

// runPreviewSession asks every slot of the selected exercises on out,
// reads one answer per line from in and prints the corrections.
func runPreviewSession(in io.Reader, out io.Writer, sc *content.Scheda, exID string, strict bool) error {
	exercises := sc.Exercises
	if exID != "" {
		e, ok := sc.Exercise(exID)
		if !ok {
			return fmt.Errorf("exercise %q not found in scheda %s", exID, sc.Meta.ID)
		}
		exercises = []ex.Exercise{e}
	}

	p := &prompter{scanner: bufio.NewScanner(in), out: out}

	fmt.Fprintf(out, "Scheda %s · %s\n\n", sc.Meta.ID, sc.Meta.Title)

	var score, total int
	for _, e := range exercises {
		fmt.Fprintf(out, "── Esercizio %s · %s ──\n", e.Number, e.Kind().DisplayName())
		if e.Instruction != "" {
			fmt.Fprintln(out, content.PlainText(e.Instruction))
		}

		input := p.collect(e)
		if p.closed {
			fmt.Fprintln(out, "(input chiuso)")
		}

		if !e.Gradable() {
			if oe, ok := e.Body.(*ex.OpenEnded); ok && oe.SuggestedAnswer != "" {
				fmt.Fprintf(out, "Risposta suggerita: %s\n", content.PlainText(oe.SuggestedAnswer))
			}
			fmt.Fprintln(out)
			if p.closed {
				break
			}
			continue
		}

		res, err := ex.Score(e, input, strict)
		if err != nil {
			return fmt.Errorf("score %s: %w", e.ID, err)
		}
		printVerdicts(out, res)
		score += res.Score
		total += res.Total
		fmt.Fprintln(out)

		if p.closed {
			break
		}
	}

	fmt.Fprintf(out, "── Totale: %d/%d ──\n", score, total)
	return nil
}

func printVerdicts(w io.Writer, res ex.Result) {
	for _, v := range res.Verdicts {
		if !v.Graded {
			continue
		}
		given := v.Given
		if given == "" {
			given = "(vuoto)"
		}
		if v.Correct {
			fmt.Fprintf(w, "  %d. %s %s\n", v.Slot.Item+1, theme.Correct.Render("✓"), given)
		} else {
			fmt.Fprintf(w, "  %d. %s %s → %s\n", v.Slot.Item+1, theme.Incorrect.Render("✗"), given, v.Expected)
		}
	}
	fmt.Fprintf(w, "Punteggio: %d/%d\n", res.Score, res.Total)
}

type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
	closed  bool
}

// ask prints label and returns the next trimmed line. Once the input is
// exhausted every call returns "".
func (p *prompter) ask(label string) string {
	if p.closed {
		return ""
	}
	fmt.Fprint(p.out, label)
	if !p.scanner.Scan() {
		p.closed = true
		fmt.Fprintln(p.out)
		return ""
	}
	return strings.TrimSpace(p.scanner.Text())
}

// collect builds the Input for e by asking each slot in display order.
func (p *prompter) collect(e ex.Exercise) ex.Input {
	var in ex.Input
	plain := content.PlainText

	switch b := e.Body.(type) {
	case *ex.FillInBlank:
		for i, it := range b.Items {
			in.Items = append(in.Items,
				p.ask(fmt.Sprintf("%d. %s ___ %s\n   > ", i+1, plain(it.Before), plain(it.After))))
		}

	case *ex.MultipleChoice:
		for i, it := range b.Items {
			fmt.Fprintf(p.out, "%d. %s\n", i+1, plain(it.Prompt))
			for j, o := range it.Options {
				fmt.Fprintf(p.out, "   %d) %s\n", j+1, o)
			}
			in.Items = append(in.Items, pickOption(p.ask("   > "), it.Options))
		}

	case *ex.Transformation:
		for i, it := range b.Items {
			in.Items = append(in.Items, p.ask(fmt.Sprintf("%d. %s\n   > ", i+1, plain(it.Given))))
		}

	case *ex.SentenceRewriting:
		for i, it := range b.Items {
			label := fmt.Sprintf("%d. %s\n", i+1, plain(it.Given))
			if it.Hint != "" {
				label += fmt.Sprintf("   (%s)\n", plain(it.Hint))
			}
			in.Items = append(in.Items, p.ask(label+"   > "))
		}

	case *ex.SentenceCompletion:
		in.Blanks = make([][]string, len(b.Items))
		for i, s := range b.Items {
			in.Blanks[i] = make([]string, len(s.Segments))
			var line strings.Builder
			n := 0
			for _, seg := range s.Segments {
				if seg.Blank {
					n++
					fmt.Fprintf(&line, "___(%d)", n)
				} else {
					line.WriteString(plain(seg.Text))
				}
			}
			fmt.Fprintf(p.out, "%d. %s\n", i+1, line.String())
			n = 0
			for j, seg := range s.Segments {
				if seg.Blank {
					n++
					in.Blanks[i][j] = p.ask(fmt.Sprintf("   (%d) > ", n))
				}
			}
		}

	case *ex.TableCompletion:
		in.Cells = make([][]string, len(b.Rows))
		for r, row := range b.Rows {
			in.Cells[r] = make([]string, len(row.Cells))
			var static []string
			for _, c := range row.Cells {
				if !c.Editable && c.Value != "" {
					static = append(static, plain(c.Value))
				}
			}
			for c, cell := range row.Cells {
				if !cell.Editable {
					continue
				}
				col := fmt.Sprintf("colonna %d", c+1)
				if c < len(b.Headers) {
					col = b.Headers[c]
				}
				in.Cells[r][c] = p.ask(fmt.Sprintf("riga %d (%s), %s > ", r+1, strings.Join(static, ", "), col))
			}
		}

	case *ex.Matching:
		for j, r := range b.Right {
			fmt.Fprintf(p.out, "   %d) %s\n", j+1, plain(r))
		}
		in.Matches = make(map[int]int)
		for i, l := range b.Left {
			n, err := strconv.Atoi(p.ask(fmt.Sprintf("%s → ", plain(l))))
			if err == nil && n >= 1 && n <= len(b.Right) {
				in.Matches[i] = n - 1
			}
		}

	case *ex.OpenEnded:
		p.ask("> ")
	}

	return in
}

// pickOption accepts a 1-based option number or the option text itself.
func pickOption(answer string, options []string) string {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1]
		}
		return ""
	}
	return answer
}
