package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"wordbook/internal/domain"
)

// remainingHintEvery controls how often drill mode reminds how many words are left
const remainingHintEvery = 100

type line struct {
	text string
	err  error
}

// Console implements service.Prompter over a line-oriented reader and writer.
// Input is pumped by a single reader goroutine so a blocked prompt can still
// observe context cancellation.
type Console struct {
	in    io.Reader
	out   io.Writer
	lines chan line
	once  sync.Once
}

// New creates a new console
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:    in,
		out:   out,
		lines: make(chan line),
	}
}

func (c *Console) start() {
	c.once.Do(func() {
		go func() {
			scanner := bufio.NewScanner(c.in)
			for scanner.Scan() {
				c.lines <- line{text: scanner.Text()}
			}
			err := scanner.Err()
			if err == nil {
				err = io.EOF
			}
			c.lines <- line{err: err}
			close(c.lines)
		}()
	})
}

// ReadLine blocks until a line arrives, input ends or ctx is done
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	c.start()

	// A line typed before the interrupt must not count as an answer
	if err := ctx.Err(); err != nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-c.lines:
		if !ok || l.err == io.EOF {
			return "", domain.ErrInputClosed
		}
		if l.err != nil {
			return "", fmt.Errorf("failed to read input: %w", l.err)
		}
		return l.text, nil
	}
}

// Present prints a question with lettered options
func (c *Console) Present(q domain.Question) {
	fmt.Fprintln(c.out, FormatQuestion(q))
}

// Choose re-prompts until the operator enters one of allowed
func (c *Console) Choose(ctx context.Context, allowed []domain.Choice) (domain.Choice, error) {
	letters := make([]string, 0, len(allowed))
	for _, a := range allowed {
		letters = append(letters, string(a))
	}
	list := strings.Join(letters, "/")

	for {
		fmt.Fprintf(c.out, "你的选择（%s）：", list)

		text, err := c.ReadLine(ctx)
		if err != nil {
			return "", err
		}

		answer := domain.Choice(strings.ToUpper(strings.TrimSpace(text)))
		for _, a := range allowed {
			if answer == a {
				return a, nil
			}
		}
		fmt.Fprintf(c.out, "输入无效，请输入 %s。\n", list)
	}
}

// Confirm asks a y/N question; anything but "y" is no
func (c *Console) Confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprint(c.out, question)

	text, err := c.ReadLine(ctx)
	if err != nil {
		return false, err
	}
	return strings.ToLower(strings.TrimSpace(text)) == "y", nil
}

// Say prints an operator message followed by a newline
func (c *Console) Say(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// FormatQuestion renders a question. Drill questions (Remaining > 0) show the
// counter against the book size and the quit option.
func FormatQuestion(q domain.Question) string {
	var b strings.Builder

	if q.Remaining > 0 {
		hint := ""
		if q.Remaining%remainingHintEvery == 0 {
			hint = fmt.Sprintf("（提示：还剩 %d 词）", q.Remaining)
		}
		fmt.Fprintf(&b, "[%d/%d] %s 的中文意思是？%s\n", q.Number, q.Remaining, q.Term, hint)
	} else {
		fmt.Fprintf(&b, "第%d题：%s 的中文意思是？\n", q.Number, q.Term)
	}

	for i, opt := range q.Options {
		if i >= len(domain.OptionLetters) {
			break
		}
		fmt.Fprintf(&b, "  %s. %s\n", domain.OptionLetters[i], opt)
	}

	if q.AllowQuit {
		fmt.Fprintf(&b, "  %s. 不会（保留在错题本中）\n", domain.ChoiceUnknown)
		fmt.Fprintf(&b, "  %s. 退出（安全退出，不丢进度）", domain.ChoiceQuit)
	} else {
		fmt.Fprintf(&b, "  %s. 不会（直接记为错）", domain.ChoiceUnknown)
	}

	return b.String()
}
