package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"

	"github.com/apresai/roastbot/internal/roast"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B35")).
			MarginBottom(1)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B35")).
			Bold(true)

	typingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Italic(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))
)

// runChatSession launches the interactive session: a Bubble Tea program
// on a TTY, a plain line loop otherwise (pipes, CI).
func runChatSession(ctx context.Context, engine *roast.Engine, out *os.File) error {
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		width := 80
		if w, _, err := term.GetSize(out.Fd()); err == nil && w > 0 {
			width = w
		}
		m := newChatModel(ctx, engine, width)
		final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
		if err != nil {
			return err
		}
		if cm, ok := final.(chatModel); ok && cm.err != nil {
			return cm.err
		}
		return nil
	}
	return runPlainChat(ctx, engine, out)
}

// runPlainChat reads lines from stdin and prints replies, no styling.
func runPlainChat(ctx context.Context, engine *roast.Engine, out io.Writer) error {
	fmt.Fprintln(out, "roastbot ready. Say something (ctrl-d to quit).")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		reply, err := engine.GenerateReply(ctx, line)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, reply)
	}
	return scanner.Err()
}

// typingDelay returns the simulated think time. Purely cosmetic; keeps
// replies from feeling instant on a TTY.
func typingDelay() time.Duration {
	return time.Duration(1000+rand.Intn(2000)) * time.Millisecond
}

type replyMsg struct {
	text string
	err  error
}

// chatModel is the Bubble Tea model for the chat session. Input is
// disabled while a generation is outstanding, so messages are processed
// strictly one at a time.
type chatModel struct {
	ctx     context.Context
	engine  *roast.Engine
	width   int
	input   string
	lines   []string
	waiting bool
	err     error
}

func newChatModel(ctx context.Context, engine *roast.Engine, width int) chatModel {
	return chatModel{ctx: ctx, engine: engine, width: width}
}

func (m chatModel) Init() tea.Cmd { return nil }

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.lines = append(m.lines, botStyle.Render("roastbot: ")+msg.text)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			text := strings.TrimSpace(m.input)
			if text == "" {
				return m, nil
			}
			m.input = ""
			m.lines = append(m.lines, userStyle.Render("you: ")+text)
			m.waiting = true
			return m, m.generate(text)
		case tea.KeyBackspace:
			if !m.waiting && len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
			return m, nil
		case tea.KeyRunes:
			if !m.waiting {
				m.input += string(msg.Runes)
			}
			return m, nil
		case tea.KeySpace:
			if !m.waiting {
				m.input += " "
			}
			return m, nil
		}
	}
	return m, nil
}

// generate runs the engine off the update loop, after the cosmetic
// typing delay.
func (m chatModel) generate(text string) tea.Cmd {
	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return replyMsg{err: ctx.Err()}
		case <-time.After(typingDelay()):
		}
		reply, err := engine.GenerateReply(ctx, text)
		return replyMsg{text: reply, err: err}
	}
}

func (m chatModel) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("roastbot — you asked for this"))
	sb.WriteString("\n")
	for _, line := range m.lines {
		sb.WriteString(lipgloss.NewStyle().Width(m.width).Render(line))
		sb.WriteString("\n")
	}
	if m.waiting {
		sb.WriteString(typingStyle.Render("roastbot is typing..."))
		sb.WriteString("\n")
	} else {
		sb.WriteString(promptStyle.Render("> "))
		sb.WriteString(m.input)
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render("enter to send · esc to quit"))
	sb.WriteString("\n")
	return sb.String()
}
