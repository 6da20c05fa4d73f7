package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"mise/internal/assistant"
	"mise/internal/providers"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	youStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0a84ff"))

	botStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#30d158"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff9f0a")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

var (
	apiURL = flag.String("api", "", "API base URL (default http://localhost:8080)")
	token  = flag.String("token", "", "Session token (default MISE_TOKEN)")
)

// entry is one line of the chat transcript
type entry struct {
	speaker  string
	text     string
	markdown bool
}

// Model defines the chat application state. The confirmation gate lives
// here, in the client: the server never stores a pending action.
type Model struct {
	textInput   textinput.Model
	spinner     spinner.Model
	client      *ApiClient
	gate        *assistant.Gate
	renderer    *glamour.TermRenderer
	transcript  []entry
	attachments []providers.Image
	err         string
}

func initialModel(client *ApiClient) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ti := textinput.New()
	ti.Placeholder = "Ask the assistant..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 72

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)

	return Model{
		textInput: ti,
		spinner:   s,
		client:    client,
		gate:      assistant.NewGate(),
		renderer:  renderer,
		transcript: []entry{
			{speaker: "assistant", text: "Hi! I can manage recipes, shop products, inventory, and user accounts. Changes always need your confirmation before they run."},
		},
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, textinput.Blink)
}

// Custom message types for the tea.Model
type proposeMsg struct {
	resp *ProposeResponse
}

type executeMsg struct {
	result *assistant.ActionResult
	err    error
}

type errorMsg struct {
	err string
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}

		// Input is disabled while an action executes; this is a UX guard,
		// not a concurrency guarantee.
		if m.gate.State() == assistant.GateExecuting {
			return m, nil
		}

		if m.gate.State() == assistant.GateProposed {
			switch msg.String() {
			case "y", "Y":
				pending, err := m.gate.Confirm()
				if err != nil {
					m.err = err.Error()
					return m, nil
				}
				return m, executeAction(m.client, pending)
			case "n", "N":
				if err := m.gate.Cancel(); err != nil {
					m.err = err.Error()
					return m, nil
				}
				m.transcript = append(m.transcript, entry{speaker: "assistant", text: "No problem, I won't make that change."})
				return m, nil
			}
			return m, nil
		}

		if msg.String() == "enter" {
			return m.handleSubmit()
		}

	case proposeMsg:
		return m.handlePropose(msg.resp)

	case executeMsg:
		if err := m.gate.Finish(); err != nil {
			m.err = err.Error()
		}
		if msg.err != nil {
			m.transcript = append(m.transcript, entry{speaker: "assistant", text: "That didn't work: " + msg.err.Error()})
		} else if msg.result.Type == "success" {
			text := msg.result.Message
			if msg.result.Link != "" {
				text += fmt.Sprintf(" ([view](%s))", msg.result.Link)
			}
			m.transcript = append(m.transcript, entry{speaker: "assistant", text: text, markdown: true})
		} else {
			m.transcript = append(m.transcript, entry{speaker: "assistant", text: "That didn't work: " + msg.result.Message})
		}
		return m, nil

	case errorMsg:
		m.err = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	if m.gate.State() == assistant.GateIdle {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// handleSubmit sends the typed message, or queues an attachment for the
// /attach command
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.textInput.Value())
	if text == "" {
		return m, nil
	}
	m.textInput.SetValue("")
	m.err = ""

	if path, ok := strings.CutPrefix(text, "/attach "); ok {
		img, err := loadImage(strings.TrimSpace(path))
		if err != nil {
			m.err = fmt.Sprintf("could not attach %s: %v", path, err)
			return m, nil
		}
		m.attachments = append(m.attachments, img)
		m.transcript = append(m.transcript, entry{speaker: "you", text: fmt.Sprintf("(attached %s)", path)})
		return m, nil
	}

	m.transcript = append(m.transcript, entry{speaker: "you", text: text})
	images := m.attachments
	m.attachments = nil
	return m, proposeMessage(m.client, text, images)
}

// handlePropose feeds the server's reply through the gate
func (m Model) handlePropose(resp *ProposeResponse) (tea.Model, tea.Cmd) {
	if resp.Type != "function_call" {
		m.transcript = append(m.transcript, entry{speaker: "assistant", text: resp.Message, markdown: true})
		return m, nil
	}

	id := resp.ID
	if id == "" {
		id = uuid.NewString()
	}
	discarded, err := m.gate.Propose(assistant.PendingAction{
		ID:        id,
		Action:    assistant.Action{Name: resp.Function, Arguments: resp.Arguments},
		Preview:   resp.Message,
		Signature: resp.Signature,
	})
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	if discarded {
		m.transcript = append(m.transcript, entry{speaker: "assistant", text: "(previous pending action discarded)"})
	}
	m.transcript = append(m.transcript, entry{speaker: "assistant", text: resp.Message, markdown: true})
	return m, nil
}

// View renders the UI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Mise Assistant") + "\n\n")

	for _, e := range m.transcript {
		label := youStyle.Render("you")
		if e.speaker == "assistant" {
			label = botStyle.Render("assistant")
		}
		text := e.text
		if e.markdown && m.renderer != nil {
			if rendered, err := m.renderer.Render(e.text); err == nil {
				text = strings.TrimSpace(rendered)
			}
		}
		b.WriteString(label + " " + text + "\n")
	}

	b.WriteString("\n")

	switch m.gate.State() {
	case assistant.GateProposed:
		b.WriteString(promptStyle.Render("Run this action? [y/n]") + "\n")
	case assistant.GateExecuting:
		b.WriteString(m.spinner.View() + " Executing...\n")
	default:
		b.WriteString(m.textInput.View() + "\n")
	}

	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err) + "\n")
	}
	b.WriteString("\nPress esc to quit. Use /attach <file> to include an image.\n")

	return docStyle.Render(b.String())
}

// proposeMessage sends a chat message to the assistant
func proposeMessage(client *ApiClient, text string, images []providers.Image) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Propose(text, images)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error contacting assistant: %v", err)}
		}
		return proposeMsg{resp: resp}
	}
}

// executeAction sends the confirmed action for execution
func executeAction(client *ApiClient, pending *assistant.PendingAction) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Execute(pending.Action, pending.Signature)
		return executeMsg{result: result, err: err}
	}
}

func main() {
	flag.Parse()

	sessionToken := *token
	if sessionToken == "" {
		sessionToken = os.Getenv("MISE_TOKEN")
	}
	if sessionToken == "" {
		fmt.Println("A session token is required: pass -token or set MISE_TOKEN")
		os.Exit(1)
	}

	client := NewApiClient(*apiURL, sessionToken)
	if !client.Ping() {
		fmt.Printf("Warning: API server at %s is not available.\n", client.BaseURL)
	}

	p := tea.NewProgram(initialModel(client))
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
