// Package ui holds the CLI's live log viewer: a bubbletea viewport fed by the
// daemon's websocket event stream.
package ui

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gorilla/websocket"

	"palauncher/internal/domain"
	"palauncher/pkg/sdk"
)

type logModel struct {
	sub      chan sdk.Event
	viewport viewport.Model
	ready    bool
	content  string
	state    string
	width    int
	height   int
}

type eventMsg sdk.Event
type streamClosedMsg struct{}

func waitForEvent(sub chan sdk.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-sub
		if !ok {
			return streamClosedMsg{}
		}
		return eventMsg(event)
	}
}

func (m logModel) Init() tea.Cmd {
	return waitForEvent(m.sub)
}

func (m logModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 6
		contentWidth := msg.Width - 6

		if !m.ready {
			m.viewport = viewport.New(contentWidth, msg.Height-headerHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = msg.Height - headerHeight
		}
		m.viewport.SetContent(m.content)

	case eventMsg:
		m.apply(sdk.Event(msg))
		m.viewport.SetContent(m.content)
		m.viewport.GotoBottom()
		return m, waitForEvent(m.sub)

	case streamClosedMsg:
		m.state = "disconnected"
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *logModel) apply(event sdk.Event) {
	switch event.Type {
	case domain.EventServerLog, domain.EventUpdateProgress:
		if line, ok := event.Data.(string); ok {
			m.content += line + "\n"
		}
	case domain.EventServerLogErr:
		if line, ok := event.Data.(string); ok {
			m.content += errLineStyle.Render(line) + "\n"
		}
	case domain.EventServerStarted:
		m.state = "ready"
	case domain.EventServerStopped:
		code := -1
		if f, ok := event.Data.(float64); ok {
			code = int(f)
		}
		m.state = fmt.Sprintf("stopped (exit code %d)", code)
	}
}

func (m logModel) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	title := headerStyle.Width(m.width).Render("SERVER LOG")

	state := m.state
	if state == "" {
		state = "streaming"
	}
	stateLine := descStyle.Render("state: ") + keyStyle.Render(state)

	console := baseStyle.
		Width(m.width - 4).
		Render(m.viewport.View())

	help := keyStyle.Render("esc") + descStyle.Render(": quit")

	return lipgloss.JoinVertical(lipgloss.Center, title, stateLine, console, help)
}

// RunLogs connects to the daemon's event stream and follows it until the
// user quits.
func RunLogs(client *sdk.Client) {
	wsURL, err := client.GetWebSocketURL("/ws/events")
	if err != nil {
		log.Fatal("Error parsing base URL:", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		fmt.Printf("Error connecting to event stream: %v\n", err)
		return
	}
	defer conn.Close()

	sub := make(chan sdk.Event)

	go func() {
		defer close(sub)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var event sdk.Event
			if err := json.Unmarshal(message, &event); err == nil {
				sub <- event
			}
		}
	}()

	p := tea.NewProgram(
		logModel{sub: sub},
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		log.Printf("Error running logs UI: %v", err)
	}
}
