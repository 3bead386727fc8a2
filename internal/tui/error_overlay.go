package tui

import "fmt"

// errorOverlayModel queues user-facing errors. Each dismiss shows the next
// one; the overlay disappears when the queue is empty.
type errorOverlayModel struct {
	messages []string
}

func (m *errorOverlayModel) push(message string) {
	m.messages = append(m.messages, message)
}

// dismiss drops the message on screen and reports whether more remain.
func (m *errorOverlayModel) dismiss() bool {
	if len(m.messages) > 0 {
		m.messages = m.messages[1:]
	}
	return len(m.messages) > 0
}

func (m *errorOverlayModel) View() string {
	if len(m.messages) == 0 {
		return ""
	}

	title := errorStyle.Render("Error")
	if more := len(m.messages) - 1; more > 0 {
		title += helpStyle.Render(fmt.Sprintf("  (+%d more)", more))
	}
	content := title + "\n\n" + m.messages[0] + "\n\n" + helpStyle.Render("enter / esc: dismiss")
	return overlayBoxStyle.Render(content)
}
