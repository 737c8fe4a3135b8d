package confirm

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestUpdate_YAnswersYes(t *testing.T) {
	m := model{message: "proceed?"}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	result := next.(model)
	assert.True(t, result.answer)
	assert.True(t, result.done)
	assert.NotNil(t, cmd)
}

func TestUpdate_NAnswersNo(t *testing.T) {
	m := model{message: "proceed?"}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	result := next.(model)
	assert.False(t, result.answer)
	assert.True(t, result.done)
}

func TestUpdate_EscAnswersNo(t *testing.T) {
	m := model{message: "proceed?"}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	result := next.(model)
	assert.False(t, result.answer)
	assert.True(t, result.done)
}

func TestUpdate_EnterDefaultsToCurrentAnswer(t *testing.T) {
	m := model{message: "proceed?"}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := next.(model)
	assert.False(t, result.answer)
	assert.True(t, result.done)
}

func TestUpdate_IgnoresNonKeyMessages(t *testing.T) {
	m := model{message: "proceed?"}
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	result := next.(model)
	assert.False(t, result.done)
	assert.Nil(t, cmd)
}

func TestView_EmptyOnceDone(t *testing.T) {
	m := model{message: "proceed?", done: true}
	assert.Empty(t, m.View())
}

func TestView_ShowsMessageWhileUndecided(t *testing.T) {
	m := model{message: "proceed?"}
	assert.Contains(t, m.View(), "proceed?")
}
