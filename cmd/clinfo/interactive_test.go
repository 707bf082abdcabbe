package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteractive_Navigation(t *testing.T) {
	m := newInteractiveModel(newRuntime())
	assert.Equal(t, "Querying platforms...", m.View())

	m.Update(m.load())
	require.Len(t, m.nodes, 3)
	assert.Equal(t, "Platform Simulated Platform", m.nodes[0].title)
	assert.Equal(t, 1, m.nodes[1].depth)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 100})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.selected)
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.selected)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateShowAttrs, m.state)
	assert.Contains(t, m.View(), "Device Sim GPU")
	assert.Contains(t, m.View(), "CL_DEVICE_NAME")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	assert.Equal(t, stateFilter, m.state)
	for _, r := range "vendor_id" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Equal(t, "vendor_id", m.filter.Value())
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateShowAttrs, m.state)
	view := m.View()
	assert.Contains(t, view, "CL_DEVICE_VENDOR_ID")
	assert.NotContains(t, view, "CL_DEVICE_NAME")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateSelectNode, m.state)
	assert.Empty(t, m.filter.Value())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
