package preview

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/application-tailor/internal/layout"
	"github.com/jonathan/application-tailor/internal/types"
)

func threePageDocument() *layout.Document {
	doc := &layout.Document{Size: layout.A4, Locale: types.LocaleDE, Style: types.StyleFormal}
	for i := 1; i <= 3; i++ {
		doc.Pages = append(doc.Pages, layout.Page{Number: i, Elements: []layout.Element{
			{Kind: layout.ElementText, Rect: layout.Rect{X: 50, Y: 60, W: 300, H: 14}, Text: fmt.Sprintf("Content of page %d", i)},
		}})
	}
	return doc
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m *Model, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := m.Update(msg)
	require.Same(t, m, next)
	return cmd
}

func TestNew(t *testing.T) {
	m := New(threePageDocument(), "CV")

	assert.Equal(t, 1, m.Page())
	assert.Equal(t, 3, m.PageCount())
	assert.Nil(t, m.Init())
	assert.Contains(t, m.View(), "Content of page 1")
	assert.Contains(t, m.View(), "Seite 1 von 3")
}

func TestModel_Navigation(t *testing.T) {
	m := New(threePageDocument(), "CV")

	tests := []struct {
		name string
		msg  tea.Msg
		want int
	}{
		{"previous on first page stays", tea.KeyMsg{Type: tea.KeyLeft}, 1},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, 2},
		{"n", runes("n"), 3},
		{"next on last page stays", tea.KeyMsg{Type: tea.KeySpace}, 3},
		{"p", runes("p"), 2},
		{"home", runes("g"), 1},
		{"end", runes("G"), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, press(t, m, tt.msg))
			assert.Equal(t, tt.want, m.Page())
		})
	}

	view := m.View()
	assert.Contains(t, view, "Content of page 3")
	assert.NotContains(t, view, "Content of page 1")
	assert.Contains(t, view, "Seite 3 von 3")
}

func TestModel_Quit(t *testing.T) {
	for _, msg := range []tea.Msg{runes("q"), tea.KeyMsg{Type: tea.KeyEsc}, tea.KeyMsg{Type: tea.KeyCtrlC}} {
		m := New(threePageDocument(), "CV")
		cmd := press(t, m, msg)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestModel_ScrollAndResize(t *testing.T) {
	m := New(threePageDocument(), "CV")
	press(t, m, tea.WindowSizeMsg{Width: 60, Height: 12})

	assert.Equal(t, 56, m.columns())
	assert.Equal(t, 5, m.visibleLines())
	require.Greater(t, m.maxOffset(), 0)

	press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.offset)

	press(t, m, runes("j"))
	press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.offset)

	// Changing page resets the scroll position.
	press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 0, m.offset)

	press(t, m, tea.WindowSizeMsg{Width: 500, Height: 500})
	assert.Equal(t, maxColumns, m.columns())
	assert.Equal(t, 0, m.maxOffset())
}

func TestModel_EmptyDocument(t *testing.T) {
	m := New(&layout.Document{Size: layout.A4}, "Empty")

	assert.Equal(t, 0, m.PageCount())
	press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.Page())
	assert.Contains(t, m.View(), "(empty document)")

	nilDoc := New(nil, "None")
	assert.Contains(t, nilDoc.View(), "(empty document)")
}
