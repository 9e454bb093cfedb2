package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"skillport/internal/convert"
)

// pickerItem adapts a discovered document to the bubbles list.
type pickerItem struct {
	doc      convert.Document
	selected bool
}

func (i pickerItem) Title() string {
	if i.selected {
		return "[x] " + i.doc.Path
	}
	return "[ ] " + i.doc.Path
}

func (i pickerItem) Description() string { return string(i.doc.Platform) }
func (i pickerItem) FilterValue() string { return i.doc.Path }

type pickerModel struct {
	list    list.Model
	done    bool
	aborted bool
}

func newPickerModel(docs []convert.Document) pickerModel {
	items := make([]list.Item, len(docs))
	for i, d := range docs {
		items[i] = pickerItem{doc: d}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select documents to convert (space toggles, enter confirms)"
	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			return m, tea.Quit
		case " ":
			if item, ok := m.list.SelectedItem().(pickerItem); ok {
				item.selected = !item.selected
				return m, m.list.SetItem(m.list.Index(), item)
			}
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string { return m.list.View() }

// pickDocuments discovers documents under root and lets the user choose
// interactively. Enter with nothing toggled converts the highlighted
// document.
func pickDocuments(root string) ([]convert.Document, error) {
	found, err := convert.Discover(root)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}

	final, err := tea.NewProgram(newPickerModel(found), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(pickerModel)
	if !ok || m.aborted || !m.done {
		return nil, fmt.Errorf("selection cancelled")
	}

	var docs []convert.Document
	for _, it := range m.list.Items() {
		if item, ok := it.(pickerItem); ok && item.selected {
			docs = append(docs, item.doc)
		}
	}
	if len(docs) == 0 {
		if item, ok := m.list.SelectedItem().(pickerItem); ok {
			docs = append(docs, item.doc)
		}
	}
	return docs, nil
}
