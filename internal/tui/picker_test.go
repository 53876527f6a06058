package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cellar-works/cellar-ctl/internal/profile"
)

func testGenerations() []profile.Generation {
	return []profile.Generation{
		{Number: 1, Link: "/p/default-1-link", Target: "aaaaaaaaaaaaaaaa-tool"},
		{Number: 2, Link: "/p/default-2-link", Target: "bbbbbbbbbbbbbbbb-tool"},
		{Number: 3, Link: "/p/default-3-link"},
	}
}

func TestGenerationItemMethods(t *testing.T) {
	item := generationItem{
		gen:     profile.Generation{Number: 2, Target: "bbbbbbbbbbbbbbbb-tool"},
		current: true,
	}

	t.Run("Title", func(t *testing.T) {
		title := item.Title()
		if !strings.Contains(title, "generation 2") {
			t.Errorf("Title() = %q", title)
		}
		if !strings.HasPrefix(title, "* ") {
			t.Error("current generation should be marked")
		}
	})

	t.Run("Description", func(t *testing.T) {
		desc := item.Description()
		if !strings.Contains(desc, "current") {
			t.Error("Description should mark the current generation")
		}
		if !strings.Contains(desc, "bbbbbbbbbbbbbbbb-tool") {
			t.Error("Description should contain the target path")
		}
	})

	t.Run("FilterValue", func(t *testing.T) {
		fv := item.FilterValue()
		if !strings.Contains(fv, "2") || !strings.Contains(fv, "bbbbbbbbbbbbbbbb-tool") {
			t.Errorf("FilterValue() = %q", fv)
		}
	})
}

func TestGenerationItem_Dangling(t *testing.T) {
	item := generationItem{gen: profile.Generation{Number: 3}}

	if !strings.Contains(item.Description(), "dangling") {
		t.Error("dangling generation should be flagged in the description")
	}
}

func TestPicker_EnterSelectsGeneration(t *testing.T) {
	m := NewPicker("default", testGenerations(), 2)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := updated.(Model).Result()

	if result.Action != ActionSwitch {
		t.Fatalf("Action = %v, want ActionSwitch", result.Action)
	}
	if result.Generation == nil || result.Generation.Number != 1 {
		t.Errorf("Generation = %+v, want number 1 (first item selected)", result.Generation)
	}
}

func TestPicker_QuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc"} {
		t.Run(key, func(t *testing.T) {
			m := NewPicker("default", testGenerations(), 2)

			var msg tea.Msg
			if key == "esc" {
				msg = tea.KeyMsg{Type: tea.KeyEsc}
			} else {
				msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
			}

			updated, _ := m.Update(msg)
			if updated.(Model).Result().Action != ActionQuit {
				t.Errorf("key %q should quit", key)
			}
		})
	}
}

func TestPicker_ViewShowsHelp(t *testing.T) {
	m := NewPicker("default", testGenerations(), 2)

	view := m.View()
	if !strings.Contains(view, "Switch") {
		t.Error("view should show the switch hint")
	}
	if !strings.Contains(view, "default") {
		t.Error("view should name the profile")
	}
}

func TestRunPicker_EmptyHistory(t *testing.T) {
	result, err := RunPicker("default", nil, 0)
	if err != nil {
		t.Fatalf("RunPicker failed: %v", err)
	}
	if result.Action != ActionQuit {
		t.Errorf("Action = %v, want ActionQuit for empty history", result.Action)
	}
}
