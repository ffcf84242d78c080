package ui

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/appengine-ltd/fishing-friday/internal/catalog"
	"github.com/appengine-ltd/fishing-friday/internal/game"
	"github.com/appengine-ltd/fishing-friday/internal/logging"
)

var aFriday = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

func testSession(t *testing.T, day string) *game.Session {
	t.Helper()
	logging.SetOutput(io.Discard)
	t.Cleanup(func() { logging.SetOutput(os.Stderr) })

	s, err := game.NewSession(catalog.Default(), game.SessionConfig{
		Seed:             11,
		DayOverride:      day,
		StartingCurrency: game.DefaultStartingCurrency,
		Now:              aFriday,
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m menuModel, keys ...tea.KeyMsg) menuModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(menuModel)
	}
	return m
}

func TestViewShowsHeaderAndBonusNote(t *testing.T) {
	m := newMenuModel(AppConfig{Version: "dev", Session: testSession(t, "")})
	got := m.View()
	for _, want := range []string{
		"Today is Friday (Friday bonuses active!)",
		"Location: Forest Pond | Rod: Willow Sprig | Shells: 18",
		"Shimmering anomalies drift across the water...",
		"Message History",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, got)
		}
	}
}

func TestViewCalmNoteOffBonusDay(t *testing.T) {
	m := newMenuModel(AppConfig{Session: testSession(t, "Tuesday")})
	if !strings.Contains(m.View(), "Calm ripples wait for a bite.") {
		t.Fatalf("expected calm note on Tuesday")
	}
}

func TestCastKeyAppendsTrace(t *testing.T) {
	m := newMenuModel(AppConfig{Session: testSession(t, "")})
	before := len(m.messages)

	m = press(t, m, runes("c"))
	if len(m.messages) <= before {
		t.Fatalf("expected cast to add messages")
	}
	last := m.messages[len(m.messages)-1]
	if !strings.Contains(last, "journal") && !strings.Contains(last, "got away") {
		t.Fatalf("expected landing line last, got %q", last)
	}
}

func TestTravelPickerByNumber(t *testing.T) {
	m := newMenuModel(AppConfig{Session: testSession(t, "")})

	m = press(t, m, runes("t"))
	if m.screen != screenTravel {
		t.Fatalf("expected travel screen, got %v", m.screen)
	}
	if !strings.Contains(m.bodyText(), "> ") || !strings.Contains(m.bodyText(), "Forest Pond (current)") {
		t.Fatalf("expected cursor on current location:\n%s", m.bodyText())
	}

	m = press(t, m, runes("3"))
	if m.screen != screenMain {
		t.Fatalf("expected return to main screen")
	}
	if m.session.Location.Name != "Open Ocean" {
		t.Fatalf("expected Open Ocean, got %s", m.session.Location.Name)
	}
}

func TestRodPickerArrowsAndEnter(t *testing.T) {
	m := newMenuModel(AppConfig{Session: testSession(t, "")})

	m = press(t, m, runes("r"), tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.session.Progress.Equipment.Name != "Lumen Glass Rod" {
		t.Fatalf("expected Lumen Glass Rod, got %s", m.session.Progress.Equipment.Name)
	}
	if got := m.messages[len(m.messages)-1]; got != "Equipped Lumen Glass Rod" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestPickerEscapeLeavesStateAlone(t *testing.T) {
	m := newMenuModel(AppConfig{Session: testSession(t, "")})
	m = press(t, m, runes("t"), tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMain || m.session.Location.Name != "Forest Pond" {
		t.Fatalf("expected cancelled travel, screen=%v location=%s", m.screen, m.session.Location.Name)
	}
}

func TestJournalScreenEmpty(t *testing.T) {
	m := newMenuModel(AppConfig{Session: testSession(t, "")})
	m = press(t, m, runes("i"))
	if !strings.Contains(m.bodyText(), "Your journal is empty. Time to fish!") {
		t.Fatalf("expected empty journal, got:\n%s", m.bodyText())
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMain {
		t.Fatalf("expected main screen after esc")
	}
}

func TestJournalShowsCatchPortrait(t *testing.T) {
	m := newMenuModel(AppConfig{Session: testSession(t, "")})
	koi := catalog.Creature{Name: "Golden Koi", Location: "Forest Pond", Rarity: catalog.TierUncommon, Difficulty: 25, Value: 16}
	m.session.Progress.CatchLog = append(m.session.Progress.CatchLog, koi)
	m.lastCatch = &koi
	m.screen = screenJournal

	got := m.bodyText()
	if !strings.Contains(got, "Golden Koi (uncommon, worth 16 shells)") {
		t.Fatalf("expected journal entry, got:\n%s", got)
	}
	if !strings.Contains(got, "Latest catch: Golden Koi") || !strings.Contains(got, "▀") {
		t.Fatalf("expected rendered portrait, got:\n%s", got)
	}
}

func TestTypedCommandRunsThroughSession(t *testing.T) {
	m := newMenuModel(AppConfig{Session: testSession(t, "")})

	m = press(t, m, runes(":"))
	if !m.typing {
		t.Fatalf("expected input mode")
	}
	m = press(t, m, runes("go"), tea.KeyMsg{Type: tea.KeySpace}, runes("river run"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.typing {
		t.Fatalf("expected input mode to end on enter")
	}
	if m.session.Location.Name != "River Run" {
		t.Fatalf("expected River Run, got %s", m.session.Location.Name)
	}
	found := false
	for _, line := range m.messages {
		if line == "You travel to River Run." {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected travel message in history: %v", m.messages)
	}
}

func TestTypedQuitEndsProgram(t *testing.T) {
	m := newMenuModel(AppConfig{Session: testSession(t, "")})
	m.typing = true
	m.input = "bye"

	next, cmd := m.submitInput()
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if !next.(menuModel).session.Done() {
		t.Fatalf("expected session to be done")
	}
}

func TestBackspaceTrimsInput(t *testing.T) {
	m := newMenuModel(AppConfig{Session: testSession(t, "")})
	m = press(t, m, runes("/"), runes("cats"), tea.KeyMsg{Type: tea.KeyBackspace})
	if m.input != "cat" {
		t.Fatalf("expected %q, got %q", "cat", m.input)
	}
}

func TestMessageHistoryIsBounded(t *testing.T) {
	m := newMenuModel(AppConfig{Session: testSession(t, "")})
	for i := 0; i < 3*maxMessages; i++ {
		m.push("line")
	}
	if len(m.messages) != maxMessages {
		t.Fatalf("expected %d messages, got %d", maxMessages, len(m.messages))
	}
}

func TestQuitKey(t *testing.T) {
	m := newMenuModel(AppConfig{Session: testSession(t, "")})
	_, cmd := m.Update(runes("q"))
	if cmd == nil || !m.session.Done() {
		t.Fatalf("expected q to quit")
	}
}

func TestRunRequiresSession(t *testing.T) {
	if err := NewApp(AppConfig{}).Run(); err == nil {
		t.Fatalf("expected error without a session")
	}
}
