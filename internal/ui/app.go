package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/appengine-ltd/fishing-friday/internal/catalog"
	"github.com/appengine-ltd/fishing-friday/internal/game"
	"github.com/appengine-ltd/fishing-friday/internal/logging"
)

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string
	Session   *game.Session
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

func (a *App) Run() error {
	if a.cfg.Session == nil {
		return errors.New("ui: no session to play")
	}
	logging.Info("session started", logging.Fields{
		"seed":     a.cfg.Session.Seed(),
		"location": a.cfg.Session.Location.Name,
		"bonus":    a.cfg.Session.Day.BonusDay,
	})
	m := newMenuModel(a.cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(menuModel); ok {
		logging.Info("session ended", logging.Fields{
			"shells":  fm.session.Progress.Currency,
			"catches": len(fm.session.Progress.CatchLog),
		})
	}
	return nil
}

// --- Styles (lake blue) ---
var (
	blue       = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	brightBlue = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimBlue    = lipgloss.NewStyle().Foreground(lipgloss.Color("24"))
	border     = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

var tierPalette = map[string]lipgloss.Color{
	"white":         lipgloss.Color("7"),
	"cyan":          lipgloss.Color("6"),
	"yellow":        lipgloss.Color("3"),
	"magenta":       lipgloss.Color("5"),
	"bright_yellow": lipgloss.Color("11"),
}

func tierStyle(c *catalog.Catalog, tier catalog.RarityTier) lipgloss.Style {
	col, ok := tierPalette[c.TierColor(tier)]
	if !ok {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(col)
}

const (
	maxMessages = 16
	rule        = "------------------------------------------------------------"
	actionsHint = "[c]ast | [t]ravel | [r]od | [i]nventory | [q]uit | : type a command"
)

type screen int

const (
	screenMain screen = iota
	screenTravel
	screenRod
	screenJournal
)

type menuModel struct {
	cfg     AppConfig
	session *game.Session
	screen  screen
	idx     int

	typing   bool
	input    string
	messages []string

	lastCatch *catalog.Creature
}

func newMenuModel(cfg AppConfig) menuModel {
	return menuModel{
		cfg:      cfg,
		session:  cfg.Session,
		messages: []string{"Welcome to Fishing Friday! Press a bracketed letter to act."},
	}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		m.session.Quit()
		return m, tea.Quit
	}

	switch m.screen {
	case screenTravel, screenRod:
		return m.updatePicker(key)
	case screenJournal:
		switch key.String() {
		case "esc", "enter", "i", "q":
			m.screen = screenMain
		}
		return m, nil
	default:
		return m.updateMain(key)
	}
}

func (m menuModel) updateMain(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.typing {
		return m.updateInput(key)
	}

	switch key.String() {
	case "c":
		m.cast()
	case "t":
		m.screen = screenTravel
		m.idx = indexOfName(locationNames(m.session.Catalog()), m.session.Location.Name)
	case "r":
		m.screen = screenRod
		m.idx = indexOfName(equipmentNames(m.session.Catalog()), m.session.Progress.Equipment.Name)
	case "i":
		m.screen = screenJournal
	case "q":
		m.session.Quit()
		m.push("Thanks for visiting the water today! Happy Friday.")
		return m, tea.Quit
	case ":", "/", "enter":
		m.typing = true
		m.input = ""
	}
	return m, nil
}

func (m menuModel) updateInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEnter:
		return m.submitInput()
	case tea.KeyEsc:
		m.typing = false
		m.input = ""
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(key.Runes)
	}
	return m, nil
}

func (m menuModel) submitInput() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.input)
	m.typing = false
	m.input = ""
	if raw == "" {
		return m, nil
	}

	m.push("> " + raw)
	res, err := m.session.ExecuteCommand(raw)
	if err != nil {
		m.push(warnStyle.Render(fmt.Sprintf("Command failed: %v", err)))
		return m, nil
	}
	if res.Encounter != nil {
		m.pushEncounter(*res.Encounter)
	} else {
		m.push(strings.Split(res.Message, "\n")...)
	}
	if res.Quit {
		return m, tea.Quit
	}
	return m, nil
}

func (m menuModel) updatePicker(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.session.Catalog().ListLocations())
	if m.screen == screenRod {
		count = len(m.session.Catalog().ListEquipment())
	}

	switch k := key.String(); k {
	case "esc", "q":
		m.screen = screenMain
	case "up", "k":
		m.idx = (m.idx + count - 1) % count
	case "down", "j":
		m.idx = (m.idx + 1) % count
	case "enter":
		m.applyPick()
	default:
		if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
			if n := int(k[0] - '1'); n < count {
				m.idx = n
				m.applyPick()
			}
		}
	}
	return m, nil
}

func (m *menuModel) applyPick() {
	defer func() { m.screen = screenMain }()

	if m.screen == screenTravel {
		if err := m.session.Travel(m.idx); err != nil {
			m.push(warnStyle.Render(fmt.Sprintf("Travel failed: %v", err)))
			return
		}
		m.push("You travel to "+m.session.Location.Name+".", m.session.Location.Description)
		return
	}
	if err := m.session.Reequip(m.idx); err != nil {
		m.push(warnStyle.Render(fmt.Sprintf("Equip failed: %v", err)))
		return
	}
	m.push("Equipped " + m.session.Progress.Equipment.Name)
}

func (m *menuModel) cast() {
	res, err := m.session.Cast()
	if err != nil {
		m.push(warnStyle.Render(fmt.Sprintf("Cast failed: %v", err)))
		return
	}
	m.pushEncounter(res)
}

func (m *menuModel) pushEncounter(res game.EncounterResult) {
	m.push(res.Trace...)
	line := game.LandingLine(res)
	if res.Landed && res.Creature != nil {
		caught := *res.Creature
		m.lastCatch = &caught
		line = tierStyle(m.session.Catalog(), caught.Rarity).Render(line)
	}
	m.push(line)
}

func (m *menuModel) push(lines ...string) {
	m.messages = append(m.messages, lines...)
	if extra := len(m.messages) - maxMessages; extra > 0 {
		m.messages = append([]string(nil), m.messages[extra:]...)
	}
}

func (m menuModel) View() string {
	title := brightBlue.Render("FISHING FRIDAY") + dimBlue.Render("  cozy text edition")
	ver := dimBlue.Render(fmt.Sprintf("v%s  (%s)  %s", m.cfg.Version, m.cfg.Commit, m.cfg.BuildDate))

	var out strings.Builder
	out.WriteString(title + "\n" + ver + "\n")
	out.WriteString(border.Render(rule) + "\n")
	for _, line := range m.session.Header() {
		out.WriteString(blue.Render(line) + "\n")
	}
	out.WriteString(border.Render(rule) + "\n\n")
	out.WriteString(m.bodyText())
	return out.String()
}

func (m menuModel) bodyText() string {
	var out strings.Builder
	switch m.screen {
	case screenTravel:
		out.WriteString("Where to fish next?\n")
		out.WriteString(pickerText(m.session.LocationMenu(), m.idx))
		out.WriteString("\n" + dimBlue.Render("↑/↓ or 1-9 to choose, Enter to travel, Esc to cancel") + "\n")
	case screenRod:
		out.WriteString("Which rod?\n")
		out.WriteString(pickerText(m.session.RodMenu(), m.idx))
		out.WriteString("\n" + dimBlue.Render("↑/↓ or 1-9 to choose, Enter to equip, Esc to cancel") + "\n")
	case screenJournal:
		out.WriteString(m.journalText())
		out.WriteString("\n" + dimBlue.Render("Esc to return") + "\n")
	default:
		out.WriteString(dimBlue.Render("Message History") + "\n")
		for _, line := range m.messages {
			out.WriteString(line + "\n")
		}
		out.WriteString("\n" + border.Render(rule) + "\n")
		if m.typing {
			out.WriteString(brightBlue.Render("> "+m.input+"_") + "\n")
		}
		out.WriteString(dimBlue.Render(actionsHint) + "\n")
	}
	return out.String()
}

func (m menuModel) journalText() string {
	inv := m.session.Inventory()
	if len(inv.Catches) == 0 {
		return strings.Join(inv.Lines(), "\n") + "\n"
	}

	c := m.session.Catalog()
	var out strings.Builder
	out.WriteString("Caught fish:\n")
	for _, fish := range inv.Catches {
		line := fmt.Sprintf(" - %s (%s, worth %d shells)", fish.Name, fish.Rarity, fish.Value)
		out.WriteString(tierStyle(c, fish.Rarity).Render(line) + "\n")
	}
	out.WriteString(fmt.Sprintf("Total catalog value: %d shells\n", inv.TotalValue))
	if m.lastCatch != nil {
		out.WriteString("\nLatest catch: " + m.lastCatch.Name + "\n")
		out.WriteString(renderCatchANSI(*m.lastCatch, c.TierColor(m.lastCatch.Rarity), 32, 8))
	}
	return out.String()
}

// pickerText marks the cursor on menus laid out as a title line followed
// by one description line per entry.
func pickerText(menu []string, cursor int) string {
	var out strings.Builder
	for i, line := range menu {
		prefix := "  "
		if i%2 == 0 && i/2 == cursor {
			prefix = "> "
			line = brightBlue.Render(line)
		}
		out.WriteString(prefix + line + "\n")
	}
	return out.String()
}

func locationNames(c *catalog.Catalog) []string {
	var names []string
	for _, l := range c.ListLocations() {
		names = append(names, l.Name)
	}
	return names
}

func equipmentNames(c *catalog.Catalog) []string {
	var names []string
	for _, e := range c.ListEquipment() {
		names = append(names, e.Name)
	}
	return names
}

func indexOfName(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return 0
}
