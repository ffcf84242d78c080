package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/appengine-ltd/fishing-friday/internal/catalog"
	"github.com/appengine-ltd/fishing-friday/internal/game"
	"github.com/appengine-ltd/fishing-friday/internal/parser"
)

type docFile struct {
	Name    string
	Title   string
	Content string
}

func main() {
	root := filepath.Join("docs", "reference", "catalog")
	if len(os.Args) > 1 {
		root = os.Args[1]
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		fatal(err)
	}

	files := generateDocs(catalog.Default(), parser.DefaultRegistry())
	for _, f := range files {
		path := filepath.Join(root, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", path)
	}

	index := generateCatalogIndex(files)
	indexPath := filepath.Join(root, "README.md")
	if err := os.WriteFile(indexPath, []byte(index), 0o644); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %s\n", indexPath)
}

func generateDocs(c *catalog.Catalog, r *parser.Registry) []docFile {
	return []docFile{
		generateRodsDoc(c),
		generateLocationsDoc(c),
		generateCreaturesDoc(c, false),
		generateCreaturesDoc(c, true),
		generateCommandsDoc(r),
	}
}

func generateCatalogIndex(files []docFile) string {
	var b strings.Builder
	b.WriteString("# Fishing Catalog\n\n")
	b.WriteString("Generated from the embedded catalog using `go run ./cmd/docsgen`.\n\n")
	for _, f := range files {
		b.WriteString(fmt.Sprintf("- [%s](./%s)\n", f.Title, f.Name))
	}
	return b.String()
}

func generateRodsDoc(c *catalog.Catalog) docFile {
	items := c.ListEquipment()

	var b strings.Builder
	b.WriteString("# Rods\n\n")
	b.WriteString("Source: `internal/catalog/catalog.yaml` (`equipment`).\n\n")
	b.WriteString(fmt.Sprintf("Total rods: **%d**.\n\n", len(items)))
	b.WriteString("| # | Name | Hook Bonus | Forgiveness | Forgiveness (Friday) | Description |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for i, e := range items {
		b.WriteString("| ")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(" | ")
		b.WriteString(escape(e.Name))
		b.WriteString(" | ")
		b.WriteString(formatPercent(e.HookBonus))
		b.WriteString(" | ")
		b.WriteString(strconv.Itoa(game.Forgiveness(e, false)))
		b.WriteString(" | ")
		b.WriteString(strconv.Itoa(game.Forgiveness(e, true)))
		b.WriteString(" | ")
		b.WriteString(escape(e.Description))
		b.WriteString(" |\n")
	}

	return docFile{Name: "rods.md", Title: "Rods", Content: b.String()}
}

func generateLocationsDoc(c *catalog.Catalog) docFile {
	items := c.ListLocations()
	rods := c.ListEquipment()

	var b strings.Builder
	b.WriteString("# Locations\n\n")
	b.WriteString("Source: `internal/catalog/catalog.yaml` (`locations`).\n\n")
	b.WriteString("Bite chance is shown per rod as `normal / Friday`.\n\n")
	b.WriteString("| # | Name | Hook Bonus | Base Payout | Creatures |")
	for _, r := range rods {
		b.WriteString(" ")
		b.WriteString(escape(r.Name))
		b.WriteString(" |")
	}
	b.WriteString("\n| --- | --- | --- | --- | --- |")
	b.WriteString(strings.Repeat(" --- |", len(rods)))
	b.WriteString("\n")
	for i, l := range items {
		b.WriteString("| ")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(" | ")
		b.WriteString(escape(l.Name))
		b.WriteString(" | ")
		b.WriteString(formatPercent(l.HookBonus))
		b.WriteString(" | ")
		b.WriteString(strconv.Itoa(l.BasePayout))
		b.WriteString(" | ")
		b.WriteString(strconv.Itoa(len(c.ListCreaturesAt(l.Name))))
		b.WriteString(" |")
		for _, r := range rods {
			b.WriteString(" ")
			b.WriteString(formatPercent(game.BiteChance(l, r, false)))
			b.WriteString(" / ")
			b.WriteString(formatPercent(game.BiteChance(l, r, true)))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	return docFile{Name: "locations.md", Title: "Locations", Content: b.String()}
}

// generateCreaturesDoc lists each creature with its share of bites at its
// location, using the same weighting the encounter resolver draws from.
func generateCreaturesDoc(c *catalog.Catalog, bonus bool) docFile {
	weights := c.RarityWeights()

	type row struct {
		creature catalog.Creature
		odds     float64
	}
	var rows []row
	for _, l := range c.ListLocations() {
		creatures := c.ListCreaturesAt(l.Name)
		total := 0.0
		for _, cr := range creatures {
			total += game.CreatureWeight(cr, weights, bonus)
		}
		for _, cr := range creatures {
			odds := 0.0
			if total > 0 {
				odds = game.CreatureWeight(cr, weights, bonus) / total
			}
			rows = append(rows, row{creature: cr, odds: odds})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].creature.Location != rows[j].creature.Location {
			return rows[i].creature.Location < rows[j].creature.Location
		}
		return rows[i].creature.Rarity < rows[j].creature.Rarity
	})

	name, title := "creatures.md", "Creatures"
	if bonus {
		name, title = "creatures-friday.md", "Creatures (Friday)"
	}

	var b strings.Builder
	b.WriteString("# " + title + "\n\n")
	b.WriteString("Source: `internal/catalog/catalog.yaml` (`creatures`, `rarity_weights`).\n\n")
	b.WriteString(fmt.Sprintf("Total creatures: **%d**.\n\n", len(rows)))
	b.WriteString("| Location | Name | Rarity | Difficulty | Value | Share of Bites |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for _, r := range rows {
		b.WriteString("| ")
		b.WriteString(escape(r.creature.Location))
		b.WriteString(" | ")
		b.WriteString(escape(r.creature.Name))
		b.WriteString(" | ")
		b.WriteString(r.creature.Rarity.String())
		b.WriteString(" | ")
		b.WriteString(strconv.Itoa(r.creature.Difficulty))
		b.WriteString(" | ")
		b.WriteString(strconv.Itoa(r.creature.Value))
		b.WriteString(" | ")
		b.WriteString(formatPercent(r.odds))
		b.WriteString(" |\n")
	}

	return docFile{Name: name, Title: title, Content: b.String()}
}

func generateCommandsDoc(r *parser.Registry) docFile {
	var b strings.Builder
	b.WriteString("# Commands\n\n")
	b.WriteString("Source: `internal/parser/registry.go` (`DefaultRegistry`).\n\n")
	b.WriteString("| Command | Aliases | Max Args |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, cmd := range r.Commands() {
		b.WriteString("| ")
		b.WriteString(escape(cmd.Canonical))
		b.WriteString(" | ")
		b.WriteString(escape(strings.Join(cmd.Aliases, ", ")))
		b.WriteString(" | ")
		b.WriteString(strconv.Itoa(cmd.MaxArgs))
		b.WriteString(" |\n")
	}
	return docFile{Name: "commands.md", Title: "Commands", Content: b.String()}
}

func formatPercent(v float64) string {
	if v == 0 {
		return "0%"
	}
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}

func escape(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", "<br>")
	return v
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
