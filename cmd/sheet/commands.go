package main

import (
	"cmp"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cory-johannsen/investigator/internal/config"
	"github.com/cory-johannsen/investigator/internal/export"
	"github.com/cory-johannsen/investigator/internal/game/builder"
	"github.com/cory-johannsen/investigator/internal/game/character"
	"github.com/cory-johannsen/investigator/internal/game/dice"
	"github.com/cory-johannsen/investigator/internal/game/ruleset"
	"github.com/cory-johannsen/investigator/internal/game/skill"
	"github.com/cory-johannsen/investigator/internal/i18n"
)

const commandHelp = `commands:
  show                          print the derived sheet
  name <name>                   rename the character
  attr <key> <value>            set one base attribute (snapped to 15-90, step 5)
  roll                          roll all eight attributes
  pointbuy <key>=<delta> ...    apply a point-buy plan from the base pool
  profession <id>               select a profession (clears skill points)
  professions                   list professions
  recommend [n]                 rank professions for the current attributes
  skill <id> <delta>            add or remove points on one skill
  skills [-search s] [-category c]
                                list skill rows grouped by category
  reset-skills                  clear every skill allocation
  reset                         discard the saved character
  export [-format f] [-dir d]   write a snapshot file
  help                          print this text
`

// app dispatches one command against the builder.
type app struct {
	out      io.Writer
	builder  *builder.Builder
	registry *ruleset.Registry
	catalog  *i18n.Catalog
	roller   *dice.Roller
	export   config.ExportConfig
	now      func() time.Time
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.show()
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "show":
		return a.show()
	case "name":
		return a.builder.Rename(ctx, strings.Join(rest, " "))
	case "attr":
		return a.setAttribute(ctx, rest)
	case "roll":
		if err := a.builder.SetAttributes(ctx, character.NewRandomizer(a.roller).Roll()); err != nil {
			return err
		}
		return a.show()
	case "pointbuy":
		return a.pointBuy(ctx, rest)
	case "profession":
		if len(rest) != 1 {
			return errors.New("usage: profession <id>")
		}
		return a.builder.SelectProfession(ctx, rest[0])
	case "professions":
		return a.professions()
	case "recommend":
		return a.recommend(rest)
	case "skill":
		return a.adjustSkill(ctx, rest)
	case "skills":
		return a.skills(rest)
	case "reset-skills":
		return a.builder.ResetSkills(ctx)
	case "reset":
		return a.builder.Reset(ctx)
	case "export":
		return a.exportSheet(rest)
	case "help":
		_, err := io.WriteString(a.out, commandHelp)
		return err
	}
	return fmt.Errorf("unknown command %q; run \"sheet help\"", cmd)
}

func (a *app) show() error {
	sheet := a.builder.Sheet()
	status := a.builder.Status()
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)

	profName := "-"
	if p := a.builder.Profession(); p != nil {
		profName = p.Name
	}
	fmt.Fprintln(tw, sheet.Name)
	fmt.Fprintf(tw, "%s\t%s\n", a.catalog.Text("profession"), profName)
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "\t\t%s\t%s\t%s\n",
		a.catalog.Text("threshold_regular"), a.catalog.Text("threshold_hard"), a.catalog.Text("threshold_extreme"))
	for _, attr := range ruleset.Attributes() {
		th := sheet.Thresholds[attr]
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", attr.Abbrev(), a.catalog.Attribute(attr), th.Regular, th.Hard, th.Extreme)
	}
	fmt.Fprintln(tw)

	sec := sheet.SecondaryStats
	for _, kv := range []struct {
		key   string
		value int
	}{{"hp", sec.HP}, {"san", sec.SAN}, {"luck", sec.Luck}, {"mp", sec.MP}, {"mov", sec.MOV}} {
		fmt.Fprintf(tw, "%s\t%d\n", a.catalog.Secondary(kv.key), kv.value)
	}
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "%s\t%d\t%s %d\n", a.catalog.Text("occupation_points"),
		status.Budget.Occupation, a.catalog.Text("remaining"), status.Remaining.Occupation)
	fmt.Fprintf(tw, "%s\t%d\t%s %d\n", a.catalog.Text("personal_points"),
		status.Budget.Personal, a.catalog.Text("remaining"), status.Remaining.Personal)
	fmt.Fprintf(tw, "\t%s\n", a.statusLabel(status))
	return tw.Flush()
}

func (a *app) statusLabel(s builder.Status) string {
	switch {
	case s.OverBudget:
		return a.catalog.Text("over_budget")
	case s.Complete:
		return a.catalog.Text("complete")
	}
	return a.catalog.Text("incomplete")
}

func (a *app) setAttribute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: attr <key> <value>")
	}
	key, err := ruleset.ParseAttribute(args[0])
	if err != nil {
		return err
	}
	value, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("attribute value %q: %w", args[1], err)
	}
	return a.builder.SetAttribute(ctx, key, value)
}

// pointBuyStep is one parsed key=delta argument.
type pointBuyStep struct {
	arg   string
	key   ruleset.Attribute
	delta int
}

// pointBuy applies every key=delta pair to a fresh pool and commits only a
// fully spent plan. The pool starts spent, so decreases are applied before
// increases; order within each group follows the arguments.
func (a *app) pointBuy(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: pointbuy <key>=<delta> ...")
	}
	steps := make([]pointBuyStep, 0, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("point-buy step %q: expected key=delta", arg)
		}
		key, err := ruleset.ParseAttribute(k)
		if err != nil {
			return err
		}
		delta, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("point-buy step %q: %w", arg, err)
		}
		steps = append(steps, pointBuyStep{arg: arg, key: key, delta: delta})
	}
	slices.SortStableFunc(steps, func(x, y pointBuyStep) int {
		return cmp.Compare(sign(x.delta), sign(y.delta))
	})

	pb := character.NewPointBuy()
	for _, st := range steps {
		if !pb.Adjust(st.key, st.delta) {
			return fmt.Errorf("point-buy step %q rejected with %d points remaining", st.arg, pb.Remaining())
		}
	}
	if !pb.Complete() {
		return fmt.Errorf("point-buy plan leaves %d points unspent", pb.Remaining())
	}
	if err := a.builder.SetAttributes(ctx, pb.Attributes()); err != nil {
		return err
	}
	return a.show()
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func (a *app) professions() error {
	current := a.builder.Input().ProfessionID
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, p := range a.registry.Professions() {
		mark := ""
		if p.ID == current {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, p.ID, p.Name, strings.Join(p.SignatureSkills, ", "))
	}
	return tw.Flush()
}

func (a *app) recommend(args []string) error {
	n := character.DefaultRecommendations
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("recommend count %q: %w", args[0], err)
		}
		n = v
	}
	recs := character.Recommend(a.builder.Input().Attributes, a.registry.Professions(), n)
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n", a.catalog.Text("recommended"))
	for i, r := range recs {
		fmt.Fprintf(tw, "%d.\t%s\t%s\t%d\n", i+1, r.Profession.ID, r.Profession.Name, r.OccupationPoints)
	}
	return tw.Flush()
}

func (a *app) adjustSkill(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: skill <id> <delta>")
	}
	delta, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("skill delta %q: %w", args[1], err)
	}
	if err := a.builder.AdjustSkill(ctx, args[0], delta); err != nil {
		return a.localize(args[0], err)
	}
	return nil
}

// localize replaces allocation rule errors with the catalog's wording.
func (a *app) localize(skillID string, err error) error {
	var msg string
	switch {
	case errors.Is(err, skill.ErrNotAllocatable):
		msg = a.catalog.Text("not_allocatable")
	case errors.Is(err, skill.ErrCeilingExceeded):
		ceiling := skill.Ceiling(skillID, a.builder.Profession())
		msg = a.catalog.Text("ceiling_exceeded", "ceiling", strconv.Itoa(ceiling))
	case errors.Is(err, skill.ErrNegativeAllocation):
		msg = a.catalog.Text("negative_allocation")
	case errors.Is(err, skill.ErrBudgetExceeded):
		msg = a.catalog.Text("budget_exceeded")
	default:
		return err
	}
	return fmt.Errorf("%s: %s", skillID, msg)
}

func (a *app) skills(args []string) error {
	fs := flag.NewFlagSet("skills", flag.ContinueOnError)
	fs.SetOutput(a.out)
	search := fs.String("search", "", "case-insensitive filter on id, name and description")
	category := fs.String("category", "", "only list one category")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cat := ruleset.Category(strings.ToLower(*category))
	if cat != "" && !cat.Valid() {
		return fmt.Errorf("unknown skill category %q", *category)
	}

	visible := make(map[string]bool)
	for _, s := range a.registry.SearchSkills(*search, cat) {
		visible[s.ID] = true
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, section := range []struct {
		title string
		rows  []skill.Row
	}{
		{a.catalog.Text("occupation_points"), a.builder.OccupationRows()},
		{a.catalog.Text("personal_points"), a.builder.PersonalRows()},
	} {
		var rows []skill.Row
		for _, r := range section.rows {
			if visible[r.Skill.ID] {
				rows = append(rows, r)
			}
		}
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(tw, "== %s\n", section.title)
		for _, g := range skill.GroupByCategory(rows) {
			fmt.Fprintf(tw, "-- %s\n", a.catalog.Category(g.Category))
			for _, r := range g.Rows {
				fmt.Fprintf(tw, "%s\t%s\t%d\t+%d\t%d/%d/%d\t%s\n",
					r.Skill.ID, r.Skill.Name, r.Initial, r.Allocated,
					r.Threshold.Regular, r.Threshold.Hard, r.Threshold.Extreme,
					adjustMarks(r))
			}
		}
	}
	return tw.Flush()
}

func adjustMarks(r skill.Row) string {
	var b strings.Builder
	if r.CanDecrease {
		b.WriteByte('-')
	}
	if r.CanIncrease {
		b.WriteByte('+')
	}
	return b.String()
}

func (a *app) exportSheet(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(a.out)
	formatName := fs.String("format", a.export.Format, "json or yaml")
	dir := fs.String("dir", a.export.Dir, "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	format, err := export.ParseFormat(*formatName)
	if err != nil {
		return err
	}

	rows := append(a.builder.OccupationRows(), a.builder.PersonalRows()...)
	profName := ""
	if p := a.builder.Profession(); p != nil {
		profName = p.Name
	}
	doc := export.NewDocument(a.builder.Sheet(), profName, rows, a.builder.Status().Remaining, a.now())
	path, err := export.WriteFile(*dir, doc, a.catalog.Text("default_export_name"), format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, path)
	return err
}
