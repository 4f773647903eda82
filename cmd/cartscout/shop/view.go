package shop

import (
	"fmt"
	"strings"

	"cartscout/internal/api"
	"cartscout/internal/cart"
	"cartscout/internal/results"
	"cartscout/internal/session"
	"cartscout/internal/suggest"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render(fmt.Sprintf("cartscout · %s", m.sess.Phase)))
	b.WriteString("\n\n")

	switch m.sess.Phase {
	case session.PhaseBuilding:
		b.WriteString(m.viewBuilding())
	case session.PhaseLocation:
		b.WriteString(m.viewLocation())
	case session.PhasePolling:
		b.WriteString(m.viewPolling())
	case session.PhaseResults:
		b.WriteString(m.viewResults())
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Notice.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.helpLine()))
	return b.String()
}

func (m Model) viewBuilding() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("What do you need?"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	entries := m.sess.Suggestions.Entries()
	for i, e := range entries {
		focused := m.inputMode == InputModePick && m.focus == i
		b.WriteString(m.viewPendingEntry(e, focused))
	}
	if len(entries) > 0 {
		b.WriteString("\n")
	}

	items := m.sess.Cart.Items()
	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("Cart (%d/%d)", len(items), cart.MaxItems)))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(m.styles.Muted.Render("  empty — type an item and press enter"))
		b.WriteString("\n")
	}
	for i, it := range items {
		marker := "  "
		if m.inputMode == InputModePick && m.focus == len(entries)+i {
			marker = m.styles.OptionKey.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%2d. %s\n", marker, i+1, it))
	}
	return b.String()
}

func (m Model) viewPendingEntry(e *suggest.Entry, focused bool) string {
	marker := "  "
	if focused {
		marker = m.styles.OptionKey.Render("> ")
	}

	switch e.Status {
	case suggest.StatusLoading:
		return fmt.Sprintf("%s%s checking %q...\n", marker, m.spinner.View(), e.Original)

	case suggest.StatusError:
		line := fmt.Sprintf("%s%s %q — %s", marker,
			m.styles.Error.Render("✗"), e.Original,
			m.styles.Muted.Render("no suggestions available"))
		if focused {
			line += m.styles.Muted.Render("  [r]etry · [k]eep as typed")
		}
		return line + "\n"

	case suggest.StatusComplete:
		opts := e.Options()
		if len(opts) == 0 {
			// Backend had nothing to offer; only the typed name is usable.
			line := fmt.Sprintf("%s%s %q — %s", marker,
				m.styles.Warning.Render("·"), e.Original,
				m.styles.Muted.Render("no match found"))
			if focused {
				line += m.styles.Muted.Render("  [k]eep as typed")
			}
			return line + "\n"
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s%s %q:\n", marker, m.styles.Success.Render("✓"), e.Original)
		for i, opt := range opts {
			key := m.styles.OptionKey.Render(fmt.Sprintf("[%d]", i+1))
			label := opt
			if i == 0 {
				label = m.styles.Bold.Render(opt)
			}
			fmt.Fprintf(&b, "      %s %s\n", key, m.styles.Option.Render(label))
		}
		if focused {
			b.WriteString(m.styles.Muted.Render("      pick a number, or [k]eep as typed"))
			b.WriteString("\n")
		}
		return b.String()
	}
	return ""
}

func (m Model) viewLocation() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Where should we look?"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d item(s) ready: %s\n\n",
		m.sess.Cart.Len(), m.styles.Muted.Render(strings.Join(m.sess.Cart.Items(), ", "))))

	b.WriteString("ZIP code: ")
	b.WriteString(m.zipInput.View())
	b.WriteString("\n\n")

	check := "[ ]"
	if m.sess.PrioritizeNearby {
		check = m.styles.Success.Render("[x]")
	}
	b.WriteString(fmt.Sprintf("%s prioritize nearby stores (press n)\n", check))
	return b.String()
}

func (m Model) viewPolling() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s\n\n", m.spinner.View(), m.styles.Title.Render("Comparing prices...")))

	status := "contacting the pricing service"
	switch m.sess.JobStatus {
	case api.StatusQueued:
		if m.sess.QueuePosition != nil {
			status = fmt.Sprintf("queued — position %d", *m.sess.QueuePosition)
		} else {
			status = "queued — waiting for a worker"
		}
	case api.StatusProcessing:
		status = "processing your list"
	}
	b.WriteString(m.styles.Muted.Render(status))
	b.WriteString("\n\n")

	b.WriteString(m.prog.ViewAs(float64(m.sess.Progress) / 100.0))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewResults() string {
	var b strings.Builder

	summary := results.Summarize(m.sess.Cart.Items(), m.sess.Results, m.sess.TotalTime)
	b.WriteString(m.styles.Title.Render(fmt.Sprintf(
		"Found prices for %d of %d items · %d offers · %s",
		summary.ItemsWithResults, summary.TotalItems, summary.TotalProducts, summary.TotalTime)))
	b.WriteString("\n\n")

	if m.ready {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(m.renderResultsContent())
	}
	return b.String()
}

// renderResultsContent builds the scrollable per-item cards.
func (m Model) renderResultsContent() string {
	groups := results.Build(m.sess.Cart.Items(), m.sess.Results)

	var cards []string
	for _, g := range groups {
		cards = append(cards, m.renderGroup(g))
	}
	return strings.Join(cards, "\n")
}

func (m Model) renderGroup(g results.Group) string {
	var b strings.Builder

	b.WriteString(m.styles.CardTitle.Render(g.Item))
	b.WriteString("\n")

	if !g.Found {
		b.WriteString(m.styles.Muted.Render("no products found"))
		return m.styles.Card.Render(b.String())
	}

	top := g.Best[0]
	b.WriteString(fmt.Sprintf("%s at %s%s",
		m.styles.BestPrice.Render("$"+top.Price.StringFixed(2)),
		top.Merchant, location(top.Location)))

	if n := g.OtherStores(); n > 0 {
		if m.showAll {
			for _, p := range g.Best[1:] {
				b.WriteString(fmt.Sprintf("\nsame price at %s%s", p.Merchant, location(p.Location)))
			}
		} else {
			b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  (+%d other store(s), press t)", n)))
		}
	}

	if m.showAll {
		for _, p := range g.Products[len(g.Best):] {
			b.WriteString(fmt.Sprintf("\n%s at %s%s",
				m.styles.Muted.Render("$"+p.Price.StringFixed(2)), p.Merchant, location(p.Location)))
		}
	}
	return m.styles.Card.Render(b.String())
}

func location(loc string) string {
	if loc == "" {
		return ""
	}
	return " (" + loc + ")"
}

func (m Model) helpLine() string {
	switch m.sess.Phase {
	case session.PhaseBuilding:
		if m.inputMode == InputModePick {
			return "↑/↓ move · 1-4 pick · k keep typed · r retry · d remove · esc type · ctrl+c quit"
		}
		return "enter add item · empty enter continue · tab navigate · ctrl+l clear · ctrl+c quit"
	case session.PhaseLocation:
		return "enter search · n nearby · esc back · ctrl+c quit"
	case session.PhasePolling:
		return "esc cancel · ctrl+c quit"
	case session.PhaseResults:
		return "t toggle details · n new search · ↑/↓ scroll · q quit"
	}
	return ""
}
