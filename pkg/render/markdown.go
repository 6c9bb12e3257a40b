package render

import (
	"fmt"
	"io"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/fioriscope/fioriscope/pkg/apps"
	"github.com/fioriscope/fioriscope/pkg/export"
)

// AppMarkdown writes the header panel and every facet panel of a result.
func AppMarkdown(w io.Writer, a *apps.Aggregate) error {
	doc := md.NewMarkdown(w)

	if !a.Succeeded() {
		doc.H1(a.FioriID).
			PlainText(Status(a).Detail).LF()
		return doc.Build()
	}

	info, ok := AppInfoPanel(a.Details)
	if !ok {
		doc.H1(a.FioriID).PlainText(NoAppInfo).LF()
		return doc.Build()
	}

	doc.H1(info.Title)
	meta := []string{
		md.Bold("Fiori ID:") + " " + info.FioriID,
		md.Bold("Release:") + " " + info.Release,
		md.Bold("Application Type:") + " " + info.ApplicationType,
		md.Bold("UI Technology:") + " " + info.UITechnology,
	}
	if info.Component != "" {
		meta = append(meta, md.Bold("Application Component:")+" "+info.Component)
	}
	if info.BSPName != "" {
		meta = append(meta, md.Bold("BSP Application:")+" "+info.BSPName)
	}
	if info.UI5ComponentID != "" {
		meta = append(meta, md.Bold("SAPUI5 Component ID:")+" "+info.UI5ComponentID)
	}
	doc.BulletList(meta...)
	if info.Deprecated {
		doc.Blockquote("⚠️ This application is marked as DEPRECATED in this release")
	}

	for _, p := range Panels(a) {
		writePanel(doc, p)
	}
	return doc.Build()
}

func writePanel(doc *md.Markdown, p Panel) {
	doc.H2(p.Title)
	if p.Empty() {
		doc.PlainText(p.EmptyMessage()).LF()
		return
	}

	doc.CodeBlocks(md.SyntaxHighlight("text"), p.CopyText)
	for _, item := range p.Items {
		heading := md.Bold(item.Heading)
		if item.Badge != "" {
			heading += " (" + item.Badge + ")"
		}
		doc.PlainText(heading).LF()
		if len(item.Details) > 0 {
			details := make([]string, 0, len(item.Details))
			for _, d := range item.Details {
				details = append(details, d.Label+": "+d.Value)
			}
			doc.BulletList(details...)
		}
	}
}

// ReportMarkdown writes a batch summary: one status row per identifier and,
// when rep is not nil, the consolidated sets.
func ReportMarkdown(w io.Writer, state *apps.State, rep *export.Report) error {
	doc := md.NewMarkdown(w)
	doc.H1("Fiori Apps Data " + state.Release)

	ok, deprecated, failed := state.Counts()
	doc.PlainText(fmt.Sprintf("%d succeeded, %d deprecated, %d failed", ok, deprecated, failed)).LF()

	rows := make([][]string, 0, len(state.Results))
	for _, line := range StatusLines(state.Results) {
		rows = append(rows, []string{line.FioriID, line.Label, line.Detail})
	}
	doc.H2("Status")
	doc.Table(md.TableSet{
		Header: []string{"Fiori ID", "Status", "Details"},
		Rows:   rows,
	})

	if rep == nil {
		doc.Blockquote("No valid apps found to generate Excel")
		return doc.Build()
	}

	doc.H2("Consolidated")
	for _, s := range rep.Consolidated.Sections() {
		doc.H3(fmt.Sprintf("%s (%d)", s.Title, len(s.Values)))
		if len(s.Values) == 0 {
			doc.PlainText("None").LF()
			continue
		}
		doc.CodeBlocks(md.SyntaxHighlight("text"), strings.Join(s.Values, "\n"))
	}
	return doc.Build()
}
