// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package automation

// Report is the structured output of one Automation.Run: an embed-shaped
// description plus fields, and a per-user bucket of private-message lines.
type Report struct {
	Description string
	Fields      []ReportField
	PMs         map[string][]string
}

// ReportField is one named section of the final embed.
type ReportField struct {
	Title  string
	Body   string
	Inline bool
}

// buildReport assembles the final Report from ctx's accumulated queues.
// The meta section, if any, is always inserted as the first field
// regardless of when it was populated relative to other field flushes.
func buildReport(ctx *AutomationContext, phrase string) *Report {
	ctx.InsertMetaField()

	fields := make([]ReportField, 0, len(ctx.fields)+1)
	for _, f := range ctx.fields {
		fields = append(fields, ReportField{Title: f.title, Body: f.body, Inline: f.inline})
	}
	for _, e := range ctx.effect {
		fields = append(fields, ReportField{Title: "Effect", Body: e})
	}

	description := ""
	if phrase != "" {
		description = "*" + phrase + "*"
	}

	var footer string
	if len(ctx.footer) > 0 {
		footer = joinLines(ctx.footer)
	}
	if footer != "" {
		fields = append(fields, ReportField{Title: "", Body: footer})
	}

	return &Report{
		Description: description,
		Fields:      fields,
		PMs:         ctx.pms,
	}
}
