// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package automation

import "testing"

func TestBuildReportMetaFieldAlwaysFirst(t *testing.T) {
	ctx := newTestContext()
	ctx.Queue("target body line")
	ctx.PushField("Goblin", false, false)
	ctx.MetaQueue("**DC**: 15")

	report := buildReport(ctx, "")
	if len(report.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(report.Fields))
	}
	if report.Fields[0].Title != "Meta" {
		t.Fatalf("Fields[0].Title = %q, want Meta regardless of push order", report.Fields[0].Title)
	}
}

func TestBuildReportEffectFieldAppendedLast(t *testing.T) {
	ctx := newTestContext()
	ctx.EffectQueue("Inspired (4 rounds)")

	report := buildReport(ctx, "")
	if len(report.Fields) != 1 || report.Fields[0].Title != "Effect" {
		t.Fatalf("Fields = %+v, want a single Effect field", report.Fields)
	}
}

func TestBuildReportFooterBecomesTrailingUntitledField(t *testing.T) {
	ctx := newTestContext()
	ctx.FooterQueue("Goblin: 4/10")
	ctx.FooterQueue("**Concentration**: DC 10")

	report := buildReport(ctx, "")
	last := report.Fields[len(report.Fields)-1]
	if last.Title != "" {
		t.Fatalf("footer field title = %q, want empty", last.Title)
	}
	if last.Body != "Goblin: 4/10\n**Concentration**: DC 10" {
		t.Fatalf("footer body = %q", last.Body)
	}
}

func TestBuildReportEmptyPhraseOmitsDescription(t *testing.T) {
	ctx := newTestContext()
	report := buildReport(ctx, "")
	if report.Description != "" {
		t.Fatalf("Description = %q, want empty for an empty phrase", report.Description)
	}
}

func TestBuildReportNoQueuesProducesNoFields(t *testing.T) {
	ctx := newTestContext()
	report := buildReport(ctx, "")
	if len(report.Fields) != 0 {
		t.Fatalf("Fields = %+v, want none when nothing was queued", report.Fields)
	}
}
