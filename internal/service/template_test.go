package service_test

import (
	"testing"

	"github.com/unclebandit/mailerbot-backend/internal/model"
	"github.com/unclebandit/mailerbot-backend/internal/service"
)

func TestRenderTemplateReplacesEveryOccurrence(t *testing.T) {
	rec := &model.Recipient{FirstName: "Amy"}

	got := service.RenderTemplate("Hi [NAME], yes you, [NAME]!", rec)
	want := "Hi Amy, yes you, Amy!"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRenderTemplateAllTokens(t *testing.T) {
	rec := &model.Recipient{
		FirstName:    "Amy",
		Company:      "Acme",
		Industry:     "Retail",
		Title:        "CTO",
		EmailAddress: "amy@acme.example",
	}

	got := service.RenderTemplate("[NAME] ([TITLE]) at [CN] ([IND]) via [MAIL]", rec)
	want := "Amy (CTO) at Acme (Retail) via amy@acme.example"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRenderTemplateAbsentTokenLeavesTextUnchanged(t *testing.T) {
	rec := &model.Recipient{FirstName: "Amy", Company: "Acme"}

	text := "No tokens in here at all."
	if got := service.RenderTemplate(text, rec); got != text {
		t.Errorf("expected unchanged text, got %q", got)
	}
}

func TestRenderTemplateMissingFieldIsEmptyString(t *testing.T) {
	rec := &model.Recipient{FirstName: "Amy"} // no company

	got := service.RenderTemplate("From [CN].", rec)
	want := "From ."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
