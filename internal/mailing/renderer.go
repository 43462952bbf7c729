package mailing

import (
	"fmt"
	"html"

	"github.com/ignite/leadmailer/internal/domain"
)

// DefaultTemplateName is the name given to the built-in template when it is
// synthesized for a brand with no templates of its own.
const DefaultTemplateName = "Default"

// DefaultTemplateHTML is the built-in confirmation template used when a
// brand has none. Loop variables carry pre-escaped text; see buildContext.
const DefaultTemplateHTML = `<h1>{{ brand.name }} - Confirmation</h1>
<p>Hi {{ lead.salutation }},</p>
<p>Thank you for reaching out to {{ brand.name }}. We're excited to highlight the following:</p>
<ul>
{% for feature in features %}
  <li><strong>{{ feature.name }}</strong>: {{ feature.highlight_text }}{% if feature.asset_url != "" %} - <a href="{{ feature.asset_url }}">{{ feature.asset_label | default: "Learn more" }}</a>{% endif %}</li>
{% endfor %}
</ul>
{% if copy.summary != "" %}<p>{{ copy.summary }}</p>{% endif %}
<p>Warm regards,<br>{{ brand.from_name }}</p>
`

// CopyResult is the copy generator's output threaded into rendering and
// persisted in the generated email's metadata.
type CopyResult struct {
	Summary      string `json:"summary"`
	ModelUsed    string `json:"model_used,omitempty"`
	InputTokens  int    `json:"input_tokens,omitempty"`
	OutputTokens int    `json:"output_tokens,omitempty"`
}

// RenderContext bundles everything a template can reference.
type RenderContext struct {
	Lead     *domain.Lead
	Brand    *domain.Brand
	Campaign *domain.Campaign // optional
	Features []domain.ResolvedFeature
	Tone     string
	Copy     *CopyResult // optional
}

// Renderer binds lead/brand/campaign/feature data into a brand template and
// produces an unpersisted GeneratedEmail in draft status.
type Renderer struct {
	engine *Engine
}

// NewRenderer creates a renderer with a fresh template engine.
func NewRenderer() *Renderer {
	return &Renderer{engine: NewEngine()}
}

// Render produces the email for the given template and context. The subject
// comes from the template's subject source when present, else the brand's
// default subject, else "Confirmation from {brand name}". Rendering is
// strict: undefined variables fail the whole render and nothing is returned.
func (r *Renderer) Render(tmpl *domain.EmailTemplate, ctx RenderContext) (*domain.GeneratedEmail, error) {
	tc := buildContext(ctx)

	body, err := r.engine.Render(bodyCacheKey(tmpl), tmpl.HTMLBody, tc)
	if err != nil {
		return nil, fmt.Errorf("render body: %w", err)
	}

	subject := ""
	if tmpl.SubjectTemplate != "" {
		subject, err = r.engine.Render("", tmpl.SubjectTemplate, tc)
		if err != nil {
			return nil, fmt.Errorf("render subject: %w", err)
		}
	} else if ctx.Brand.DefaultSubject != "" {
		subject = ctx.Brand.DefaultSubject
	} else {
		subject = fmt.Sprintf("Confirmation from %s", ctx.Brand.Name)
	}

	ge := &domain.GeneratedEmail{
		LeadID:   ctx.Lead.ID,
		Subject:  subject,
		HTMLBody: body,
		Status:   domain.EmailDraft,
		Metadata: domain.Metadata{"tone": ctx.Tone},
	}
	if ctx.Campaign != nil {
		id := ctx.Campaign.ID
		ge.CampaignID = &id
	}
	if tmpl.ID != "" {
		id := tmpl.ID
		ge.TemplateID = &id
	}
	if ctx.Copy != nil {
		ge.Metadata["copy"] = map[string]interface{}{
			"summary":       ctx.Copy.Summary,
			"model_used":    ctx.Copy.ModelUsed,
			"input_tokens":  ctx.Copy.InputTokens,
			"output_tokens": ctx.Copy.OutputTokens,
		}
	}
	return ge, nil
}

// bodyCacheKey includes the update timestamp, so an edited template parses
// fresh on its next render instead of hitting a stale cache entry.
func bodyCacheKey(tmpl *domain.EmailTemplate) string {
	if tmpl.ID == "" {
		return ""
	}
	return "tmpl:" + tmpl.ID + ":" + tmpl.UpdatedAt.UTC().Format("20060102150405")
}

// buildContext flattens the render context into the map the template sees.
// Untrusted text (lead-supplied names, feature descriptions, provider copy)
// is HTML-escaped here so templates cannot inject markup; nothing in the
// built-in template bypasses escaping.
func buildContext(ctx RenderContext) map[string]interface{} {
	esc := html.EscapeString

	lead := map[string]interface{}{
		"email":      esc(ctx.Lead.Email),
		"first_name": esc(ctx.Lead.FirstName),
		"last_name":  esc(ctx.Lead.LastName),
		"company":    esc(ctx.Lead.Company),
		"job_title":  esc(ctx.Lead.JobTitle),
		"salutation": esc(ctx.Lead.Salutation()),
	}

	brand := map[string]interface{}{
		"name":            esc(ctx.Brand.Name),
		"slug":            esc(ctx.Brand.Slug),
		"sender_name":     esc(ctx.Brand.SenderName),
		"from_name":       esc(ctx.Brand.FromName()),
		"default_subject": esc(ctx.Brand.DefaultSubject),
	}

	features := make([]map[string]interface{}, 0, len(ctx.Features))
	for _, f := range ctx.Features {
		features = append(features, map[string]interface{}{
			"name":              esc(f.Name),
			"short_description": esc(f.ShortDescription),
			"long_description":  esc(f.LongDescription),
			"asset_label":       esc(f.AssetLabel),
			"asset_url":         esc(f.AssetURL),
			"cta_text":          esc(f.CTAText),
			"highlight_text":    esc(f.HighlightText),
		})
	}

	tc := map[string]interface{}{
		"lead":     lead,
		"brand":    brand,
		"features": features,
		"tone":     esc(ctx.Tone),
	}

	if ctx.Campaign != nil {
		tc["campaign"] = map[string]interface{}{
			"name":        esc(ctx.Campaign.Name),
			"description": esc(ctx.Campaign.Description),
		}
	} else {
		tc["campaign"] = map[string]interface{}{"name": "", "description": ""}
	}

	copyCtx := map[string]interface{}{"summary": "", "model_used": ""}
	if ctx.Copy != nil {
		copyCtx["summary"] = esc(ctx.Copy.Summary)
		copyCtx["model_used"] = esc(ctx.Copy.ModelUsed)
	}
	tc["copy"] = copyCtx

	return tc
}
