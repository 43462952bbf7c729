// Package mailing provides the template engine and email renderer for
// confirmation mailings, using the Liquid template language.
package mailing

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/osteele/liquid"
)

// Engine renders Liquid templates with strict variable checking: a template
// that references a variable missing from the render context fails instead
// of silently rendering blank. Parsed templates are cached by key.
type Engine struct {
	engine *liquid.Engine
	cache  sync.Map // map[string]*liquid.Template
}

// UndefinedVariableError reports template variables with no value in the
// render context.
type UndefinedVariableError struct {
	Variables []string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("template references undefined variables: %s", strings.Join(e.Variables, ", "))
}

// NewEngine creates a template engine with the custom filters registered.
func NewEngine() *Engine {
	e := &Engine{engine: liquid.NewEngine()}
	e.registerFilters()
	return e
}

func (e *Engine) registerFilters() {
	// Fallback value: {{ asset_label | default: "Learn more" }}
	e.engine.RegisterFilter("default", func(value interface{}, defaultVal string) interface{} {
		if value == nil {
			return defaultVal
		}
		strVal := fmt.Sprintf("%v", value)
		if strVal == "" || strVal == "<nil>" {
			return defaultVal
		}
		return value
	})

	// Capitalize first letter: {{ name | capitalize }}
	e.engine.RegisterFilter("capitalize", func(s string) string {
		if len(s) == 0 {
			return s
		}
		return strings.ToUpper(string(s[0])) + strings.ToLower(s[1:])
	})

	// Title case: {{ name | titlecase }}
	e.engine.RegisterFilter("titlecase", func(s string) string {
		return strings.Title(strings.ToLower(s))
	})

	// Truncate with ellipsis: {{ description | truncate: 80 }}
	e.engine.RegisterFilter("truncate", func(s string, length int) string {
		if len(s) <= length {
			return s
		}
		if length <= 3 {
			return s[:length]
		}
		return s[:length-3] + "..."
	})

	// URL encode: {{ email | urlencode }}
	e.engine.RegisterFilter("urlencode", func(s string) string {
		return url.QueryEscape(s)
	})

	// HTML escape: {{ user_input | escape }}
	e.engine.RegisterFilter("escape", func(s string) string {
		return html.EscapeString(s)
	})

	// Extract domain from email: {{ email | email_domain }}
	e.engine.RegisterFilter("email_domain", func(email string) string {
		parts := strings.Split(email, "@")
		if len(parts) == 2 {
			return parts[1]
		}
		return ""
	})
}

// Parse compiles a template string and returns any syntax errors.
func (e *Engine) Parse(templateStr string) error {
	_, err := e.engine.ParseString(templateStr)
	return err
}

// Render parses and renders a template against the given context. Undefined
// variable references and syntax defects are hard errors; no partial output
// is returned. cacheKey may be empty to skip caching.
func (e *Engine) Render(cacheKey, templateStr string, ctx map[string]interface{}) (string, error) {
	if undefined := undefinedVariables(templateStr, ctx); len(undefined) > 0 {
		return "", &UndefinedVariableError{Variables: undefined}
	}

	var tpl *liquid.Template
	if cacheKey != "" {
		if cached, ok := e.cache.Load(cacheKey); ok {
			tpl = cached.(*liquid.Template)
		}
	}

	if tpl == nil {
		parsed, err := e.engine.ParseString(templateStr)
		if err != nil {
			return "", fmt.Errorf("parse template: %w", err)
		}
		tpl = parsed
		if cacheKey != "" {
			e.cache.Store(cacheKey, tpl)
		}
	}

	out, err := tpl.RenderString(ctx)
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return out, nil
}

// varPattern matches {{ variable }} references, including filtered and
// dotted forms: {{ var }}, {{ var | filter }}, {{ var.nested }}.
var varPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_.]*?)(?:\s*\||\s*\}\})`)

// forPattern matches {% for item in collection %} to learn loop variables.
var forPattern = regexp.MustCompile(`\{%\s*for\s+([a-zA-Z_][a-zA-Z0-9_]*)\s+in\s`)

// undefinedVariables returns the template variables that have no value in
// the context. Loop variables declared by {% for %} tags and Liquid keywords
// are exempt.
func undefinedVariables(templateStr string, ctx map[string]interface{}) []string {
	loopVars := map[string]bool{}
	for _, m := range forPattern.FindAllStringSubmatch(templateStr, -1) {
		loopVars[m[1]] = true
	}

	var undefined []string
	seen := map[string]bool{}

	for _, match := range varPattern.FindAllStringSubmatch(templateStr, -1) {
		name := strings.TrimSpace(match[1])
		if seen[name] {
			continue
		}
		seen[name] = true

		root := strings.SplitN(name, ".", 2)[0]
		if loopVars[root] || isLiquidKeyword(root) {
			continue
		}
		if !variableExists(name, ctx) {
			undefined = append(undefined, name)
		}
	}

	return undefined
}

// variableExists checks if a dotted variable path resolves in the context.
func variableExists(varPath string, ctx map[string]interface{}) bool {
	parts := strings.Split(varPath, ".")

	var current interface{} = ctx
	for _, part := range parts {
		m, ok := current.(map[string]interface{})
		if !ok {
			return false
		}
		val, ok := m[part]
		if !ok {
			return false
		}
		current = val
	}
	return true
}

func isLiquidKeyword(name string) bool {
	keywords := map[string]bool{
		"forloop": true, "tablerowloop": true,
		"true": true, "false": true, "nil": true, "null": true,
		"empty": true, "blank": true,
	}
	return keywords[strings.ToLower(name)]
}
