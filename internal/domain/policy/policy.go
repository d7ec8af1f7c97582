// Package policy holds the domain-scope policy: which topics the assistant
// answers and how it refuses everything else.
package policy

import (
	"fmt"
	"strings"
)

// MaxRedirects caps how many redirect suggestions a refusal carries.
const MaxRedirects = 3

// SuggestionsPlaceholder marks where the rendered suggestion list goes in the template.
const SuggestionsPlaceholder = "{suggestions}"

// Topic is one allowed subject with the keywords that signal it.
type Topic struct {
	name     string
	keywords []string
}

// NewTopic validates and creates a Topic.
func NewTopic(name string, keywords []string) (Topic, error) {
	if name == "" {
		return Topic{}, fmt.Errorf("topic name is required")
	}
	if len(keywords) == 0 {
		return Topic{}, fmt.Errorf("topic %q needs at least one keyword", name)
	}
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" {
			return Topic{}, fmt.Errorf("topic %q has an empty keyword", name)
		}
	}
	return Topic{name: name, keywords: keywords}, nil
}

// Name returns the topic name.
func (t Topic) Name() string { return t.name }

// Keywords returns the keyword list.
func (t Topic) Keywords() []string { return t.keywords }

// Policy is the immutable domain-scope policy, loaded once at startup.
// Concurrent readers never race: there is no mutation after New.
type Policy struct {
	topics          []Topic
	refusalTemplate string
	redirects       []string
}

// New validates and creates a Policy.
func New(topics []Topic, refusalTemplate string, redirects []string) (Policy, error) {
	if len(topics) == 0 {
		return Policy{}, fmt.Errorf("at least one allowed topic is required")
	}
	if strings.TrimSpace(refusalTemplate) == "" {
		return Policy{}, fmt.Errorf("refusal template is required")
	}
	return Policy{topics: topics, refusalTemplate: refusalTemplate, redirects: redirects}, nil
}

// Topics returns the allowed topics.
func (p Policy) Topics() []Topic { return p.topics }

// RefusalTemplate returns the raw refusal template.
func (p Policy) RefusalTemplate() string { return p.refusalTemplate }

// RedirectSuggestions returns the ordered redirect suggestions.
func (p Policy) RedirectSuggestions() []string { return p.redirects }

// Refusal renders the refusal template with up to MaxRedirects suggestions.
// If the template carries no placeholder the suggestion list is appended.
func (p Policy) Refusal() string {
	suggestions := p.redirects
	if len(suggestions) > MaxRedirects {
		suggestions = suggestions[:MaxRedirects]
	}

	var list string
	if len(suggestions) > 0 {
		lines := make([]string, len(suggestions))
		for i, s := range suggestions {
			lines[i] = "- " + s
		}
		list = strings.Join(lines, "\n")
	}

	if strings.Contains(p.refusalTemplate, SuggestionsPlaceholder) {
		return strings.ReplaceAll(p.refusalTemplate, SuggestionsPlaceholder, list)
	}
	if list == "" {
		return p.refusalTemplate
	}
	return p.refusalTemplate + "\n\n" + list
}
