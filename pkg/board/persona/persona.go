package persona

import (
	"fmt"
	"strings"
)

// InterjectionChance is the probability that a persona whose trigger keywords
// match the user's message actually takes the turn from the phase lead.
const InterjectionChance = 0.40

// Persona is an immutable board director identity. The ToneContract is passed
// verbatim as the system prompt to the response generator.
type Persona struct {
	Id              string
	Name            string
	Title           string
	ToneContract    string
	TriggerKeywords []string
}

// MatchesKeyword reports whether any trigger keyword occurs in text
// (case-insensitive substring match).
func (p *Persona) MatchesKeyword(text string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range p.TriggerKeywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Registry is a read-only catalog of personas, built once at startup and
// shared across all sessions.
type Registry struct {
	ordered []*Persona
	byId    map[string]*Persona
}

func NewRegistry(personas ...Persona) (*Registry, error) {
	if len(personas) == 0 {
		return nil, fmt.Errorf("registry requires at least one persona")
	}

	r := &Registry{
		ordered: make([]*Persona, 0, len(personas)),
		byId:    make(map[string]*Persona, len(personas)),
	}
	for i := range personas {
		p := personas[i]
		if p.Id == "" {
			return nil, fmt.Errorf("persona %q has empty id", p.Name)
		}
		if _, exists := r.byId[p.Id]; exists {
			return nil, fmt.Errorf("duplicate persona id: %s", p.Id)
		}
		r.ordered = append(r.ordered, &p)
		r.byId[p.Id] = &p
	}
	return r, nil
}

func (r *Registry) Get(id string) (*Persona, bool) {
	p, ok := r.byId[id]
	return p, ok
}

func (r *Registry) All() []*Persona {
	return r.ordered
}

// Others returns every persona except the one with the given id, preserving
// registration order. Used for interjection candidate scanning.
func (r *Registry) Others(excludeId string) []*Persona {
	others := make([]*Persona, 0, len(r.ordered))
	for _, p := range r.ordered {
		if p.Id != excludeId {
			others = append(others, p)
		}
	}
	return others
}

// FirstInterjector returns the first persona (excluding leadId) whose trigger
// keywords match the text, or nil when nobody wants to interject.
func (r *Registry) FirstInterjector(leadId, text string) *Persona {
	for _, p := range r.Others(leadId) {
		if p.MatchesKeyword(text) {
			return p
		}
	}
	return nil
}
