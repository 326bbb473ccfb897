package styleguide

import (
	"strings"

	"git.home.luguber.info/inful/kssbuilder/internal/util/sets"
)

// MissingAncestors returns every proper prefix of refs that is not itself in
// refs, each once, in the order it is first needed. For "a.b.c" the prefixes
// "a" and "a.b" are checked top-down. Prefixes are normalized the way the
// style guide normalizes references, so empty parts never yield a reference
// that collapses onto another one.
func MissingAncestors(refs []string, delim string) []string {
	if delim == "" || len(refs) == 0 {
		return nil
	}
	existing := sets.NewOrdered[string]()
	for _, ref := range refs {
		existing.Add(NormalizeReference(ref, delim))
	}
	added := sets.NewOrdered[string]()

	for _, ref := range existing.Values() {
		parts := strings.Split(ref, delim)
		for k := 1; k < len(parts); k++ {
			prefix := NormalizeReference(strings.Join(parts[:k], delim), delim)
			if prefix == "" || existing.Has(prefix) {
				continue
			}
			added.Add(prefix)
		}
	}
	if added.Len() == 0 {
		return nil
	}
	return added.Values()
}

// Complete returns sections followed by a synthesized section for every
// missing ancestor reference. The input slice is not modified.
func Complete(sections []*Section, delim string) []*Section {
	refs := make([]string, 0, len(sections))
	for _, s := range sections {
		refs = append(refs, s.Reference)
	}
	out := make([]*Section, 0, len(sections))
	out = append(out, sections...)
	for _, ref := range MissingAncestors(refs, delim) {
		out = append(out, synthesize(ref))
	}
	return out
}

// CompleteHierarchy adds a section for every missing ancestor reference so the
// hierarchy has no gaps, then rebuilds the index once if anything was added.
// It returns the sections it added.
func (sg *StyleGuide) CompleteHierarchy() []*Section {
	missing := MissingAncestors(sg.references(), sg.delimiter)
	if len(missing) == 0 {
		return nil
	}

	added := make([]*Section, 0, len(missing))
	sg.SetAutoInit(false)
	for _, ref := range missing {
		s := synthesize(ref)
		sg.AddSections(s)
		added = append(added, s)
	}
	sg.SetAutoInit(true)
	return added
}

func synthesize(ref string) *Section {
	s := NewSection(ref)
	s.Synthesized = true
	return s
}
