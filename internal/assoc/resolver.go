package assoc

import (
	"openwith/internal/desktop"
)

// Candidate is one ranked result of a lookup. When Action is non-nil the
// candidate launches that action of the entry instead of the entry itself.
type Candidate struct {
	Entry         *desktop.Entry
	Action        *desktop.Action
	IsDefault     bool
	XdgAssociated bool
	// XdgPriority is the tier index of the association that produced this
	// candidate; -1 for entries offered only because they declare the type.
	XdgPriority int
}

// Name returns the display label, qualified with the action name when the
// candidate is an action.
func (c Candidate) Name() string {
	if c.Action != nil {
		return c.Entry.Name + " - " + c.Action.Name
	}
	return c.Entry.Name
}

// ExecLine returns the command template to expand for this candidate.
func (c Candidate) ExecLine() string {
	if c.Action != nil {
		return c.Action.Exec
	}
	return c.Entry.Exec
}

// ID returns the entry id, suffixed with the action id for actions.
func (c Candidate) ID() string {
	if c.Action != nil {
		return c.Entry.ID + ":" + c.Action.ID
	}
	return c.Entry.ID
}

// Resolver ranks launch candidates for a MIME type from the scanned
// entries plus the association tiers, highest precedence first.
type Resolver struct {
	entries []*desktop.Entry
	byID    map[string]*desktop.Entry
	tiers   []*List
}

// NewResolver indexes the given entries; the tier order is the precedence
// order the lists were loaded in.
func NewResolver(entries []*desktop.Entry, tiers []*List) *Resolver {
	byID := make(map[string]*desktop.Entry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	return &Resolver{entries: entries, byID: byID, tiers: tiers}
}

// association is one (id, tier) pair in precedence order.
type association struct {
	id   string
	tier int
}

// Resolve returns the ranked candidates for mimeType: the default handler
// first, then the remaining explicitly associated entries in tier order,
// then entries that merely declare the type. Ids that resolve to no known
// entry are skipped; hidden and no-display entries are excluded even when
// associated. With includeActions set, each candidate's declared actions
// follow it immediately.
func (r *Resolver) Resolve(mimeType string, includeActions bool) []Candidate {
	ordered := r.associated(mimeType)

	var candidates []Candidate
	emitted := make(map[string]bool)

	add := func(entry *desktop.Entry, assoc bool, tier int, isDefault bool) {
		candidates = append(candidates, Candidate{
			Entry:         entry,
			IsDefault:     isDefault,
			XdgAssociated: assoc,
			XdgPriority:   tier,
		})
		if includeActions {
			for i := range entry.Actions {
				candidates = append(candidates, Candidate{
					Entry:         entry,
					Action:        &entry.Actions[i],
					XdgAssociated: assoc,
					XdgPriority:   tier,
				})
			}
		}
		emitted[entry.ID] = true
	}

	// The default handler is the first associated id that still resolves
	// to a usable entry; ids pointing at removed or undisplayable entries
	// fall through to the next in line.
	first := true
	for _, a := range ordered {
		entry := r.usable(a.id)
		if entry == nil {
			continue
		}
		if emitted[entry.ID] {
			continue
		}
		add(entry, true, a.tier, first)
		first = false
	}

	for _, entry := range r.entries {
		if emitted[entry.ID] || !r.declares(entry, mimeType) {
			continue
		}
		if !entry.IsApplication() || entry.NoDisplay || entry.Hidden {
			continue
		}
		add(entry, false, -1, false)
	}

	debugLog("resolved %d candidates for %s", len(candidates), mimeType)
	return candidates
}

// DefaultFor returns the default handler entry for mimeType, or nil when
// none is associated.
func (r *Resolver) DefaultFor(mimeType string) *desktop.Entry {
	for _, a := range r.associated(mimeType) {
		if entry := r.usable(a.id); entry != nil {
			return entry
		}
	}
	return nil
}

// associated flattens the tiers into one precedence-ordered id sequence
// for mimeType. Stored keys may be wildcard patterns; within a tier,
// matching keys contribute in sorted-key order, Defaults before Added.
func (r *Resolver) associated(mimeType string) []association {
	var ordered []association
	seen := make(map[string]bool)
	for tier, list := range r.tiers {
		for _, key := range list.Keys() {
			if !MatchesPattern(key, mimeType) {
				continue
			}
			for _, id := range list.Handlers(key) {
				if seen[id] {
					continue
				}
				seen[id] = true
				ordered = append(ordered, association{id: id, tier: tier})
			}
		}
	}
	return ordered
}

func (r *Resolver) usable(id string) *desktop.Entry {
	entry, ok := r.byID[id]
	if !ok || !entry.IsApplication() || entry.NoDisplay || entry.Hidden {
		return nil
	}
	return entry
}

func (r *Resolver) declares(entry *desktop.Entry, mimeType string) bool {
	for _, m := range entry.MimeTypes {
		if MatchesPattern(m, mimeType) {
			return true
		}
	}
	return false
}
