// Package translate provides the locale/translation registry the
// renderer consults for every user-visible literal. The core only
// ever depends on the mms.Translator function type; this package is
// one concrete, swappable implementation of it, kept process-wide for
// convenience the way a CLI driver wants it.
package translate

import (
	"sync"

	"golang.org/x/exp/maps"
)

// Lang identifies a supported locale.
type Lang int

const (
	EnUS Lang = iota + 1
	EnUK
	ZhCN
	ZhTW
)

// Registry is a string-to-string mapping consulted during rendering.
// A zero Registry behaves as the identity translator: Translate
// returns msgid unchanged for every input.
type Registry struct {
	mu    sync.RWMutex
	lang  Lang
	table map[Lang]map[string]string
}

// NewRegistry builds an empty registry defaulting to en_US.
func NewRegistry() *Registry {
	return &Registry{lang: EnUS, table: map[Lang]map[string]string{}}
}

// SetLocale switches the active language. Safe to call before parsing
// begins; changing it concurrently with an in-flight render is
// undefined, matching the core's single-writer assumption.
func (r *Registry) SetLocale(lang Lang) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lang = lang
}

// Load installs the msgid->msgstr mapping for lang, replacing any
// prior mapping for that language.
func (r *Registry) Load(lang Lang, table map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.table[lang] = table
}

// Locales returns the languages with a loaded table, in no
// particular order.
func (r *Registry) Locales() []Lang {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Keys(r.table)
}

// Translate looks up msgid in the active language's table. If no
// table is loaded for the active language, or the table has no entry
// for msgid, it returns msgid unchanged - this is the Open Question
// #2 fix: the source's lookup fell through to returning the first
// non-matching entry's translation instead of the source string.
func (r *Registry) Translate(msgid string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	table, ok := r.table[r.lang]
	if !ok {
		return msgid
	}
	if v, ok := table[msgid]; ok {
		return v
	}
	return msgid
}
