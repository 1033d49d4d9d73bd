// Package i18n provides the CLI's translation registry. A Registry is an
// immutable value: installing a pack returns a new Registry, so a handle
// captured by one part of the UI never changes underneath it.
package i18n

import (
	"context"
	"strings"

	"github.com/sarojnow24/smart-budget-tracker/internal/client/localstore"
)

const fallbackLang = "en"

// Pack is a versioned set of translated strings for one language. Installing
// a pack with a version not greater than the installed one is a no-op.
type Pack struct {
	Lang    string            `json:"lang"`
	Version int               `json:"version"`
	Strings map[string]string `json:"strings"`
}

type Registry struct {
	packs map[string]Pack
}

// NewRegistry builds a registry from the given packs. Later packs win over
// earlier ones for the same language only when their version is higher.
func NewRegistry(packs ...Pack) Registry {
	r := Registry{packs: map[string]Pack{}}
	for _, p := range packs {
		if cur, ok := r.packs[p.Lang]; ok && cur.Version >= p.Version {
			continue
		}
		r.packs[p.Lang] = clonePack(p)
	}
	return r
}

// Install returns a copy of the registry with the pack added. The receiver
// is left untouched.
func (r Registry) Install(p Pack) Registry {
	next := Registry{packs: make(map[string]Pack, len(r.packs)+1)}
	for lang, pack := range r.packs {
		next.packs[lang] = pack
	}
	if cur, ok := next.packs[p.Lang]; !ok || p.Version > cur.Version {
		next.packs[p.Lang] = clonePack(p)
	}
	return next
}

// Lookup resolves a key for a language, falling back to English and then
// to the key itself so missing translations stay visible rather than blank.
func (r Registry) Lookup(lang, key string) string {
	if p, ok := r.packs[lang]; ok {
		if s, ok := p.Strings[key]; ok {
			return s
		}
	}
	if p, ok := r.packs[fallbackLang]; ok {
		if s, ok := p.Strings[key]; ok {
			return s
		}
	}
	return key
}

// Languages lists the installed language codes.
func (r Registry) Languages() []string {
	langs := make([]string, 0, len(r.packs))
	for lang := range r.packs {
		langs = append(langs, lang)
	}
	return langs
}

// Version returns the installed version for a language, 0 when absent.
func (r Registry) Version(lang string) int {
	return r.packs[lang].Version
}

func clonePack(p Pack) Pack {
	dup := make(map[string]string, len(p.Strings))
	for k, v := range p.Strings {
		dup[k] = v
	}
	p.Strings = dup
	return p
}

// SavePack persists an installed pack so it survives restarts.
func SavePack(ctx context.Context, store *localstore.Store, p Pack) {
	localstore.Set(ctx, store, localstore.KeyLangPackPrefix+p.Lang, p)
}

// LoadPacks reads every persisted language pack from the local store.
func LoadPacks(ctx context.Context, store *localstore.Store) []Pack {
	var packs []Pack
	for _, key := range store.Keys(ctx, localstore.KeyLangPackPrefix) {
		lang := strings.TrimPrefix(key, localstore.KeyLangPackPrefix)
		p := localstore.Get(ctx, store, key, Pack{})
		if p.Lang == "" {
			p.Lang = lang
		}
		if len(p.Strings) > 0 {
			packs = append(packs, p)
		}
	}
	return packs
}

// Builtin returns the packs compiled into the binary.
func Builtin() []Pack {
	return []Pack{
		{
			Lang:    "en",
			Version: 1,
			Strings: map[string]string{
				"greeting":           "Welcome to Smart Budget Tracker",
				"goodbye":            "Bye!",
				"backup.done":        "Backup uploaded",
				"backup.available":   "A newer backup exists on the server",
				"restore.merged":     "Backup merged into local data",
				"restore.replaced":   "Local data replaced from backup",
				"restore.skipped":    "Backup skipped, local data kept",
				"wallet.switched":    "Active wallet switched",
				"login.ok":           "Logged in",
				"logout.ok":          "Logged out",
				"error.offline":      "Server is unreachable, try again later",
				"error.too_large":    "Snapshot exceeds the backup size limit",
				"error.timeout":      "Upload timed out, backup state unknown",
				"error.unauthorized": "Please log in first",
			},
		},
		{
			Lang:    "de",
			Version: 1,
			Strings: map[string]string{
				"greeting":        "Willkommen bei Smart Budget Tracker",
				"goodbye":         "Tschüss!",
				"backup.done":     "Backup hochgeladen",
				"restore.skipped": "Backup übersprungen, lokale Daten behalten",
				"login.ok":        "Angemeldet",
				"logout.ok":       "Abgemeldet",
				"error.offline":   "Server nicht erreichbar, bitte später erneut versuchen",
			},
		},
	}
}
