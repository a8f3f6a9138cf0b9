// Package i18n implements ports.Localizer over YAML message catalogs.
//
// A catalog file maps language codes to flat key/message tables:
//
//	en:
//	  onboarding.quizz.buttons.next: Next
//	  onboarding.quizz.buttons.finish: Finish
//	pt-BR:
//	  onboarding.quizz.buttons.next: Próxima
package i18n

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "en"

// Defaults are the built-in English messages.
var Defaults = map[string]string{
	"onboarding.quizz.buttons.next":   "Next",
	"onboarding.quizz.buttons.finish": "Finish",
}

// Catalog resolves keys for one language, falling back to the base language
// ("pt" for "pt-BR"), then to the built-in defaults, then to the key itself.
type Catalog struct {
	lang     string
	messages map[string]map[string]string
}

// New creates a catalog holding only the defaults.
func New(lang string) *Catalog {
	if lang == "" {
		lang = DefaultLanguage
	}
	return &Catalog{
		lang:     lang,
		messages: map[string]map[string]string{DefaultLanguage: copyMap(Defaults)},
	}
}

// Parse merges a YAML catalog document into c.
func (c *Catalog) Parse(data []byte) error {
	var doc map[string]map[string]string
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse catalog: %w", err)
	}
	for lang, msgs := range doc {
		if c.messages[lang] == nil {
			c.messages[lang] = make(map[string]string, len(msgs))
		}
		for k, v := range msgs {
			c.messages[lang][k] = v
		}
	}
	return nil
}

// Load creates a catalog for lang and merges the file at path, if any.
func Load(path, lang string) (*Catalog, error) {
	c := New(lang)
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if err := c.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Language returns the active language.
func (c *Catalog) Language() string {
	return c.lang
}

// Translate implements ports.Localizer. It never returns an empty string.
func (c *Catalog) Translate(key string) string {
	for _, lang := range c.chain() {
		if msg, ok := c.messages[lang][key]; ok && msg != "" {
			return msg
		}
	}
	return key
}

func (c *Catalog) chain() []string {
	chain := []string{c.lang}
	if base, _, found := strings.Cut(c.lang, "-"); found {
		chain = append(chain, base)
	}
	if c.lang != DefaultLanguage {
		chain = append(chain, DefaultLanguage)
	}
	return chain
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
