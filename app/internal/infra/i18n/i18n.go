// Package i18n renders user-facing cart notices in the display locale.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"example.com/storefront-cart/app/internal/domain/notice"
)

var supported = []language.Tag{
	language.BrazilianPortuguese,
	language.English,
}

var messages = map[notice.Key]map[language.Tag]string{
	notice.KeyStockLimitReached: {
		language.BrazilianPortuguese: "Limite de estoque atingido!",
		language.English:             "Stock limit reached!",
	},
	notice.KeyAddFailed: {
		language.BrazilianPortuguese: "Não foi possível adicionar o item ao carrinho!",
		language.English:             "Could not add the item to the cart!",
	},
	notice.KeyRemoveFailed: {
		language.BrazilianPortuguese: "Não foi possível remover o item do carrinho!",
		language.English:             "Could not remove the item from the cart!",
	},
	notice.KeyUpdateFailed: {
		language.BrazilianPortuguese: "Não foi possível alterar a quantidade do item!",
		language.English:             "Could not change the item amount!",
	},
}

type Translator struct {
	cat      *catalog.Builder
	matcher  language.Matcher
	fallback language.Tag
}

// New builds the message catalog. defaultLocale is used when a request
// carries no usable Accept-Language.
func New(defaultLocale string) (*Translator, error) {
	fallback, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", defaultLocale, err)
	}

	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, texts := range messages {
		for tag, text := range texts {
			if err := b.SetString(tag, string(key), text); err != nil {
				return nil, err
			}
		}
	}

	t := &Translator{cat: b, matcher: language.NewMatcher(supported)}
	t.fallback = t.match(fallback)
	return t, nil
}

func (t *Translator) match(tags ...language.Tag) language.Tag {
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

// Default is the configured display locale.
func (t *Translator) Default() language.Tag {
	return t.fallback
}

// Negotiate picks the supported locale for an Accept-Language header value.
func (t *Translator) Negotiate(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.fallback
	}
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return t.fallback
	}
	return supported[idx]
}

func (t *Translator) Text(tag language.Tag, key notice.Key) string {
	p := message.NewPrinter(tag, message.Catalog(t.cat))
	return p.Sprintf(string(key))
}
