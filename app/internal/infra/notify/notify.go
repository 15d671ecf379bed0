// Package notify delivers cart notices outside the request/response path.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"example.com/storefront-cart/app/internal/domain/notice"
	"example.com/storefront-cart/app/internal/infra/i18n"
)

// Log writes every notice to the logger, rendered in the default locale.
type Log struct {
	log zerolog.Logger
	tr  *i18n.Translator
}

func NewLog(log zerolog.Logger, tr *i18n.Translator) *Log {
	return &Log{log: log, tr: tr}
}

func (l *Log) Notify(ctx context.Context, n notice.Notice) {
	ev := l.log.Error()
	if n.Kind == notice.KindWarning {
		ev = l.log.Warn()
	}
	ev.Str("kind", string(n.Kind)).
		Str("key", string(n.Key)).
		Msg(l.tr.Text(l.tr.Default(), n.Key))
}
