package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"example.com/storefront-cart/app/internal/domain/notice"
	"example.com/storefront-cart/app/internal/infra/i18n"
)

func TestLog_Notify(t *testing.T) {
	tr, err := i18n.New("pt-BR")
	require.NoError(t, err)

	var buf bytes.Buffer
	n := NewLog(zerolog.New(&buf), tr)

	n.Notify(context.Background(), notice.Notice{Kind: notice.KindWarning, Key: notice.KeyStockLimitReached})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "warn", line["level"])
	require.Equal(t, "Limite de estoque atingido!", line["message"])
	require.Equal(t, "stock_limit_reached", line["key"])
}

func TestLog_NotifyError(t *testing.T) {
	tr, err := i18n.New("en")
	require.NoError(t, err)

	var buf bytes.Buffer
	NewLog(zerolog.New(&buf), tr).Notify(context.Background(), notice.Notice{Kind: notice.KindError, Key: notice.KeyAddFailed})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "error", line["level"])
	require.Equal(t, "Could not add the item to the cart!", line["message"])
}
