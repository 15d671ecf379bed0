package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Encode renders the cart as the JSON array stored in a persistence slot.
func Encode(c Cart) ([]byte, error) {
	items := c.Items
	if items == nil {
		items = []Entry{}
	}
	return json.Marshal(items)
}

// Decode parses a slot payload. An empty payload or JSON null is an empty cart.
func Decode(data []byte) (Cart, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Cart{Items: []Entry{}}, nil
	}
	var items []Entry
	if err := json.Unmarshal(data, &items); err != nil {
		return Cart{}, fmt.Errorf("%w: %v", ErrInvalidCart, err)
	}
	c := Cart{Items: items}
	if err := c.Validate(); err != nil {
		return Cart{}, err
	}
	return c, nil
}
