package items

import "github.com/janisto/echo-sortable/internal/service/item"

// Item is the API representation of a sortable item.
type Item struct {
	ID       int64  `json:"id"       cbor:"id"       example:"3"`
	Name     string `json:"name"     cbor:"name"     example:"item3"`
	Position int    `json:"position" cbor:"position" example:"0"`
}

// ListData is the response body for GET /items.
type ListData struct {
	Items []Item `json:"items" cbor:"items"`
	Total int    `json:"total" cbor:"total" example:"10"`
}

func toListData(items []item.Item) ListData {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		out = append(out, Item{ID: it.ID, Name: it.Name, Position: it.Position})
	}
	return ListData{Items: out, Total: len(out)}
}
