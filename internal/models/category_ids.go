package models

import "encoding/json"

// CategoryIDs normalizes the `category` field of a product payload, which
// clients may send as a single id or as an array of ids. Absence is modeled
// by a nil *CategoryIDs in the request DTO.
type CategoryIDs []string

// UnmarshalJSON accepts "id", ["id1","id2"] or null.
func (c *CategoryIDs) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*c = CategoryIDs{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*c = CategoryIDs(many)
	return nil
}
