package tracker

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// BlobMap decodes a stored JSON blob into a map. Nil, empty or non-object
// blobs decode to an empty map, so schema validation reports every required
// field rather than choking on the blob itself.
func BlobMap(b datatypes.JSON) map[string]any {
	if len(b) == 0 {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil || m == nil {
		return map[string]any{}
	}
	return m
}

// Blob encodes a map for storage. Nil maps store as SQL NULL.
func Blob(m map[string]any) (datatypes.JSON, error) {
	if m == nil {
		return nil, nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
