package domain

import "encoding/json"

// FlexString absorbs the two shapes the same logical field takes across
// stored documents: a plain scalar or a single-element array. Older crawl
// runs wrote some fields as arrays, newer runs write scalars. The shape is
// resolved once here, at the JSON boundary; malformed or absent values
// degrade to the empty string and never produce an error.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var seq []json.RawMessage
	if err := json.Unmarshal(data, &seq); err == nil {
		if len(seq) == 0 {
			*f = ""
			return nil
		}
		var first string
		if err := json.Unmarshal(seq[0], &first); err == nil {
			*f = FlexString(first)
			return nil
		}
	}

	*f = ""
	return nil
}

func (f FlexString) String() string {
	return string(f)
}
