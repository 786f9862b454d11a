package catalog

import (
	"bytes"
	"encoding/json"
)

// Fields is an ordered string-to-string mapping used for the free-form
// product sections (characteristics, technical sheet). The column was
// historically an open JSON value, so decoding is tolerant: anything
// that is not a JSON object yields an empty Fields, and non-string
// member values are skipped instead of failing the row.
type Fields []Field

type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (f Fields) MarshalJSON() ([]byte, error) {
	if len(f) == 0 {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f *Fields) UnmarshalJSON(data []byte) error {
	*f = nil
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil // arrays, strings, numbers, null: render nothing
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, _ := keyTok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil
		}
		var val string
		if err := json.Unmarshal(raw, &val); err != nil {
			continue // non-string value, skip the pair
		}
		*f = append(*f, Field{Key: key, Value: val})
	}
	return nil
}
