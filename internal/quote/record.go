package quote

import (
	"bytes"
	"encoding/json"
)

// AssetType classifies the instrument behind a ticker
type AssetType string

const (
	AssetStock  AssetType = "stock"
	AssetETF    AssetType = "etf"
	AssetCrypto AssetType = "crypto"
)

// Field is one named value of a Record
type Field struct {
	Key   string
	Value Value
}

// Record is a point-in-time quote snapshot. Fields keep the order in which
// they were extracted. A Record is not modified after construction.
type Record struct {
	assetType AssetType
	fields    []Field
	index     map[string]int
}

func newRecord(assetType AssetType, fields []Field) *Record {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Key] = i
	}
	return &Record{
		assetType: assetType,
		fields:    fields,
		index:     index,
	}
}

// AssetType returns the record's discriminant
func (r *Record) AssetType() AssetType {
	return r.assetType
}

// Get returns the value stored under key
func (r *Record) Get(key string) (Value, bool) {
	i, ok := r.index[key]
	if !ok {
		return Value{}, false
	}
	return r.fields[i].Value, true
}

// Keys returns the field names in extraction order
func (r *Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns a copy of the record's fields
func (r *Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len returns the number of fields
func (r *Record) Len() int {
	return len(r.fields)
}

// MarshalJSON encodes the record as a JSON object led by its asset type,
// followed by the fields in extraction order
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"assetType":`)

	t, err := json.Marshal(r.assetType)
	if err != nil {
		return nil, err
	}
	buf.Write(t)

	for _, f := range r.fields {
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
