package envelope

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Field spellings under which the entity identifier may arrive. Some source
// collections were indexed with the legacy capitalization.
const (
	entityKeyField    = "custId"
	entityKeyFieldAlt = "custID"
)

// hitsField marks the hit array inside the response envelope.
const hitsField = "hits"

// Hit is one raw hit extracted from a search response envelope, before
// classification. Fields holds the scalar payload of the matched document.
type Hit struct {
	Source    string
	EntityKey string
	Score     float64
	Fields    map[string]string
}

// wireHit is the documented envelope shape of a single hit object.
type wireHit struct {
	Index  string                     `json:"index"`
	ID     string                     `json:"id"`
	Score  json.RawMessage            `json:"score"`
	Fields map[string]json.RawMessage `json:"fields"`
}

// Parse extracts the ordered hit list from a raw search response blob.
//
// Parse never fails: a missing or truncated envelope, a missing hit array,
// or a syntax error partway through the array all yield whatever hits were
// extracted up to that point (possibly none). Individual hit objects are
// decoded independently, so one bad element does not spoil the rest. Hits
// without an entity identifier are discarded since they cannot be grouped.
func Parse(raw []byte) []Hit {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if !seekHitArray(dec) {
		return []Hit{}
	}

	hits := make([]Hit, 0, 16)
	for dec.More() {
		var elem json.RawMessage
		if err := dec.Decode(&elem); err != nil {
			// Syntax damage inside the array; everything before it stands.
			break
		}
		if hit, ok := decodeHit(elem); ok {
			hits = append(hits, hit)
		}
	}
	return hits
}

// seekHitArray advances the decoder to just inside the opening bracket of
// the envelope's hit array. Returns false when the envelope is not an
// object or carries no hit array.
func seekHitArray(dec *json.Decoder) bool {
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return false
	}
	for {
		keyTok, err := dec.Token()
		if err != nil {
			return false
		}
		if keyTok == json.Delim('}') {
			return false
		}
		key, ok := keyTok.(string)
		if !ok {
			return false
		}
		if key == hitsField {
			open, err := dec.Token()
			return err == nil && open == json.Delim('[')
		}
		// Not the hit array; skip this key's value wholesale.
		var skipped json.RawMessage
		if err := dec.Decode(&skipped); err != nil {
			return false
		}
	}
}

// decodeHit turns one hit-object element into a Hit. ok is false when the
// element is malformed or lacks an entity identifier.
func decodeHit(elem json.RawMessage) (Hit, bool) {
	var w wireHit
	if err := json.Unmarshal(elem, &w); err != nil {
		return Hit{}, false
	}

	fields := make(map[string]string, len(w.Fields))
	for name, value := range w.Fields {
		if s, ok := scalarString(value); ok {
			fields[name] = s
		}
	}

	key := fields[entityKeyField]
	if key == "" {
		key = fields[entityKeyFieldAlt]
	}
	if key == "" {
		return Hit{}, false
	}

	return Hit{
		Source:    w.Index,
		EntityKey: key,
		Score:     parseScore(w.Score),
		Fields:    fields,
	}, true
}

// parseScore reads a numeric score leniently: plain numbers, quoted numbers,
// or anything else collapse to their value or 0.0. An absent or unparseable
// score is never fatal.
func parseScore(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0.0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return 0.0
}

// scalarString renders a payload value as a string. Strings, numbers, and
// booleans are accepted; for multi-valued fields the first scalar element
// wins. Nested objects are not scalar payload and are dropped.
func scalarString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b), true
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return scalarString(list[0])
	}
	return "", false
}
