package dealcloud

import "encoding/json"

// Query is a predicate in DealCloud's small JSON query language. Supported
// operators are $eq, $contains, and the boolean $and.
type Query map[string]any

// Eq matches rows whose field equals value exactly.
func Eq(field string, value any) Query {
	return Query{field: map[string]any{"$eq": value}}
}

// Contains matches rows whose field contains the given text.
func Contains(field string, value string) Query {
	return Query{field: map[string]any{"$contains": value}}
}

// And combines predicates; all must match.
func And(queries ...Query) Query {
	parts := make([]Query, 0, len(queries))
	parts = append(parts, queries...)
	return Query{"$and": parts}
}

// JSON renders the predicate for the query URL parameter.
func (q Query) JSON() (string, error) {
	b, err := json.Marshal(q)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
