package sdk

import "net/url"

// Multimap holds search filter criteria: string keys, each with one or more
// string values in insertion order. A repeated key expresses alternatives,
// for example several ids in one search. The zero value is an empty filter
// and is ready to use.
//
// Example:
//
//	var filter sdk.Multimap
//	filter.Add("status", "active")
//	filter.Add("id", "100ae20131cdbe1")
//	filter.Add("id", "200bf30242dcf2a")
//	client.Search(ctx, &filter, sdk.SortNone, sdk.DefaultPage)
type Multimap struct {
	keys   []string
	values map[string][]string
}

// Add appends value under key, preserving both key order and value order.
func (m *Multimap) Add(key, value string) *Multimap {
	if m.values == nil {
		m.values = make(map[string][]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = append(m.values[key], value)
	return m
}

// Values returns the values recorded under key, in insertion order.
func (m *Multimap) Values(key string) []string {
	if m == nil || m.values == nil {
		return nil
	}
	return m.values[key]
}

// Len reports the number of distinct keys.
func (m *Multimap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// appendTo copies all pairs into query.
func (m *Multimap) appendTo(query url.Values) {
	if m == nil {
		return
	}
	for _, key := range m.keys {
		for _, value := range m.values[key] {
			query.Add(key, value)
		}
	}
}
