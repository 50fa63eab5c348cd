// Package grouping turns flat per-day rows into the nested per-SKU shape the
// list endpoints return: one group per distinct SKU, in order of first
// occurrence, with that SKU's rows collected as its fact list.
package grouping

// Row is one flat record tagged with the SKU that owns it.
type Row[F any] struct {
	SKU  string
	Fact F
}

// Group is the nested form of all rows sharing one SKU within a store.
type Group[F any] struct {
	Store string `json:"store"`
	SKU   string `json:"sku"`
	Fact  []F    `json:"fact"`
}

// BySKU groups rows by SKU, preserving input order both across groups (first
// occurrence) and within each fact list. The store id is supplied out of band
// since every row in one request belongs to the same store. Always returns a
// non-nil slice so empty inputs serialize as [] rather than null.
func BySKU[F any](store string, rows []Row[F]) []Group[F] {
	result := make([]Group[F], 0, len(rows))
	index := make(map[string]int, len(rows))

	for _, row := range rows {
		i, ok := index[row.SKU]
		if !ok {
			index[row.SKU] = len(result)
			result = append(result, Group[F]{Store: store, SKU: row.SKU, Fact: []F{row.Fact}})
			continue
		}
		result[i].Fact = append(result[i].Fact, row.Fact)
	}

	return result
}
