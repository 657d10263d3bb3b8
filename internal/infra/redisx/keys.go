package redisx

import "time"

const (
	// catalog:version -> counter bumped on every catalog mutation
	KeyCatalogVersion = "catalog:version"

	// suggest:{version}:{term} -> JSON []Suggestion
	KeySuggest = "suggest:%d:%s"
)

var TTLSuggest = 5 * time.Minute
