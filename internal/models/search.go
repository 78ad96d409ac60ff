package models

// Типы и статусы строк результата поиска.
const (
	SearchTypeCompany   = "Firma"
	SearchTypeVisit     = "Ziyaret"
	SearchStatusCompany = "firma"
)

// SearchResult: унифицированная строка результата поиска.
type SearchResult struct {
	Date   string `json:"date"`
	Name   string `json:"name"`
	Detail string `json:"detail"`
	Status string `json:"status"`
	Type   string `json:"type"`
}
