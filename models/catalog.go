package models

// CatalogRow is one data row of the spreadsheet, keyed by header name.
type CatalogRow map[string]string

type ProductPage struct {
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalRows  int          `json:"totalRows"`
	TotalPages int          `json:"totalPages"`
	Items      []CatalogRow `json:"items"`
}
