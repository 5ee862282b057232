package models

// StorageFile is a listing entry from object storage, not a table row.
type StorageFile struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	URL  string `json:"url"`
}
