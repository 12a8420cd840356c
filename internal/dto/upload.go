package dto

// UploadResponse points at a stored receipt file
type UploadResponse struct {
	FileURL string `json:"file_url"`
}
