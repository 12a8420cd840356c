package dto

// ExportFile is a rendered report ready to be sent as an attachment
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportQuery selects the export file format
type ExportQuery struct {
	Format string `query:"format" validate:"omitempty,oneof=csv xlsx CSV XLSX"`
}
