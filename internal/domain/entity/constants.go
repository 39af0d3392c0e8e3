package entity

// File store areas
const (
	AreaUploads = "pdf"
	AreaMerged  = "merged_pdf"
)

// Upload limits
const (
	MaxUploadFiles = 10
)

// Date formats
const (
	// DatePattern matches the external dd-MM-yyyy form date
	DatePattern = `^\d{2}-\d{2}-\d{4}$`
)

// Input kinds recognised by the merge pipeline
const (
	InputKindImage    = "IMAGE"
	InputKindDocument = "DOCUMENT"
	InputKindSkipped  = "SKIPPED"
)
