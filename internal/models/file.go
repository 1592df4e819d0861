package models

// EntityType names the kind of record a file is attached to.
type EntityType string

const (
	EntityTask        EntityType = "task"
	EntityLead        EntityType = "lead"
	EntityTransaction EntityType = "transaction"
)

func (e EntityType) Valid() bool {
	switch e {
	case EntityTask, EntityLead, EntityTransaction:
		return true
	}
	return false
}

// FileAttachment associates an uploaded file with exactly one owning
// entity. The file storage service owns the bytes; we only keep the
// reference.
type FileAttachment struct {
	ID         string     `json:"id"`
	FileName   string     `json:"fileName"`
	FileSize   int64      `json:"fileSize"`
	FileType   string     `json:"fileType"`
	URL        string     `json:"url"`
	UploadedBy string     `json:"uploadedBy"`
	UploadedAt string     `json:"uploadedAt"`
	EntityType EntityType `json:"entityType"`
	EntityID   string     `json:"entityId"`
}
