package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Versioned adds the optimistic-lock token. Embed it anonymously.
// The store replaces RowVersion on every insert and update; callers echo the
// value they read back on edit so stale writes can be rejected.
type Versioned struct {
	RowVersion string `bson:"rowVersion" json:"rowVersion"`
}

func (v *Versioned) GetRowVersion() string  { return v.RowVersion }
func (v *Versioned) SetRowVersion(s string) { v.RowVersion = s }

// StoredFile is metadata for an object kept in file storage.
type StoredFile struct {
	ObjectKey   string    `bson:"objectKey" json:"-"` // Key in the bucket, internal use
	FileName    string    `bson:"fileName" json:"fileName"`
	ContentType string    `bson:"contentType" json:"contentType"`
	Size        int64     `bson:"size" json:"size"`
	UploadedAt  time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

// Option is an id/label pair used for dropdowns and selection lists.
type Option struct {
	ID   primitive.ObjectID `json:"id"`
	Text string             `json:"text"`
}
