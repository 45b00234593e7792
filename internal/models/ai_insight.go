package models

// AIInsight represents a piece of generated advisory content attached to a
// child. Content is free text; for analysis insights it holds serialized
// structured data. Confidence is a caller-chosen constant in [0,1].
type AIInsight struct {
	BaseModel
	ChildID    string  `gorm:"size:36;index" json:"childId"`
	Type       string  `gorm:"size:50;not null" json:"type"`
	Title      string  `gorm:"size:255;not null" json:"title"`
	Content    string  `gorm:"type:text;not null" json:"content"`
	Confidence float64 `json:"confidence"`
}

// OwnerChildID implements ChildOwned.
func (i *AIInsight) OwnerChildID() string { return i.ChildID }
