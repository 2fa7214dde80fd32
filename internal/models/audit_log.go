package models

// AuditLog records mutations made through the API.
type AuditLog struct {
	Base
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceKey  string `gorm:"not null;index" json:"resource_key"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
