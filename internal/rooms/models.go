package rooms

import (
	"time"

	"github.com/google/uuid"
)

// Room is a bookable meeting room. The catalog is managed out of band; this
// service only reads it.
type Room struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Building  string    `gorm:"type:varchar(100);index" json:"building"`
	Floor     int       `json:"floor"`
	Capacity  int       `gorm:"not null" json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Room
func (Room) TableName() string {
	return "rooms"
}
