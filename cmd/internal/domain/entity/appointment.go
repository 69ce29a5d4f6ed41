package entity

type Appointment struct {
	ID        int    `gorm:"primaryKey" bson:"-"`
	UUID      string `gorm:"uniqueIndex;not null" bson:"uuid"`
	Crp       string `gorm:"index;not null" bson:"crp"`
	PacientID int64  `gorm:"index" bson:"pacientId"`
	Date      string `gorm:"index" bson:"date"` // ISO-8601, see utils.ToISODate
	StartTime string `bson:"startTime"`
	EndTime   string `bson:"endTime"`
	Type      string `bson:"type"`
	Location  string `bson:"location"`
	CreatedAt int64  `gorm:"not null" bson:"createdAt"`
	UpdatedAt int64  `gorm:"not null" bson:"updatedAt"`
}

// AppointmentFilter narrows a listing. Zero values are not applied.
type AppointmentFilter struct {
	Crp       string
	PacientID *int64
	Date      string
}

// AppointmentChanges holds the only fields an update is allowed to persist.
type AppointmentChanges struct {
	Date      string
	StartTime string
	EndTime   string
	Type      string
	Location  string
	UpdatedAt int64
}
