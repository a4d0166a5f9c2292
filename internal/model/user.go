package model

// User is an account owner. All pensum data hangs off a user.
type User struct {
	ID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Password string `gorm:"type:varchar(255);not null"                     json:"-"`
	Name     string `gorm:"type:varchar(100);not null"                     json:"name"`
	BaseModel
}

// TableName sets the table name.
func (User) TableName() string { return "users" }
