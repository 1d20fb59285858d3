package domain

import "time"

// User represents a registered account with its persona profile.
// The persona fields (profession, interest, mood, avatar description)
// condition generated replies sent on the user's behalf.
type User struct {
	ID                uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email             string    `gorm:"column:email;uniqueIndex;size:255;not null" json:"email"`
	Password          string    `gorm:"column:password;size:255;not null" json:"-"`
	Name              string    `gorm:"column:name;size:100;not null" json:"name"`
	Profession        string    `gorm:"column:profession;size:100" json:"profession"`
	Interest          string    `gorm:"column:interest;size:255" json:"interest"`
	Mood              string    `gorm:"column:mood;size:100" json:"mood"`
	AvatarURL         string    `gorm:"column:avatar_url;size:500" json:"avatar_url"`
	AvatarDescription string    `gorm:"column:avatar_description;type:text" json:"avatar_description"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// UserSummary is the public slice of a profile attached to messages
// and conversation entries.
type UserSummary struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Profession string `json:"profession,omitempty"`
	Mood       string `json:"mood,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty"`
}

// ToSummary strips the profile down to its public fields.
func (u *User) ToSummary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:         u.ID,
		Name:       u.Name,
		Profession: u.Profession,
		Mood:       u.Mood,
		AvatarURL:  u.AvatarURL,
	}
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Email             string `json:"email" binding:"required,email"`
	Password          string `json:"password" binding:"required,min=8"`
	Name              string `json:"name" binding:"required"`
	Profession        string `json:"profession"`
	Interest          string `json:"interest"`
	Mood              string `json:"mood"`
	AvatarDescription string `json:"avatar_description"`
}

// UpdateProfileRequest updates the persona fields of the current user.
type UpdateProfileRequest struct {
	Name              *string `json:"name"`
	Profession        *string `json:"profession"`
	Interest          *string `json:"interest"`
	Mood              *string `json:"mood"`
	AvatarURL         *string `json:"avatar_url"`
	AvatarDescription *string `json:"avatar_description"`
}
