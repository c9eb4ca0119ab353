package entity

import (
	"time"

	"github.com/learnhub/learnhub/domain/valueobject"
)

const DefaultProfilePic = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_1280.png"

type User struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Password       string           `json:"-"`
	Role           valueobject.Role `json:"role"`
	ProfilePic     string           `json:"profilePic"`
	AppliedCourses []AppliedCourse  `json:"appliedCourses,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// AppliedCourse tracks a learner's enrolment. Marks is set once the course is completed.
type AppliedCourse struct {
	CourseID  string `json:"courseId"`
	Completed bool   `json:"completed"`
	Marks     *int   `json:"marks,omitempty"`
}

func NewUser(id, name, email, password string, role valueobject.Role) *User {
	now := time.Now()
	return &User{
		ID:         id,
		Name:       name,
		Email:      email,
		Password:   password,
		Role:       role,
		ProfilePic: DefaultProfilePic,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CanApply reports whether the account is a learner; admins do not enrol.
func (u *User) CanApply() bool {
	return u.Role == valueobject.RoleUser
}

func (u *User) FindAppliedCourse(courseID string) (*AppliedCourse, bool) {
	for i := range u.AppliedCourses {
		if u.AppliedCourses[i].CourseID == courseID {
			return &u.AppliedCourses[i], true
		}
	}
	return nil, false
}
