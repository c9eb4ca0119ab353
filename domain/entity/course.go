package entity

import (
	"errors"
	"strings"
	"time"
)

const DefaultCoverImage = "https://elearningindustry.com/wp-content/uploads/2020/12/how-to-improve-your-elearning-course-cover-design.png"

var ErrCourseFieldsRequired = errors.New("name, description and videolink are required")

type Course struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CoverImage  string    `json:"coverimage"`
	VideoLink   string    `json:"videolink"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewCourse(id, name, description, coverImage, videoLink string) (*Course, error) {
	c := &Course{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		CoverImage:  strings.TrimSpace(coverImage),
		VideoLink:   strings.TrimSpace(videoLink),
	}
	if c.CoverImage == "" {
		c.CoverImage = DefaultCoverImage
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	return c, nil
}

func (c *Course) Validate() error {
	if c.Name == "" || c.Description == "" || c.VideoLink == "" {
		return ErrCourseFieldsRequired
	}
	return nil
}
