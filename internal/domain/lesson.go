// internal/domain/lesson.go
package domain

import "time"

// Lesson is a unit of content inside a course. Duration is in seconds.
type Lesson struct {
	ID          int64     `db:"id" json:"id"`
	CourseID    int64     `db:"course_id" json:"course_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	VideoURL    string    `db:"video_url" json:"video_url,omitempty"`
	Duration    int       `db:"duration" json:"duration"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// NewLesson creates a new Lesson instance.
func NewLesson(courseID int64, title, description, videoURL string, duration int) *Lesson {
	now := time.Now().UTC()
	return &Lesson{
		CourseID:    courseID,
		Title:       title,
		Description: description,
		VideoURL:    videoURL,
		Duration:    duration,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
