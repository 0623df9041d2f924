package models

// Announcement document field names
const (
	AnnouncementFieldTitle       = "title"
	AnnouncementFieldDescription = "description"
	AnnouncementFieldAuthorName  = "authorName"
	AnnouncementFieldImage       = "image"
)

// UpdateAnnouncementRequest is the body of PATCH /announcements/{id}
type UpdateAnnouncementRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AuthorName  string `json:"authorName"`
	Image       string `json:"image"`
}
