package models

// Post document field names
const (
	PostFieldTag         = "tag"
	PostFieldAuthorEmail = "authorEmail"
)

// Default and maximum page sizes for post listing
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Comment document field names
const (
	CommentFieldPostID         = "postId"
	CommentFieldCommenterEmail = "commenterEmail"
	CommentFieldText           = "text"
)
