// Package models holds the view models rendered by the templates.
package models

// UserView is the template-facing shape of a user.
type UserView struct {
	ID        uint
	Username  string
	Email     string
	FirstName string
	LastName  string
	IsStaff   bool
	AvatarURL string
	Bio       string
	Joined    string
}

// CategoryView is the template-facing shape of a category.
type CategoryView struct {
	ID   uint
	Name string
	Slug string
}

// RecipeView is the template-facing shape of a recipe, including the
// aggregates shown on listing and detail pages.
type RecipeView struct {
	ID               uint
	Title            string
	Slug             string
	Author           string
	Category         *CategoryView
	ShortDescription string
	ImageURL         string
	Ingredients      string
	Steps            string
	Approved         bool
	Created          string
	CreatedExact     string
	LikeCount        int64
	AvgRating        float64
	Liked            bool
	Comments         []CommentView
}

// CommentView is the template-facing shape of a comment.
type CommentView struct {
	Author  string
	Content string
	Posted  string
}

// FeedbackView is the template-facing shape of a feedback entry.
type FeedbackView struct {
	Author  string
	Message string
	Posted  string
}

// ErrorLogView is the template-facing shape of a system error log.
type ErrorLogView struct {
	ID       uint
	User     string
	Path     string
	Method   string
	Message  string
	Trace    string
	Occurred string
}

// InviteCodeView is the template-facing shape of an invite code.
type InviteCodeView struct {
	Code    string
	Active  bool
	UsedBy  string
	Created string
}
