package models

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mergestat/timediff"
	"github.com/samber/lo"

	dbmodels "github.com/delicious-app/delicious/database/models"
)

// ToUserView converts a database user to its view model.
func ToUserView(u *dbmodels.User) *UserView {
	if u == nil {
		return nil
	}
	return &UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsStaff:   u.IsStaff,
		AvatarURL: avatarURL(u.Profile.AvatarPath),
		Bio:       u.Profile.Bio,
		Joined:    humanize.Time(u.CreatedAt),
	}
}

// ToUserViews converts a slice of users.
func ToUserViews(users []dbmodels.User) []UserView {
	return lo.Map(users, func(u dbmodels.User, _ int) UserView {
		return *ToUserView(&u)
	})
}

// ToCategoryView converts a database category to its view model.
func ToCategoryView(c *dbmodels.Category) *CategoryView {
	if c == nil {
		return nil
	}
	return &CategoryView{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

// ToCategoryViews converts a slice of categories.
func ToCategoryViews(cats []dbmodels.Category) []CategoryView {
	return lo.Map(cats, func(c dbmodels.Category, _ int) CategoryView {
		return *ToCategoryView(&c)
	})
}

// ToRecipeView converts a database recipe to its view model. Aggregates
// (like count, average rating, viewer's like state) are supplied by the
// caller since they come from separate queries.
func ToRecipeView(r *dbmodels.Recipe, likeCount int64, avgRating float64, liked bool) *RecipeView {
	if r == nil {
		return nil
	}
	return &RecipeView{
		ID:               r.ID,
		Title:            r.Title,
		Slug:             r.Slug,
		Author:           r.Author.Username,
		Category:         ToCategoryView(r.Category),
		ShortDescription: r.ShortDescription,
		ImageURL:         mediaURL(r.ImagePath),
		Ingredients:      r.Ingredients,
		Steps:            r.Steps,
		Approved:         r.Approved,
		Created:          humanize.Time(r.CreatedAt),
		CreatedExact:     r.CreatedAt.Format("Jan 2, 2006"),
		LikeCount:        likeCount,
		AvgRating:        avgRating,
		Liked:            liked,
		Comments: lo.Map(r.Comments, func(c dbmodels.Comment, _ int) CommentView {
			return CommentView{
				Author:  c.User.Username,
				Content: c.Content,
				Posted:  timediff.TimeDiff(c.CreatedAt),
			}
		}),
	}
}

// ToRecipeViews converts listing rows; listings don't show aggregates that
// require per-row queries beyond the like count and rating supplied in
// bulk by the caller.
func ToRecipeViews(recipes []dbmodels.Recipe) []RecipeView {
	return lo.Map(recipes, func(r dbmodels.Recipe, _ int) RecipeView {
		return *ToRecipeView(&r, 0, 0, false)
	})
}

// ToFeedbackViews converts feedback entries.
func ToFeedbackViews(fbs []dbmodels.Feedback) []FeedbackView {
	return lo.Map(fbs, func(f dbmodels.Feedback, _ int) FeedbackView {
		author := ""
		if f.User != nil {
			author = f.User.Username
		}
		return FeedbackView{
			Author:  author,
			Message: f.Message,
			Posted:  timediff.TimeDiff(f.CreatedAt),
		}
	})
}

// ToErrorLogViews converts system error logs.
func ToErrorLogViews(entries []dbmodels.SystemErrorLog) []ErrorLogView {
	return lo.Map(entries, func(e dbmodels.SystemErrorLog, _ int) ErrorLogView {
		user := ""
		if e.User != nil {
			user = e.User.Username
		}
		return ErrorLogView{
			ID:       e.ID,
			User:     user,
			Path:     e.Path,
			Method:   e.Method,
			Message:  e.Message,
			Trace:    e.Trace,
			Occurred: occurredAt(e.CreatedAt),
		}
	})
}

// ToInviteCodeViews converts invite codes.
func ToInviteCodeViews(codes []dbmodels.InviteCode) []InviteCodeView {
	return lo.Map(codes, func(ic dbmodels.InviteCode, _ int) InviteCodeView {
		usedBy := ""
		if ic.UsedBy != nil {
			usedBy = ic.UsedBy.Username
		}
		return InviteCodeView{
			Code:    ic.Code,
			Active:  ic.Active,
			UsedBy:  usedBy,
			Created: timediff.TimeDiff(ic.CreatedAt),
		}
	})
}

func occurredAt(t time.Time) string {
	return t.Format("2006-01-02 15:04:05") + " (" + timediff.TimeDiff(t) + ")"
}

func avatarURL(path string) string {
	if path == "" {
		return "/media/profiles/default.png"
	}
	return "/media/" + path
}

func mediaURL(path string) string {
	if path == "" {
		return ""
	}
	return "/media/" + path
}
