// Package authz holds the admission rules shared by post and comment
// operations: the role hierarchy gate, the ownership rule and the
// published-visibility rule.
package authz

import (
	"github.com/anjimamurali/BlogHub/internal/model"
)

// CanViewPost reports whether the post is visible to the viewer at all.
// Unpublished posts exist only for their author and admins; everyone
// else must see a not-found, never a forbidden, so that the existence
// of drafts does not leak.
func CanViewPost(viewer *model.User, post *model.Post) bool {
	if post.Published {
		return true
	}
	return viewer.IsAdmin() || viewer.ID == post.AuthorID
}

// CanMutatePost reports whether the viewer may update or delete the post.
func CanMutatePost(viewer *model.User, post *model.Post) bool {
	return viewer.ID == post.AuthorID || viewer.IsAdmin()
}

// CanMutateComment reports whether the viewer may update or delete the
// comment.
func CanMutateComment(viewer *model.User, comment *model.Comment) bool {
	return viewer.ID == comment.UserID || viewer.IsAdmin()
}

// CanComment reports whether the viewer may attach a comment to the
// post. Commenting follows the visibility rule: a draft accepts
// comments only from its author and admins.
func CanComment(viewer *model.User, post *model.Post) bool {
	return CanViewPost(viewer, post)
}
