package storage

// RootCommentsParams selects root comments of a post. A nil UserID widens the
// selection to every author.
type RootCommentsParams struct {
	PostID int64
	UserID *int64
}
