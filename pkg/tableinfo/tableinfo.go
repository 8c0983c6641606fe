package tableinfo

const (
	UsersTableName = "users"

	UserIDColumn           = "id"
	UserUsernameColumn     = "username"
	UserEmailColumn        = "email"
	UserPasswordHashColumn = "password_hash"
	UserCreatedAtColumn    = "created_at"
)

const (
	PostsTableName = "posts"

	PostIDColumn        = "id"
	PostTitleColumn     = "title"
	PostBodyColumn      = "body"
	PostAuthorColumn    = "author"
	PostCreatedAtColumn = "created_at"
	PostUpdatedAtColumn = "updated_at"
)

const (
	CommentsTableName = "comments"

	CommentIDColumn        = "id"
	CommentPostIDColumn    = "post_id"
	CommentParentIDColumn  = "parent_id"
	CommentUserIDColumn    = "user_id"
	CommentTextColumn      = "text"
	CommentIsReadColumn    = "is_read"
	CommentCreatedAtColumn = "created_at"
	CommentUpdatedAtColumn = "updated_at"

	// CommentParentFKConstraint guards parent_id; violating it on insert means
	// the parent was removed before the reply committed.
	CommentParentFKConstraint = "comments_parent_id_fkey"
)

const (
	NotificationsTableName = "notifications"

	NotificationIDColumn          = "id"
	NotificationRecipientIDColumn = "recipient_id"
	NotificationSenderIDColumn    = "sender_id"
	NotificationCommentIDColumn   = "comment_id"
	NotificationMessageColumn     = "message"
	NotificationCreatedAtColumn   = "created_at"
)
