package models

// Роли пользователей.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Статусы контента (ремиксы и комментарии).
const (
	ContentStatusPending   = "pending"
	ContentStatusPublished = "published"
	ContentStatusRejected  = "rejected"
)

// Типы модерируемого контента.
const (
	ContentTypeRemix   = "remix"
	ContentTypeComment = "comment"
	ContentTypeEdit    = "edit"
)
