package enums

// ArticleStatus is the moderation state of a blog article.
type ArticleStatus string

const (
	ArticleStatusPending   ArticleStatus = "pending"
	ArticleStatusPublished ArticleStatus = "published"
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusRejected  ArticleStatus = "rejected"
)

var articleStatuses = set[ArticleStatus]{
	ArticleStatusPending,
	ArticleStatusPublished,
	ArticleStatusDraft,
	ArticleStatusRejected,
}

func (a ArticleStatus) String() string { return string(a) }

// IsValid reports whether a is a known ArticleStatus.
func (a ArticleStatus) IsValid() bool { return articleStatuses.has(a) }

// ParseArticleStatus accepts the wire value, ignoring surrounding space and case.
func ParseArticleStatus(value string) (ArticleStatus, error) {
	return articleStatuses.parse("article status", value)
}
