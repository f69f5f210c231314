package repository

import "gorm.io/gorm"

// Visibility is the storage-level form of the post visibility policy:
// either "public posts only" or "public posts plus everything owned by one
// user". It exists so every enumeration path filters invisible posts inside
// the query instead of fetching and discarding them.
type Visibility struct {
	ownerID *uint
}

// PublicOnly matches public posts only.
func PublicOnly() Visibility {
	return Visibility{}
}

// PublicOrOwnedBy matches public posts and all posts owned by userID.
func PublicOrOwnedBy(userID uint) Visibility {
	return Visibility{ownerID: &userID}
}

// VisibleTo derives the visibility filter from an optional viewer identity.
// A nil viewer degenerates to PublicOnly.
func VisibleTo(viewerID *uint) Visibility {
	if viewerID == nil {
		return PublicOnly()
	}
	return PublicOrOwnedBy(*viewerID)
}

func (v Visibility) apply(tx *gorm.DB) *gorm.DB {
	if v.ownerID == nil {
		return tx.Where("posts.is_private = ?", false)
	}
	return tx.Where("posts.is_private = ? OR posts.author_id = ?", false, *v.ownerID)
}

// PostQuery is the typed query spec for post enumeration. Zero-value fields
// are not filtered on; Visibility always applies.
type PostQuery struct {
	AuthorID   *uint
	TagsAny    []string
	Visibility Visibility
}

func (q PostQuery) apply(tx *gorm.DB) *gorm.DB {
	if q.AuthorID != nil {
		tx = tx.Where("posts.author_id = ?", *q.AuthorID)
	}
	if len(q.TagsAny) > 0 {
		tx = tx.Distinct("posts.*").
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.name IN ?", q.TagsAny)
	}
	return q.Visibility.apply(tx)
}
