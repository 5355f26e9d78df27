package crud

import (
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wtfSocial/domain"
	"wtfSocial/errs"
)

// titleMaxLength is the maximum length of a post title.
const titleMaxLength = 255

// PostService manages Posts and computes the feed.
// It implements the domain.PostService interface.
type PostService struct {
	postValidator
}

// postValidator runs validations on incoming Post data.
// On success, it passes the data on to postGorm.
// Otherwise, it returns the error of the validation that has failed.
type postValidator struct {
	postGorm
}

// postGorm runs CRUD operations on the database using incoming Post data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type postGorm struct {
	db *gorm.DB
	// tags resolves tag IDs to records, shared with TagService.
	tags tagGorm
}

// NewPostService returns an instance of PostService.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		postValidator{
			postGorm{
				db:   db,
				tags: tagGorm{db: db},
			},
		},
	}
}

// Ensure the PostService struct properly implements the domain.PostService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.PostService = &PostService{}

// Create runs validations needed for creating new Post database records.
// Tags are referenced by ID and must already exist.
func (pv *postValidator) Create(post *domain.Post, tagIDs []int) error {
	err := runPostValFns(post,
		pv.authorIDValid,
		pv.titleRequired,
		pv.titleLength,
		pv.textRequired)
	if err != nil {
		return err
	}
	return pv.postGorm.Create(post, tagIDs)
}

// Update runs validations needed for updating existing Post database records.
// A nil tagIDs leaves the post's tag associations untouched.
func (pv *postValidator) Update(post *domain.Post, tagIDs []int) error {
	err := runPostValFns(post,
		pv.idValid,
		pv.authorIDValid,
		pv.titleRequired,
		pv.titleLength,
		pv.textRequired)
	if err != nil {
		return err
	}
	return pv.postGorm.Update(post, tagIDs)
}

// Delete runs validations needed for deleting existing Post database records.
func (pv *postValidator) Delete(post *domain.Post) error {
	err := runPostValFns(post, pv.idValid)
	if err != nil {
		return err
	}
	return pv.postGorm.Delete(post)
}

// runPostValFns runs any number of functions of type postValFn on the passed in Post object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runPostValFns(post *domain.Post, fns ...postValFn) error {
	for _, fn := range fns {
		if err := fn(post); err != nil {
			return err
		}
	}
	return nil
}

// A postValFn is any function that takes in a pointer to a domain.Post object and returns an error.
type postValFn func(post *domain.Post) error

// idValid makes sure that the passed in ID of a Post is greater than 0.
func (pv *postValidator) idValid(post *domain.Post) error {
	if post.ID <= 0 {
		return errs.Errorf(errs.EINVALID, "Invalid post ID.")
	}
	return nil
}

// authorIDValid makes sure that the post has an author.
func (pv *postValidator) authorIDValid(post *domain.Post) error {
	if post.AuthorID <= 0 {
		return errs.Errorf(errs.EINVALID, "Author ID is required.")
	}
	return nil
}

// titleRequired makes sure that the post's title is not empty.
func (pv *postValidator) titleRequired(post *domain.Post) error {
	if strings.TrimSpace(post.Title) == "" {
		return errs.Errorf(errs.EINVALID, "Title is required.")
	}
	return nil
}

// titleLength makes sure that the post's title does not exceed the maximum length.
func (pv *postValidator) titleLength(post *domain.Post) error {
	if utf8.RuneCountInString(post.Title) > titleMaxLength {
		return errs.Errorf(errs.EINVALID, "Title max length is %d characters.", titleMaxLength)
	}
	return nil
}

// textRequired makes sure that the post's text is not empty.
func (pv *postValidator) textRequired(post *domain.Post) error {
	if strings.TrimSpace(post.Text) == "" {
		return errs.Errorf(errs.EINVALID, "Text is required.")
	}
	return nil
}

// ByID retrieves a single Post by ID, along with its author and tags.
func (pg *postGorm) ByID(id int) (*domain.Post, error) {
	var post domain.Post
	err := pg.db.
		Preload("Author").
		Preload("Tags").
		First(&post, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "The post does not exist.")
		}
		return nil, err
	}
	return &post, nil
}

// Feed retrieves the posts visible to the given user: their own posts plus
// the posts of every user whose profile they follow. The optional title
// filter matches as a case-insensitive substring, the tag filter keeps posts
// having at least one of the given tag IDs. A post matching several tags
// appears once. Ordering is by creation time, then ID, oldest first.
func (pg *postGorm) Feed(userID int, filter domain.PostFilter) ([]domain.Post, error) {
	page, pageSize := normalizePage(filter.Page, filter.PageSize)

	// User IDs behind the profiles that the user's own profile follows.
	viewerProfile := pg.db.
		Table("profiles").
		Select("id").
		Where("user_id = ?", userID)
	followedAuthors := pg.db.
		Table("follows").
		Select("profiles.user_id").
		Joins("JOIN profiles ON profiles.id = follows.followed_id").
		Where("follows.follower_id IN (?)", viewerProfile)

	q := pg.db.
		Model(&domain.Post{}).
		Where("posts.author_id = ? OR posts.author_id IN (?)", userID, followedAuthors)
	if filter.Title != "" {
		q = q.Where("LOWER(posts.title) LIKE ?", "%"+strings.ToLower(filter.Title)+"%")
	}
	if len(filter.TagIDs) > 0 {
		q = q.
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Where("post_tags.tag_id IN ?", filter.TagIDs)
	}

	var posts []domain.Post
	err := q.
		Distinct("posts.*").
		Preload("Author").
		Preload("Tags").
		Order("posts.created_at, posts.id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Create stores the data from the Post object in a new database record,
// associating it with the tags referenced by tagIDs.
func (pg *postGorm) Create(post *domain.Post, tagIDs []int) error {
	tags, err := pg.tags.ByIDs(tagIDs)
	if err != nil {
		return err
	}
	post.Tags = tags
	return pg.db.Create(post).Error
}

// Update saves the Post object's data to its existing database record.
// If tagIDs is not nil, the post's tag associations are replaced.
func (pg *postGorm) Update(post *domain.Post, tagIDs []int) error {
	if tagIDs != nil {
		tags, err := pg.tags.ByIDs(tagIDs)
		if err != nil {
			return err
		}
		if len(tags) == 0 {
			if err := pg.db.Model(post).Association("Tags").Clear(); err != nil {
				return err
			}
		} else if err := pg.db.Model(post).Association("Tags").Replace(tags); err != nil {
			return err
		}
		post.Tags = tags
	}
	return pg.db.Omit(clause.Associations).Save(post).Error
}

// Delete removes a Post record from the database, along with its tag
// association rows. The tags themselves stay.
func (pg *postGorm) Delete(post *domain.Post) error {
	return pg.db.Select(clause.Associations).Delete(post).Error
}
