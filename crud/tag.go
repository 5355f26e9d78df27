package crud

import (
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"wtfSocial/domain"
	"wtfSocial/errs"
)

// tagNameMaxLength is the maximum length of a tag name.
const tagNameMaxLength = 63

// TagService manages Tags.
// It implements the domain.TagService interface.
type TagService struct {
	tagValidator
}

// tagValidator runs validations on incoming Tag data.
// On success, it passes the data on to tagGorm.
// Otherwise, it returns the error of the validation that has failed.
type tagValidator struct {
	tagGorm
}

// tagGorm runs CRUD operations on the database using incoming Tag data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type tagGorm struct {
	db *gorm.DB
}

// NewTagService returns an instance of TagService.
func NewTagService(db *gorm.DB) *TagService {
	return &TagService{
		tagValidator{
			tagGorm{
				db: db,
			},
		},
	}
}

// Ensure the TagService struct properly implements the domain.TagService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.TagService = &TagService{}

// Create runs validations needed for creating new Tag database records.
func (tv *tagValidator) Create(tag *domain.Tag) error {
	err := runTagValFns(tag,
		tv.nameRequired,
		tv.nameMaxLength)
	if err != nil {
		return err
	}
	return tv.tagGorm.Create(tag)
}

// runTagValFns runs any number of functions of type tagValFn on the passed in Tag object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runTagValFns(tag *domain.Tag, fns ...tagValFn) error {
	for _, fn := range fns {
		if err := fn(tag); err != nil {
			return err
		}
	}
	return nil
}

// A tagValFn is any function that takes in a pointer to a domain.Tag object and returns an error.
type tagValFn func(tag *domain.Tag) error

// nameRequired makes sure that the tag's name is not empty.
func (tv *tagValidator) nameRequired(tag *domain.Tag) error {
	if strings.TrimSpace(tag.Name) == "" {
		return errs.Errorf(errs.EINVALID, "Tag name is required.")
	}
	return nil
}

// nameMaxLength makes sure that the tag's name does not exceed the maximum length.
func (tv *tagValidator) nameMaxLength(tag *domain.Tag) error {
	if utf8.RuneCountInString(tag.Name) > tagNameMaxLength {
		return errs.Errorf(errs.EINVALID, "Tag name max length is %d characters.", tagNameMaxLength)
	}
	return nil
}

// All retrieves all tags, ordered by ID.
func (tg *tagGorm) All() ([]domain.Tag, error) {
	var tags []domain.Tag
	err := tg.db.Order("id").Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// ByIDs retrieves the tags with the given IDs. Posts may only reference
// existing tags, so a missing ID is an error, not a silent skip.
func (tg *tagGorm) ByIDs(ids []int) ([]domain.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []domain.Tag
	err := tg.db.Where("id IN ?", ids).Find(&tags).Error
	if err != nil {
		return nil, err
	}
	found := make(map[int]bool, len(tags))
	for _, t := range tags {
		found[t.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, errs.Errorf(errs.ENOTFOUND, "Tag %d does not exist.", id)
		}
	}
	return tags, nil
}

// Create stores the data from the Tag object in a new database record.
func (tg *tagGorm) Create(tag *domain.Tag) error {
	return tg.db.Create(tag).Error
}
