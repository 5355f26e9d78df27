package crud

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wtfSocial/domain"
	"wtfSocial/errs"
)

// FollowService manages the follow graph between profiles.
// It implements the domain.FollowService interface.
type FollowService struct {
	followValidator
}

// followValidator runs validations on incoming follow edges.
// On success, it passes the data on to followGorm.
// Otherwise, it returns the error of the validation that has failed.
type followValidator struct {
	followGorm
}

// followGorm runs operations on the follows table. It assumes that data has
// been validated. On success, it returns nil. Otherwise, it returns the error
// of the operation that has failed.
type followGorm struct {
	db *gorm.DB
}

// NewFollowService returns an instance of FollowService.
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		followValidator{
			followGorm{
				db: db,
			},
		},
	}
}

// Ensure the FollowService struct properly implements the domain.FollowService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.FollowService = &FollowService{}

// Toggle runs validations needed for flipping a follow edge.
// Self-follows are rejected before anything touches the graph.
func (fv *followValidator) Toggle(followerID, followedID int) (bool, error) {
	follow := domain.Follow{FollowerID: followerID, FollowedID: followedID}
	err := runFollowValFns(&follow,
		fv.followedIsNotFollower,
		fv.followedProfileExists)
	if err != nil {
		return false, err
	}
	return fv.followGorm.Toggle(followerID, followedID)
}

// runFollowValFns runs any number of functions of type followValFn on the passed in Follow object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runFollowValFns(follow *domain.Follow, fns ...followValFn) error {
	for _, fn := range fns {
		if err := fn(follow); err != nil {
			return err
		}
	}
	return nil
}

// A followValFn is any function that takes in a pointer to a domain.Follow object and returns an error.
type followValFn func(follow *domain.Follow) error

// followedIsNotFollower makes sure that a profile is not following itself.
func (fv *followValidator) followedIsNotFollower(follow *domain.Follow) error {
	if follow.FollowerID == follow.FollowedID {
		return errs.Errorf(errs.EINVALID, "You cannot follow yourself.")
	}
	return nil
}

// followedProfileExists makes sure that the profile to be followed actually exists.
func (fv *followValidator) followedProfileExists(follow *domain.Follow) error {
	err := fv.db.First(&domain.Profile{}, "id = ?", follow.FollowedID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "The profile to be followed does not exist.")
		}
		return err
	}
	return nil
}

// IsFollowing reports whether the follower -> followed edge exists.
func (fg *followGorm) IsFollowing(followerID, followedID int) (bool, error) {
	var count int64
	err := fg.db.
		Model(&domain.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Toggle flips the follower -> followed edge and reports whether the edge
// exists after the call. Each arm is a single conditional write: the delete
// only removes an existing edge, and the insert backs off on the unique edge
// index. Concurrent toggles of the same pair therefore never produce a
// duplicate edge or an error, at worst two racing inserts collapse into one.
func (fg *followGorm) Toggle(followerID, followedID int) (bool, error) {
	res := fg.db.
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&domain.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}
	follow := domain.Follow{FollowerID: followerID, FollowedID: followedID}
	err := fg.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error
	if err != nil {
		return false, err
	}
	return true, nil
}

// Followers retrieves the profiles that follow the given profile,
// along with their user accounts.
func (fg *followGorm) Followers(profileID int) ([]domain.Profile, error) {
	var followers []domain.Profile
	err := fg.db.
		Joins("JOIN follows ON follows.follower_id = profiles.id").
		Where("follows.followed_id = ?", profileID).
		Preload("User").
		Order("follows.created_at").
		Find(&followers).Error
	if err != nil {
		return nil, err
	}
	return followers, nil
}
