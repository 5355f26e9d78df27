package crud

import (
	"strings"

	"gorm.io/gorm"

	"wtfSocial/domain"
	"wtfSocial/errs"
)

// ProfileService manages Profiles.
// It implements the domain.ProfileService interface.
type ProfileService struct {
	profileValidator
}

// profileValidator runs validations on incoming Profile data.
// On success, it passes the data on to profileGorm.
// Otherwise, it returns the error of the validation that has failed.
type profileValidator struct {
	profileGorm
}

// profileGorm runs CRUD operations on the database using incoming Profile data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type profileGorm struct {
	db *gorm.DB
}

// NewProfileService returns an instance of ProfileService.
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		profileValidator{
			profileGorm{
				db: db,
			},
		},
	}
}

// Ensure the ProfileService struct properly implements the domain.ProfileService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.ProfileService = &ProfileService{}

// Create runs validations needed for creating new Profile database records.
func (pv *profileValidator) Create(profile *domain.Profile) error {
	err := runProfileValFns(profile,
		pv.userIDValid,
		pv.nicknameRequired,
		pv.userHasNoProfile)
	if err != nil {
		return err
	}
	return pv.profileGorm.Create(profile)
}

// Update runs validations needed for updating existing Profile database records.
func (pv *profileValidator) Update(profile *domain.Profile) error {
	err := runProfileValFns(profile,
		pv.userIDValid,
		pv.nicknameRequired)
	if err != nil {
		return err
	}
	return pv.profileGorm.Update(profile)
}

// runProfileValFns runs any number of functions of type profileValFn on the passed in Profile object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runProfileValFns(profile *domain.Profile, fns ...profileValFn) error {
	for _, fn := range fns {
		if err := fn(profile); err != nil {
			return err
		}
	}
	return nil
}

// A profileValFn is any function that takes in a pointer to a domain.Profile object and returns an error.
type profileValFn func(profile *domain.Profile) error

// userIDValid makes sure that the profile belongs to a user.
func (pv *profileValidator) userIDValid(profile *domain.Profile) error {
	if profile.UserID <= 0 {
		return errs.Errorf(errs.EINVALID, "User ID is required.")
	}
	return nil
}

// nicknameRequired makes sure that the profile's nickname is not empty.
func (pv *profileValidator) nicknameRequired(profile *domain.Profile) error {
	if strings.TrimSpace(profile.Nickname) == "" {
		return errs.Errorf(errs.EINVALID, "Nickname is required.")
	}
	return nil
}

// userHasNoProfile makes sure that the profile's user doesn't have a profile yet.
// A user account and its profile are one-to-one.
func (pv *profileValidator) userHasNoProfile(profile *domain.Profile) error {
	_, err := pv.profileGorm.ByUserID(profile.UserID)
	if err != nil {
		if errs.ErrorCode(err) == errs.ENOTFOUND {
			return nil
		}
		return err
	}
	return errs.Errorf(errs.ECONFLICT, "You already have a profile.")
}

// ByID retrieves a single Profile by ID, along with its user account.
func (pg *profileGorm) ByID(id int) (*domain.Profile, error) {
	var profile domain.Profile
	err := pg.db.Preload("User").First(&profile, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "The profile does not exist.")
		}
		return nil, err
	}
	return &profile, nil
}

// ByUserID retrieves the Profile belonging to the given user.
func (pg *profileGorm) ByUserID(userID int) (*domain.Profile, error) {
	var profile domain.Profile
	err := pg.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "The user has no profile.")
		}
		return nil, err
	}
	return &profile, nil
}

// Search retrieves profiles matching the filter, ordered by creation
// (oldest first, stable across pages).
func (pg *profileGorm) Search(filter domain.ProfileFilter) ([]domain.Profile, error) {
	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	q := pg.db.Model(&domain.Profile{})
	if filter.Nickname != "" {
		q = q.Where("LOWER(nickname) LIKE ?", "%"+strings.ToLower(filter.Nickname)+"%")
	}
	var profiles []domain.Profile
	err := q.
		Preload("User").
		Order("created_at, id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Create stores the data from the Profile object in a new database record.
func (pg *profileGorm) Create(profile *domain.Profile) error {
	return pg.db.Create(profile).Error
}

// Update saves the Profile object's data to its existing database record.
func (pg *profileGorm) Update(profile *domain.Profile) error {
	return pg.db.Save(profile).Error
}

// normalizePage clamps page and page size to their allowed ranges.
func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	if pageSize > domain.MaxPageSize {
		pageSize = domain.MaxPageSize
	}
	return page, pageSize
}
