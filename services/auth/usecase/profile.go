package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/taxiconnect/backend/internal/pkg/apperrors"
	"github.com/taxiconnect/backend/internal/pkg/logger"
	"github.com/taxiconnect/backend/internal/pkg/models"
)

// CompleteProfile fills in the name, email and role a freshly created
// account is missing. Choosing the passenger role also provisions the
// passenger profile; drivers go through RegisterDriver instead.
func (u *AuthUC) CompleteProfile(ctx context.Context, userID uuid.UUID, req *models.CompleteProfileRequest) (*models.User, error) {
	if req.FirstName == "" || req.LastName == "" || req.Role == "" {
		return nil, apperrors.New(apperrors.KindInvalidInput, "First name, last name and role are required")
	}
	if req.Role != models.RolePassenger && req.Role != models.RoleDriver {
		return nil, apperrors.New(apperrors.KindInvalidInput, "Role must be either passenger or driver")
	}

	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email
	user.Role = req.Role

	if err := u.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	if req.Role == models.RolePassenger {
		if _, err := u.userRepo.GetPassengerByUserID(ctx, userID); err != nil {
			if !apperrors.IsKind(err, apperrors.KindUserNotFound) {
				return nil, err
			}
			passenger := &models.Passenger{
				UserID:            userID,
				PreferredLanguage: "ar",
				Rating:            5.0,
			}
			if err := u.userRepo.CreatePassengerProfile(ctx, passenger); err != nil {
				return nil, err
			}
		}
	}

	logger.Info("Profile completed",
		logger.String("user_id", userID.String()),
		logger.String("role", user.Role))

	return user, nil
}

// RegisterDriver creates the driver profile for a user and switches
// their role. The profile starts unverified; an operations team
// reviews the documents before the driver can accept rides.
func (u *AuthUC) RegisterDriver(ctx context.Context, userID uuid.UUID, req *models.RegisterDriverRequest) (*models.Driver, error) {
	if req.LicenseNumber == "" || req.CIN == "" || req.VehicleMake == "" ||
		req.VehicleModel == "" || req.VehiclePlateNumber == "" || req.City == "" {
		return nil, apperrors.New(apperrors.KindInvalidInput, "All driver registration fields are required")
	}

	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := u.userRepo.GetDriverByUserID(ctx, userID); err == nil {
		return nil, apperrors.New(apperrors.KindConflict, "Driver profile already exists")
	} else if !apperrors.IsKind(err, apperrors.KindUserNotFound) {
		return nil, err
	}

	driver := &models.Driver{
		UserID:             userID,
		LicenseNumber:      req.LicenseNumber,
		LicenseExpiryDate:  req.LicenseExpiryDate,
		CIN:                req.CIN,
		VehicleMake:        req.VehicleMake,
		VehicleModel:       req.VehicleModel,
		VehicleYear:        req.VehicleYear,
		VehiclePlateNumber: req.VehiclePlateNumber,
		City:               req.City,
		VerificationStatus: models.DriverVerificationPending,
	}

	if err := u.userRepo.CreateDriverProfile(ctx, driver); err != nil {
		return nil, err
	}

	user.Role = models.RoleDriver
	if err := u.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("Driver registered",
		logger.String("user_id", userID.String()),
		logger.String("city", driver.City))

	return driver, nil
}

// GetProfile returns the user together with their role profile when
// one has been provisioned
func (u *AuthUC) GetProfile(ctx context.Context, userID uuid.UUID) (*models.ProfileResponse, error) {
	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &models.ProfileResponse{User: user}

	switch user.Role {
	case models.RoleDriver:
		driver, err := u.userRepo.GetDriverByUserID(ctx, userID)
		if err == nil {
			resp.Profile = driver
		} else if !apperrors.IsKind(err, apperrors.KindUserNotFound) {
			return nil, err
		}
	case models.RolePassenger:
		passenger, err := u.userRepo.GetPassengerByUserID(ctx, userID)
		if err == nil {
			resp.Profile = passenger
		} else if !apperrors.IsKind(err, apperrors.KindUserNotFound) {
			return nil, err
		}
	}

	return resp, nil
}

// UpdateProfile applies the non-empty fields of the request to the
// user record
func (u *AuthUC) UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.ProfilePictureURL != "" {
		user.ProfilePictureURL = req.ProfilePictureURL
	}

	if err := u.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
