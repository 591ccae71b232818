package http

import (
	"strings"

	"tennis-space/backend/internal/domain/booking"
	"tennis-space/backend/internal/domain/club"
	"tennis-space/backend/internal/domain/user"
)

type registerInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2"`
}

func (in *registerInput) Trim() {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
}

type loginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (in *loginInput) Trim() {
	in.Email = strings.TrimSpace(in.Email)
}

type updateMeInput struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=2"`
	PhoneNumber     *string `json:"phoneNumber,omitempty"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty" validate:"omitempty,url"`
}

func (in *updateMeInput) Trim() {
	for _, p := range []*string{in.Name, in.PhoneNumber, in.ProfileImageURL} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
}

// apply sets the given fields on u. An empty phone number or image URL
// clears the field.
func (in updateMeInput) apply(u user.User) user.User {
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.PhoneNumber != nil {
		u.PhoneNumber = optional(*in.PhoneNumber)
	}
	if in.ProfileImageURL != nil {
		u.ProfileImageURL = optional(*in.ProfileImageURL)
	}
	return u
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

type profileImageInput struct {
	ContentType    string `json:"contentType" validate:"required,oneof=image/jpeg image/png image/webp"`
	ExpiresSeconds int64  `json:"expiresSeconds,omitempty" validate:"min=0"`
}

type createClubInput struct {
	Name            string                `json:"name" validate:"required"`
	Address         string                `json:"address"`
	Description     string                `json:"description"`
	ImageURL        *string               `json:"imageUrl,omitempty"`
	BookingSettings *club.BookingSettings `json:"bookingSettings,omitempty"`
	OperatingHours  *club.OperatingHours  `json:"operatingHours,omitempty"`
	Courts          []club.Court          `json:"courts"`
	AdminIDs        []string              `json:"adminIds"`
}

func (in *createClubInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.Description = strings.TrimSpace(in.Description)
}

// club builds the club to store. Missing settings take the defaults and the
// creator administers the club unless admins are listed.
func (in createClubInput) club(creatorUID string) club.TennisClub {
	c := club.New(in.Name, in.Address, in.Description, in.Courts...)
	c.ImageURL = in.ImageURL
	if in.BookingSettings != nil {
		c.BookingSettings = *in.BookingSettings
	}
	if in.OperatingHours != nil {
		c.OperatingHours = *in.OperatingHours
	}
	if c.Courts == nil {
		c.Courts = []club.Court{}
	}
	c.AdminIDs = in.AdminIDs
	if len(c.AdminIDs) == 0 {
		c.AdminIDs = []string{creatorUID}
	}
	return c
}

type createBookingInput struct {
	CourtID     string       `json:"courtId" validate:"required"`
	ClubID      string       `json:"clubId" validate:"required"`
	Players     []string     `json:"players"`
	StartTime   int64        `json:"startTime" validate:"required"`
	EndTime     int64        `json:"endTime" validate:"required"`
	BookingType booking.Type `json:"bookingType,omitempty" validate:"omitempty,oneof=REGULAR TRAINING MAINTENANCE TOURNAMENT"`
	Notes       *string      `json:"notes,omitempty"`
}

func (in *createBookingInput) Trim() {
	in.CourtID = strings.TrimSpace(in.CourtID)
	in.ClubID = strings.TrimSpace(in.ClubID)
}

// booking stamps the caller as booker and creator.
func (in createBookingInput) booking(uid string) booking.CourtBooking {
	return booking.CourtBooking{
		CourtID:     in.CourtID,
		ClubID:      in.ClubID,
		BookedBy:    uid,
		Players:     in.Players,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		BookingType: in.BookingType,
		CreatedBy:   uid,
		Notes:       in.Notes,
	}
}
