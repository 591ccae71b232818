package user

import "slices"

// DefaultName is the display name used when neither the stored profile nor the
// identity provider has one.
const DefaultName = "Tennis Player"

type User struct {
	ID              string   `firestore:"id" json:"id"`
	Email           string   `firestore:"email" json:"email"`
	Name            string   `firestore:"name" json:"name"`
	IsLoggedIn      bool     `firestore:"isLoggedIn" json:"isLoggedIn"`
	PhoneNumber     *string  `firestore:"phoneNumber" json:"phoneNumber,omitempty"`
	ProfileImageURL *string  `firestore:"profileImageUrl" json:"profileImageUrl,omitempty"`
	OwnClubs        []string `firestore:"ownClubs" json:"ownClubs"`
}

func (u User) HasClub(clubID string) bool {
	return slices.Contains(u.OwnClubs, clubID)
}

// WithClub returns a copy of u with clubID appended to OwnClubs. The copy is
// unchanged apart from the fresh slice when u already lists the club.
func (u User) WithClub(clubID string) User {
	out := u.Clone()
	if !out.HasClub(clubID) {
		out.OwnClubs = append(out.OwnClubs, clubID)
	}
	return out
}

// Clone returns a deep copy.
func (u User) Clone() User {
	out := u
	out.OwnClubs = append([]string{}, u.OwnClubs...)
	if u.PhoneNumber != nil {
		v := *u.PhoneNumber
		out.PhoneNumber = &v
	}
	if u.ProfileImageURL != nil {
		v := *u.ProfileImageURL
		out.ProfileImageURL = &v
	}
	return out
}

// dedupeClubs drops repeated club ids while keeping first-seen order.
func dedupeClubs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}
