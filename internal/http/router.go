package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tennis-space/backend/internal/authctx"
	"tennis-space/backend/internal/config"
	"tennis-space/backend/internal/domain/booking"
	"tennis-space/backend/internal/domain/club"
	"tennis-space/backend/internal/domain/membership"
	"tennis-space/backend/internal/domain/user"
	"tennis-space/backend/internal/identity"
	"tennis-space/backend/internal/middleware"
	"tennis-space/backend/internal/session"
	"tennis-space/backend/internal/uploads"
)

type RouterDeps struct {
	Cfg         config.Config
	Log         *zap.Logger
	Identity    *identity.Service
	Clubs       *club.Service
	Memberships *membership.Service
	Bookings    *booking.Service
	// Uploads may be nil; the profile image route then answers 503.
	Uploads *uploads.Signer
}

type authResponse struct {
	User      *user.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt int64      `json:"expiresAt"`
}

func newAuthResponse(u *user.User, st *session.Store) authResponse {
	sess, _ := st.Current()
	out := authResponse{User: u, Token: sess.Token}
	if !sess.ExpiresAt.IsZero() {
		out.ExpiresAt = sess.ExpiresAt.Unix()
	}
	return out
}

func NewRouter(d RouterDeps) http.Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(log, d.Cfg.AllowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, 200, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// ===== Auth (public) =====
	r.Post("/v1/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var in registerInput
		if !decode(w, r, &in) {
			return
		}
		st := session.NewStore()
		u, err := d.Identity.Register(r.Context(), st, in.Email, in.Password, in.Name)
		if err != nil {
			FailErr(w, err)
			return
		}
		WriteJSON(w, 201, newAuthResponse(u, st))
	})

	r.Post("/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in loginInput
		if !decode(w, r, &in) {
			return
		}
		st := session.NewStore()
		u, err := d.Identity.Login(r.Context(), st, in.Email, in.Password)
		if err != nil {
			FailErr(w, err)
			return
		}
		WriteJSON(w, 200, newAuthResponse(u, st))
	})

	// Protected routes
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.WithAuth(d.Identity))

		// ===== Me =====
		pr.Get("/v1/me", func(w http.ResponseWriter, r *http.Request) {
			u, err := d.Identity.CurrentUser(r.Context(), authctx.Session(r.Context()))
			if err != nil {
				FailErr(w, err)
				return
			}
			if u == nil {
				Fail(w, 401, "not signed in")
				return
			}
			WriteJSON(w, 200, u)
		})

		pr.Put("/v1/me", func(w http.ResponseWriter, r *http.Request) {
			var in updateMeInput
			if !decode(w, r, &in) {
				return
			}
			cur, err := d.Identity.CurrentUser(r.Context(), authctx.Session(r.Context()))
			if err != nil {
				FailErr(w, err)
				return
			}
			if cur == nil {
				Fail(w, 401, "not signed in")
				return
			}
			out, err := d.Identity.UpdateUser(r.Context(), in.apply(*cur))
			if err != nil {
				FailErr(w, err)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
			if err := d.Identity.Logout(r.Context(), authctx.Session(r.Context())); err != nil {
				FailErr(w, err)
				return
			}
			WriteJSON(w, 200, map[string]any{"success": true})
		})

		pr.Post("/v1/me/clubs/{clubId}", func(w http.ResponseWriter, r *http.Request) {
			u, err := d.Identity.JoinClub(r.Context(), authctx.Session(r.Context()), "", chi.URLParam(r, "clubId"))
			if err != nil {
				FailErr(w, err)
				return
			}
			WriteJSON(w, 200, u)
		})

		pr.Post("/v1/me/profile-image", func(w http.ResponseWriter, r *http.Request) {
			uid, _ := authctx.UID(r.Context())
			var in profileImageInput
			if !decode(w, r, &in) {
				return
			}
			out, err := d.Uploads.ProfileImageURL(r.Context(), uid, in.ContentType, time.Duration(in.ExpiresSeconds)*time.Second)
			if err != nil {
				FailErr(w, err)
				return
			}
			WriteJSON(w, 200, out)
		})

		// ===== Clubs =====
		pr.Get("/v1/clubs", func(w http.ResponseWriter, r *http.Request) {
			q := strings.TrimSpace(r.URL.Query().Get("q"))
			out, err := d.Clubs.SearchClubs(r.Context(), q)
			if err != nil {
				FailErr(w, err)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/clubs", func(w http.ResponseWriter, r *http.Request) {
			uid, _ := authctx.UID(r.Context())
			var in createClubInput
			if !decode(w, r, &in) {
				return
			}
			out, err := d.Clubs.CreateClub(r.Context(), in.club(uid))
			if err != nil {
				FailErr(w, err)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/clubs/{clubId}", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.Clubs.GetClubByID(r.Context(), chi.URLParam(r, "clubId"))
			if err != nil {
				FailErr(w, err)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/clubs/{clubId}/courts", func(w http.ResponseWriter, r *http.Request) {
			c, err := d.Clubs.GetClubByID(r.Context(), chi.URLParam(r, "clubId"))
			if err != nil {
				FailErr(w, err)
				return
			}
			WriteJSON(w, 200, c.ActiveCourts())
		})

		// ===== Memberships =====
		pr.Post("/v1/clubs/{clubId}/memberships", func(w http.ResponseWriter, r *http.Request) {
			uid, _ := authctx.UID(r.Context())
			clubID := chi.URLParam(r, "clubId")
			if _, err := d.Clubs.GetClubByID(r.Context(), clubID); err != nil {
				FailErr(w, err)
				return
			}
			out, err := d.Memberships.RequestMembership(r.Context(), clubID, uid)
			if err != nil {
				FailErr(w, err)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/clubs/{clubId}/memberships", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.Memberships.GetClubMemberships(r.Context(), chi.URLParam(r, "clubId"))
			if err != nil {
				FailErr(w, err)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/users/{userId}/memberships", func(w http.ResponseWriter, r *http.Request) {
			userID, ok := selfOnly(w, r)
			if !ok {
				return
			}
			out, err := d.Memberships.GetUserMemberships(r.Context(), userID)
			if err != nil {
				FailErr(w, err)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/memberships/{membershipId}/decision", func(w http.ResponseWriter, r *http.Request) {
			uid, _ := authctx.UID(r.Context())
			var in membership.DecideInput
			if !decode(w, r, &in) {
				return
			}
			out, err := d.Memberships.Decide(r.Context(), uid, chi.URLParam(r, "membershipId"), in.Status)
			if err != nil {
				FailErr(w, err)
				return
			}
			WriteJSON(w, 200, out)
		})

		// ===== Bookings =====
		pr.Get("/v1/clubs/{clubId}/bookings", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.Bookings.GetClubBookings(r.Context(), chi.URLParam(r, "clubId"))
			if err != nil {
				FailErr(w, err)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/users/{userId}/bookings", func(w http.ResponseWriter, r *http.Request) {
			userID, ok := selfOnly(w, r)
			if !ok {
				return
			}
			out, err := d.Bookings.GetUserBookings(r.Context(), userID)
			if err != nil {
				FailErr(w, err)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/bookings", func(w http.ResponseWriter, r *http.Request) {
			uid, _ := authctx.UID(r.Context())
			var in createBookingInput
			if !decode(w, r, &in) {
				return
			}
			out, err := d.Bookings.CreateBooking(r.Context(), in.booking(uid))
			if err != nil {
				FailErr(w, err)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Post("/v1/bookings/{bookingId}/cancel", func(w http.ResponseWriter, r *http.Request) {
			uid, _ := authctx.UID(r.Context())
			var in booking.CancelInput
			if !decode(w, r, &in) {
				return
			}
			if err := d.Bookings.CancelBookingWithReason(r.Context(), chi.URLParam(r, "bookingId"), uid, strings.TrimSpace(in.Reason)); err != nil {
				FailErr(w, err)
				return
			}
			WriteJSON(w, 200, map[string]any{"success": true})
		})
	})

	return r
}

// selfOnly resolves {userId}, where "me" names the caller. Other users' lists
// are not visible.
func selfOnly(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid, _ := authctx.UID(r.Context())
	userID := chi.URLParam(r, "userId")
	if userID == "me" {
		userID = uid
	}
	if userID != uid {
		Fail(w, 403, "cannot read another user's data")
		return "", false
	}
	return userID, true
}
