package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"barber-booking/backend/internal/config"
	"barber-booking/backend/internal/domain/booking"
	"barber-booking/backend/internal/domain/news"
	"barber-booking/backend/internal/domain/profile"
	"barber-booking/backend/internal/domain/reservation"
	"barber-booking/backend/internal/domain/schedule"
	"barber-booking/backend/internal/domain/stats"
	"barber-booking/backend/internal/middleware"
	"barber-booking/backend/internal/session"
)

type RouterDeps struct {
	Cfg         config.Config
	AuthClient  *auth.Client
	BookingSvc  *booking.Service
	ScheduleSvc *schedule.Service
	ProfileSvc  *profile.Service
	NewsSvc     *news.Service
	StatsSvc    *stats.Service
	Coordinator *session.Coordinator
	Hub         *session.Hub
	Redis       *redis.Client
	Log         *zap.Logger
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(d.Cfg.Origins()))
	if d.Redis != nil && d.Cfg.MaxRequestsPerMin > 0 {
		r.Use(middleware.RateLimit(d.Redis, d.Cfg.MaxRequestsPerMin, d.Log))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, 200, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
	})

	// Protected routes
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.WithAuth(d.AuthClient))

		// ===== Identity / session =====
		pr.Get("/v1/me", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			p, err := d.ProfileSvc.Ensure(r.Context(), profile.Identity{
				UID:         au.UID,
				DisplayName: au.DisplayName,
				Email:       au.Email,
			})
			if err != nil {
				status, msg := mapProfileError(err)
				Fail(w, status, msg)
				return
			}

			isAdmin := d.Cfg.IsAdmin(au.UID)
			sess := d.Hub.OnSignIn(au.UID, p.HasPhone(), isAdmin)
			WriteJSON(w, 200, map[string]any{
				"profile": p,
				"session": sess,
				"isAdmin": isAdmin,
			})
		})

		pr.Put("/v1/me/phone", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in profile.PhoneInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			p, err := d.ProfileSvc.SavePhone(r.Context(), au.UID, in)
			if err != nil {
				status, msg := mapProfileError(err)
				Fail(w, status, msg)
				return
			}

			sess, err := d.Hub.OnPhoneSaved(au.UID)
			if err != nil {
				sess = d.Hub.OnSignIn(au.UID, p.HasPhone(), d.Cfg.IsAdmin(au.UID))
			}
			WriteJSON(w, 200, map[string]any{"profile": p, "session": sess})
		})

		pr.Post("/v1/me/signout", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			d.Hub.OnSignOut(au.UID)
			WriteJSON(w, 200, map[string]any{"ok": true})
		})

		// ===== Availability =====
		pr.Get("/v1/dates", func(w http.ResponseWriter, r *http.Request) {
			WriteJSON(w, 200, map[string]any{"dates": d.Coordinator.Dates()})
		})

		pr.Get("/v1/availability", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			date := strings.TrimSpace(r.URL.Query().Get("date"))
			if !schedule.ValidDate(date) {
				Fail(w, 400, "date must be YYYY-MM-DD")
				return
			}

			// Remember which date this user's booking view is showing.
			_, _ = d.Hub.SelectDate(au.UID, date)

			out := map[string]any{
				"date":  date,
				"slots": d.Coordinator.DayView(date, au.UID),
			}
			if mine := d.Coordinator.UserReservation(au.UID, date); mine != nil {
				out["yourReservation"] = mine
			}
			WriteJSON(w, 200, out)
		})

		// ===== Booking =====
		pr.Post("/v1/reservations", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in reservation.CreateInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			p, err := d.ProfileSvc.Profile(r.Context(), au.UID)
			if err != nil {
				status, msg := mapProfileError(err)
				Fail(w, status, msg)
				return
			}

			res, replaced, err := d.BookingSvc.BookSlot(r.Context(), booking.Requester{
				UID:   au.UID,
				Name:  p.DisplayName,
				Phone: p.Phone,
			}, in)
			if err != nil {
				status, msg := mapBookingError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, map[string]any{"reservation": res, "replaced": replaced})
		})

		pr.Delete("/v1/reservations", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			date := strings.TrimSpace(r.URL.Query().Get("date"))

			cancelled, err := d.BookingSvc.CancelSlot(r.Context(), au.UID, date)
			if booking.IsErrNothingToCancel(err) {
				WriteJSON(w, 200, map[string]any{"ok": true, "cancelled": false})
				return
			}
			if err != nil {
				status, msg := mapBookingError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"ok": true, "cancelled": true, "reservation": cancelled})
		})

		// ===== Announcements =====
		pr.Get("/v1/announcements/latest", func(w http.ResponseWriter, r *http.Request) {
			if a := d.Coordinator.LatestNews(); a != nil {
				WriteJSON(w, 200, a)
				return
			}
			a, err := d.NewsSvc.Latest(r.Context())
			if err != nil {
				status, msg := mapNewsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, a)
		})

		// ===== Admin =====
		pr.Group(func(ar chi.Router) {
			ar.Use(requireAdmin(d.Cfg))

			ar.Get("/v1/admin/reservations", func(w http.ResponseWriter, r *http.Request) {
				entries, err := d.BookingSvc.AdminList(r.Context())
				if err != nil {
					status, msg := mapBookingError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, map[string]any{"reservations": entries})
			})

			ar.Post("/v1/admin/reservations", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())

				var in reservation.AdminCreateInput
				if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
					Fail(w, 400, "invalid json")
					return
				}

				res, err := d.BookingSvc.AdminCreate(r.Context(), au.UID, in)
				if err != nil {
					status, msg := mapBookingError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 201, res)
			})

			ar.Delete("/v1/admin/reservations/{id}", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())
				id := chi.URLParam(r, "id")

				if err := d.BookingSvc.AdminDelete(r.Context(), au.UID, id); err != nil {
					status, msg := mapBookingError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, map[string]any{"ok": true})
			})

			ar.Get("/v1/admin/blocked-days", func(w http.ResponseWriter, r *http.Request) {
				days, err := d.ScheduleSvc.ListBlockedDays(r.Context())
				if err != nil {
					status, msg := mapScheduleError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, map[string]any{"blockedDays": days})
			})

			ar.Post("/v1/admin/blocked-days/{date}", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())
				date := chi.URLParam(r, "date")

				if err := d.ScheduleSvc.BlockDay(r.Context(), au.UID, date); err != nil {
					status, msg := mapScheduleError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 201, map[string]any{"ok": true, "date": date})
			})

			ar.Delete("/v1/admin/blocked-days/{date}", func(w http.ResponseWriter, r *http.Request) {
				date := chi.URLParam(r, "date")

				if err := d.ScheduleSvc.UnblockDay(r.Context(), date); err != nil {
					status, msg := mapScheduleError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, map[string]any{"ok": true, "date": date})
			})

			ar.Get("/v1/admin/blocked-slots", func(w http.ResponseWriter, r *http.Request) {
				slots, err := d.ScheduleSvc.ListBlockedSlots(r.Context())
				if err != nil {
					status, msg := mapScheduleError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, map[string]any{"blockedSlots": slots})
			})

			ar.Post("/v1/admin/blocked-slots", func(w http.ResponseWriter, r *http.Request) {
				var in schedule.RangeInput
				if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
					Fail(w, 400, "invalid json")
					return
				}
				in.Trim()

				out, err := d.ScheduleSvc.BlockRange(r.Context(), in)
				if err != nil {
					status, msg := mapScheduleError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 201, out)
			})

			ar.Delete("/v1/admin/blocked-slots/{date}/{time}", func(w http.ResponseWriter, r *http.Request) {
				date := chi.URLParam(r, "date")
				label := chi.URLParam(r, "time")

				if err := d.ScheduleSvc.UnblockSlot(r.Context(), date, label); err != nil {
					status, msg := mapScheduleError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, map[string]any{"ok": true})
			})

			ar.Get("/v1/admin/announcements", func(w http.ResponseWriter, r *http.Request) {
				list, err := d.NewsSvc.List(r.Context(), 20)
				if err != nil {
					status, msg := mapNewsError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, map[string]any{"announcements": list})
			})

			ar.Post("/v1/admin/announcements", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())

				var in news.PostInput
				if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
					Fail(w, 400, "invalid json")
					return
				}

				a, err := d.NewsSvc.Post(r.Context(), au.UID, in)
				if err != nil {
					status, msg := mapNewsError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 201, a)
			})

			ar.Get("/v1/admin/stats", func(w http.ResponseWriter, r *http.Request) {
				out, err := d.StatsSvc.ShopStats(r.Context())
				if err != nil {
					Fail(w, 500, err.Error())
					return
				}
				WriteJSON(w, 200, out)
			})
		})
	})

	return r
}

// requireAdmin gates routes on the configured admin allow-list. Admin rights
// come from config, not token claims.
func requireAdmin(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			au, ok := middleware.GetAuthUser(r.Context())
			if !ok || !cfg.IsAdmin(au.UID) {
				Fail(w, 403, "admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func mapBookingError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case booking.IsErrInvalidInput(err):
		return 400, err.Error()
	case booking.IsErrPastSlot(err):
		return 400, err.Error()
	case booking.IsErrSlotUnavailable(err):
		return 409, err.Error()
	case reservation.IsErrNotFound(err):
		return 404, err.Error()
	case booking.IsErrPartialFailure(err):
		return 500, err.Error()
	case booking.IsErrStoreUnavailable(err):
		return 503, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapScheduleError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case schedule.IsErrBadRequest(err):
		return 400, err.Error()
	case schedule.IsErrAlreadyBlocked(err):
		return 409, err.Error()
	case schedule.IsErrNotBlocked(err):
		return 404, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapProfileError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case profile.IsErrBadRequest(err):
		return 400, err.Error()
	case profile.IsErrNotFound(err):
		return 404, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapNewsError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case news.IsErrBadRequest(err):
		return 400, err.Error()
	case news.IsErrNotFound(err):
		return 404, err.Error()
	default:
		return 500, err.Error()
	}
}
