package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bradbeattie/schedules/internal/domain"
	"github.com/bradbeattie/schedules/internal/repository"
	"github.com/bradbeattie/schedules/internal/scheduler"
	"github.com/google/uuid"
)

type availabilityService struct {
	avail    repository.AvailabilityRepo
	users    repository.UserRepo
	projects repository.ProjectRepo
}

func NewAvailabilityService(
	avail repository.AvailabilityRepo,
	users repository.UserRepo,
	projects repository.ProjectRepo,
) AvailabilityService {
	return &availabilityService{avail: avail, users: users, projects: projects}
}

func (s *availabilityService) SetHours(ctx context.Context, userID, projectID string, date time.Time, hours float64) error {
	if hours < 0 || hours > 24 {
		return fmt.Errorf("hours %.1f out of range", hours)
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return fmt.Errorf("schedule entry user: %w", err)
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return fmt.Errorf("schedule entry project: %w", err)
	}
	return s.avail.ReplaceScheduleEntry(ctx, &domain.ScheduleEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProjectID: projectID,
		Date:      domain.Day(date),
		Hours:     hours,
	})
}

func (s *availabilityService) CloseDay(ctx context.Context, userID string, date time.Time) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return fmt.Errorf("closed day user: %w", err)
	}
	return s.avail.CreateClosedEntry(ctx, &domain.ClosedEntry{
		ID:     uuid.New().String(),
		UserID: userID,
		Date:   domain.Day(date),
	})
}

func (s *availabilityService) OpenDay(ctx context.Context, userID string, date time.Time) error {
	return s.avail.DeleteClosedEntry(ctx, userID, domain.Day(date))
}

func (s *availabilityService) AddHoliday(ctx context.Context, date time.Time, name string) error {
	if name == "" {
		return fmt.Errorf("holiday name is required")
	}
	return s.avail.CreateHoliday(ctx, &domain.Holiday{
		ID:   uuid.New().String(),
		Date: domain.Day(date),
		Name: name,
	})
}

func (s *availabilityService) ListHolidays(ctx context.Context, from, to time.Time) ([]*domain.Holiday, error) {
	return s.avail.ListHolidays(ctx, domain.Day(from), domain.Day(to))
}

func (s *availabilityService) UserCalendar(ctx context.Context, userID string, from, to time.Time) ([]UserDay, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	from, to = domain.Day(from), domain.Day(to)

	entries, err := s.avail.ListScheduleEntriesForUser(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	committed := make(map[time.Time]float64)
	for _, e := range entries {
		committed[e.Date] += e.Hours
	}

	closed, err := s.avail.ListClosedEntries(ctx, from, to)
	if err != nil {
		return nil, err
	}
	closedDays := make(map[time.Time]bool)
	for _, c := range closed {
		if c.UserID == userID {
			closedDays[c.Date] = true
		}
	}

	holidays, err := s.avail.ListHolidays(ctx, from, to)
	if err != nil {
		return nil, err
	}
	holidayNames := make(map[time.Time]string)
	for _, h := range holidays {
		holidayNames[h.Date] = h.Name
	}

	var days []UserDay
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		day := UserDay{
			Date:      d,
			Default:   user.DefaultHoursOn(d),
			Committed: committed[d],
			Closed:    closedDays[d],
			Holiday:   holidayNames[d],
		}
		if !day.Closed && day.Holiday == "" {
			if free := day.Default - day.Committed; free > 0 {
				day.Free = free
			}
		}
		days = append(days, day)
	}
	return days, nil
}

// BuildLedger nets the weekly pattern against committed hours, closures
// and holidays for every user over the window. Users whose pattern is all
// zeros get no calendar at all, which downstream scheduling treats as the
// degenerate case.
func (s *availabilityService) BuildLedger(ctx context.Context, from, to time.Time, excludeProjectID string) (*scheduler.Ledger, error) {
	from, to = domain.Day(from), domain.Day(to)

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	entries, err := s.avail.ListScheduleEntries(ctx, from, to, excludeProjectID)
	if err != nil {
		return nil, fmt.Errorf("loading schedule entries: %w", err)
	}
	closed, err := s.avail.ListClosedEntries(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading closed entries: %w", err)
	}
	holidays, err := s.avail.ListHolidays(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading holidays: %w", err)
	}

	committed := make(map[string]map[time.Time]float64)
	for _, e := range entries {
		if committed[e.UserID] == nil {
			committed[e.UserID] = make(map[time.Time]float64)
		}
		committed[e.UserID][e.Date] += e.Hours
	}
	closedDays := make(map[string]map[time.Time]bool)
	for _, c := range closed {
		if closedDays[c.UserID] == nil {
			closedDays[c.UserID] = make(map[time.Time]bool)
		}
		closedDays[c.UserID][c.Date] = true
	}
	holidayDays := make(map[time.Time]bool)
	for _, h := range holidays {
		holidayDays[h.Date] = true
	}

	ledger := scheduler.NewLedger()
	for _, u := range users {
		hasPattern := false
		for _, h := range u.WeekdayHours {
			if h > 0 {
				hasPattern = true
				break
			}
		}
		if !hasPattern {
			continue
		}
		ledger.EnsureUser(u.ID)
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			base := u.DefaultHoursOn(d)
			if base <= 0 || holidayDays[d] || closedDays[u.ID][d] {
				continue
			}
			ledger.Add(u.ID, d, base-committed[u.ID][d])
		}
	}
	return ledger, nil
}
