package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/homecare-scheduler/internal/persistence"
	"github.com/example/homecare-scheduler/internal/scheduling"
)

// AvailabilityService manages declared availability periods. Periods feed the
// availability index; they are never consulted for past conflicts, so they
// may be deleted outright.
type AvailabilityService struct {
	availability persistence.AvailabilityRepository
	employees    persistence.EmployeeRepository
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewAvailabilityService wires dependencies for the availability service.
func NewAvailabilityService(
	availability persistence.AvailabilityRepository,
	employees persistence.EmployeeRepository,
	idGenerator func() string,
	now func() time.Time,
) *AvailabilityService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &AvailabilityService{
		availability: availability,
		employees:    employees,
		idGenerator:  idGenerator,
		now:          now,
	}
}

// WithLogger attaches a base logger used when the context carries none.
func (s *AvailabilityService) WithLogger(logger *slog.Logger) *AvailabilityService {
	s.logger = logger
	return s
}

// CreateAvailabilityPeriod validates and stores a period for an employee.
func (s *AvailabilityService) CreateAvailabilityPeriod(ctx context.Context, input AvailabilityPeriodInput) (persistence.AvailabilityPeriod, error) {
	if s == nil {
		return persistence.AvailabilityPeriod{}, fmt.Errorf("AvailabilityService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "availability", "create_availability_period")

	vErr := validateStruct(input)
	if vErr == nil {
		vErr = &ValidationError{}
	}
	startDate := parseDateField(vErr, "start_date", input.StartDate)
	endDate := parseDateField(vErr, "end_date", input.EndDate)
	if !vErr.HasErrors() && endDate.Before(startDate) {
		vErr.add("end_date", "must not be before start_date")
	}
	startMinutes, endMinutes := parseWindow(vErr, input.StartTime, input.EndTime)
	validateWeekdays(vErr, input.RecurringDays)
	if vErr.HasErrors() {
		return persistence.AvailabilityPeriod{}, vErr
	}

	if _, err := s.employees.GetEmployee(ctx, input.EmployeeID); err != nil {
		return persistence.AvailabilityPeriod{}, mapRepoError(err)
	}

	now := s.now()
	period := persistence.AvailabilityPeriod{
		ID:               s.idGenerator(),
		EmployeeID:       input.EmployeeID,
		StartDate:        startDate,
		EndDate:          endDate,
		StartMinutes:     startMinutes,
		EndMinutes:       endMinutes,
		AvailabilityType: input.AvailabilityType,
		RecurringDays:    normalizeWeekdays(input.RecurringDays),
		Notes:            input.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.availability.CreateAvailabilityPeriod(ctx, period); err != nil {
		return persistence.AvailabilityPeriod{}, mapRepoError(err)
	}

	logger.Info("availability period created", "period_id", period.ID, "employee_id", period.EmployeeID, "type", period.AvailabilityType)
	return period, nil
}

// UpdateAvailabilityPeriod applies a patch to an existing period.
func (s *AvailabilityService) UpdateAvailabilityPeriod(ctx context.Context, id string, patch AvailabilityPeriodUpdate) (persistence.AvailabilityPeriod, error) {
	if s == nil {
		return persistence.AvailabilityPeriod{}, fmt.Errorf("AvailabilityService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "availability", "update_availability_period", "period_id", id)

	if vErr := validateStruct(patch); vErr.HasErrors() {
		return persistence.AvailabilityPeriod{}, vErr
	}

	period, err := s.availability.GetAvailabilityPeriod(ctx, id)
	if err != nil {
		return persistence.AvailabilityPeriod{}, mapRepoError(err)
	}

	vErr := &ValidationError{}
	if patch.StartDate != nil {
		period.StartDate = parseDateField(vErr, "start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		period.EndDate = parseDateField(vErr, "end_date", *patch.EndDate)
	}
	if !vErr.HasErrors() && period.EndDate.Before(period.StartDate) {
		vErr.add("end_date", "must not be before start_date")
	}
	switch {
	case patch.ClearWindow:
		period.StartMinutes = nil
		period.EndMinutes = nil
	case patch.StartTime != nil || patch.EndTime != nil:
		startValue := patch.StartTime
		endValue := patch.EndTime
		if startValue == nil && period.StartMinutes != nil {
			v := scheduling.TimeOfDay(*period.StartMinutes).String()
			startValue = &v
		}
		if endValue == nil && period.EndMinutes != nil {
			v := scheduling.TimeOfDay(*period.EndMinutes).String()
			endValue = &v
		}
		period.StartMinutes, period.EndMinutes = parseWindow(vErr, startValue, endValue)
	}
	if patch.RecurringDays != nil {
		validateWeekdays(vErr, *patch.RecurringDays)
		period.RecurringDays = normalizeWeekdays(*patch.RecurringDays)
	}
	if patch.AvailabilityType != nil {
		period.AvailabilityType = *patch.AvailabilityType
	}
	if patch.Notes != nil {
		period.Notes = *patch.Notes
	}
	if vErr.HasErrors() {
		return persistence.AvailabilityPeriod{}, vErr
	}
	period.UpdatedAt = s.now()

	if err := s.availability.UpdateAvailabilityPeriod(ctx, period); err != nil {
		return persistence.AvailabilityPeriod{}, mapRepoError(err)
	}

	logger.Info("availability period updated")
	return period, nil
}

// GetAvailabilityPeriod retrieves a period by id.
func (s *AvailabilityService) GetAvailabilityPeriod(ctx context.Context, id string) (persistence.AvailabilityPeriod, error) {
	period, err := s.availability.GetAvailabilityPeriod(ctx, id)
	if err != nil {
		return persistence.AvailabilityPeriod{}, mapRepoError(err)
	}
	return period, nil
}

// DeleteAvailabilityPeriod removes a period.
func (s *AvailabilityService) DeleteAvailabilityPeriod(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("AvailabilityService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "availability", "delete_availability_period", "period_id", id)

	if err := s.availability.DeleteAvailabilityPeriod(ctx, id); err != nil {
		return mapRepoError(err)
	}
	logger.Info("availability period deleted")
	return nil
}

// ListForEmployee returns every period declared for the employee.
func (s *AvailabilityService) ListForEmployee(ctx context.Context, employeeID string) ([]persistence.AvailabilityPeriod, error) {
	if _, err := s.employees.GetEmployee(ctx, employeeID); err != nil {
		return nil, mapRepoError(err)
	}
	periods, err := s.availability.ListForEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return periods, nil
}

// parseWindow validates the optional time-of-day window. The two ends must be
// supplied together and form a valid half-open range.
func parseWindow(vErr *ValidationError, startValue, endValue *string) (*int, *int) {
	if startValue == nil && endValue == nil {
		return nil, nil
	}
	if startValue == nil || endValue == nil {
		vErr.add("start_time", "start_time and end_time must be given together")
		return nil, nil
	}
	slot := parseTimeRange(vErr, "start_time", *startValue, "end_time", *endValue)
	if vErr.HasErrors() {
		return nil, nil
	}
	start := int(slot.Start)
	end := int(slot.End)
	return &start, &end
}

func validateWeekdays(vErr *ValidationError, names []string) {
	for _, name := range names {
		if _, ok := scheduling.ParseWeekday(name); !ok {
			vErr.add("recurring_days", fmt.Sprintf("unknown weekday %q", name))
			return
		}
	}
}

func normalizeWeekdays(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		weekday, ok := scheduling.ParseWeekday(name)
		if !ok {
			continue
		}
		lower := weekdayName(weekday)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		normalized = append(normalized, lower)
	}
	return normalized
}

func weekdayName(day time.Weekday) string {
	switch day {
	case time.Sunday:
		return "sunday"
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	}
	return "saturday"
}
