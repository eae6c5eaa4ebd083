package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SLN-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий недельного расписания и блокировок
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeekSchedule получает недельное расписание тенанта
// Возвращает ErrScheduleNotFound, если расписание еще не настроено
func (r *Repository) GetWeekSchedule(ctx context.Context, tenantID int64) (domain.WeekSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	week := domain.DefaultWeekSchedule()

	query, args, err := psqlbuilder.Select(
		"weekday",
		"is_open",
		"open_time",
		"close_time",
		"lunch_start",
		"lunch_end",
		"interval_minutes",
	).
		From("week_schedule").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return week, fmt.Errorf("%w: GetWeekSchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return week, fmt.Errorf("%w: GetWeekSchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	found := 0
	for rows.Next() {
		var weekday int
		var day domain.DaySchedule

		err := rows.Scan(
			&weekday,
			&day.IsOpen,
			&day.OpenTime,
			&day.CloseTime,
			&day.LunchStart,
			&day.LunchEnd,
			&day.IntervalMinutes,
		)
		if err != nil {
			return week, fmt.Errorf("%w: GetWeekSchedule - scan row: %v", ErrScanRow, err)
		}

		if weekday < 0 || weekday > 6 {
			continue
		}
		day.Weekday = week[weekday].Weekday
		week[weekday] = day
		found++
	}

	if err := rows.Err(); err != nil {
		return week, fmt.Errorf("%w: GetWeekSchedule - rows error: %v", ErrScanRow, err)
	}

	if found == 0 {
		return week, ErrScheduleNotFound
	}

	return week, nil
}

// SaveWeekSchedule сохраняет недельное расписание тенанта целиком
// Выполняется как delete + insert; вызывающий код оборачивает в транзакцию
func (r *Repository) SaveWeekSchedule(ctx context.Context, tenantID int64, week domain.WeekSchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("week_schedule").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveWeekSchedule - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: SaveWeekSchedule - execute delete: %v", ErrExecQuery, err)
	}

	insertBuilder := psqlbuilder.Insert("week_schedule").
		Columns(
			"tenant_id",
			"weekday",
			"is_open",
			"open_time",
			"close_time",
			"lunch_start",
			"lunch_end",
			"interval_minutes",
		)

	for weekday := range week {
		day := week[weekday]
		insertBuilder = insertBuilder.Values(
			tenantID,
			weekday,
			day.IsOpen,
			day.OpenTime,
			day.CloseTime,
			day.LunchStart,
			day.LunchEnd,
			day.IntervalMinutes,
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveWeekSchedule - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: SaveWeekSchedule - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetBlockedPeriods получает все блокировки тенанта
func (r *Repository) GetBlockedPeriods(ctx context.Context, tenantID int64) (domain.BlockedPeriodSet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"block_date",
		"start_time",
		"end_time",
		"reason",
		"created_at",
	).
		From("blocked_periods").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("block_date ASC, start_time ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedPeriods - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedPeriods - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	periods := make(domain.BlockedPeriodSet, 0)
	for rows.Next() {
		var period domain.BlockedPeriod
		var createdAt sql.NullTime

		err := rows.Scan(
			&period.ID,
			&period.TenantID,
			&period.Date,
			&period.StartTime,
			&period.EndTime,
			&period.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetBlockedPeriods - scan row: %v", ErrScanRow, err)
		}

		period.CreatedAt = createdAt.Time
		periods = append(periods, period)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBlockedPeriods - rows error: %v", ErrScanRow, err)
	}

	return periods, nil
}

// AddBlockedPeriod добавляет блокировку
// Пересечения с существующими блокировками не проверяются — это законно
func (r *Repository) AddBlockedPeriod(ctx context.Context, period *domain.BlockedPeriod) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_periods").
		Columns(
			"id",
			"tenant_id",
			"block_date",
			"start_time",
			"end_time",
			"reason",
		).
		Values(
			period.ID,
			period.TenantID,
			period.Date,
			period.StartTime,
			period.EndTime,
			period.Reason,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddBlockedPeriod - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return fmt.Errorf("%w: AddBlockedPeriod - execute insert: %v", ErrExecQuery, err)
	}

	period.CreatedAt = createdAt.Time
	return nil
}

// RemoveBlockedPeriod удаляет блокировку по id
func (r *Repository) RemoveBlockedPeriod(ctx context.Context, tenantID int64, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_periods").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RemoveBlockedPeriod - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveBlockedPeriod - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RemoveBlockedPeriod - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedPeriodNotFound
	}

	return nil
}

// ReplaceBlockedPeriods заменяет все блокировки тенанта переданным набором
// Используется PUT-ом конфигурации расписания; вызывающий код оборачивает в транзакцию
func (r *Repository) ReplaceBlockedPeriods(ctx context.Context, tenantID int64, periods domain.BlockedPeriodSet) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("blocked_periods").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceBlockedPeriods - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceBlockedPeriods - execute delete: %v", ErrExecQuery, err)
	}

	if len(periods) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("blocked_periods").
		Columns(
			"id",
			"tenant_id",
			"block_date",
			"start_time",
			"end_time",
			"reason",
		)

	for i := range periods {
		insertBuilder = insertBuilder.Values(
			periods[i].ID,
			tenantID,
			periods[i].Date,
			periods[i].StartTime,
			periods[i].EndTime,
			periods[i].Reason,
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceBlockedPeriods - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceBlockedPeriods - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
