package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда недельное расписание не настроено
	ErrScheduleNotFound = errors.New("schedule.repository: week schedule not found")

	// ErrBlockedPeriodNotFound возвращается, когда блокировка не найдена
	ErrBlockedPeriodNotFound = errors.New("schedule.repository: blocked period not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
