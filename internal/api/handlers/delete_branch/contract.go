package delete_branch

import "context"

// BranchService интерфейс сервиса филиалов
type BranchService interface {
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
