package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	"deal_radar/pkg/application/modules"
)

const taskTypePrefix = "monitoring:"

// TaskType: тип задачи asynq для цикла.
func TaskType(loop Loop) string {
	return taskTypePrefix + string(loop)
}

// HandleCycleTask выполняет цикл по задаче планировщика asynq.
// Занятый цикл и упавший цикл не перезапускаются: следующий запуск придёт по расписанию.
func (m *Monitoring) HandleCycleTask(ctx context.Context, task *asynq.Task) error {
	loop, err := ParseLoop(strings.TrimPrefix(task.Type(), taskTypePrefix))
	if err != nil {
		return fmt.Errorf("%w: %w", asynq.SkipRetry, err)
	}

	err = m.RunNow(ctx, loop)
	switch {
	case err == nil, errors.Is(err, ErrCycleInProgress):
		return nil
	default:
		return fmt.Errorf("%w: %w", asynq.SkipRetry, err)
	}
}

func (m *Monitoring) AsynqHandlers() []modules.AsynqHandler {
	return []modules.AsynqHandler{
		{Pattern: TaskType(LoopDealScan), Handle: m.HandleCycleTask},
		{Pattern: TaskType(LoopBidCheck), Handle: m.HandleCycleTask},
	}
}

// PeriodicTasks: расписание обоих циклов для планировщика asynq.
func (m *Monitoring) PeriodicTasks(queue string) []modules.AsynqPeriodicTask {
	tasks := make([]modules.AsynqPeriodicTask, 0, 2)

	for _, l := range m.loops() {
		tasks = append(tasks, modules.AsynqPeriodicTask{
			Cronspec: "@every " + l.interval.String(),
			Task: asynq.NewTask(TaskType(l.name), nil,
				asynq.Queue(queue),
				asynq.MaxRetry(0),
				asynq.Timeout(m.cycleTimeout),
				// задача не копится в очереди, пока предыдущая не взята
				asynq.Unique(max(l.interval, time.Second)),
			),
		})
	}

	return tasks
}
