package store

import (
	"database/sql"
	"fmt"
	"strings"

	"hearthside/internal/model"
)

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	err := scanner.Scan(&t.FamilyCode, &t.ID, &t.Task, &t.AssignedTo, &t.Status, &t.Due, &t.CreatedBy, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const taskCols = `family_code, id, task, assigned_to, status, due, created_by, created_at`

func (s *TaskStore) Create(familyCode, task, assignedTo, due, createdBy string) (*model.Task, error) {
	task = strings.TrimSpace(task)
	if task == "" || assignedTo == "" || due == "" {
		return nil, fmt.Errorf("%w: task, assignee, and due date are required", ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	exists, err := familyExists(tx, familyCode)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("family %s: %w", familyCode, ErrNotFound)
	}

	id, err := nextID(tx, "tasks", familyCode)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		`INSERT INTO tasks (family_code, id, task, assigned_to, status, due, created_by) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		familyCode, id, task, assignedTo, model.TaskPending, due, createdBy,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.Get(familyCode, id)
}

func (s *TaskStore) Get(familyCode string, id int64) (*model.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskCols+` FROM tasks WHERE family_code = ? AND id = ?`, familyCode, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (s *TaskStore) List(familyCode string) ([]model.Task, error) {
	rows, err := s.db.Query(
		`SELECT `+taskCols+` FROM tasks WHERE family_code = ? ORDER BY id ASC`,
		familyCode,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// Complete transitions a task from pending to completed. Completing a task
// that is already completed fails with ErrInvalidState rather than being a
// silent no-op, so the caller learns the task was already done.
func (s *TaskStore) Complete(familyCode string, id int64) (*model.Task, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRow(`SELECT status FROM tasks WHERE family_code = ? AND id = ?`, familyCode, id).Scan(&status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get task status: %w", err)
	}
	if status == model.TaskCompleted {
		return nil, fmt.Errorf("%w: task %d is already completed", ErrInvalidState, id)
	}

	_, err = tx.Exec(
		`UPDATE tasks SET status = ? WHERE family_code = ? AND id = ?`,
		model.TaskCompleted, familyCode, id,
	)
	if err != nil {
		return nil, fmt.Errorf("complete task: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.Get(familyCode, id)
}
